package v1

import (
	"net/http"
	"strings"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler defines the interface for the dashboard statistics
type DashboardHandler interface {
	Stats(ctx *gin.Context)
}

type dashboardHandler struct {
	dashboardService dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService}
}

// Stats handles the GET request for the dashboard summary
// @Summary Dashboard statistics
// @Description Amounts of different currencies are summed unless currency is set.
// @Tags Dashboard
// @Produce json
// @Param currency query string false "Currency code"
// @Success 200 {object} StatsResponse
// @Failure 400 {object} ErrorResponse
// @Router /dashboard/stats [get]
func (handler *dashboardHandler) Stats(ctx *gin.Context) {
	user, ok := mustUser(ctx)
	if !ok {
		return
	}

	query := dashboard.StatsQuery{
		UserID:   user.ID,
		Currency: strings.ToUpper(ctx.Query("currency")),
		Now:      clock(),
	}

	stats, err := handler.dashboardService.Stats(ctx.Request.Context(), query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newStatsResponse(stats))
}
