package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/invoices"
	"github.com/MGTheTrain/web3-invoicing/internal/infrastructure/zkhash"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// InvoiceCommandHandler computes invoice commitments offline.
type InvoiceCommandHandler struct {
	hasher invoices.Hasher
	logger logger.Logger
}

// NewInvoiceCommandHandler initializes a new InvoiceCommandHandler
func NewInvoiceCommandHandler() (*InvoiceCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &InvoiceCommandHandler{
		hasher: zkhash.NewPoseidonHasher(),
		logger: loggerInstance,
	}, nil
}

// HashCmd prints the Poseidon commitment the API would store for the given invoice fields
func (commandHandler *InvoiceCommandHandler) HashCmd(cmd *cobra.Command, _ []string) {
	fields, err := commitmentFieldsFromFlags(cmd)
	if err != nil {
		commandHandler.logger.Error("invalid invoice flags", "error", err)
		return
	}

	hash, err := commandHandler.hasher.Commit(fields)
	if err != nil {
		commandHandler.logger.Error("failed to compute commitment", "error", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
}

func commitmentFieldsFromFlags(cmd *cobra.Command) (invoices.CommitmentFields, error) {
	var fields invoices.CommitmentFields

	issuer, err := cmd.Flags().GetString("issuer")
	if err != nil {
		return fields, fmt.Errorf("invalid issuer flag: %w", err)
	}
	recipient, err := cmd.Flags().GetString("recipient")
	if err != nil {
		return fields, fmt.Errorf("invalid recipient flag: %w", err)
	}
	total, err := cmd.Flags().GetInt64("total")
	if err != nil {
		return fields, fmt.Errorf("invalid total flag: %w", err)
	}
	currency, err := cmd.Flags().GetString("currency")
	if err != nil {
		return fields, fmt.Errorf("invalid currency flag: %w", err)
	}
	dueDate, err := cmd.Flags().GetString("due-date")
	if err != nil {
		return fields, fmt.Errorf("invalid due-date flag: %w", err)
	}
	number, err := cmd.Flags().GetString("number")
	if err != nil {
		return fields, fmt.Errorf("invalid number flag: %w", err)
	}

	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return fields, fmt.Errorf("due-date must be YYYY-MM-DD: %w", err)
	}

	return invoices.CommitmentFields{
		IssuerAddress:    strings.ToLower(issuer),
		RecipientAddress: strings.ToLower(recipient),
		Total:            total,
		Currency:         strings.ToUpper(currency),
		DueDate:          due,
		Number:           number,
	}, nil
}

// InitInvoiceCommands registers the invoice command group
func InitInvoiceCommands(rootCmd *cobra.Command) error {
	handler, err := NewInvoiceCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create invoice command handler %w", err)
	}

	invoiceCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Offline invoice tooling",
	}

	var hashCmd = &cobra.Command{
		Use:   "hash",
		Short: "Compute the Poseidon commitment of an invoice",
		Run:   handler.HashCmd,
	}
	hashCmd.Flags().StringP("issuer", "", "", "Issuer wallet address")
	hashCmd.Flags().StringP("recipient", "", "", "Recipient wallet address")
	hashCmd.Flags().Int64P("total", "", 0, "Invoice total in minor units")
	hashCmd.Flags().StringP("currency", "", "USDC", "Currency code")
	hashCmd.Flags().StringP("due-date", "", "", "Due date as YYYY-MM-DD")
	hashCmd.Flags().StringP("number", "", "", "Invoice number")
	invoiceCmd.AddCommand(hashCmd)

	rootCmd.AddCommand(invoiceCmd)
	return nil
}
