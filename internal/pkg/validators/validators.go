package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)
	txHashPattern   = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// CurrencyValidation accepts ticker style currency codes such as USD, USDC or WETH.
func CurrencyValidation(fl validator.FieldLevel) bool {
	return currencyPattern.MatchString(fl.Field().String())
}

// TxHashValidation accepts 0x prefixed 32 byte transaction hashes.
func TxHashValidation(fl validator.FieldLevel) bool {
	return txHashPattern.MatchString(fl.Field().String())
}

// New returns a validator with the custom tags `currency` and `txhash` registered.
func New() *validator.Validate {
	validate := validator.New()
	// Registration only fails for empty tags or nil functions
	_ = validate.RegisterValidation("currency", CurrencyValidation)
	_ = validate.RegisterValidation("txhash", TxHashValidation)
	return validate
}
