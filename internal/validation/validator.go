package validation

import (
	"reflect"
	"strings"
	"sync"

	"cashflow-tracker/internal/models"
	"cashflow-tracker/internal/projection"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("currency", validateCurrency)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("recurring_frequency", validateRecurringFrequency)
	_ = v.RegisterValidation("budget_period", validateBudgetPeriod)

	// decimal amounts are compared as float64 so gt/gte/lte apply to them
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates a struct against its `validate` tags.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func decimalValue(field reflect.Value) interface{} {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		f, _ := d.Float64()
		return f
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		f, _ := d.Decimal.Float64()
		return f
	}
	return nil
}

// validateCurrency accepts the supported ISO codes, case-insensitively
func validateCurrency(fl validator.FieldLevel) bool {
	return projection.IsSupportedCurrency(strings.ToUpper(fl.Field().String()))
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch projection.TransactionType(fl.Field().String()) {
	case projection.TypeIncome, projection.TypeExpense:
		return true
	}
	return false
}

// validateRecurringFrequency accepts an empty value, which means monthly
func validateRecurringFrequency(fl validator.FieldLevel) bool {
	switch projection.Frequency(fl.Field().String()) {
	case projection.FrequencyUnset, projection.FrequencyMonthly, projection.FrequencyTwiceMonthly:
		return true
	}
	return false
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.BudgetPeriodMonthly, models.BudgetPeriodYearly:
		return true
	}
	return false
}

// FieldErrors flattens validator errors into "field: message" details.
func FieldErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fe.Field()+": "+message(fe))
	}
	return details
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "hexcolor":
		return "must be a hex color such as #3B82F6"
	case "currency":
		return "must be one of " + strings.Join(projection.SupportedCurrencies, " ")
	case "transaction_type":
		return "must be income or expense"
	case "recurring_frequency":
		return "must be monthly or twice_monthly"
	case "budget_period":
		return "must be monthly or yearly"
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	default:
		return "is invalid"
	}
}
