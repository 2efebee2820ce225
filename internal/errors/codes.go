package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
	AuthEmailTaken         ErrorCode = "AUTH_005"
	AuthTooManyAttempts    ErrorCode = "AUTH_006"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral         ErrorCode = "VALIDATION_001"
	ValidationRequiredField   ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat   ErrorCode = "VALIDATION_003"
	ValidationOutOfRange      ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail    ErrorCode = "VALIDATION_005"
	ValidationInvalidDate     ErrorCode = "VALIDATION_006"
	ValidationInvalidCurrency ErrorCode = "VALIDATION_007"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound         ErrorCode = "ACCOUNT_001"
	AccountHasTransactions  ErrorCode = "ACCOUNT_002"
	AccountInvalidCurrency  ErrorCode = "ACCOUNT_003"
	AccountInvalidReference ErrorCode = "ACCOUNT_004"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound    ErrorCode = "CATEGORY_001"
	CategoryInUse       ErrorCode = "CATEGORY_002"
	CategoryInvalidType ErrorCode = "CATEGORY_003"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound         ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount    ErrorCode = "TRANSACTION_002"
	TransactionInvalidType      ErrorCode = "TRANSACTION_003"
	TransactionInvalidFrequency ErrorCode = "TRANSACTION_004"
	TransactionValidationFailed ErrorCode = "TRANSACTION_005"
)

// Budget error codes (BUDGET_*)
const (
	BudgetNotFound      ErrorCode = "BUDGET_001"
	BudgetInvalidPeriod ErrorCode = "BUDGET_002"
	BudgetInvalidAmount ErrorCode = "BUDGET_003"
)

// Projection error codes (PROJECTION_*)
const (
	ProjectionInvalidAsOf ErrorCode = "PROJECTION_001"
	ProjectionInvalidData ErrorCode = "PROJECTION_002"
)

// Exchange rate error codes (RATE_*)
const (
	RateProviderUnavailable ErrorCode = "RATE_PROVIDER_UNAVAILABLE"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid email or password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthEmailTaken:         "Email already registered",
	AuthTooManyAttempts:    "Too many failed login attempts. Please try again later",

	// Validation errors
	ValidationGeneral:         "Validation failed",
	ValidationRequiredField:   "Required field is missing",
	ValidationInvalidFormat:   "Invalid field format",
	ValidationOutOfRange:      "Field value is out of allowed range",
	ValidationInvalidEmail:    "Invalid email address format",
	ValidationInvalidDate:     "Invalid date format or range",
	ValidationInvalidCurrency: "Unsupported currency",

	// Account errors
	AccountNotFound:         "Account not found",
	AccountHasTransactions:  "Account has transactions and cannot be deleted",
	AccountInvalidCurrency:  "Account currency is not supported",
	AccountInvalidReference: "Account does not belong to the current user",

	// Category errors
	CategoryNotFound:    "Category not found",
	CategoryInUse:       "Category is used by transactions or budgets",
	CategoryInvalidType: "Category type must be income or expense",

	// Transaction errors
	TransactionNotFound:         "Transaction not found",
	TransactionInvalidAmount:    "Invalid transaction amount",
	TransactionInvalidType:      "Invalid transaction type",
	TransactionInvalidFrequency: "Invalid recurring frequency",
	TransactionValidationFailed: "Transaction validation failed",

	// Budget errors
	BudgetNotFound:      "Budget not found",
	BudgetInvalidPeriod: "Budget period must be monthly or yearly",
	BudgetInvalidAmount: "Budget amount must be positive",

	// Projection errors
	ProjectionInvalidAsOf: "as_of must be a date in YYYY-MM-DD format",
	ProjectionInvalidData: "Stored data cannot be projected",

	// Exchange rate errors
	RateProviderUnavailable: "Exchange rate provider is unavailable",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "The requested route does not exist",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
