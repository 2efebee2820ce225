package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func registeredCodes() map[string][]ErrorCode {
	return map[string][]ErrorCode{
		"AUTH_": {
			AuthInvalidCredentials, AuthMissingToken, AuthExpiredToken,
			AuthInvalidTokenFormat, AuthEmailTaken, AuthTooManyAttempts,
		},
		"VALIDATION_": {
			ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat,
			ValidationOutOfRange, ValidationInvalidEmail, ValidationInvalidDate,
			ValidationInvalidCurrency,
		},
		"ACCOUNT_": {
			AccountNotFound, AccountHasTransactions, AccountInvalidCurrency, AccountInvalidReference,
		},
		"CATEGORY_": {
			CategoryNotFound, CategoryInUse, CategoryInvalidType,
		},
		"TRANSACTION_": {
			TransactionNotFound, TransactionInvalidAmount, TransactionInvalidType,
			TransactionInvalidFrequency, TransactionValidationFailed,
		},
		"BUDGET_": {
			BudgetNotFound, BudgetInvalidPeriod, BudgetInvalidAmount,
		},
		"PROJECTION_": {
			ProjectionInvalidAsOf, ProjectionInvalidData,
		},
		"RATE_": {
			RateProviderUnavailable,
		},
		"SYSTEM_": {
			SystemInternalError, SystemDatabaseError, SystemServiceUnavailable,
			SystemConfigurationError, SystemUnexpectedError, SystemRateLimitExceeded, SystemRouteNotFound,
		},
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{"Auth Invalid Credentials", AuthInvalidCredentials, "Invalid email or password"},
		{"Auth Email Taken", AuthEmailTaken, "Email already registered"},
		{"Validation General", ValidationGeneral, "Validation failed"},
		{"Account Has Transactions", AccountHasTransactions, "Account has transactions and cannot be deleted"},
		{"Rate Provider Unavailable", RateProviderUnavailable, "Exchange rate provider is unavailable"},
		{"System Internal Error", SystemInternalError, "An unexpected error occurred. Please contact support with trace ID"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage("INVALID_CODE"))
}

func (s *CodesTestSuite) TestIsValidErrorCode_InvalidCode() {
	for _, code := range []ErrorCode{"INVALID_001", "UNKNOWN_CODE", "", "AUTH_999", "CUSTOMER_001"} {
		s.Run(string(code), func() {
			s.False(IsValidErrorCode(code), "Expected %s to be invalid", code)
		})
	}
}

// Every registered code is unique, prefixed by its group and has its own message.
func (s *CodesTestSuite) TestRegisteredCodes() {
	seen := make(map[ErrorCode]bool)

	for prefix, codes := range registeredCodes() {
		for _, code := range codes {
			s.True(strings.HasPrefix(string(code), prefix), "Error code %s should start with %s", code, prefix)
			s.False(seen[code], "Duplicate error code found: %s", code)
			seen[code] = true

			s.True(IsValidErrorCode(code), "Expected %s to be valid", code)
			s.NotEqual("An error occurred", GetErrorMessage(code), "Error code %s should have a specific message", code)
		}
	}

	s.Len(errorMessages, len(seen), "every message entry should belong to a registered code")
}
