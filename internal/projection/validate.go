package projection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidInput wraps every problem reported by Validate.
var ErrInvalidInput = errors.New("invalid projection input")

// ValidationError lists every malformed record found in an Input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Validate rejects snapshots the engine is not defined over: unknown
// currencies, negative amounts, unknown types or frequencies, and
// transactions pointing at accounts outside the snapshot.
func Validate(in Input) error {
	var problems []string

	if in.AsOf.IsZero() {
		problems = append(problems, "as-of date is required")
	}

	known := make(map[uuid.UUID]struct{}, len(in.Accounts))
	for _, a := range in.Accounts {
		if a.ID == uuid.Nil {
			problems = append(problems, "account id is required")
		}
		if !IsSupportedCurrency(a.Currency) {
			problems = append(problems, fmt.Sprintf("account %s: unsupported currency %q", a.ID, a.Currency))
		}
		known[a.ID] = struct{}{}
	}

	for _, t := range in.Transactions {
		if _, ok := known[t.AccountID]; !ok {
			problems = append(problems, fmt.Sprintf("transaction %s: unknown account %s", t.ID, t.AccountID))
		}
		if t.Amount.IsNegative() {
			problems = append(problems, fmt.Sprintf("transaction %s: amount %s is negative", t.ID, t.Amount))
		}
		if t.Type != TypeIncome && t.Type != TypeExpense {
			problems = append(problems, fmt.Sprintf("transaction %s: unknown type %q", t.ID, t.Type))
		}
		switch t.Frequency {
		case FrequencyUnset, FrequencyMonthly, FrequencyTwiceMonthly:
		default:
			problems = append(problems, fmt.Sprintf("transaction %s: unknown frequency %q", t.ID, t.Frequency))
		}
		if t.Date.IsZero() {
			problems = append(problems, fmt.Sprintf("transaction %s: date is required", t.ID))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
