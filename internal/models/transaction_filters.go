package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains filtering options for transaction queries.
// Nil or empty fields do not filter. StartDate is inclusive, EndDate exclusive.
type TransactionFilters struct {
	UserID     uuid.UUID
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
}
