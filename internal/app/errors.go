package app

import (
	"errors"

	"github.com/roach88/fittrack/internal/category"
	"github.com/roach88/fittrack/internal/goal"
	"github.com/roach88/fittrack/internal/identity"
	"github.com/roach88/fittrack/internal/ledger"
	"github.com/roach88/fittrack/internal/session"
	"github.com/roach88/fittrack/internal/store"
)

// Stable error codes for machine-readable output.
const (
	CodeStore             = "E_STORE"
	CodeInvalidUsername   = "E_INVALID_USERNAME"
	CodeInvalidPassword   = "E_INVALID_PASSWORD"
	CodeDuplicateUsername = "E_DUPLICATE_USERNAME"
	CodeInvalidNumeric    = "E_INVALID_NUMERIC"
	CodeLogNotFound       = "E_LOG_NOT_FOUND"
	CodeDuplicateCategory = "E_DUPLICATE_CATEGORY"
	CodeCategoryNotFound  = "E_CATEGORY_NOT_FOUND"
	CodeGoalNotFound      = "E_GOAL_NOT_FOUND"
	CodeUnknownOperation  = "E_UNKNOWN_OPERATION"
	CodeInvalidArgument   = "E_INVALID_ARGUMENT"
	CodeInternal          = "E_INTERNAL"
)

var codes = []struct {
	err  error
	code string
}{
	{identity.ErrInvalidUsername, CodeInvalidUsername},
	{identity.ErrInvalidPassword, CodeInvalidPassword},
	{identity.ErrDuplicateUsername, CodeDuplicateUsername},
	{ledger.ErrInvalidNumericInput, CodeInvalidNumeric},
	{ledger.ErrNotFound, CodeLogNotFound},
	{category.ErrDuplicateCategory, CodeDuplicateCategory},
	{category.ErrNotFound, CodeCategoryNotFound},
	{goal.ErrNotFound, CodeGoalNotFound},
	{session.ErrUnknownOperation, CodeUnknownOperation},
	{session.ErrInvalidArgument, CodeInvalidArgument},
}

// ErrorCode returns the stable code for err, or "" for nil.
// Component errors take precedence over the store error they may wrap.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	var se *store.Error
	if errors.As(err, &se) {
		return CodeStore
	}
	return CodeInternal
}
