package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/mobile-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("XX000"))
	assert.Equal(t, Other, MapCode(""))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("bogus"))
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "feedback",
		ConstraintName: "feedback_contact_key",
	}

	err := HandleError(fmt.Errorf("insert feedback: %w", pgErr))

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errs.StatusBadRequest, domainErr.Code)
	assert.Equal(t, "A Feedback with this Contact already exists", domainErr.Message)
	assert.Equal(t, UniqueViolation, ErrCode(err))
	assert.Equal(t, "FEEDBACK_ALREADY_EXISTS", CodeFor(err))
}

func TestHandleError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "feedback",
		ColumnName: "content",
	}

	err := HandleError(pgErr)

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "The Content is required", domainErr.Message)
	require.Len(t, domainErr.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "content", Error: "is required"}, domainErr.Errors[0])
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "feedback",
		ColumnName: "member_id",
	})

	c := errs.Classify(err)
	assert.Equal(t, errs.KindDomain, c.Kind)
	assert.Equal(t, "The referenced Member does not exist", c.Message)
}

func TestHandleError_OtherPgErrorStaysInternal(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})

	c := errs.Classify(err)
	assert.Equal(t, errs.KindUnclassified, c.Kind)
	assert.Equal(t, errs.StatusInternalServerError, c.Code)

	var sqlErr *Error
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, DeadlockDetected, sqlErr.Code)
}

func TestHandleError_NoRows(t *testing.T) {
	err := HandleError(WithTable("feedback", pgx.ErrNoRows))

	var domainErr *errs.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errs.StatusNotFound, domainErr.Code)
	assert.Equal(t, "Feedback not found", domainErr.Message)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	err = HandleError(pgx.ErrNoRows)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Resource not found", domainErr.Message)
}

func TestHandleError_PassThrough(t *testing.T) {
	assert.NoError(t, HandleError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, HandleError(plain))

	domainErr := errs.NewForbiddenError("")
	assert.Same(t, error(domainErr), HandleError(domainErr))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_members_email"))
	assert.Equal(t, "contact", extractColumnForUniqueViolation("feedback_contact_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("feedback_pkey"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
