package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"gorm.io/gorm"
)

// PostgreSQL error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeUndefinedTable      = "42P01"
	codeUndefinedColumn     = "42703"
	codeAdminShutdown       = "57P01"
	codeCannotConnectNow    = "57P03"
	classConnection         = "08"
)

// TranslateError maps gorm and PostgreSQL errors onto application errors.
// resource names the entity in not found and conflict messages.
func TranslateError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	if resource == "" {
		resource = "Record"
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFoundError(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			appErr := apperror.NewConflictError(resource + " already exists")
			appErr.Err = err
			appErr.Details = map[string]string{"constraint": pgErr.ConstraintName}
			return appErr
		case pgErr.Code == codeUndefinedTable, pgErr.Code == codeUndefinedColumn:
			return apperror.NewSchemaMissingError(err)
		case pgErr.Code == codeCheckViolation, pgErr.Code == codeForeignKeyViolation:
			appErr := apperror.NewFieldError(pgErr.ConstraintName, pgErr.Message)
			appErr.Err = err
			return appErr
		case strings.HasPrefix(pgErr.Code, classConnection),
			pgErr.Code == codeAdminShutdown,
			pgErr.Code == codeCannotConnectNow:
			return apperror.NewPersistenceUnavailableError(connectHint, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return apperror.NewPersistenceUnavailableError(connectHint, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewPersistenceUnavailableError("database did not answer in time", err)
	}
	return err
}

// IsSchemaMissing reports whether err comes from a missing table or column
func IsSchemaMissing(err error) bool {
	return apperror.IsKind(TranslateError(err, ""), apperror.KindSchemaMissing)
}
