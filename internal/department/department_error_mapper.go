package department

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	departmenterrors "github.com/siddheshp/ems-api-okta/internal/department/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return departmenterrors.ErrDepartmentAlreadyExists
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "duplicate key value") ||
		strings.Contains(errMsg, "UNIQUE constraint failed") {
		return departmenterrors.ErrDepartmentAlreadyExists
	}

	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
