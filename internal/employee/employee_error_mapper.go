package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "github.com/siddheshp/ems-api-okta/internal/employee/errors"
)

// mapRepositoryError translates store-layer failures into domain errors.
// The unique-violation branch is a second line of defense behind the
// service's duplicate check, since the check and the insert do not share a
// transaction.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "duplicate key value") ||
		strings.Contains(errMsg, "UNIQUE constraint failed") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
