package guard

import (
	"errors"
	"strings"

	guarderrors "go-vigilancia/internal/guard/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guarderrors.ErrGuardNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_guard_legajo" {
			return guarderrors.ErrLegajoAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_guard_legajo") {
		return guarderrors.ErrLegajoAlreadyExists
	}

	return err
}
