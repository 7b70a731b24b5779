package repository

import (
	"errors"
	"fmt"

	"github.com/amirasaad/bankoffice/pkg/domain"
	"gorm.io/gorm"
)

// MapGormErrorToDomain converts GORM errors to domain errors so that services
// never see infrastructure error types. The connection must be opened with
// TranslateError for unique violations to surface as gorm.ErrDuplicatedKey.
// Unmapped errors are returned unchanged.
func MapGormErrorToDomain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	default:
		return err
	}
}
