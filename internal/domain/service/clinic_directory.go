package service

import (
	"context"

	"locator/internal/domain/entity"
)

// ClinicDirectory lists the clinics known to the directory service
type ClinicDirectory interface {
	ListClinics(ctx context.Context) ([]entity.Clinic, error)
}
