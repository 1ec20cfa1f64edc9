package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

// Repo resolves tenant-scoped customers.
type Repo struct{}

// NewRepo returns a Repo.
func NewRepo() *Repo {
	return &Repo{}
}

// Find returns a customer of the tenant.
func (r *Repo) Find(ctx context.Context, tx *gorm.DB, tenantID, customerID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := tx.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", customerID, tenantID).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "customer not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to load customer")
	}
	return &customer, nil
}
