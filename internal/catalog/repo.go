package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

// Repo resolves sellable catalog entries. Lookups are tenant-scoped and
// only return active rows; an inactive product is indistinguishable from a
// missing one to the caller.
type Repo struct{}

// NewRepo returns a Repo.
func NewRepo() *Repo {
	return &Repo{}
}

// FindProduct returns an active product of the tenant.
func (r *Repo) FindProduct(ctx context.Context, tx *gorm.DB, tenantID, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND is_active = ?", productID, tenantID, true).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to load product")
	}
	return &product, nil
}

// FindVariant returns an active variant of the tenant together with its
// parent product, which carries the tax rate and the fallback prices.
func (r *Repo) FindVariant(ctx context.Context, tx *gorm.DB, tenantID, variantID uuid.UUID) (*models.ProductVariant, *models.Product, error) {
	var variant models.ProductVariant
	err := tx.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND is_active = ?", variantID, tenantID, true).
		First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperrors.New(apperrors.CodeNotFound, "product variant not found")
	}
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to load product variant")
	}

	product, err := r.FindProduct(ctx, tx, tenantID, variant.ProductID)
	if err != nil {
		return nil, nil, err
	}
	return &variant, product, nil
}

// VariantSalePrice returns the variant's sale price, falling back to the
// parent product's when the variant has no override.
func VariantSalePrice(variant *models.ProductVariant, product *models.Product) decimal.Decimal {
	if variant.SalePrice != nil {
		return *variant.SalePrice
	}
	return product.SalePrice
}

// VariantCostPrice returns the variant's cost price, falling back to the
// parent product's when the variant has no override.
func VariantCostPrice(variant *models.ProductVariant, product *models.Product) decimal.Decimal {
	if variant.CostPrice != nil {
		return *variant.CostPrice
	}
	return product.CostPrice
}
