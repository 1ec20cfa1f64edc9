package sales

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
	"github.com/sgiordano/ventapos-backend/pkg/pagination"
)

// Repo persists and reads sale aggregates.
type Repo struct {
	db *gorm.DB
}

// NewRepo returns a Repo bound to the shared connection. Writes that must
// join the posting transaction go through the tx-taking methods instead.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts the sale with its items and payments as one nested write.
func (r *Repo) Create(ctx context.Context, tx *gorm.DB, sale *models.Sale) error {
	if err := tx.WithContext(ctx).Create(sale).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to persist sale")
	}
	return nil
}

// FindByID loads a tenant's sale with items and payments.
func (r *Repo) FindByID(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("id = ? AND tenant_id = ?", saleID, tenantID).
		First(&sale).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "sale not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to load sale")
	}
	return &sale, nil
}

// List returns a tenant's sales newest first, cursor-paginated.
func (r *Repo) List(ctx context.Context, tenantID uuid.UUID, params ListParams) ([]models.Sale, *pagination.Cursor, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Preload("Items").
		Preload("Payments").
		Where("tenant_id = ?", tenantID)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Sale
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to list sales")
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}
