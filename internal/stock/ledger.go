package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

// Ledger performs check-and-decrement reservations against stock rows and
// records the matching movement entries. Everything runs inside the
// caller's transaction so a failed sale never leaves a partial decrement.
type Ledger struct{}

// NewLedger returns a Ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// MovementDraft captures the snapshot data of one reservation so the
// movement row can be written later, once the sale row it references
// exists.
type MovementDraft struct {
	Item     ItemRef
	Quantity int
	Before   int
	After    int
}

// InsufficientStockDetails is attached to insufficient-stock errors so the
// caller can show the operator exactly what ran out.
type InsufficientStockDetails struct {
	Item      string `json:"item"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// Reserve locks the stock row for an item at a location, verifies the
// requested quantity is available and decrements it. An item with no stock
// row counts as zero available.
func (l *Ledger) Reserve(ctx context.Context, tx *gorm.DB, tenantID, locationID uuid.UUID, item ItemRef, quantity int) (MovementDraft, error) {
	if quantity <= 0 {
		return MovementDraft{}, apperrors.New(apperrors.CodeValidation, "quantity must be positive")
	}

	var row models.StockItem
	err := db.LockForUpdate(l.itemQuery(ctx, tx, tenantID, locationID, item)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return MovementDraft{}, insufficientStock(item, quantity, 0)
	}
	if err != nil {
		return MovementDraft{}, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock stock row")
	}

	if row.Quantity < quantity {
		return MovementDraft{}, insufficientStock(item, quantity, row.Quantity)
	}

	after := row.Quantity - quantity
	err = tx.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("id = ?", row.ID).
		Update("quantity", after).Error
	if err != nil {
		return MovementDraft{}, apperrors.Wrap(apperrors.CodeInternal, err, "failed to decrement stock")
	}

	return MovementDraft{
		Item:     item,
		Quantity: quantity,
		Before:   row.Quantity,
		After:    after,
	}, nil
}

// RecordMovements writes the ledger entries for a batch of reservations,
// all tied to the sale that consumed them. Drafts are buffered by the
// caller so the sale row exists before its movements reference it.
func (l *Ledger) RecordMovements(ctx context.Context, tx *gorm.DB, tenantID, locationID, saleID uuid.UUID, saleNumber string, actorID uuid.UUID, drafts []MovementDraft) error {
	if len(drafts) == 0 {
		return nil
	}

	movements := make([]models.StockMovement, 0, len(drafts))
	for _, draft := range drafts {
		movements = append(movements, models.StockMovement{
			TenantID:         tenantID,
			LocationID:       locationID,
			ProductID:        draft.Item.ProductID(),
			ProductVariantID: draft.Item.VariantID(),
			Type:             enums.StockMovementSale,
			Quantity:         -draft.Quantity,
			QuantityBefore:   draft.Before,
			QuantityAfter:    draft.After,
			Reason:           fmt.Sprintf("sale %s", saleNumber),
			SaleID:           &saleID,
			ActorID:          actorID,
		})
	}

	if err := tx.WithContext(ctx).Create(&movements).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to record stock movements")
	}
	return nil
}

func (l *Ledger) itemQuery(ctx context.Context, tx *gorm.DB, tenantID, locationID uuid.UUID, item ItemRef) *gorm.DB {
	query := tx.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("tenant_id = ? AND location_id = ?", tenantID, locationID)
	if item.Kind() == ItemKindVariant {
		return query.Where("product_variant_id = ?", item.ID())
	}
	return query.Where("product_id = ? AND product_variant_id IS NULL", item.ID())
}

func insufficientStock(item ItemRef, requested, available int) error {
	return apperrors.New(
		apperrors.CodeInsufficientStock,
		fmt.Sprintf("insufficient stock for %s: requested %d, available %d", item.Label(), requested, available),
	).WithDetails(InsufficientStockDetails{
		Item:      item.Label(),
		Requested: requested,
		Available: available,
	})
}
