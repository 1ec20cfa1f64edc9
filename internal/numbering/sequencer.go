package numbering

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
)

// Sequencer hands out gapless-per-series document numbers. Each
// (tenant, series) pair owns one counter row that is locked and bumped
// inside the caller's transaction, so concurrent postings serialize on the
// row instead of racing a MAX() scan over issued documents.
type Sequencer struct{}

// NewSequencer returns a Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// NextNumber reserves the next number in a series and formats it as
// SERIES-000001. The reservation lives and dies with tx: a rolled-back
// sale releases its number for the next posting.
func (s *Sequencer) NextNumber(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, series string) (string, error) {
	seed := models.DocumentCounter{TenantID: tenantID, Series: series}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&seed).Error
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "failed to seed document counter")
	}

	var counter models.DocumentCounter
	err = db.LockForUpdate(tx.WithContext(ctx)).
		Where("tenant_id = ? AND series = ?", tenantID, series).
		First(&counter).Error
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock document counter")
	}

	counter.LastSeq++
	err = tx.WithContext(ctx).
		Model(&models.DocumentCounter{}).
		Where("tenant_id = ? AND series = ?", tenantID, series).
		Update("last_seq", counter.LastSeq).Error
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "failed to advance document counter")
	}

	return fmt.Sprintf("%s-%06d", series, counter.LastSeq), nil
}
