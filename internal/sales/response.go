package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
)

// SaleDTO is the outward shape of a committed sale.
type SaleDTO struct {
	ID                uuid.UUID           `json:"id"`
	Number            string              `json:"number"`
	LocationID        uuid.UUID           `json:"location_id"`
	OperatorID        uuid.UUID           `json:"operator_id"`
	CustomerID        *uuid.UUID          `json:"customer_id,omitempty"`
	RegisterSessionID uuid.UUID           `json:"register_session_id"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	TaxAmount         decimal.Decimal     `json:"tax_amount"`
	DiscountAmount    decimal.Decimal     `json:"discount_amount"`
	Total             decimal.Decimal     `json:"total"`
	Status            enums.SaleStatus    `json:"status"`
	Items             []SaleItemDTO       `json:"items"`
	Payments          []SalePaymentDTO    `json:"payments"`
	CreatedAt         time.Time           `json:"created_at"`
}

// SaleItemDTO is one line of a SaleDTO.
type SaleItemDTO struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        *uuid.UUID      `json:"product_id,omitempty"`
	ProductVariantID *uuid.UUID      `json:"product_variant_id,omitempty"`
	Description      string          `json:"description"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	DiscountAmount   decimal.Decimal `json:"discount_amount"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	Total            decimal.Decimal `json:"total"`
}

// SalePaymentDTO is one tender of a SaleDTO.
type SalePaymentDTO struct {
	ID                uuid.UUID           `json:"id"`
	Method            enums.PaymentMethod `json:"method"`
	Amount            decimal.Decimal     `json:"amount"`
	CardLastFour      *string             `json:"card_last_four,omitempty"`
	TransferReference *string             `json:"transfer_reference,omitempty"`
}

// NewSaleDTO maps a persisted sale aggregate to its outward shape.
func NewSaleDTO(sale *models.Sale) *SaleDTO {
	if sale == nil {
		return nil
	}
	items := make([]SaleItemDTO, 0, len(sale.Items))
	for _, item := range sale.Items {
		items = append(items, SaleItemDTO{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductVariantID: item.ProductVariantID,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			TaxRate:          item.TaxRate,
			DiscountAmount:   item.DiscountAmount,
			Subtotal:         item.Subtotal,
			TaxAmount:        item.TaxAmount,
			Total:            item.Total,
		})
	}
	payments := make([]SalePaymentDTO, 0, len(sale.Payments))
	for _, payment := range sale.Payments {
		payments = append(payments, SalePaymentDTO{
			ID:                payment.ID,
			Method:            payment.Method,
			Amount:            payment.Amount,
			CardLastFour:      payment.CardLastFour,
			TransferReference: payment.TransferReference,
		})
	}
	return &SaleDTO{
		ID:                sale.ID,
		Number:            sale.Number,
		LocationID:        sale.LocationID,
		OperatorID:        sale.OperatorID,
		CustomerID:        sale.CustomerID,
		RegisterSessionID: sale.RegisterSessionID,
		Subtotal:          sale.Subtotal,
		TaxAmount:         sale.TaxAmount,
		DiscountAmount:    sale.DiscountAmount,
		Total:             sale.Total,
		Status:            sale.Status,
		Items:             items,
		Payments:          payments,
		CreatedAt:         sale.CreatedAt,
	}
}

// NewSaleDTOs maps a list of sales.
func NewSaleDTOs(sales []models.Sale) []SaleDTO {
	out := make([]SaleDTO, 0, len(sales))
	for i := range sales {
		out = append(out, *NewSaleDTO(&sales[i]))
	}
	return out
}
