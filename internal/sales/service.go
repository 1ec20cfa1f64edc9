package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/sgiordano/ventapos-backend/internal/accounts"
	"github.com/sgiordano/ventapos-backend/internal/catalog"
	"github.com/sgiordano/ventapos-backend/internal/customers"
	"github.com/sgiordano/ventapos-backend/internal/numbering"
	"github.com/sgiordano/ventapos-backend/internal/pricing"
	"github.com/sgiordano/ventapos-backend/internal/registers"
	"github.com/sgiordano/ventapos-backend/internal/stock"
	"github.com/sgiordano/ventapos-backend/internal/treasury"
	"github.com/sgiordano/ventapos-backend/pkg/config"
	dbpkg "github.com/sgiordano/ventapos-backend/pkg/db"
	"github.com/sgiordano/ventapos-backend/pkg/db/models"
	"github.com/sgiordano/ventapos-backend/pkg/enums"
	apperrors "github.com/sgiordano/ventapos-backend/pkg/errors"
	"github.com/sgiordano/ventapos-backend/pkg/logger"
	"github.com/sgiordano/ventapos-backend/pkg/metrics"
	"github.com/sgiordano/ventapos-backend/pkg/pagination"
)

// Service orchestrates sale posting. One PostSale call is one database
// transaction: register resolution, numbering, per-line pricing, stock
// reservation, persistence and all ledger postings either commit together
// or roll back together.
type Service struct {
	db        *dbpkg.Client
	repo      *Repo
	registers *registers.Service
	sequencer *numbering.Sequencer
	stock     *stock.Ledger
	accounts  *accounts.Service
	treasury  *treasury.Service
	catalog   *catalog.Repo
	customers *customers.Repo
	cfg       config.SalesConfig
	logg      *logger.Logger
	metrics   *metrics.SaleMetrics
}

// ServiceParams collects the Service dependencies.
type ServiceParams struct {
	DB        *dbpkg.Client
	Repo      *Repo
	Registers *registers.Service
	Sequencer *numbering.Sequencer
	Stock     *stock.Ledger
	Accounts  *accounts.Service
	Treasury  *treasury.Service
	Catalog   *catalog.Repo
	Customers *customers.Repo
	Config    config.SalesConfig
	Logger    *logger.Logger
	Metrics   *metrics.SaleMetrics
}

// NewService validates the wiring and returns a Service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("sales repo required")
	}
	if params.Registers == nil {
		return nil, fmt.Errorf("registers service required")
	}
	if params.Sequencer == nil {
		return nil, fmt.Errorf("numbering sequencer required")
	}
	if params.Stock == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts service required")
	}
	if params.Treasury == nil {
		return nil, fmt.Errorf("treasury service required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog repo required")
	}
	if params.Customers == nil {
		return nil, fmt.Errorf("customers repo required")
	}
	return &Service{
		db:        params.DB,
		repo:      params.Repo,
		registers: params.Registers,
		sequencer: params.Sequencer,
		stock:     params.Stock,
		accounts:  params.Accounts,
		treasury:  params.Treasury,
		catalog:   params.Catalog,
		customers: params.Customers,
		cfg:       params.Config,
		logg:      params.Logger,
		metrics:   params.Metrics,
	}, nil
}

// pricedLine is a cart line after catalog resolution and stock
// reservation, ready to persist.
type pricedLine struct {
	item     models.SaleItem
	ref      stock.ItemRef
	draft    stock.MovementDraft
	net      decimal.Decimal
	tax      decimal.Decimal
	gross    decimal.Decimal
	quantity int
}

// PostSale runs the whole posting flow and returns the committed sale.
func (s *Service) PostSale(ctx context.Context, opCtx OperatorContext, input PostSaleInput) (*models.Sale, error) {
	started := time.Now()
	sale, err := s.postSale(ctx, opCtx, input)
	if err != nil {
		s.observeFailure(ctx, started, err)
		return nil, err
	}
	s.observeSuccess(ctx, opCtx, sale, started)
	return sale, nil
}

func (s *Service) postSale(ctx context.Context, opCtx OperatorContext, input PostSaleInput) (*models.Sale, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Account tenders need a resolvable customer. Checked before the
	// transaction opens so bad input never costs a rollback; the charge
	// itself still happens inside the transaction.
	if err := s.prevalidateAccountTender(ctx, opCtx, input); err != nil {
		return nil, err
	}

	var sale *models.Sale
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		session, err := s.registers.ResolveOpen(ctx, tx, opCtx.TenantID, opCtx.LocationID)
		if err != nil {
			return err
		}

		number, err := s.sequencer.NextNumber(ctx, tx, opCtx.TenantID, s.seriesPrefix())
		if err != nil {
			return err
		}

		lines, subtotal, taxTotal, err := s.priceLines(ctx, tx, opCtx, session.LocationID, input.Items)
		if err != nil {
			return err
		}

		totals := s.applyCartDiscount(input, subtotal, taxTotal)

		payments, err := s.resolvePayments(input, totals.grossTotal)
		if err != nil {
			return err
		}
		if err := s.validatePaymentSum(payments, totals.grossTotal); err != nil {
			return err
		}

		sale = s.buildSale(opCtx, session, number, input, lines, totals, payments)
		if err := s.repo.Create(ctx, tx, sale); err != nil {
			return err
		}

		drafts := make([]stock.MovementDraft, 0, len(lines))
		for _, line := range lines {
			drafts = append(drafts, line.draft)
		}
		err = s.stock.RecordMovements(ctx, tx, opCtx.TenantID, session.LocationID, sale.ID, number, opCtx.OperatorID, drafts)
		if err != nil {
			return err
		}

		if accountTotal := paymentTotal(sale.Payments, enums.PaymentMethodAccount); accountTotal.IsPositive() {
			err = s.accounts.Charge(ctx, tx, opCtx.TenantID, *input.CustomerID, sale.ID, number, accountTotal)
			if err != nil {
				return err
			}
		}

		return s.treasury.RecordSaleIncome(ctx, tx, opCtx.TenantID, sale.ID, number, sale.Payments)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale loads one sale of the tenant.
func (s *Service) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*models.Sale, error) {
	return s.repo.FindByID(ctx, tenantID, saleID)
}

// ListSales returns the tenant's sales, newest first.
func (s *Service) ListSales(ctx context.Context, tenantID uuid.UUID, params ListParams) ([]models.Sale, *pagination.Cursor, error) {
	return s.repo.List(ctx, tenantID, params)
}

func validateInput(input PostSaleInput) error {
	var errs error
	if len(input.Items) == 0 {
		errs = multierr.Append(errs, fmt.Errorf("at least one item is required"))
	}
	for i, item := range input.Items {
		if item.ProductID == nil && item.VariantID == nil {
			errs = multierr.Append(errs, fmt.Errorf("items[%d]: product_id or variant_id is required", i))
		}
		if item.Quantity <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("items[%d]: quantity must be positive", i))
		}
		if item.UnitPrice.LessThanOrEqual(decimal.Zero) {
			errs = multierr.Append(errs, fmt.Errorf("items[%d]: unit price must be positive", i))
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
			errs = multierr.Append(errs, fmt.Errorf("items[%d]: tax rate must be between 0 and 100", i))
		}
		if item.DiscountType != nil && !item.DiscountType.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("items[%d]: invalid discount type", i))
		}
		if item.DiscountValue != nil && item.DiscountValue.IsNegative() {
			errs = multierr.Append(errs, fmt.Errorf("items[%d]: discount value cannot be negative", i))
		}
	}
	for i, payment := range input.Payments {
		if !payment.Method.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("payments[%d]: invalid payment method", i))
		}
		if payment.Amount.LessThanOrEqual(decimal.Zero) {
			errs = multierr.Append(errs, fmt.Errorf("payments[%d]: amount must be positive", i))
		}
	}
	if input.LegacyPaymentMethod != nil && !input.LegacyPaymentMethod.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid payment method"))
	}
	if len(input.Payments) == 0 && input.LegacyPaymentMethod == nil {
		errs = multierr.Append(errs, fmt.Errorf("no payment method provided"))
	}
	if input.CartDiscountType != nil && !input.CartDiscountType.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid cart discount type"))
	}
	if errs != nil {
		return apperrors.Wrap(apperrors.CodeValidation, errs, "invalid sale input")
	}
	return nil
}

func (s *Service) prevalidateAccountTender(ctx context.Context, opCtx OperatorContext, input PostSaleInput) error {
	if !hasAccountTender(input) {
		return nil
	}
	if input.CustomerID == nil {
		return apperrors.New(apperrors.CodeValidation, "a customer is required for account payments")
	}
	_, err := s.customers.Find(ctx, s.db.DB(), opCtx.TenantID, *input.CustomerID)
	return err
}

func hasAccountTender(input PostSaleInput) bool {
	for _, payment := range input.Payments {
		if payment.Method == enums.PaymentMethodAccount {
			return true
		}
	}
	return input.LegacyPaymentMethod != nil && *input.LegacyPaymentMethod == enums.PaymentMethodAccount
}

func (s *Service) priceLines(ctx context.Context, tx *gorm.DB, opCtx OperatorContext, locationID uuid.UUID, items []ItemInput) ([]pricedLine, decimal.Decimal, decimal.Decimal, error) {
	lines := make([]pricedLine, 0, len(items))
	subtotal := decimal.Zero
	taxTotal := decimal.Zero

	for _, item := range items {
		ref, description, costPrice, err := s.resolveItem(ctx, tx, opCtx.TenantID, item)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, err
		}

		draft, err := s.stock.Reserve(ctx, tx, opCtx.TenantID, locationID, ref, item.Quantity)
		if err != nil {
			return nil, decimal.Zero, decimal.Zero, err
		}

		gross := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		discount := resolveLineDiscount(item)
		discountAmount := pricing.DiscountAmount(gross, discount)
		lineTotal := gross.Sub(discountAmount)
		tax := pricing.ExtractTax(lineTotal, item.TaxRate)
		net := lineTotal.Sub(tax)

		line := pricedLine{
			ref:      ref,
			draft:    draft,
			net:      net,
			tax:      tax,
			gross:    lineTotal,
			quantity: item.Quantity,
			item: models.SaleItem{
				ProductID:        ref.ProductID(),
				ProductVariantID: ref.VariantID(),
				Description:      description,
				Quantity:         item.Quantity,
				UnitPrice:        item.UnitPrice,
				CostPrice:        costPrice,
				TaxRate:          item.TaxRate,
				DiscountType:     discountTypePtr(discount),
				DiscountValue:    discountValuePtr(discount),
				DiscountAmount:   discountAmount,
				Subtotal:         net,
				TaxAmount:        tax,
				Total:            lineTotal,
			},
		}
		lines = append(lines, line)
		subtotal = subtotal.Add(net)
		taxTotal = taxTotal.Add(tax)
	}
	return lines, subtotal, taxTotal, nil
}

func (s *Service) resolveItem(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, item ItemInput) (stock.ItemRef, string, decimal.Decimal, error) {
	if item.VariantID != nil {
		variant, product, err := s.catalog.FindVariant(ctx, tx, tenantID, *item.VariantID)
		if err != nil {
			return stock.ItemRef{}, "", decimal.Zero, err
		}
		label := product.Name + " " + variant.Name
		return stock.VariantRef(variant.ID, label), label, catalog.VariantCostPrice(variant, product), nil
	}
	product, err := s.catalog.FindProduct(ctx, tx, tenantID, *item.ProductID)
	if err != nil {
		return stock.ItemRef{}, "", decimal.Zero, err
	}
	return stock.ProductRef(product.ID, product.Name), product.Name, product.CostPrice, nil
}

// saleTotals carries the cart-level figures after the cart discount.
type saleTotals struct {
	subtotal       decimal.Decimal
	taxAmount      decimal.Decimal
	discountAmount decimal.Decimal
	grossTotal     decimal.Decimal
	discount       pricing.Discount
}

// applyCartDiscount discounts the pre-discount gross and rescales the
// accumulated tax proportionally so subtotal+tax still equals the total.
func (s *Service) applyCartDiscount(input PostSaleInput, subtotal, taxTotal decimal.Decimal) saleTotals {
	grossBefore := subtotal.Add(taxTotal)

	fallback := pricing.None
	if input.LegacyCartDiscountAmount != nil {
		fallback = pricing.FixedDiscount(*input.LegacyCartDiscountAmount)
	}
	discount := pricing.Resolve(input.CartDiscountType, input.CartDiscountValue, fallback)

	discountAmount := pricing.DiscountAmount(grossBefore, discount)
	grossTotal := grossBefore.Sub(discountAmount)

	adjustedTax := taxTotal
	if grossBefore.IsPositive() {
		adjustedTax = taxTotal.Mul(grossTotal).Div(grossBefore).Round(2)
	}

	return saleTotals{
		subtotal:       grossTotal.Sub(adjustedTax),
		taxAmount:      adjustedTax,
		discountAmount: discountAmount,
		grossTotal:     grossTotal,
		discount:       discount,
	}
}

// resolvePayments expands the legacy single-method shape into one entry
// for the full total; explicit entries pass through.
func (s *Service) resolvePayments(input PostSaleInput, grossTotal decimal.Decimal) ([]models.Payment, error) {
	if len(input.Payments) == 0 {
		if input.LegacyPaymentMethod == nil {
			return nil, apperrors.New(apperrors.CodeValidation, "no payment method provided")
		}
		return []models.Payment{{
			Method: *input.LegacyPaymentMethod,
			Amount: grossTotal,
		}}, nil
	}

	payments := make([]models.Payment, 0, len(input.Payments))
	for _, entry := range input.Payments {
		payments = append(payments, models.Payment{
			Method:            entry.Method,
			Amount:            entry.Amount,
			CardLastFour:      entry.CardLastFour,
			TransferReference: entry.TransferReference,
		})
	}
	return payments, nil
}

// PaymentsMismatchDetails names both figures of a rejected tender sum.
type PaymentsMismatchDetails struct {
	PaymentsTotal decimal.Decimal `json:"payments_total"`
	SaleTotal     decimal.Decimal `json:"sale_total"`
}

func (s *Service) validatePaymentSum(payments []models.Payment, grossTotal decimal.Decimal) error {
	sum := decimal.Zero
	for _, payment := range payments {
		sum = sum.Add(payment.Amount)
	}
	if sum.Sub(grossTotal).Abs().GreaterThan(s.tolerance()) {
		return apperrors.New(
			apperrors.CodePaymentsMismatch,
			fmt.Sprintf("payments sum %s does not match sale total %s", sum.StringFixed(2), grossTotal.StringFixed(2)),
		).WithDetails(PaymentsMismatchDetails{PaymentsTotal: sum, SaleTotal: grossTotal})
	}
	return nil
}

func (s *Service) buildSale(opCtx OperatorContext, session *models.RegisterSession, number string, input PostSaleInput, lines []pricedLine, totals saleTotals, payments []models.Payment) *models.Sale {
	items := make([]models.SaleItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, line.item)
	}

	return &models.Sale{
		ID:                uuid.New(),
		Number:            number,
		TenantID:          opCtx.TenantID,
		LocationID:        session.LocationID,
		OperatorID:        opCtx.OperatorID,
		CustomerID:        input.CustomerID,
		RegisterSessionID: session.ID,
		Subtotal:          totals.subtotal,
		TaxAmount:         totals.taxAmount,
		DiscountType:      discountTypePtr(totals.discount),
		DiscountValue:     discountValuePtr(totals.discount),
		DiscountAmount:    totals.discountAmount,
		Total:             totals.grossTotal,
		Status:            enums.SaleStatusCompleted,
		Items:             items,
		Payments:          payments,
	}
}

func (s *Service) seriesPrefix() string {
	if s.cfg.SeriesPrefix != "" {
		return s.cfg.SeriesPrefix
	}
	return "SALE"
}

func (s *Service) tolerance() decimal.Decimal {
	cents := s.cfg.PaymentToleranceCt
	if cents <= 0 {
		cents = 1
	}
	return decimal.New(int64(cents), -2)
}

func (s *Service) observeSuccess(ctx context.Context, opCtx OperatorContext, sale *models.Sale, started time.Time) {
	s.metrics.ObserveDuration("success", time.Since(started))
	s.metrics.IncPosted(opCtx.TenantID.String())
	if s.logg != nil {
		ctx = s.logg.WithSaleNumber(ctx, sale.Number)
		ctx = s.logg.WithField(ctx, "total", sale.Total.StringFixed(2))
		s.logg.Info(ctx, "sale posted")
	}
}

func (s *Service) observeFailure(ctx context.Context, started time.Time, err error) {
	s.metrics.ObserveDuration("failure", time.Since(started))
	code := apperrors.CodeInternal
	if typed := apperrors.As(err); typed != nil {
		code = typed.Code()
	}
	s.metrics.IncFailed(string(code))
	if s.logg != nil {
		s.logg.Error(ctx, "sale posting failed", err)
	}
}

func resolveLineDiscount(item ItemInput) pricing.Discount {
	fallback := pricing.None
	if item.LegacyDiscountPercent != nil {
		fallback = pricing.PercentageDiscount(*item.LegacyDiscountPercent)
	}
	return pricing.Resolve(item.DiscountType, item.DiscountValue, fallback)
}

func discountTypePtr(d pricing.Discount) *enums.DiscountType {
	if d.IsZero() {
		return nil
	}
	t := d.Type
	return &t
}

func discountValuePtr(d pricing.Discount) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	v := d.Value
	return &v
}

func paymentTotal(payments []models.Payment, method enums.PaymentMethod) decimal.Decimal {
	total := decimal.Zero
	for _, payment := range payments {
		if payment.Method == method {
			total = total.Add(payment.Amount)
		}
	}
	return total
}
