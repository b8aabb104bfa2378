package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/craftroot/checkout-api/internal/coupon"
	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/pricing"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("store: not found")

// Store provides persistence over Postgres. Monetary columns are numeric and
// travel through the wire as text to keep decimal precision intact.
type Store struct {
	pool *pgxpool.Pool
}

// New constructs a store over the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ProductPricing is the tax metadata a product carries for checkout.
type ProductPricing struct {
	ID               uuid.UUID
	Title            string
	HSNCode          string
	UnitPrice        money.Amount
	TaxRatePercent   int
	PriceIncludesTax bool
}

// GetProductPricing loads pricing metadata for the given product ids.
func (s *Store) GetProductPricing(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]ProductPricing, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, hsn_code, unit_price::text, tax_rate_percent, price_includes_tax
		FROM products
		WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("store: query products: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]ProductPricing, len(ids))
	for rows.Next() {
		var (
			p        ProductPricing
			priceRaw string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.HSNCode, &priceRaw, &p.TaxRatePercent, &p.PriceIncludesTax); err != nil {
			return nil, fmt.Errorf("store: scan product: %w", err)
		}
		if p.UnitPrice, err = money.Parse(priceRaw); err != nil {
			return nil, fmt.Errorf("store: product %s: %w", p.ID, err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

// GetCouponByCode resolves a coupon rule. Missing codes map to coupon.ErrNotFound
// so the checkout surface can treat them as a user-facing rejection.
func (s *Store) GetCouponByCode(ctx context.Context, code string) (coupon.Rule, error) {
	var (
		rule     coupon.Rule
		valueRaw string
		minRaw   *string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT code, discount_type, discount_value::text, min_order_value::text, is_active
		FROM coupons
		WHERE lower(code) = lower($1)`, code).
		Scan(&rule.Code, &rule.Type, &valueRaw, &minRaw, &rule.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return coupon.Rule{}, coupon.ErrNotFound
		}
		return coupon.Rule{}, fmt.Errorf("store: query coupon: %w", err)
	}
	if rule.Value, err = money.Parse(valueRaw); err != nil {
		return coupon.Rule{}, fmt.Errorf("store: coupon %s: %w", code, err)
	}
	if minRaw != nil {
		min, err := money.Parse(*minRaw)
		if err != nil {
			return coupon.Rule{}, fmt.Errorf("store: coupon %s: %w", code, err)
		}
		rule.MinOrderValue = &min
	}
	return rule, nil
}

// GetShippingConfig loads the shipping rules for a region. The boolean
// reports whether the region is configured at all.
func (s *Store) GetShippingConfig(ctx context.Context, region string) (pricing.ShippingConfig, bool, error) {
	var (
		cfg       pricing.ShippingConfig
		chargeRaw string
		freeRaw   *string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT base_charge::text, free_above::text, tax_rate_percent
		FROM shipping_regions
		WHERE lower(region) = lower($1)`, region).
		Scan(&chargeRaw, &freeRaw, &cfg.TaxRatePercent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.ShippingConfig{}, false, nil
		}
		return pricing.ShippingConfig{}, false, fmt.Errorf("store: query shipping region: %w", err)
	}
	if cfg.BaseCharge, err = money.Parse(chargeRaw); err != nil {
		return pricing.ShippingConfig{}, false, fmt.Errorf("store: region %s: %w", region, err)
	}
	if freeRaw != nil {
		free, err := money.Parse(*freeRaw)
		if err != nil {
			return pricing.ShippingConfig{}, false, fmt.Errorf("store: region %s: %w", region, err)
		}
		cfg.FreeAbove = &free
	}
	return cfg, true, nil
}

// Order is a persisted order with its frozen pricing fields.
type Order struct {
	ID             uuid.UUID
	DeliveryRegion string
	Mode           string
	CouponCode     *string
	Currency       string
	Subtotal       money.Amount
	ItemTax        money.Amount
	ShippingCharge money.Amount
	ShippingTax    money.Amount
	CGST           money.Amount
	SGST           money.Amount
	IGST           money.Amount
	Discount       money.Amount
	GrandTotal     money.Amount
	CreatedAt      time.Time
	Lines          []OrderLine
}

// OrderLine is one frozen product line of a persisted order.
type OrderLine struct {
	ProductID      uuid.UUID
	Title          string
	HSNCode        string
	Qty            int
	UnitPrice      money.Amount
	Amount         money.Amount
	Base           money.Amount
	Tax            money.Amount
	TaxRatePercent int
	CGST           money.Amount
	SGST           money.Amount
	IGST           money.Amount
}

// CreateOrder persists the order and its lines in one transaction.
func (s *Store) CreateOrder(ctx context.Context, o Order) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, delivery_region, jurisdiction_mode, coupon_code, currency,
			subtotal, item_tax, shipping_charge, shipping_tax,
			cgst, sgst, igst, discount, grand_total, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		o.ID, o.DeliveryRegion, o.Mode, o.CouponCode, o.Currency,
		money.Format(o.Subtotal), money.Format(o.ItemTax),
		money.Format(o.ShippingCharge), money.Format(o.ShippingTax),
		money.Format(o.CGST), money.Format(o.SGST), money.Format(o.IGST),
		money.Format(o.Discount), money.Format(o.GrandTotal), o.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert order: %w", err)
	}

	for _, ln := range o.Lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_lines (
				order_id, product_id, title, hsn_code, qty, unit_price,
				line_amount, base_amount, tax_amount, tax_rate_percent,
				cgst, sgst, igst
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			o.ID, ln.ProductID, ln.Title, ln.HSNCode, ln.Qty,
			money.Format(ln.UnitPrice), money.Format(ln.Amount),
			money.Format(ln.Base), money.Format(ln.Tax), ln.TaxRatePercent,
			money.Format(ln.CGST), money.Format(ln.SGST), money.Format(ln.IGST))
		if err != nil {
			return fmt.Errorf("store: insert order line: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// GetOrder loads an order and its lines.
func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	var (
		o    Order
		raws [9]string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, delivery_region, jurisdiction_mode, coupon_code, currency,
			subtotal::text, item_tax::text, shipping_charge::text, shipping_tax::text,
			cgst::text, sgst::text, igst::text, discount::text, grand_total::text,
			created_at
		FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.DeliveryRegion, &o.Mode, &o.CouponCode, &o.Currency,
			&raws[0], &raws[1], &raws[2], &raws[3], &raws[4], &raws[5],
			&raws[6], &raws[7], &raws[8], &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("store: query order: %w", err)
	}
	targets := []*money.Amount{
		&o.Subtotal, &o.ItemTax, &o.ShippingCharge, &o.ShippingTax,
		&o.CGST, &o.SGST, &o.IGST, &o.Discount, &o.GrandTotal,
	}
	for i, raw := range raws {
		if *targets[i], err = money.Parse(raw); err != nil {
			return Order{}, fmt.Errorf("store: order %s: %w", id, err)
		}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT product_id, title, hsn_code, qty, unit_price::text,
			line_amount::text, base_amount::text, tax_amount::text,
			tax_rate_percent, cgst::text, sgst::text, igst::text
		FROM order_lines WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return Order{}, fmt.Errorf("store: query order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			ln      OrderLine
			lineRaw [7]string
		)
		if err := rows.Scan(&ln.ProductID, &ln.Title, &ln.HSNCode, &ln.Qty,
			&lineRaw[0], &lineRaw[1], &lineRaw[2], &lineRaw[3],
			&ln.TaxRatePercent, &lineRaw[4], &lineRaw[5], &lineRaw[6]); err != nil {
			return Order{}, fmt.Errorf("store: scan order line: %w", err)
		}
		lineTargets := []*money.Amount{
			&ln.UnitPrice, &ln.Amount, &ln.Base, &ln.Tax,
			&ln.CGST, &ln.SGST, &ln.IGST,
		}
		for i, raw := range lineRaw {
			if *lineTargets[i], err = money.Parse(raw); err != nil {
				return Order{}, fmt.Errorf("store: order %s line: %w", id, err)
			}
		}
		o.Lines = append(o.Lines, ln)
	}
	return o, rows.Err()
}

// SaveInvoicePDF stores (or replaces) the rendered invoice for an order.
func (s *Store) SaveInvoicePDF(ctx context.Context, orderID uuid.UUID, number string, pdf []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO invoices (order_id, invoice_number, pdf, rendered_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (order_id) DO UPDATE
		SET invoice_number = EXCLUDED.invoice_number,
			pdf = EXCLUDED.pdf,
			rendered_at = EXCLUDED.rendered_at`,
		orderID, number, pdf)
	if err != nil {
		return fmt.Errorf("store: save invoice: %w", err)
	}
	return nil
}

// GetInvoicePDF returns the rendered invoice for an order if present.
func (s *Store) GetInvoicePDF(ctx context.Context, orderID uuid.UUID) (string, []byte, error) {
	var (
		number string
		pdf    []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT invoice_number, pdf FROM invoices WHERE order_id = $1`, orderID).
		Scan(&number, &pdf)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("store: query invoice: %w", err)
	}
	return number, pdf, nil
}
