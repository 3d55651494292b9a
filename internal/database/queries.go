package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries wraps a DBTX with the application's SQL.
type Queries struct {
	db DBTX
}

// New creates Queries over a pool or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Product is a row of the products table.
type Product struct {
	ID           string
	NameKey      string
	Category     string
	Price        pgtype.Numeric
	ImageUrl     pgtype.Text
	RequiresMilk bool
	Stock        int32
	IsAvailable  bool
}

// AppSettings is the single row of the app_settings table.
type AppSettings struct {
	ID                    int32
	BusinessName          string
	CurrencySymbol        string
	TaxRate               pgtype.Numeric
	ExtraCollagenPrice    pgtype.Numeric
	ExtraAshwagandhaPrice pgtype.Numeric
	ExtraHoneyPrice       pgtype.Numeric
	LargeSizeExtra        pgtype.Numeric
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name_key TEXT NOT NULL,
	category TEXT NOT NULL,
	price NUMERIC(10,2) NOT NULL,
	image_url TEXT,
	requires_milk BOOLEAN NOT NULL DEFAULT FALSE,
	stock INTEGER NOT NULL DEFAULT 0,
	is_available BOOLEAN NOT NULL DEFAULT TRUE,
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS app_settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	business_name TEXT NOT NULL,
	currency_symbol TEXT NOT NULL,
	tax_rate NUMERIC(5,4) NOT NULL DEFAULT 0,
	extra_collagen_price NUMERIC(10,2) NOT NULL,
	extra_ashwagandha_price NUMERIC(10,2) NOT NULL,
	extra_honey_price NUMERIC(10,2) NOT NULL,
	large_size_extra NUMERIC(10,2) NOT NULL
);
`

// EnsureSchema creates the backend tables if they do not exist.
func (q *Queries) EnsureSchema(ctx context.Context) error {
	if _, err := q.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const listProducts = `
SELECT id, name_key, category, price, image_url, requires_milk, stock, is_available
FROM products
ORDER BY sort_order, id
`

// ListProducts returns all products in menu order.
func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.NameKey, &p.Category, &p.Price, &p.ImageUrl, &p.RequiresMilk, &p.Stock, &p.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const getAppSettings = `
SELECT id, business_name, currency_symbol, tax_rate,
       extra_collagen_price, extra_ashwagandha_price, extra_honey_price, large_size_extra
FROM app_settings
WHERE id = 1
`

// GetAppSettings returns the settings row.
func (q *Queries) GetAppSettings(ctx context.Context) (AppSettings, error) {
	var s AppSettings
	err := q.db.QueryRow(ctx, getAppSettings).Scan(
		&s.ID, &s.BusinessName, &s.CurrencySymbol, &s.TaxRate,
		&s.ExtraCollagenPrice, &s.ExtraAshwagandhaPrice, &s.ExtraHoneyPrice, &s.LargeSizeExtra,
	)
	return s, err
}

const upsertProduct = `
INSERT INTO products (id, name_key, category, price, image_url, requires_milk, stock, is_available, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
	name_key = EXCLUDED.name_key,
	category = EXCLUDED.category,
	price = EXCLUDED.price,
	image_url = EXCLUDED.image_url,
	requires_milk = EXCLUDED.requires_milk,
	sort_order = EXCLUDED.sort_order
`

// UpsertProductParams are the arguments to UpsertProduct.
type UpsertProductParams struct {
	ID           string
	NameKey      string
	Category     string
	Price        pgtype.Numeric
	ImageUrl     pgtype.Text
	RequiresMilk bool
	Stock        int32
	IsAvailable  bool
	SortOrder    int32
}

// UpsertProduct inserts or refreshes a product row. Stock and availability
// are only written on insert so a re-seed never clobbers live inventory.
func (q *Queries) UpsertProduct(ctx context.Context, arg UpsertProductParams) error {
	_, err := q.db.Exec(ctx, upsertProduct,
		arg.ID, arg.NameKey, arg.Category, arg.Price, arg.ImageUrl,
		arg.RequiresMilk, arg.Stock, arg.IsAvailable, arg.SortOrder,
	)
	return err
}

const upsertAppSettings = `
INSERT INTO app_settings (id, business_name, currency_symbol, tax_rate,
	extra_collagen_price, extra_ashwagandha_price, extra_honey_price, large_size_extra)
VALUES (1, $1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	business_name = EXCLUDED.business_name,
	currency_symbol = EXCLUDED.currency_symbol,
	tax_rate = EXCLUDED.tax_rate,
	extra_collagen_price = EXCLUDED.extra_collagen_price,
	extra_ashwagandha_price = EXCLUDED.extra_ashwagandha_price,
	extra_honey_price = EXCLUDED.extra_honey_price,
	large_size_extra = EXCLUDED.large_size_extra
`

// UpsertAppSettingsParams are the arguments to UpsertAppSettings.
type UpsertAppSettingsParams struct {
	BusinessName          string
	CurrencySymbol        string
	TaxRate               pgtype.Numeric
	ExtraCollagenPrice    pgtype.Numeric
	ExtraAshwagandhaPrice pgtype.Numeric
	ExtraHoneyPrice       pgtype.Numeric
	LargeSizeExtra        pgtype.Numeric
}

// UpsertAppSettings inserts or replaces the single settings row.
func (q *Queries) UpsertAppSettings(ctx context.Context, arg UpsertAppSettingsParams) error {
	_, err := q.db.Exec(ctx, upsertAppSettings,
		arg.BusinessName, arg.CurrencySymbol, arg.TaxRate,
		arg.ExtraCollagenPrice, arg.ExtraAshwagandhaPrice, arg.ExtraHoneyPrice, arg.LargeSizeExtra,
	)
	return err
}

// --- Numeric conversion helpers ---

// NumericToDecimal converts a pgtype.Numeric to an exact decimal, treating
// NULL or malformed values as zero.
func NumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil {
		return decimal.Zero
	}
	s, ok := val.(string)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecimalToNumeric converts a decimal to pgtype.Numeric with two decimal
// places, the storage scale for money columns.
func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
