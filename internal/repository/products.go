package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartcatalog/catalog-extractor/internal/common"
	"github.com/smartcatalog/catalog-extractor/internal/entity"
)

// ProductRecord is one stored catalog product. The recognized fields are
// lifted into columns for querying; Raw keeps the full record exactly as the
// pipeline emitted it.
type ProductRecord struct {
	ID            uuid.UUID       `json:"id"`
	ProductName   string          `json:"product_name"`
	BrandName     string          `json:"brand_name"`
	Designer      string          `json:"designer"`
	Year          string          `json:"year"`
	TypeOfProduct string          `json:"type_of_product"`
	AllColors     []string        `json:"all_colors"`
	FilePath      string          `json:"file_path"`
	PageNumbers   []int           `json:"page_numbers"`
	Raw           json.RawMessage `json:"raw"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ProductRepository interface {
	Init(ctx context.Context) error
	AddProducts(ctx context.Context, products []entity.Product) (int, error)
	ListProducts(ctx context.Context) ([]*ProductRecord, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductRecord, error)
	SearchProducts(ctx context.Context, query, productType string) ([]*ProductRecord, error)
	ClearProducts(ctx context.Context) (int64, error)
}

type productRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewProductRepository(db *sql.DB, logger *slog.Logger) ProductRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &productRepository{db: db, logger: logger}
}

// createdAtLayout is RFC 3339 with a fixed-width fraction: RFC3339Nano trims
// trailing zeros, which breaks the lexicographic ORDER BY on the TEXT column.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// TEXT columns throughout so the same DDL works on both postgres and sqlite.
const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id              TEXT PRIMARY KEY,
	product_name    TEXT NOT NULL DEFAULT '',
	brand_name      TEXT NOT NULL DEFAULT '',
	designer        TEXT NOT NULL DEFAULT '',
	year            TEXT NOT NULL DEFAULT '',
	type_of_product TEXT NOT NULL DEFAULT '',
	all_colors      TEXT NOT NULL DEFAULT '[]',
	file_path       TEXT NOT NULL DEFAULT '',
	page_numbers    TEXT NOT NULL DEFAULT '[]',
	raw             TEXT NOT NULL,
	created_at      TEXT NOT NULL
)`

func (r *productRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProductsTable); err != nil {
		r.logger.Error("failed to create products table", "error", err)
		return common.WrapError(err, "create products table")
	}
	return nil
}

func (r *productRepository) AddProducts(ctx context.Context, products []entity.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, common.WrapError(err, "begin tx")
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
INSERT INTO products
	(id, product_name, brand_name, designer, year, type_of_product, all_colors, file_path, page_numbers, raw, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	stored := 0
	for _, p := range products {
		rec, err := toRecord(p)
		if err != nil {
			r.logger.Warn("skipping unstorable product record", "error", err)
			continue
		}
		colors, _ := json.Marshal(rec.AllColors)
		pageNums, _ := json.Marshal(rec.PageNumbers)
		_, err = tx.ExecContext(ctx, insert,
			rec.ID.String(),
			rec.ProductName,
			rec.BrandName,
			rec.Designer,
			rec.Year,
			rec.TypeOfProduct,
			string(colors),
			rec.FilePath,
			string(pageNums),
			string(rec.Raw),
			rec.CreatedAt.Format(createdAtLayout),
		)
		if err != nil {
			r.logger.Error("failed to insert product", "id", rec.ID, "error", err)
			return 0, common.WrapError(err, "insert product")
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, common.WrapError(err, "commit products")
	}
	r.logger.Info("products stored", "count", stored)
	return stored, nil
}

const selectColumns = `
SELECT id, product_name, brand_name, designer, year, type_of_product, all_colors, file_path, page_numbers, raw, created_at
FROM products`

func (r *productRepository) ListProducts(ctx context.Context) ([]*ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at`)
	if err != nil {
		r.logger.Error("failed to list products", "error", err)
		return nil, common.WrapError(err, "list products")
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (*ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE id = $1`, id.String())
	if err != nil {
		return nil, common.WrapError(err, "get product")
	}
	defer rows.Close()
	recs, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, common.NewAppError("PRODUCT_NOT_FOUND", fmt.Sprintf("product %s", id), common.ErrNotFound)
	}
	return recs[0], nil
}

// SearchProducts matches query against name, brand, and designer
// (case-insensitive substring). productType, when given, filters on
// type_of_product the same way.
func (r *productRepository) SearchProducts(ctx context.Context, query, productType string) ([]*ProductRecord, error) {
	q := selectColumns + `
WHERE (lower(product_name) LIKE $1 OR lower(brand_name) LIKE $1 OR lower(designer) LIKE $1)`
	args := []any{"%" + strings.ToLower(query) + "%"}
	if productType != "" {
		q += ` AND lower(type_of_product) LIKE $2`
		args = append(args, "%"+strings.ToLower(productType)+"%")
	}
	q += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Error("failed to search products", "query", query, "error", err)
		return nil, common.WrapError(err, "search products")
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (r *productRepository) ClearProducts(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products`)
	if err != nil {
		r.logger.Error("failed to clear products", "error", err)
		return 0, common.WrapError(err, "clear products")
	}
	n, _ := res.RowsAffected()
	r.logger.Info("products cleared", "count", n)
	return n, nil
}

func toRecord(p entity.Product) (*ProductRecord, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	ref, _ := p.PageRef()
	return &ProductRecord{
		ID:            uuid.New(),
		ProductName:   p.ProductName(),
		BrandName:     p.BrandName(),
		Designer:      p.Designer(),
		Year:          p.Year(),
		TypeOfProduct: p.TypeOfProduct(),
		AllColors:     p.AllColors(),
		FilePath:      ref.FilePath,
		PageNumbers:   ref.PageNumbers,
		Raw:           raw,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

func scanRecords(rows *sql.Rows) ([]*ProductRecord, error) {
	var out []*ProductRecord
	for rows.Next() {
		var (
			rec       ProductRecord
			id        string
			colors    string
			pageNums  string
			raw       string
			createdAt string
		)
		if err := rows.Scan(&id, &rec.ProductName, &rec.BrandName, &rec.Designer, &rec.Year,
			&rec.TypeOfProduct, &colors, &rec.FilePath, &pageNums, &raw, &createdAt); err != nil {
			return nil, common.WrapError(err, "scan product")
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, common.WrapError(err, "parse product id")
		}
		rec.ID = parsed
		_ = json.Unmarshal([]byte(colors), &rec.AllColors)
		_ = json.Unmarshal([]byte(pageNums), &rec.PageNumbers)
		rec.Raw = json.RawMessage(raw)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "iterate products")
	}
	return out, nil
}
