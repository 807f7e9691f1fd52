package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	// registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/guttosm/grind-calculator/internal/domain/model"
)

// PostgresCatalogSchema creates the catalog tables when they are missing.
const PostgresCatalogSchema = `
CREATE TABLE IF NOT EXISTS categories (
	id          BIGINT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS products (
	id              BIGINT PRIMARY KEY,
	name            TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	image           TEXT NOT NULL DEFAULT '',
	type            TEXT NOT NULL DEFAULT 'simple',
	layer_thickness DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS product_categories (
	product_id  BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	PRIMARY KEY (product_id, category_id)
);

CREATE TABLE IF NOT EXISTS variations (
	id             BIGINT PRIMARY KEY,
	product_id     BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	position       INT NOT NULL DEFAULT 0,
	format         TEXT NOT NULL DEFAULT '',
	quantity       TEXT NOT NULL DEFAULT '',
	bag_type       TEXT NOT NULL DEFAULT '',
	weight_per_bag DOUBLE PRECISION NOT NULL DEFAULT 0,
	volume_per_bag DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS variations_product_idx ON variations (product_id, position, id);

CREATE TABLE IF NOT EXISTS attribute_terms (
	taxonomy TEXT NOT NULL,
	slug     TEXT NOT NULL,
	name     TEXT NOT NULL,
	PRIMARY KEY (taxonomy, slug)
);

CREATE INDEX IF NOT EXISTS attribute_terms_name_idx ON attribute_terms (taxonomy, name);
`

// PostgresCatalogRepository reads the catalog from PostgreSQL through the pgx driver.
type PostgresCatalogRepository struct {
	db *sql.DB
}

// OpenPostgres opens and pings a PostgreSQL connection pool.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// NewPostgresCatalogRepository creates a catalog repository on an open pool.
func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

// EnsureSchema creates the catalog tables.
func (r *PostgresCatalogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, PostgresCatalogSchema); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

const productColumns = `p.id, p.name, p.description, p.image, p.type, p.layer_thickness,
	array_to_string(ARRAY(SELECT pc.category_id FROM product_categories pc WHERE pc.product_id = p.id ORDER BY pc.category_id), ',')`

// GetProduct returns the product with the given id.
func (r *PostgresCatalogRepository) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	product, err := r.scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product %d: %w", id, err)
	}

	variations, err := r.variations(ctx, []int64{int64(product.ID)})
	if err != nil {
		return nil, err
	}
	product.Variations = variations[product.ID]
	return &product, nil
}

// ListProducts returns the products of the given categories ordered by id.
func (r *PostgresCatalogRepository) ListProducts(ctx context.Context, categoryIDs []int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p`
	var args []any
	if len(categoryIDs) > 0 {
		query += ` WHERE EXISTS (SELECT 1 FROM product_categories pc
			WHERE pc.product_id = p.id AND pc.category_id = ANY($1::bigint[]))`
		args = append(args, toInt64s(categoryIDs))
	}
	query += ` ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	var ids []int64
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
		ids = append(ids, int64(p.ID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	if len(ids) == 0 {
		return products, nil
	}

	variations, err := r.variations(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Variations = variations[products[i].ID]
	}
	return products, nil
}

// ListCategories returns the given categories ordered by id.
func (r *PostgresCatalogRepository) ListCategories(ctx context.Context, ids []int) ([]model.Category, error) {
	query := `SELECT id, name, description, image FROM categories`
	var args []any
	if len(ids) > 0 {
		query += ` WHERE id = ANY($1::bigint[])`
		args = append(args, toInt64s(ids))
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// FindTermBySlug looks up an attribute term by slug.
func (r *PostgresCatalogRepository) FindTermBySlug(ctx context.Context, taxonomy, slug string) (*model.AttributeTerm, error) {
	return r.findTerm(ctx, `SELECT taxonomy, slug, name FROM attribute_terms WHERE taxonomy = $1 AND slug = $2`, taxonomy, slug)
}

// FindTermByName looks up an attribute term by display name.
func (r *PostgresCatalogRepository) FindTermByName(ctx context.Context, taxonomy, name string) (*model.AttributeTerm, error) {
	return r.findTerm(ctx, `SELECT taxonomy, slug, name FROM attribute_terms WHERE taxonomy = $1 AND name = $2 ORDER BY slug LIMIT 1`, taxonomy, name)
}

func (r *PostgresCatalogRepository) findTerm(ctx context.Context, query string, args ...any) (*model.AttributeTerm, error) {
	var t model.AttributeTerm
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.Taxonomy, &t.Slug, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query attribute term: %w", err)
	}
	return &t, nil
}

// Ping checks the database connection.
func (r *PostgresCatalogRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}

// Seed replaces the catalog contents in a single transaction.
func (r *PostgresCatalogRepository) Seed(ctx context.Context, catalog CatalogSeed) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{
		`DELETE FROM variations`, `DELETE FROM product_categories`,
		`DELETE FROM products`, `DELETE FROM categories`, `DELETE FROM attribute_terms`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
	}

	for _, c := range catalog.Categories {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, description, image) VALUES ($1, $2, $3, $4)`,
			c.ID, c.Name, c.Description, c.Image); err != nil {
			return fmt.Errorf("failed to insert category %d: %w", c.ID, err)
		}
	}

	for _, p := range catalog.Products {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO products (id, name, description, image, type, layer_thickness) VALUES ($1, $2, $3, $4, $5, $6)`,
			p.ID, p.Name, p.Description, p.Image, p.Type, p.LayerThickness); err != nil {
			return fmt.Errorf("failed to insert product %d: %w", p.ID, err)
		}
		for _, cid := range p.CategoryIDs {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				p.ID, cid); err != nil {
				return fmt.Errorf("failed to link product %d to category %d: %w", p.ID, cid, err)
			}
		}
		for pos, v := range p.Variations {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO variations (id, product_id, position, format, quantity, bag_type, weight_per_bag, volume_per_bag)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				v.ID, p.ID, pos, v.Format, v.Quantity, v.BagType, v.WeightPerBag, v.VolumePerBag); err != nil {
				return fmt.Errorf("failed to insert variation %d: %w", v.ID, err)
			}
		}
	}

	for _, t := range catalog.Terms {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO attribute_terms (taxonomy, slug, name) VALUES ($1, $2, $3)
			 ON CONFLICT (taxonomy, slug) DO UPDATE SET name = EXCLUDED.name`,
			t.Taxonomy, t.Slug, t.Name); err != nil {
			return fmt.Errorf("failed to insert term %s/%s: %w", t.Taxonomy, t.Slug, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// variations returns the variations of the given products keyed by product id,
// in catalog order.
func (r *PostgresCatalogRepository) variations(ctx context.Context, productIDs []int64) (map[int][]model.Variation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, id, format, quantity, bag_type, weight_per_bag, volume_per_bag
		FROM variations
		WHERE product_id = ANY($1::bigint[])
		ORDER BY product_id, position, id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query variations: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]model.Variation, len(productIDs))
	for rows.Next() {
		var productID int
		var v model.Variation
		if err := rows.Scan(&productID, &v.ID, &v.Format, &v.Quantity, &v.BagType, &v.WeightPerBag, &v.VolumePerBag); err != nil {
			return nil, fmt.Errorf("failed to scan variation: %w", err)
		}
		out[productID] = append(out[productID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one productColumns row; category ids arrive comma separated.
func (r *PostgresCatalogRepository) scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var categoryIDs string
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.Type, &p.LayerThickness, &categoryIDs); err != nil {
		return model.Product{}, err
	}
	p.CategoryIDs = []int{}
	for _, raw := range strings.Split(categoryIDs, ",") {
		if raw == "" {
			continue
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return model.Product{}, fmt.Errorf("invalid category id %q: %w", raw, err)
		}
		p.CategoryIDs = append(p.CategoryIDs, id)
	}
	return p, nil
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
