package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/catalog-api/internal/models"
	"github.com/rogerio-castellano/catalog-api/internal/query"
)

const defaultQueryTimeout = 3 * time.Second

const productColumns = `p.id, p.title, p.slug, p.description, p.quantity, p.sold, p.price, p.price_after_discount, ` +
	`p.colors, p.image_cover, p.images, p.category_id, c.name, p.ratings_average, p.ratings_quantity, ` +
	`p.created_at, p.updated_at`

const categoryJoin = `LEFT JOIN categories c ON c.id = p.category_id`

// filterColumns maps filterable product fields onto SQL expressions.
var filterColumns = map[string]string{
	"title":                "p.title",
	"slug":                 "p.slug",
	"quantity":             "p.quantity",
	"sold":                 "p.sold",
	"price":                "p.price",
	"price_after_discount": "p.price_after_discount",
	"category":             "p.category_id::text",
	"ratings_average":      "p.ratings_average",
	"ratings_quantity":     "p.ratings_quantity",
}

var sortColumns = map[string]string{
	"title":                "p.title",
	"slug":                 "p.slug",
	"quantity":             "p.quantity",
	"sold":                 "p.sold",
	"price":                "p.price",
	"price_after_discount": "p.price_after_discount",
	"ratings_average":      "p.ratings_average",
	"ratings_quantity":     "p.ratings_quantity",
	"created_at":           "p.created_at",
	"updated_at":           "p.updated_at",
}

var sqlOperators = map[string]string{
	query.OpEq:  "=",
	query.OpGt:  ">",
	query.OpGte: ">=",
	query.OpLt:  "<",
	query.OpLte: "<=",
}

type PostgresProductRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresProductRepository(db *sql.DB, timeout time.Duration) *PostgresProductRepository {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &PostgresProductRepository{db: db, timeout: timeout}
}

func (r *PostgresProductRepository) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *PostgresProductRepository) Find(ctx context.Context, q query.ProductQuery) ([]models.Product, error) {
	stmt, args, err := buildFindQuery(q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PostgresProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	if !r.ValidID(id) {
		return models.Product{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	stmt := `SELECT ` + productColumns + ` FROM products p ` + categoryJoin + ` WHERE p.id = $1`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, stmt, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	colors, images, err := encodeLists(p.Colors, p.Images)
	if err != nil {
		return models.Product{}, err
	}

	stmt := `WITH p AS (
	INSERT INTO products (id, title, slug, description, quantity, sold, price, price_after_discount,
		colors, image_cover, images, category_id, ratings_average, ratings_quantity)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING *
)
SELECT ` + productColumns + ` FROM p ` + categoryJoin

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, stmt,
		uuid.NewString(), p.Title, p.Slug, p.Description, p.Quantity, p.Sold, p.Price,
		nullFloat(p.PriceAfterDiscount), colors, p.ImageCover, images, nullString(p.CategoryID),
		nullFloat(p.RatingsAverage), p.RatingsQuantity,
	)
	created, err := scanProduct(row)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return created, nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (models.Product, error) {
	if !r.ValidID(id) {
		return models.Product{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	sets, args, err := patchAssignments(patch)
	if err != nil {
		return models.Product{}, err
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	stmt := fmt.Sprintf(`WITH p AS (UPDATE products SET %s WHERE id = $%d RETURNING *) SELECT %s FROM p %s`,
		strings.Join(sets, ", "), len(args), productColumns, categoryJoin)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	updated, err := scanProduct(r.db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return updated, err
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	if !r.ValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	stmt := `DELETE FROM products WHERE id = $1`

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// buildFindQuery renders a product query as SQL. Only allow-listed columns
// reach the statement; every value is a bind parameter.
func buildFindQuery(q query.ProductQuery) (string, []any, error) {
	where, args, err := filterConditions(q.Filter)
	if err != nil {
		return "", nil, err
	}

	order, err := orderClause(q.Sort)
	if err != nil {
		return "", nil, err
	}

	stmt := `SELECT ` + productColumns + ` FROM products p ` + categoryJoin + ` WHERE 1=1` + where + ` ORDER BY ` + order
	args = append(args, q.Pagination.Limit, q.Pagination.Skip())
	stmt += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return stmt, args, nil
}

func filterConditions(conds []query.Condition) (string, []any, error) {
	var sb strings.Builder
	args := []any{}
	placeholder := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, c := range conds {
		if c.Field == "colors" {
			values := []any{c.Value}
			if c.Op == query.OpIn {
				values, _ = c.Value.([]any)
			} else if c.Op != query.OpEq {
				return "", nil, fmt.Errorf("unsupported operator %s on colors", c.Op)
			}
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = "p.colors @> jsonb_build_array(" + placeholder(v) + "::text)"
			}
			sb.WriteString(" AND " + orGroup(parts))
			continue
		}

		col, ok := filterColumns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("field %q is not filterable", c.Field)
		}

		if c.Op == query.OpIn {
			values, _ := c.Value.([]any)
			if len(values) == 0 {
				sb.WriteString(" AND FALSE")
				continue
			}
			ph := make([]string, len(values))
			for i, v := range values {
				ph[i] = placeholder(v)
			}
			sb.WriteString(fmt.Sprintf(" AND %s IN (%s)", col, strings.Join(ph, ", ")))
			continue
		}

		op, ok := sqlOperators[c.Op]
		if !ok {
			return "", nil, fmt.Errorf("unsupported operator %s", c.Op)
		}
		sb.WriteString(fmt.Sprintf(" AND %s %s %s", col, op, placeholder(c.Value)))
	}
	return sb.String(), args, nil
}

func orGroup(parts []string) string {
	switch len(parts) {
	case 0:
		return "FALSE"
	case 1:
		return parts[0]
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// orderClause places missing values first when ascending and last when
// descending, matching the other stores.
func orderClause(keys []query.SortField) (string, error) {
	var parts []string
	for _, k := range keys {
		col, ok := sortColumns[k.Field]
		if !ok {
			return "", fmt.Errorf("field %q is not sortable", k.Field)
		}
		if k.Desc {
			parts = append(parts, col+" DESC NULLS LAST")
		} else {
			parts = append(parts, col+" ASC NULLS FIRST")
		}
	}
	parts = append(parts, "p.created_at ASC", "p.id ASC")
	return strings.Join(parts, ", "), nil
}

func patchAssignments(patch models.ProductPatch) ([]string, []any, error) {
	var sets []string
	var args []any
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Quantity != nil {
		set("quantity", *patch.Quantity)
	}
	if patch.Sold != nil {
		set("sold", *patch.Sold)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.PriceAfterDiscount != nil {
		set("price_after_discount", *patch.PriceAfterDiscount)
	}
	if patch.Colors != nil {
		b, err := json.Marshal(*patch.Colors)
		if err != nil {
			return nil, nil, err
		}
		set("colors", b)
	}
	if patch.ImageCover != nil {
		set("image_cover", *patch.ImageCover)
	}
	if patch.Images != nil {
		b, err := json.Marshal(*patch.Images)
		if err != nil {
			return nil, nil, err
		}
		set("images", b)
	}
	if patch.CategoryID != nil {
		set("category_id", nullString(*patch.CategoryID))
	}
	if patch.RatingsAverage != nil {
		set("ratings_average", *patch.RatingsAverage)
	}
	if patch.RatingsQuantity != nil {
		set("ratings_quantity", *patch.RatingsQuantity)
	}
	return sets, args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p                              models.Product
		priceAfterDiscount, ratingsAvg sql.NullFloat64
		colors, images                 []byte
		categoryID, categoryName       sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Quantity, &p.Sold, &p.Price, &priceAfterDiscount,
		&colors, &p.ImageCover, &images, &categoryID, &categoryName, &ratingsAvg, &p.RatingsQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}

	if priceAfterDiscount.Valid {
		p.PriceAfterDiscount = &priceAfterDiscount.Float64
	}
	if ratingsAvg.Valid {
		p.RatingsAverage = &ratingsAvg.Float64
	}
	p.CategoryID = categoryID.String
	if categoryName.Valid {
		p.Category = &models.CategoryRef{Name: categoryName.String}
	}
	if p.Colors, err = decodeList(colors); err != nil {
		return models.Product{}, fmt.Errorf("failed to decode colors: %w", err)
	}
	if p.Images, err = decodeList(images); err != nil {
		return models.Product{}, fmt.Errorf("failed to decode images: %w", err)
	}
	return p, nil
}

func encodeLists(colors, images []string) ([]byte, []byte, error) {
	if colors == nil {
		colors = []string{}
	}
	if images == nil {
		images = []string{}
	}
	c, err := json.Marshal(colors)
	if err != nil {
		return nil, nil, err
	}
	i, err := json.Marshal(images)
	if err != nil {
		return nil, nil, err
	}
	return c, i, nil
}

func decodeList(b []byte) ([]string, error) {
	out := []string{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
