package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/vitastock/vitastock-api/internal/domain"
	"github.com/vitastock/vitastock-api/internal/domain/entity"
	"github.com/vitastock/vitastock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create inserta un producto. Devuelve ErrDuplicate si (name, category) ya existe.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category_id, unit, min_stock, default_location_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.Unit,
		product.MinStock, product.DefaultLocationID, product.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, category_id, unit, min_stock, COALESCE(default_location_id::text, ''), created_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.Unit, &p.MinStock, &p.DefaultLocationID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByNameAndCategory obtiene un producto por (nombre, categoría). Devuelve nil si no existe.
func (r *ProductRepo) GetByNameAndCategory(name, categoryID string) (*entity.Product, error) {
	query := `
		SELECT id, name, category_id, unit, min_stock, COALESCE(default_location_id::text, ''), created_at
		FROM products WHERE name = $1 AND category_id = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, name, categoryID).Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.Unit, &p.MinStock, &p.DefaultLocationID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &p, nil
}

// List devuelve productos con su stock total (suma de lotes, 0 si no tiene).
// Query busca por nombre de producto, de categoría y de ubicación por defecto.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]repository.ProductWithStock, error) {
	query := `
		SELECT p.id, p.name, p.category_id, p.unit, p.min_stock,
		       COALESCE(p.default_location_id::text, ''), p.created_at,
		       COALESCE(SUM(b.quantity), 0) AS total_stock
		FROM products p
		JOIN categories c ON c.id = p.category_id
		LEFT JOIN locations l ON l.id = p.default_location_id
		LEFT JOIN batches b ON b.product_id = p.id
		WHERE ($1 = '' OR p.name ILIKE '%' || $1 || '%'
		       OR c.name ILIKE '%' || $1 || '%'
		       OR l.name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR p.category_id::text = $2)
		  AND ($3 = '' OR p.default_location_id::text = $3)
		GROUP BY p.id, p.name, p.category_id, p.unit, p.min_stock, p.default_location_id, p.created_at
		ORDER BY p.name
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		filter.Query, filter.CategoryID, filter.LocationID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductWithStock
	for rows.Next() {
		var item repository.ProductWithStock
		p := &item.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Unit, &p.MinStock,
			&p.DefaultLocationID, &p.CreatedAt, &item.TotalStock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Update edita un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, unit = $4, min_stock = $5,
		    default_location_id = NULLIF($6, '')
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.CategoryID, product.Unit,
		product.MinStock, product.DefaultLocationID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto; lotes y movimientos caen en cascada (ON DELETE CASCADE).
func (r *ProductRepo) Delete(id string) error {
	query := `DELETE FROM products WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
