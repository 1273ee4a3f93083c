package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-retail-service/internal/inventory"
	"github.com/fekuna/omnipos-retail-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/product"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, quantity, price, image_url, created_at, updated_at`

const insertMovementQuery = `
        INSERT INTO inventory_movements (
            id, product_id, movement_type, quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :product_id, :movement_type, :quantity_change, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) AdjustStockWithMovement(ctx context.Context, productID string, change int, movement *model.InventoryMovement) (*model.Product, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING ` + productColumns

	var p model.Product
	if err := tx.GetContext(ctx, &p, query, change, productID); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to update stock: %w", err)
		}
		exists, err := productExists(ctx, tx, productID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, product.ErrProductNotFound
		}
		return nil, inventory.ErrInsufficientInventory
	}

	movement.QuantityChange = change
	movement.QuantityBefore = p.Quantity - change
	movement.QuantityAfter = p.Quantity
	if _, err := tx.NamedExecContext(ctx, insertMovementQuery, movement); err != nil {
		return nil, fmt.Errorf("failed to log movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) SetStockWithMovement(ctx context.Context, productID string, quantity int, movement *model.InventoryMovement) (*model.Product, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var before int
	err = tx.GetContext(ctx, &before, `SELECT quantity FROM products WHERE id = $1 FOR UPDATE`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}

	query := `
		UPDATE products
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + productColumns

	var p model.Product
	if err := tx.GetContext(ctx, &p, query, quantity, productID); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	movement.QuantityChange = quantity - before
	movement.QuantityBefore = before
	movement.QuantityAfter = quantity
	if _, err := tx.NamedExecContext(ctx, insertMovementQuery, movement); err != nil {
		return nil, fmt.Errorf("failed to log movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &p, nil
}

func productExists(ctx context.Context, tx *sqlx.Tx, id string) (bool, error) {
	var exists bool
	err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id)
	return exists, err
}

func (r *PGRepository) FindLowStock(ctx context.Context, f *dto.LowStockFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products WHERE quantity <= $1`, f.Threshold); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM products WHERE quantity <= $1 ORDER BY quantity ASC, name ASC` + paginate(f.Page, f.PageSize)
	if err := r.DB.SelectContext(ctx, &products, query, f.Threshold); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var items []model.InventoryMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM inventory_movements"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC, id" + paginate(f.Page, f.PageSize)
	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func paginate(page, pageSize int) string {
	if pageSize <= 0 {
		return ""
	}
	if page < 1 {
		page = 1
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
}
