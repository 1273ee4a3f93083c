package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/sale"
	"github.com/fekuna/omnipos-retail-service/internal/sale/dto"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, name, quantity, price, image_url, created_at, updated_at`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	var s model.Sale
	err := r.DB.GetContext(ctx, &s, `SELECT * FROM sales WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	sales := []model.Sale{s}
	if err := r.attachItems(ctx, sales); err != nil {
		return nil, err
	}
	return &sales[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	if f == nil {
		f = &dto.SaleFilters{}
	}

	var sales []model.Sale
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.From != nil {
		conditions = append(conditions, "created_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "created_at < :to")
		args["to"] = *f.To
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery, countArgs, err := sqlx.Named("SELECT count(*) FROM sales"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM sales" + whereClause + " ORDER BY created_at DESC, id"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	listQuery, listArgs, err := sqlx.Named(query, args)
	if err != nil {
		return nil, 0, err
	}
	if err := r.DB.SelectContext(ctx, &sales, r.DB.Rebind(listQuery), listArgs...); err != nil {
		return nil, 0, err
	}

	if err := r.attachItems(ctx, sales); err != nil {
		return nil, 0, err
	}
	return sales, count, nil
}

// attachItems loads the lines of every sale in one query and keeps them in line order.
func (r *PGRepository) attachItems(ctx context.Context, sales []model.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	ids := make([]string, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
	}

	query, args, err := sqlx.In(`SELECT * FROM sale_items WHERE sale_id IN (?) ORDER BY sale_id, line_no`, ids)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	var items []model.SaleItem
	if err := r.DB.SelectContext(ctx, &items, query, args...); err != nil {
		return err
	}

	bySale := make(map[string][]model.SaleItem, len(sales))
	for _, it := range items {
		bySale[it.SaleID] = append(bySale[it.SaleID], it)
	}
	for i := range sales {
		sales[i].Items = bySale[sales[i].ID]
	}
	return nil
}

func (r *PGRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx sale.TxRepository) error) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sale transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sale transaction: %w", err)
	}
	return nil
}

type pgTx struct {
	tx *sqlx.Tx
}

func (t *pgTx) FindProductByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := t.tx.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (t *pgTx) DecrementStock(ctx context.Context, productID string, amount int) (*model.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1
		RETURNING ` + productColumns

	var p model.Product
	err := t.tx.GetContext(ctx, &p, query, amount, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (t *pgTx) LogMovement(ctx context.Context, m *model.InventoryMovement) error {
	query := `
        INSERT INTO inventory_movements (
            id, product_id, movement_type, quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :product_id, :movement_type, :quantity_change, :quantity_before, :quantity_after,
            :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	_, err := t.tx.NamedExecContext(ctx, query, m)
	if err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}

func (t *pgTx) InsertSale(ctx context.Context, s *model.Sale) error {
	headerQuery := `
        INSERT INTO sales (id, customer_name, customer_phone, payment_method, total_amount, created_by, created_at)
        VALUES (:id, :customer_name, :customer_phone, :payment_method, :total_amount, :created_by, :created_at)
    `
	if _, err := t.tx.NamedExecContext(ctx, headerQuery, s); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	if len(s.Items) == 0 {
		return nil
	}

	itemsQuery := `
        INSERT INTO sale_items (id, sale_id, line_no, product_id, product_name, quantity, unit_price, subtotal)
        VALUES (:id, :sale_id, :line_no, :product_id, :product_name, :quantity, :unit_price, :subtotal)
    `
	if _, err := t.tx.NamedExecContext(ctx, itemsQuery, s.Items); err != nil {
		return fmt.Errorf("failed to insert sale items: %w", err)
	}
	return nil
}
