package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// saleLineRow is one sale joined with one of its lines. Line columns are null for a sale without lines.
type saleLineRow struct {
	SaleID      string              `db:"sale_id"`
	TotalAmount decimal.Decimal     `db:"total_amount"`
	CreatedAt   time.Time           `db:"created_at"`
	ProductID   sql.NullString      `db:"product_id"`
	ProductName sql.NullString      `db:"product_name"`
	Quantity    sql.NullInt64       `db:"quantity"`
	Subtotal    decimal.NullDecimal `db:"subtotal"`
}

func (r *PGRepository) FindAllSales(ctx context.Context) ([]model.Sale, error) {
	query := `
		SELECT s.id AS sale_id, s.total_amount, s.created_at,
		       i.product_id, i.product_name, i.quantity, i.subtotal
		FROM sales s
		LEFT JOIN sale_items i ON i.sale_id = s.id
		ORDER BY s.created_at, s.id, i.line_no
	`

	var rows []saleLineRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	var sales []model.Sale
	for _, row := range rows {
		if len(sales) == 0 || sales[len(sales)-1].ID != row.SaleID {
			sales = append(sales, model.Sale{
				ID:          row.SaleID,
				TotalAmount: row.TotalAmount,
				CreatedAt:   row.CreatedAt,
			})
		}
		if !row.ProductID.Valid {
			continue
		}
		cur := &sales[len(sales)-1]
		cur.Items = append(cur.Items, model.SaleItem{
			SaleID:      row.SaleID,
			ProductID:   row.ProductID.String,
			ProductName: row.ProductName.String,
			Quantity:    int(row.Quantity.Int64),
			Subtotal:    row.Subtotal.Decimal,
		})
	}
	return sales, nil
}
