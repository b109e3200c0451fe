package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/loja-colchoes/internal/domain/stock"
	"github.com/jackc/pgx/v5"
)

const stockColumns = `id, name, COALESCE(category, ''), COALESCE(size, ''), unit_price, quantity, status, created_at, updated_at`

// StockRepository implementa a interface stock.Repository
type StockRepository struct {
	db DBTX
}

// NewStockRepository cria uma nova instância de StockRepository
func NewStockRepository(db DBTX) stock.Repository {
	return &StockRepository{
		db: db,
	}
}

// Create implementa stock.Repository.Create
func (r *StockRepository) Create(ctx context.Context, item *stock.Item) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO stock_items (name, category, size, unit_price, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		item.Name, item.Category, item.Size, item.UnitPrice, item.Quantity,
		item.Status, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		return fmt.Errorf("erro ao criar item de estoque: %w", err)
	}

	return nil
}

// FindByID implementa stock.Repository.FindByID
func (r *StockRepository) FindByID(ctx context.Context, id int64) (*stock.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT `+stockColumns+` FROM stock_items WHERE id = $1`, id)
	return scanStockItem(row)
}

// List implementa stock.Repository.List
func (r *StockRepository) List(ctx context.Context, status stock.Status, limit, offset int) ([]*stock.Item, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+stockColumns+` FROM stock_items
		WHERE ($1 = '' OR status = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3`,
		string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens de estoque: %w", err)
	}
	defer rows.Close()

	var items []*stock.Item
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar itens de estoque: %w", err)
	}

	return items, nil
}

// Count implementa stock.Repository.Count
func (r *StockRepository) Count(ctx context.Context, status stock.Status) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_items WHERE ($1 = '' OR status = $1)`,
		string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar itens de estoque: %w", err)
	}
	return count, nil
}

// Update implementa stock.Repository.Update
func (r *StockRepository) Update(ctx context.Context, item *stock.Item) error {
	result, err := r.db.Exec(ctx,
		`UPDATE stock_items SET
			name = $2, category = $3, size = $4, unit_price = $5,
			quantity = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		item.ID, item.Name, item.Category, item.Size, item.UnitPrice,
		item.Quantity, item.Status, item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao atualizar item de estoque: %w", err)
	}

	if result.RowsAffected() == 0 {
		return stock.ErrItemNotFound
	}

	return nil
}

// Delete implementa stock.Repository.Delete
func (r *StockRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return stock.ErrItemInUse
		}
		return fmt.Errorf("erro ao excluir item de estoque: %w", err)
	}

	if result.RowsAffected() == 0 {
		return stock.ErrItemNotFound
	}

	return nil
}

// FindExistingIDs implementa stock.Repository.FindExistingIDs com uma única consulta
func (r *StockRepository) FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM stock_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar produtos: %w", err)
	}

	existing, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar produtos: %w", err)
	}

	return existing, nil
}

func scanStockItem(row pgx.Row) (*stock.Item, error) {
	var item stock.Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Size, &item.UnitPrice,
		&item.Quantity, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrItemNotFound
		}
		return nil, fmt.Errorf("erro ao buscar item de estoque: %w", err)
	}
	return &item, nil
}
