package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const customerColumns = `
	id, name, document, COALESCE(id_card, ''), birth_date,
	COALESCE(phone, ''), COALESCE(email, ''),
	COALESCE(street, ''), COALESCE(number, ''), COALESCE(complement, ''),
	COALESCE(district, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''),
	professional_company, professional_position, professional_income,
	professional_phone, professional_since,
	spouse_name, spouse_document, spouse_phone, spouse_company, spouse_income,
	status, COALESCE(observations, ''), created_at, updated_at`

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db DBTX
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db DBTX) customer.Repository {
	return &CustomerRepository{
		db: db,
	}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	args := append([]any{c.Name, c.Document}, customerFields(c)...)
	args = append(args, c.Status, c.CreatedAt, c.UpdatedAt)

	err := r.db.QueryRow(ctx,
		`INSERT INTO customers (
			name, document, id_card, birth_date, phone, email,
			street, number, complement, district, city, state, zip_code,
			professional_company, professional_position, professional_income,
			professional_phone, professional_since,
			spouse_name, spouse_document, spouse_phone, spouse_company, spouse_income,
			observations, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
		) RETURNING id`,
		args...).Scan(&c.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return customer.ErrDuplicateKey
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

// FindByDocument implementa customer.Repository.FindByDocument
func (r *CustomerRepository) FindByDocument(ctx context.Context, document string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE document = $1`,
		customer.NormalizeDocument(document))
	return scanCustomer(row)
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	limit, offset = normalizePage(limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		WHERE status = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`,
		customer.StatusActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar clientes: %w", err)
	}

	return customers, nil
}

// Count implementa customer.Repository.Count
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE status = $1`, customer.StatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}
	return count, nil
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := append([]any{c.ID, c.Name}, customerFields(c)...)
	args = append(args, c.UpdatedAt)

	result, err := r.db.Exec(ctx,
		`UPDATE customers SET
			name = $2, id_card = $3, birth_date = $4, phone = $5, email = $6,
			street = $7, number = $8, complement = $9, district = $10,
			city = $11, state = $12, zip_code = $13,
			professional_company = $14, professional_position = $15,
			professional_income = $16, professional_phone = $17, professional_since = $18,
			spouse_name = $19, spouse_document = $20, spouse_phone = $21,
			spouse_company = $22, spouse_income = $23,
			observations = $24, updated_at = $25
		WHERE id = $1 AND status = 'active'`,
		args...)

	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

// SoftDelete implementa customer.Repository.SoftDelete
func (r *CustomerRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE customers SET status = $2, updated_at = $3 WHERE id = $1 AND status = 'active'`,
		id, customer.StatusDeleted, time.Now())

	if err != nil {
		return fmt.Errorf("erro ao excluir cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}

	return nil
}

// ExistsActive implementa customer.Repository.ExistsActive
func (r *CustomerRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1 AND status = 'active')`,
		id).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}

	return exists, nil
}

// customerFields retorna os campos opcionais na ordem das colunas, de id_card a observations
func customerFields(c *customer.Customer) []any {
	var (
		profCompany, profPosition, profPhone *string
		profIncome                           decimal.NullDecimal
		profSince                            *time.Time
		spouseName, spouseDoc, spousePhone   *string
		spouseCompany                        *string
		spouseIncome                         decimal.NullDecimal
	)

	if p := c.Professional; p != nil {
		profCompany, profPosition, profPhone = &p.Company, &p.Position, &p.Phone
		profIncome = decimal.NewNullDecimal(p.Income)
		profSince = p.Since
	}
	if s := c.Spouse; s != nil {
		spouseName, spouseDoc, spousePhone, spouseCompany = &s.Name, &s.Document, &s.Phone, &s.Company
		spouseIncome = decimal.NewNullDecimal(s.Income)
	}

	return []any{
		c.IDCard, c.BirthDate, c.Phone, c.Email,
		c.Address.Street, c.Address.Number, c.Address.Complement, c.Address.District,
		c.Address.City, c.Address.State, c.Address.ZipCode,
		profCompany, profPosition, profIncome, profPhone, profSince,
		spouseName, spouseDoc, spousePhone, spouseCompany, spouseIncome,
		c.Observations,
	}
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var (
		c                                  customer.Customer
		profCompany, profPosition          *string
		profPhone                          *string
		profIncome                         decimal.NullDecimal
		profSince                          *time.Time
		spouseName, spouseDoc, spousePhone *string
		spouseCompany                      *string
		spouseIncome                       decimal.NullDecimal
	)

	err := row.Scan(
		&c.ID, &c.Name, &c.Document, &c.IDCard, &c.BirthDate,
		&c.Phone, &c.Email,
		&c.Address.Street, &c.Address.Number, &c.Address.Complement,
		&c.Address.District, &c.Address.City, &c.Address.State, &c.Address.ZipCode,
		&profCompany, &profPosition, &profIncome, &profPhone, &profSince,
		&spouseName, &spouseDoc, &spousePhone, &spouseCompany, &spouseIncome,
		&c.Status, &c.Observations, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	if profCompany != nil || profIncome.Valid {
		c.Professional = &customer.Professional{
			Company:  deref(profCompany),
			Position: deref(profPosition),
			Income:   profIncome.Decimal,
			Phone:    deref(profPhone),
			Since:    profSince,
		}
	}
	if spouseName != nil {
		c.Spouse = &customer.Spouse{
			Name:     deref(spouseName),
			Document: deref(spouseDoc),
			Phone:    deref(spousePhone),
			Company:  deref(spouseCompany),
			Income:   spouseIncome.Decimal,
		}
	}

	return &c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
