package customer

import (
	"strings"
	"time"

	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNotFound = apperror.New(apperror.ErrNotFound, "cliente não encontrado")
	ErrDuplicateKey     = apperror.New(apperror.ErrConflict, "cliente com mesmo documento já existe")
	ErrEmptyName        = apperror.New(apperror.ErrInvalidArgument, "nome não pode ser vazio")
	ErrEmptyDocument    = apperror.New(apperror.ErrInvalidArgument, "documento não pode ser vazio")
	ErrInvalidEmail     = apperror.New(apperror.ErrInvalidArgument, "email inválido")
)

// Status representa o estado do cliente
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted" // Exclusão lógica, o registro nunca é removido
)

// Address representa o endereço do cliente
type Address struct {
	Street     string `json:"street"`     // Logradouro
	Number     string `json:"number"`     // Número
	Complement string `json:"complement"` // Complemento
	District   string `json:"district"`   // Bairro
	City       string `json:"city"`       // Cidade
	State      string `json:"state"`      // Estado
	ZipCode    string `json:"zip_code"`   // CEP
}

// Professional representa os dados profissionais do cliente, usados na análise de crediário
type Professional struct {
	Company  string          `json:"company"`  // Empresa
	Position string          `json:"position"` // Cargo
	Income   decimal.Decimal `json:"income"`   // Renda mensal
	Phone    string          `json:"phone"`    // Telefone comercial
	Since    *time.Time      `json:"since"`    // Data de admissão
}

// Spouse representa os dados do cônjuge
type Spouse struct {
	Name     string          `json:"name"`
	Document string          `json:"document"` // CPF
	Phone    string          `json:"phone"`
	Company  string          `json:"company"`
	Income   decimal.Decimal `json:"income"`
}

// Customer representa um cliente da loja
type Customer struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`         // Nome completo
	Document     string        `json:"document"`     // CPF
	IDCard       string        `json:"id_card"`      // RG
	BirthDate    *time.Time    `json:"birth_date"`   // Data de nascimento
	Phone        string        `json:"phone"`        // Telefone
	Email        string        `json:"email"`        // Email
	Address      Address       `json:"address"`      // Endereço
	Professional *Professional `json:"professional"` // Dados profissionais
	Spouse       *Spouse       `json:"spouse"`       // Dados do cônjuge
	Status       Status        `json:"status"`       // Status do cliente
	Observations string        `json:"observations"` // Observações
	CreatedAt    time.Time     `json:"created_at"`   // Data de criação
	UpdatedAt    time.Time     `json:"updated_at"`   // Data de atualização
}

// NewCustomer cria um novo cliente
func NewCustomer(name, document string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	if strings.TrimSpace(document) == "" {
		return nil, ErrEmptyDocument
	}

	now := time.Now()
	return &Customer{
		Name:      name,
		Document:  NormalizeDocument(document),
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeDocument remove pontuação do CPF
func NormalizeDocument(document string) string {
	var b strings.Builder
	for _, r := range document {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsActive verifica se o cliente está ativo
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// MarkDeleted aplica a exclusão lógica
func (c *Customer) MarkDeleted() {
	c.Status = StatusDeleted
	c.UpdatedAt = time.Now()
}

// SetContact atualiza telefone e email
func (c *Customer) SetContact(phone, email string) error {
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Phone = phone
	c.Email = email
	c.UpdatedAt = time.Now()
	return nil
}

// Update atualiza os dados cadastrais do cliente
func (c *Customer) Update(name, idCard string, birthDate *time.Time, address Address, professional *Professional, spouse *Spouse, observations string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	c.Name = name
	c.IDCard = idCard
	c.BirthDate = birthDate
	c.Address = address
	c.Professional = professional
	c.Spouse = spouse
	c.Observations = observations
	c.UpdatedAt = time.Now()

	return nil
}
