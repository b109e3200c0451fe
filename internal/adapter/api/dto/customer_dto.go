package dto

import (
	"time"

	"github.com/hugohenrick/loja-colchoes/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// AddressDTO representa o endereço do cliente
type AddressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// ProfessionalDTO representa os dados profissionais do cliente
type ProfessionalDTO struct {
	Company  string          `json:"company"`
	Position string          `json:"position"`
	Income   decimal.Decimal `json:"income" swaggertype:"string" example:"3500.00"`
	Phone    string          `json:"phone"`
	Since    *Date           `json:"since" swaggertype:"string" example:"2019-03-01"`
}

// SpouseDTO representa os dados do cônjuge
type SpouseDTO struct {
	Name     string          `json:"name"`
	Document string          `json:"document"`
	Phone    string          `json:"phone"`
	Company  string          `json:"company"`
	Income   decimal.Decimal `json:"income" swaggertype:"string" example:"2800.00"`
}

// CustomerRequest representa os dados de um cliente para criação ou atualização
type CustomerRequest struct {
	Name         string           `json:"name" binding:"required"`
	Document     string           `json:"document" binding:"required"`
	IDCard       string           `json:"id_card"`
	BirthDate    *Date            `json:"birth_date" swaggertype:"string" example:"1985-07-21"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email"`
	Address      AddressDTO       `json:"address"`
	Professional *ProfessionalDTO `json:"professional"`
	Spouse       *SpouseDTO       `json:"spouse"`
	Observations string           `json:"observations"`
}

// CustomerResponse representa a resposta com dados de um cliente
type CustomerResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Document     string           `json:"document"`
	IDCard       string           `json:"id_card,omitempty"`
	BirthDate    *Date            `json:"birth_date,omitempty" swaggertype:"string"`
	Phone        string           `json:"phone,omitempty"`
	Email        string           `json:"email,omitempty"`
	Address      AddressDTO       `json:"address"`
	Professional *ProfessionalDTO `json:"professional,omitempty"`
	Spouse       *SpouseDTO       `json:"spouse,omitempty"`
	Status       string           `json:"status"`
	Observations string           `json:"observations,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CustomerListResponse representa a resposta com a lista de clientes paginada
type CustomerListResponse struct {
	Data       []CustomerResponse `json:"data"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// Apply aplica os dados da requisição ao cliente
func (r CustomerRequest) Apply(c *customer.Customer) error {
	if err := c.SetContact(r.Phone, r.Email); err != nil {
		return err
	}

	var professional *customer.Professional
	if p := r.Professional; p != nil {
		professional = &customer.Professional{
			Company:  p.Company,
			Position: p.Position,
			Income:   p.Income,
			Phone:    p.Phone,
			Since:    p.Since.Ptr(),
		}
	}

	var spouse *customer.Spouse
	if s := r.Spouse; s != nil {
		spouse = &customer.Spouse{
			Name:     s.Name,
			Document: customer.NormalizeDocument(s.Document),
			Phone:    s.Phone,
			Company:  s.Company,
			Income:   s.Income,
		}
	}

	address := customer.Address(r.Address)
	return c.Update(r.Name, r.IDCard, r.BirthDate.Ptr(), address, professional, spouse, r.Observations)
}

// ToCustomerResponse converte um cliente do domínio para DTO de resposta
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Document:     c.Document,
		IDCard:       c.IDCard,
		BirthDate:    datePtr(c.BirthDate),
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      AddressDTO(c.Address),
		Status:       string(c.Status),
		Observations: c.Observations,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if p := c.Professional; p != nil {
		resp.Professional = &ProfessionalDTO{
			Company:  p.Company,
			Position: p.Position,
			Income:   p.Income,
			Phone:    p.Phone,
			Since:    datePtr(p.Since),
		}
	}

	if s := c.Spouse; s != nil {
		spouse := SpouseDTO(*s)
		resp.Spouse = &spouse
	}

	return resp
}

// ToCustomerListResponse monta a resposta paginada de clientes
func ToCustomerListResponse(customers []*customer.Customer, totalCount, page, pageSize int) CustomerListResponse {
	data := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		data = append(data, ToCustomerResponse(c))
	}

	return CustomerListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(totalCount, pageSize),
	}
}
