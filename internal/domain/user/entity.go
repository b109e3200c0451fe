package user

import (
	"strings"
	"time"

	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound    = apperror.New(apperror.ErrNotFound, "usuário não encontrado")
	ErrEmptyUsername   = apperror.New(apperror.ErrInvalidArgument, "nome de usuário não pode ser vazio")
	ErrPasswordTooWeak = apperror.New(apperror.ErrInvalidArgument, "a senha deve ter ao menos 8 caracteres")
)

const minPasswordLength = 8

// Role representa o papel/função do usuário
type Role string

// Status representa o status do usuário
type Status string

// Constantes para Role
const (
	RoleAdmin  Role = "admin"  // Administrador da loja
	RoleSeller Role = "seller" // Vendedor
)

// Constantes para Status
const (
	StatusActive   Status = "active"   // Usuário ativo
	StatusInactive Status = "inactive" // Usuário inativo
)

// User representa um usuário do painel
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Password    string     `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUser cria um usuário ativo com a senha já convertida em hash
func NewUser(username, name, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, ErrEmptyUsername
	}

	now := time.Now()
	u := &User{
		Username:  username,
		Name:      name,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooWeak
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
