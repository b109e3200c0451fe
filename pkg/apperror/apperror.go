package apperror

import (
	"errors"
	"fmt"
)

// Categorias de erro usadas em toda a aplicação. A camada HTTP traduz cada
// categoria para o status correspondente.
var (
	// ErrInvalidArgument indica entrada malformada ou ausente
	ErrInvalidArgument = errors.New("argumento inválido")

	// ErrNotFound indica que uma entidade referenciada não existe
	ErrNotFound = errors.New("não encontrado")

	// ErrUnauthorized indica falha na validação de credenciais
	ErrUnauthorized = errors.New("não autorizado")

	// ErrConflict indica violação de restrição de integridade conhecida
	ErrConflict = errors.New("conflito")
)

// Error é um erro de domínio com mensagem própria pertencente a uma categoria
type Error struct {
	kind error
	msg  string
}

// New cria um erro da categoria kind com a mensagem informada
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Newf cria um erro da categoria kind com mensagem formatada
func Newf(kind error, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.msg
}

// Unwrap permite errors.Is(err, ErrNotFound) e similares
func (e *Error) Unwrap() error {
	return e.kind
}

// IsClientError informa se o erro pertence a uma categoria causada pelo cliente
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrConflict)
}
