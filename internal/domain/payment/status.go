package payment

import (
	"fmt"
	"strings"

	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
)

// ErrInvalidStatus indica um status de parcela desconhecido
var ErrInvalidStatus = apperror.New(apperror.ErrInvalidArgument, "status de parcela inválido")

// Status representa a situação de uma parcela
type Status string

const (
	StatusPending   Status = "pending"   // Pendente
	StatusPaid      Status = "paid"      // Paga
	StatusCancelled Status = "cancelled" // Cancelada
	StatusRefunded  Status = "refunded"  // Reembolsada
)

// aliases aceitos na entrada, incluindo os nomes usados pelo painel
var statusAliases = map[string]Status{
	"pending":     StatusPending,
	"pendente":    StatusPending,
	"paid":        StatusPaid,
	"pago":        StatusPaid,
	"paga":        StatusPaid,
	"cancelled":   StatusCancelled,
	"canceled":    StatusCancelled,
	"cancelado":   StatusCancelled,
	"cancelada":   StatusCancelled,
	"refunded":    StatusRefunded,
	"reembolsado": StatusRefunded,
	"reembolsada": StatusRefunded,
}

// IsValid verifica se o status é um dos quatro conhecidos
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// ParseStatus converte um texto em Status, sem diferenciar maiúsculas
func ParseStatus(s string) (Status, error) {
	if st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ParseStatusOrPending converte um texto em Status, usando Pendente quando o
// texto é vazio ou desconhecido
func ParseStatusOrPending(s string) Status {
	st, err := ParseStatus(s)
	if err != nil {
		return StatusPending
	}
	return st
}

// CheckTransition valida a mudança de status de uma parcela. Todas as
// transições entre status válidos são permitidas, inclusive a partir de
// Cancelada e Reembolsada, para que o caixa possa corrigir lançamentos.
func CheckTransition(from, to Status) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	return nil
}
