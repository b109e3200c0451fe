package stock

import (
	"strconv"
	"strings"

	"github.com/hugohenrick/loja-colchoes/pkg/apperror"
)

// MissingProductsError lista todos os produtos solicitados que não existem
type MissingProductsError struct {
	IDs []int64
}

func (e *MissingProductsError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return "produtos não encontrados: " + strings.Join(ids, ",")
}

// Unwrap classifica o erro como apperror.ErrNotFound
func (e *MissingProductsError) Unwrap() error {
	return apperror.ErrNotFound
}

// CheckExisting compara os IDs solicitados com os existentes e retorna um
// *MissingProductsError com os ausentes, na ordem da solicitação e sem repetição
func CheckExisting(requested, existing []int64) error {
	found := make(map[int64]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}

	var missing []int64
	seen := make(map[int64]bool, len(requested))
	for _, id := range requested {
		if found[id] || seen[id] {
			continue
		}
		seen[id] = true
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		return &MissingProductsError{IDs: missing}
	}
	return nil
}
