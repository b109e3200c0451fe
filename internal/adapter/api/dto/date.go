package dto

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout é o formato de datas do calendário na API
const DateLayout = "2006-01-02"

// Date é uma data sem horário. Na entrada aceita "2006-01-02" ou RFC3339.
type Date struct {
	time.Time
}

// NewDate cria uma Date a partir de um time.Time
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate converte um texto em Date
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("data inválida %q, use o formato AAAA-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// MarshalJSON implementa json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON implementa json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Ptr retorna nil para datas vazias
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func datePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}
