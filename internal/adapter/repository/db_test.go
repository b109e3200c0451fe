package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCode(t *testing.T) {
	unique := fmt.Errorf("erro ao criar cliente: %w", &pgconn.PgError{Code: pgUniqueViolation})
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isForeignKeyViolation(unique))
	assert.True(t, isForeignKeyViolation(fk))
	assert.Empty(t, pgErrorCode(errors.New("conexão recusada")))
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		limit, offset       int
		wantLimit, wantOffs int
	}{
		{0, 0, 20, 0},
		{10, 5, 10, 5},
		{500, -1, 100, 0},
		{101, 0, 100, 0},
		{-5, 3, 20, 3},
		{100, 200, 100, 200},
	}

	for _, tt := range tests {
		l, o := normalizePage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, l)
		assert.Equal(t, tt.wantOffs, o)
	}
}
