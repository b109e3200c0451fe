package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_HashesPassword(t *testing.T) {
	u, err := NewUser(" Vendedor1 ", "Ana", "segredo123", RoleSeller)
	require.NoError(t, err)

	assert.Equal(t, "vendedor1", u.Username)
	assert.NotEqual(t, "segredo123", u.Password)
	assert.True(t, u.CheckPassword("segredo123"))
	assert.False(t, u.CheckPassword("errada"))
	assert.True(t, u.IsActive())
	assert.False(t, u.IsAdmin())
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("", "Ana", "segredo123", RoleSeller)
	assert.ErrorIs(t, err, ErrEmptyUsername)

	_, err = NewUser("ana", "Ana", "curta", RoleAdmin)
	assert.ErrorIs(t, err, ErrPasswordTooWeak)
}
