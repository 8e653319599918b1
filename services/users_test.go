package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkirku/models"
	"parkirku/utils"
)

func TestVerifyUser(t *testing.T) {
	store := newMemStore()
	hash, err := utils.HashPassword("parkir123")
	require.NoError(t, err)
	require.NoError(t, store.SaveUsers([]models.User{
		{Username: "juru_parkir", Password: hash, Role: "juru_parkir", Name: "Juru Parkir"},
	}))

	users := NewUsers(store)

	user, err := users.Verify("juru_parkir", "parkir123")
	require.NoError(t, err)
	assert.Equal(t, "juru_parkir", user.Role)

	_, err = users.Verify("juru_parkir", "salah")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = users.Verify("nobody", "parkir123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserResponseOmitsPassword(t *testing.T) {
	user := models.User{Username: "admin", Password: "hash", Role: "admin", Name: "Administrator"}
	response := user.ToResponse()
	assert.Equal(t, "admin", response.Username)
	assert.Equal(t, models.UserResponse{Username: "admin", Role: "admin", Name: "Administrator"}, response)
}
