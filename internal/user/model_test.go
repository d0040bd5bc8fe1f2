package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleClient.Valid())
	assert.True(t, RoleProvider.Valid())
	assert.True(t, RoleAdmin.Valid())

	assert.False(t, Role("").Valid())
	assert.False(t, Role("client").Valid())
	assert.False(t, Role("MODERATOR").Valid())
}

func TestUserToResponse(t *testing.T) {
	phone := "+66812345678"
	created := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	u := &User{
		ID:          7,
		Email:       "somchai@example.com",
		FirstName:   "Somchai",
		LastName:    "J.",
		PhoneNumber: &phone,
		Role:        RoleProvider,
		IsActive:    true,
		CreatedAt:   created,
	}

	resp := u.ToResponse()
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "somchai@example.com", resp.Email)
	assert.Equal(t, RoleProvider, resp.Role)
	assert.Equal(t, &phone, resp.PhoneNumber)
	assert.Equal(t, "2026-03-15T10:30:00Z", resp.CreatedAt)
}
