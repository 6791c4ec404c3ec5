package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRoleIsValid(t *testing.T) {
	for _, r := range []UserRole{RoleAnonymous, RoleAuthenticated, RoleManager, RoleAdmin} {
		assert.True(t, r.IsValid(), string(r))
	}
	assert.False(t, UserRole("SUPERUSER").IsValid())
	assert.False(t, UserRole("").IsValid())
	assert.False(t, UserRole("admin").IsValid())
}

func TestUserPatchIsEmpty(t *testing.T) {
	assert.True(t, (&UserPatch{}).IsEmpty())

	bio := "hello"
	assert.False(t, (&UserPatch{Bio: &bio}).IsEmpty())

	role := RoleManager
	assert.False(t, (&UserPatch{Role: &role}).IsEmpty())

	professional := true
	assert.False(t, (&UserPatch{IsProfessional: &professional}).IsEmpty())
}
