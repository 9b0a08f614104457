package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lumio_back_end/internal/models"
)

func TestRoleChangeDeniedSelf(t *testing.T) {
	target := models.User{ID: "u1", Role: models.RoleUser}
	reason := roleChangeDenied("u1", target, models.RoleAdmin, false)
	assert.Equal(t, "Impossible de modifier son propre rôle", reason)
}

func TestRoleChangeDeniedDemoteAdmin(t *testing.T) {
	target := models.User{ID: "u2", Role: models.RoleAdmin}
	reason := roleChangeDenied("u1", target, models.RoleUser, true)
	assert.Equal(t, "Impossible de retirer le rôle admin", reason)
}

func TestRoleChangeDeniedSecondAdmin(t *testing.T) {
	target := models.User{ID: "u2", Role: models.RoleUser}
	reason := roleChangeDenied("u1", target, models.RoleAdmin, true)
	assert.Equal(t, "Un seul administrateur est autorisé", reason)
}

func TestRoleChangeAllowedPromoteWhenNoAdmin(t *testing.T) {
	target := models.User{ID: "u2", Role: models.RoleUser}
	assert.Empty(t, roleChangeDenied("u1", target, models.RoleAdmin, false))
}

func TestRoleChangeAllowedUserToUser(t *testing.T) {
	target := models.User{ID: "u2", Role: models.RoleUser}
	assert.Empty(t, roleChangeDenied("u1", target, models.RoleUser, true))
}

func TestActiveToggleDeniedForAdmin(t *testing.T) {
	reason := activeToggleDenied(models.User{ID: "u2", Role: models.RoleAdmin})
	assert.Equal(t, "Impossible de modifier le statut d'un administrateur", reason)
}

func TestActiveToggleAllowedForUser(t *testing.T) {
	assert.Empty(t, activeToggleDenied(models.User{ID: "u2", Role: models.RoleUser}))
}
