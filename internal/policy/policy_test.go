package policy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NikosWork1/Industrial-Project-sub000/internal/models"
)

func TestCanEditProfile(t *testing.T) {
	roles := []string{models.RolePending, models.RoleUser, models.RoleAdmin}

	// Admin or owner, and nobody else, across the full cross product.
	for _, requesterRole := range roles {
		for _, targetRole := range roles {
			for _, self := range []bool{true, false} {
				requester := Requester{ID: "req-1", Role: requesterRole}
				target := Target{ID: "tgt-1", Role: targetRole}
				if self {
					target.ID = requester.ID
				}

				want := requesterRole == models.RoleAdmin || self
				name := fmt.Sprintf("%s/%s/self=%v", requesterRole, targetRole, self)
				assert.Equal(t, want, CanEditProfile(requester, target), name)
			}
		}
	}
}

func TestCanViewProfile(t *testing.T) {
	tests := []struct {
		name      string
		requester Requester
		target    Target
		want      bool
	}{
		{"admin views private", Requester{ID: "a", Role: models.RoleAdmin}, Target{ID: "b", IsPublic: false}, true},
		{"owner views own private", Requester{ID: "a", Role: models.RoleUser}, Target{ID: "a", IsPublic: false}, true},
		{"stranger views public", Requester{ID: "a", Role: models.RoleUser}, Target{ID: "b", IsPublic: true}, true},
		{"stranger views private", Requester{ID: "a", Role: models.RoleUser}, Target{ID: "b", IsPublic: false}, false},
		{"pending views private", Requester{ID: "a", Role: models.RolePending}, Target{ID: "b", IsPublic: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewProfile(tt.requester, tt.target))
		})
	}
}

func TestCanManageApplications(t *testing.T) {
	assert.True(t, CanManageApplications(Requester{ID: "a", Role: models.RoleAdmin}))
	assert.False(t, CanManageApplications(Requester{ID: "a", Role: models.RoleUser}))
	assert.False(t, CanManageApplications(Requester{ID: "a", Role: models.RolePending}))
}

func TestCanDeleteAccount(t *testing.T) {
	admin := Requester{ID: "a", Role: models.RoleAdmin}
	user := Requester{ID: "u", Role: models.RoleUser}

	assert.True(t, CanDeleteAccount(admin, Target{ID: "b", Role: models.RoleUser}))
	assert.True(t, CanDeleteAccount(admin, Target{ID: "b", Role: models.RolePending}))

	// Admins are protected from deletion, including from other admins.
	assert.False(t, CanDeleteAccount(admin, Target{ID: "b", Role: models.RoleAdmin}))
	assert.False(t, CanDeleteAccount(admin, Target{ID: admin.ID, Role: models.RoleAdmin}))

	assert.False(t, CanDeleteAccount(user, Target{ID: "b", Role: models.RoleUser}))
	assert.False(t, CanDeleteAccount(user, Target{ID: user.ID, Role: models.RoleUser}))
}
