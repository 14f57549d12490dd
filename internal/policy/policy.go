// Package policy holds the access decisions consulted by every sensitive
// handler. Every function is a pure predicate over the requester's verified
// identity and the target resource; no I/O, no caching.
package policy

import "github.com/NikosWork1/Industrial-Project-sub000/internal/models"

// Requester is the identity a decision is made for, taken from verified
// token claims.
type Requester struct {
	ID   string
	Role string
}

// Target is the account a decision is made about.
type Target struct {
	ID       string
	Role     string
	IsPublic bool
}

// TargetOf builds a Target from an account record.
func TargetOf(account models.Account) Target {
	return Target{ID: account.ID, Role: account.Role, IsPublic: account.IsPublic}
}

// CanViewProfile allows admins, the profile owner, and anyone when the
// profile is public.
func CanViewProfile(requester Requester, target Target) bool {
	return requester.Role == models.RoleAdmin || requester.ID == target.ID || target.IsPublic
}

// CanEditProfile allows admins and the profile owner.
func CanEditProfile(requester Requester, target Target) bool {
	return requester.Role == models.RoleAdmin || requester.ID == target.ID
}

// CanManageApplications allows admins only.
func CanManageApplications(requester Requester) bool {
	return requester.Role == models.RoleAdmin
}

// CanDeleteAccount allows admins to delete non-admin accounts. Admin
// accounts are not deletable through this path, not even by other admins.
func CanDeleteAccount(requester Requester, target Target) bool {
	return requester.Role == models.RoleAdmin && target.Role != models.RoleAdmin
}
