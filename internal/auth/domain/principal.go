// Package domain defines the authenticated principal and its role.
package domain

import (
	"context"
	"strings"
)

// Role is the coarse authorization level of a principal.
type Role string

// Supported roles.
const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// SystemActor is recorded as the marker of attendance written without an
// authenticated principal.
const SystemActor = "system"

// Principal is the identity established from a bearer credential.
type Principal struct {
	Email string
	Role  Role
}

// IsAdmin reports whether the principal has the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// CanActFor reports whether the principal may read or write attendance of
// email: admins may act for anyone, students only for themselves.
func (p *Principal) CanActFor(email string) bool {
	if p == nil {
		return false
	}
	return p.IsAdmin() || strings.EqualFold(p.Email, email)
}

// ResolveRole picks the role for a credential. An explicit admin claim wins;
// otherwise emails containing adminMarker are admins and everyone else is a
// student.
func ResolveRole(email, roleClaim, adminMarker string) Role {
	if Role(strings.ToLower(roleClaim)) == RoleAdmin {
		return RoleAdmin
	}
	if adminMarker != "" && strings.Contains(strings.ToLower(email), strings.ToLower(adminMarker)) {
		return RoleAdmin
	}
	return RoleStudent
}

type principalKey struct{}

// WithPrincipal stores the authenticated principal in the context.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*Principal)
	return principal, ok && principal != nil
}

// ActorFromContext returns the email of the authenticated principal or
// SystemActor when the request is anonymous.
func ActorFromContext(ctx context.Context) string {
	if principal, ok := PrincipalFromContext(ctx); ok && principal.Email != "" {
		return principal.Email
	}
	return SystemActor
}
