package auth

import "context"

const isAdminKey contextKey = "is_admin"

// AdminGate is the single authorization predicate for the admin surface.
// Exactly one identity (the configured admin email) may pass; the comparison
// is an exact, case-sensitive match. Every admin entry path (password login,
// OAuth callback, each protected request) must consult the same gate rather
// than re-implementing the check.
type AdminGate struct {
	adminEmail string
}

// NewAdminGate creates a gate for the given admin email. An empty email
// produces a gate that denies everyone.
func NewAdminGate(adminEmail string) *AdminGate {
	return &AdminGate{adminEmail: adminEmail}
}

// IsAdmin reports whether the given identity is the configured admin.
func (g *AdminGate) IsAdmin(email string) bool {
	return g.adminEmail != "" && email == g.adminEmail
}

// WithIsAdmin stores the admin flag in the context.
func WithIsAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, isAdminKey, isAdmin)
}

// IsAdminFromContext returns whether the authenticated user passed the admin
// gate. Returns false when not set.
func IsAdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(isAdminKey).(bool)
	return v
}
