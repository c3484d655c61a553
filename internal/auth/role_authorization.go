package auth

import (
	"log/slog"
	"net/http"
)

// RoleAuthorization gates routes on the user's static marketplace role.
// Delegated (dynamic) permissions are checked separately by the delegation
// middleware; this covers only the baked-in ADMIN/BUYER/SUPPLIER roles.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("role check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
				"user_id", user.ID,
				"user_role", user.Role,
				"required_roles", roles)
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
		})
	}
}

func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(RoleAdmin)
}

func (ra *RoleAuthorization) RequireBuyer() func(http.Handler) http.Handler {
	return ra.RequireRole(RoleBuyer, RoleAdmin)
}

func (ra *RoleAuthorization) RequireSupplier() func(http.Handler) http.Handler {
	return ra.RequireRole(RoleSupplier, RoleAdmin)
}
