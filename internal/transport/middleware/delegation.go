package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bidquo/rfq-marketplace/internal/auth"
	"github.com/go-chi/chi"
)

// PermissionChecker answers whether a user currently holds a permission,
// either natively through their role or through a live delegation.
type PermissionChecker interface {
	HasPermission(userID int64, role, resourceType, permission, resourceID string) (bool, error)
}

// RequirePermission gates a route on the delegation engine. When idParam is
// non-empty the resource id is taken from the URL, otherwise the check is
// scope-wide (a wildcard or matching delegation of any scope passes).
func RequirePermission(checker PermissionChecker, logger *slog.Logger, resourceType, permission, idParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			resourceID := ""
			if idParam != "" {
				resourceID = chi.URLParam(r, idParam)
			}

			allowed, err := checker.HasPermission(user.ID, user.Role, resourceType, permission, resourceID)
			if err != nil {
				logger.ErrorContext(r.Context(), "permission check failed",
					"user_id", user.ID,
					"resource_type", resourceType,
					"permission", permission,
					"error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !allowed {
				logger.WarnContext(r.Context(), "access denied",
					"user_id", user.ID,
					"resource_type", resourceType,
					"permission", permission,
					"resource_id", resourceID)
				http.Error(w, "Forbidden: missing permission", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
