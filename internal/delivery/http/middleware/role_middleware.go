package middleware

import (
	"net/http"

	"autodominio-api/internal/domain/entity"
	"autodominio-api/pkg/response"
)

// RequireRole lets the request through only if the authenticated role is one of allowed.
// Must run after AuthMiddleware.Authenticate.
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, candidate := range allowed {
				if role == candidate {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

func RequireAdminOrInstructor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleInstructor)(next)
}
