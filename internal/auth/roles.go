package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bankops/biomss/internal/domain"
	apperrors "github.com/bankops/biomss/pkg/util"
)

// RequireRole ensures the principal has one of the allowed roles. With no
// arguments it only requires authentication.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireITStaff restricts to the roles that manage infrastructure.
func RequireITStaff() fiber.Handler {
	return RequireRole(domain.RoleAdmin, domain.RoleITOfficer, domain.RoleSupportTech)
}

// RequireAdmin restricts to administrators.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
