package auth

import (
	"fmt"
	"strings"

	"github.com/spec-kit/project-tracker/internal/domain"
	apperrors "github.com/spec-kit/project-tracker/pkg/util"
)

// RequireRole ensures user holds one of the allowed roles. An empty allowed
// list admits everyone.
func RequireRole(user *domain.User, allowed ...domain.Role) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden(permissionMessage(user.Role, allowed))
}

func permissionMessage(userRole domain.Role, allowed []domain.Role) string {
	names := make([]string, 0, len(allowed))
	for _, role := range allowed {
		names = append(names, string(role))
	}
	return fmt.Sprintf("The user does not have permission to execute this command: required role %s; user role %s.",
		strings.Join(names, ", "), userRole)
}
