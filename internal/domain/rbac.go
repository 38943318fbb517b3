package domain

import (
	"fmt"

	"gitlab.com/ranfdev/sqadmin/internal/models"
)

// requireRole is the only place a role is checked. Admin operations live on
// handles that can only be obtained through it.
func requireRole(caller models.Identity, role models.Role, action string) error {
	if err := caller.Require(role); err != nil {
		return fmt.Errorf("you do not have permission to %s: %w", action, err)
	}
	return nil
}
