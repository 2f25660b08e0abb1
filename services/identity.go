package services

import (
	"pawbook-backend/utils"

	"github.com/google/uuid"
)

// Identity is the tenant-scoped caller identity read from a verified bearer
// credential: a staff console user or a mini-app owner, always bound to one
// store.
type Identity struct {
	Role    string
	UserID  uuid.UUID // staff
	OwnerID uuid.UUID // mini-app owner
	StoreID uuid.UUID
}

func (i Identity) IsStaff() bool {
	return i.Role == utils.RoleStaff
}

func (i Identity) IsOwner() bool {
	return i.Role == utils.RoleOwner
}
