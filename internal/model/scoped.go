package model

// TenantOwned is implemented by every entity that lives inside a single
// organization. The repository layer relies on it to stamp ownership on
// create and to re-check ownership before any mutation.
type TenantOwned interface {
	GetOrganizationID() uint
	SetOrganizationID(id uint)
}
