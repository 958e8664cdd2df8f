// Package tenant defines the per-request tenant scope. A Scope is built once
// from the authenticated principal's claims and passed explicitly into every
// service and repository call; there is no ambient "current user" global.
package tenant

// Scope resolves the acting principal's organization and elevation level for
// one operation. It is immutable for the operation's duration. The zero
// value is an unauthenticated scope: no organization, no elevation, and
// Authorize refuses everything.
type Scope struct {
	userID   uint
	orgID    *uint
	elevated bool
}

// NewScope builds a scope for an authenticated principal. orgID may be nil
// only for elevated principals.
func NewScope(userID uint, orgID *uint, elevated bool) Scope {
	var copied *uint
	if orgID != nil {
		v := *orgID
		copied = &v
	}
	return Scope{userID: userID, orgID: copied, elevated: elevated}
}

// Anonymous returns the fail-closed scope used when no principal is
// authenticated.
func Anonymous() Scope { return Scope{} }

// UserID returns the acting principal's id, zero when anonymous.
func (s Scope) UserID() uint { return s.userID }

// CurrentOrgID returns the principal's organization id, and false when the
// scope carries none (anonymous, or an elevated principal without a home
// organization).
func (s Scope) CurrentOrgID() (uint, bool) {
	if s.orgID == nil {
		return 0, false
	}
	return *s.orgID, true
}

// IsElevated reports whether the principal may cross tenant boundaries.
func (s Scope) IsElevated() bool { return s.elevated }

// Authenticated reports whether the scope belongs to a real principal.
func (s Scope) Authenticated() bool { return s.userID != 0 }

// Authorize reports whether the scope may touch an entity owned by orgID.
// True when the entity belongs to the principal's own organization or the
// principal is elevated. An unauthenticated scope authorizes nothing.
func (s Scope) Authorize(orgID uint) bool {
	if !s.Authenticated() {
		return false
	}
	if s.elevated {
		return true
	}
	own, ok := s.CurrentOrgID()
	return ok && own == orgID
}
