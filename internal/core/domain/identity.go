package domain

// Identity is the per-browser view of who is making a request. It is a copy
// taken at login and can go stale relative to the stored User.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// IdentityOf builds the session identity for a stored user. An empty role
// falls back to RoleUser.
func IdentityOf(u *User) Identity {
	role := u.Role
	if role == "" {
		role = RoleUser
	}
	return Identity{UserID: u.ID, Username: u.Username, Role: role}
}
