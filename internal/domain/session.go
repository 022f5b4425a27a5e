package domain

const (
	RoleAdmin = "admin"
	RoleHR    = "hr"
)

// Session identifies the authenticated actor for a single request. It is
// passed explicitly to services instead of being read from ambient state.
type Session struct {
	Username string
	Role     string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
