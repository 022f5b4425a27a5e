package domain

// EnforceRequest is the input to an RBAC policy check.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}
