package domain

// Claims are the verified fields carried by a signed token.
type Claims struct {
	Email string
	Role  string
}

// PrincipalKind tags the two identities that can authenticate: a stored user
// or the synthetic metrics-scraper identity, which never exists in the user
// store.
type PrincipalKind string

const (
	PrincipalUser    PrincipalKind = "user"
	PrincipalService PrincipalKind = "service"
)

// Principal is the resolved identity attached to an authenticated request.
// User is non-nil only for PrincipalUser.
type Principal struct {
	Kind  PrincipalKind
	Email string
	User  *User
}

// NewUserPrincipal wraps a stored user.
func NewUserPrincipal(u *User) *Principal {
	return &Principal{Kind: PrincipalUser, Email: u.Email, User: u}
}

// NewServicePrincipal wraps the configured scraper identity.
func NewServicePrincipal(email string) *Principal {
	return &Principal{Kind: PrincipalService, Email: email}
}
