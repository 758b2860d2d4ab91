package account

// Role gates what an account can do. Password signups default to
// editor; identity-provider sign-ins default to viewer.
type Role string

const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
)

// Account is the domain record, including the credential hash when the
// account was created through password signup. Never serialize this
// type to a client; use Response.
type Account struct {
	ID             string
	Name           string
	Email          string
	Role           Role
	CreatedAt      string
	HashedPassword string
}

// CreateInput carries the fields for a password signup.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	// Role is optional; empty means RoleEditor.
	Role Role
}

// UpsertInput is an account without a timestamp, as supplied by an
// identity provider on sign-in.
type UpsertInput struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Response is the public shape of an account. It never carries the
// credential hash, regardless of creation path.
type Response struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}
