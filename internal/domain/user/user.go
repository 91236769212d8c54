package user

// Role is the access role of a console user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleGuest Role = "guest"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleGuest:
		return true
	}
	return false
}

// rolePermissions maps each role to the console features it may access.
var rolePermissions = map[Role][]string{
	RoleAdmin: {"rooms", "bookings", "guests", "settings", "users"},
	RoleStaff: {"rooms", "bookings", "guests", "settings"},
	RoleGuest: {"settings"},
}

// CanAccess reports whether the role may use the named console feature.
func (r Role) CanAccess(feature string) bool {
	for _, f := range rolePermissions[r] {
		if f == feature {
			return true
		}
	}
	return false
}

// Permissions returns the console features granted to the role.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

// User is a credentials record in the users collection. The password field
// holds a bcrypt hash; the collection schema is otherwise unchanged from
// the store's original layout.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Phone        string `json:"phone,omitempty"`
	PasswordHash string `json:"password"`
}

// Patch lists the credential attributes mutable after creation.
type Patch struct {
	Email        *string `json:"email,omitempty"`
	Name         *string `json:"name,omitempty"`
	Role         *Role   `json:"role,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	PasswordHash *string `json:"password,omitempty"`
}

// AccountStatus marks a profile as active or inactive.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

// IsValid returns true if the account status is recognized.
func (s AccountStatus) IsValid() bool {
	return s == AccountActive || s == AccountInactive
}

// Profile is a record in the UserManagement collection, the profile and
// permissions counterpart of a credentials record. The two collections are
// deliberately parallel.
type Profile struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	Role        Role          `json:"role"`
	Phone       string        `json:"phone,omitempty"`
	Status      AccountStatus `json:"status"`
	LastLogin   string        `json:"lastLogin"`
	Permissions []string      `json:"permissions"`
}

// ProfilePatch lists the profile attributes mutable after creation.
type ProfilePatch struct {
	Email       *string        `json:"email,omitempty"`
	Name        *string        `json:"name,omitempty"`
	Role        *Role          `json:"role,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      *AccountStatus `json:"status,omitempty"`
	LastLogin   *string        `json:"lastLogin,omitempty"`
	Permissions *[]string      `json:"permissions,omitempty"`
}
