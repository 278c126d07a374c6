package domain

// Role enumerates project roles.
type Role string

const (
	RoleReporter  Role = "REPORTER"
	RoleDeveloper Role = "DEVELOPER"
	RoleManager   Role = "MANAGER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleReporter, RoleDeveloper, RoleManager:
		return true
	}
	return false
}

// Seniority enumerates developer seniority levels.
type Seniority string

const (
	SeniorityJunior Seniority = "JUNIOR"
	SeniorityMid    Seniority = "MID"
	SenioritySenior Seniority = "SENIOR"
)

// Profile is the role-specific part of a User. The set of implementations
// is closed: ReporterProfile, DeveloperProfile and ManagerProfile.
type Profile interface {
	role() Role
}

// ReporterProfile carries no extra attributes.
type ReporterProfile struct{}

// DeveloperProfile holds developer attributes.
type DeveloperProfile struct {
	Expertise       ExpertiseArea
	Seniority       Seniority
	HireDate        string
	ManagerUsername string
}

// ManagerProfile holds the ordered subordinate usernames.
type ManagerProfile struct {
	Subordinates []string
}

func (ReporterProfile) role() Role   { return RoleReporter }
func (*DeveloperProfile) role() Role { return RoleDeveloper }
func (*ManagerProfile) role() Role   { return RoleManager }

// User is a roster entry. Immutable after load.
type User struct {
	Username string
	Email    string
	Role     Role
	Profile  Profile
}

// NewUser builds a user whose Role is derived from its profile.
func NewUser(username, email string, profile Profile) *User {
	if profile == nil {
		profile = ReporterProfile{}
	}
	return &User{Username: username, Email: email, Role: profile.role(), Profile: profile}
}

// Developer returns the developer profile when the user is a developer.
func (u *User) Developer() (*DeveloperProfile, bool) {
	if u == nil {
		return nil, false
	}
	p, ok := u.Profile.(*DeveloperProfile)
	return p, ok
}

// Manager returns the manager profile when the user is a manager.
func (u *User) Manager() (*ManagerProfile, bool) {
	if u == nil {
		return nil, false
	}
	p, ok := u.Profile.(*ManagerProfile)
	return p, ok
}
