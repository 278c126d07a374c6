package dto

import (
	"fmt"

	"github.com/spec-kit/project-tracker/internal/domain"
)

// UserRecord is one roster entry. Developers may spell their level as
// seniorityLevel or seniority.
type UserRecord struct {
	Username        string   `json:"username" yaml:"username"`
	Email           string   `json:"email" yaml:"email"`
	Role            string   `json:"role" yaml:"role"`
	Subordinates    []string `json:"subordinates" yaml:"subordinates"`
	ExpertiseArea   string   `json:"expertiseArea" yaml:"expertiseArea"`
	SeniorityLevel  string   `json:"seniorityLevel" yaml:"seniorityLevel"`
	Seniority       string   `json:"seniority" yaml:"seniority"`
	HireDate        string   `json:"hireDate" yaml:"hireDate"`
	ManagerUsername string   `json:"managerUsername" yaml:"managerUsername"`
}

// ToUser builds the domain user for r.
func (r UserRecord) ToUser() (*domain.User, error) {
	if r.Username == "" {
		return nil, fmt.Errorf("roster entry without username")
	}
	switch domain.Role(r.Role) {
	case domain.RoleReporter:
		return domain.NewUser(r.Username, r.Email, domain.ReporterProfile{}), nil
	case domain.RoleDeveloper:
		seniority := r.SeniorityLevel
		if seniority == "" {
			seniority = r.Seniority
		}
		return domain.NewUser(r.Username, r.Email, &domain.DeveloperProfile{
			Expertise:       domain.ExpertiseArea(r.ExpertiseArea),
			Seniority:       domain.Seniority(seniority),
			HireDate:        r.HireDate,
			ManagerUsername: r.ManagerUsername,
		}), nil
	case domain.RoleManager:
		subordinates := append([]string(nil), r.Subordinates...)
		return domain.NewUser(r.Username, r.Email, &domain.ManagerProfile{Subordinates: subordinates}), nil
	default:
		return nil, fmt.Errorf("user %s: unknown role %q", r.Username, r.Role)
	}
}
