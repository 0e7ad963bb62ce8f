package identity

import (
	"errors"
	"strings"

	"github.com/ValentinKolb/pmkv/lib/store"
)

// Role is the closed set of roles a login can hold.
type Role int

const (
	Member  Role = iota // 0: Student without a project of their own.
	Lead                // 1: Student leading a project.
	Faculty             // 2: Faculty member without advisees.
	Advisor             // 3: Faculty member advising at least one project.
	Admin               // 4: Administrator.
)

// ErrUnknownRoleLabel is returned when a roster carries a role label with no Role.
var ErrUnknownRoleLabel = errors.New("unknown role label")

var roleNames = [...]string{"member", "lead", "faculty", "advisor", "admin"}

func (r Role) String() string {
	if !r.Valid() {
		return "unknown"
	}
	return roleNames[r]
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= Member && r <= Admin
}

// ParseRole parses the name of a role as returned by Role.String.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if strings.EqualFold(s, name) {
			return Role(i), nil
		}
	}
	return 0, store.Validationf("unknown role %q", s)
}

// RoleForLabel maps a roster label to its initial role:
// student → Member, faculty → Faculty, admin → Admin.
func RoleForLabel(label string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "student":
		return Member, nil
	case "faculty":
		return Faculty, nil
	case "admin":
		return Admin, nil
	}
	return 0, store.Validationf("%w: %q", ErrUnknownRoleLabel, label)
}
