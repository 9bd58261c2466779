package roles

import (
	"errors"
	"sort"
	"strings"

	"github.com/wellywell/orderdesk/internal/types"
)

const (
	Admin   = "admin"
	Manager = "manager"
	Leader  = "leader"
	Staff   = "staff"
)

var ErrForbidden = errors.New("action requires a manager or admin role")

// UnknownLevel ranks roles that are not in the table below every known role.
const UnknownLevel = 99

var levels = map[string]int{
	Admin:   1,
	Manager: 2,
	Leader:  3,
	Staff:   4,
}

// Level returns the precedence of a role. Lower numbers are more senior.
func Level(role string) int {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(role))]; ok {
		return l
	}
	return UnknownLevel
}

// Assignable lists the users an actor with actingRole may assign as actionRole:
// everyone at the same level or below.
func Assignable(users []types.User, actingRole string) []types.User {
	acting := Level(actingRole)
	result := make([]types.User, 0, len(users))
	for _, u := range users {
		if Level(u.Role) >= acting {
			result = append(result, u)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Username < result[j].Username
	})
	return result
}

// Privileged reports whether the role may create month files and units.
func Privileged(role string) bool {
	return Level(role) <= levels[Manager]
}
