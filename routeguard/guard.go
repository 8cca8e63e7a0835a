// Package routeguard decides, for every navigation, whether a view is shown,
// or where the browser is sent instead.
package routeguard

import (
	"github.com/jrsteele09/taskflow/session"
)

// Area groups views by who may see them
type Area int

const (
	AreaLogin Area = iota
	AreaTeacher
	AreaStudent
)

func (a Area) String() string {
	switch a {
	case AreaTeacher:
		return "teacher"
	case AreaStudent:
		return "student"
	default:
		return "login"
	}
}

// View is a routable page
type View struct {
	Path string
	Area Area
}

type State int

const (
	// AnonymousAllowed: an unauthenticated visitor on the login view
	AnonymousAllowed State = iota
	// Redirecting: the browser is sent to Decision.Target
	Redirecting
	// Authorized: the requested protected view is rendered
	Authorized
)

func (s State) String() string {
	switch s {
	case Redirecting:
		return "redirecting"
	case Authorized:
		return "authorized"
	default:
		return "anonymous_allowed"
	}
}

type Decision struct {
	State  State
	Target string // set when State is Redirecting
}

// Guard holds the well-known destinations
type Guard struct {
	LoginPath string
	Homes     map[session.Role]string
}

func New(loginPath, teacherHome, studentHome string) Guard {
	return Guard{
		LoginPath: loginPath,
		Homes: map[session.Role]string{
			session.RoleTeacher: teacherHome,
			session.RoleStudent: studentHome,
		},
	}
}

// Home returns the landing view of role
func (g Guard) Home(role session.Role) string {
	if home, ok := g.Homes[role]; ok {
		return home
	}
	return g.LoginPath
}

// Evaluate must run on every request; its answer depends on the session as
// read right now.
func (g Guard) Evaluate(s session.Session, target View) Decision {
	if !s.IsValid() {
		if target.Area == AreaLogin {
			return Decision{State: AnonymousAllowed}
		}
		return g.redirect(g.LoginPath)
	}

	if target.Area == AreaLogin {
		return g.redirect(g.Home(s.Role))
	}

	if areaOf(s.Role) != target.Area {
		// cross-role navigation lands on the caller's own home
		return g.redirect(g.Home(s.Role))
	}

	return Decision{State: Authorized}
}

func (g Guard) redirect(target string) Decision {
	return Decision{State: Redirecting, Target: target}
}

func areaOf(role session.Role) Area {
	switch role {
	case session.RoleTeacher:
		return AreaTeacher
	case session.RoleStudent:
		return AreaStudent
	default:
		return AreaLogin
	}
}
