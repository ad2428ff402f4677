// Package guard decides what a navigation boundary renders for a given
// session state and role requirement. The decision function is pure;
// callers re-evaluate it whenever the session changes.
package guard

import (
	"transferdesk/internal/application/session"
	"transferdesk/internal/shared/authorization"
)

// Decision is the outcome of evaluating a navigation boundary.
type Decision int

const (
	// ShowLoading suspends the boundary until rehydration completes.
	ShowLoading Decision = iota
	// RedirectToLogin sends an anonymous visitor to the login page.
	RedirectToLogin
	// RedirectToRoleHome sends an authenticated user of the wrong role
	// to their own landing page, not back to login.
	RedirectToRoleHome
	// Render lets the protected content through.
	Render
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "show_loading"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToRoleHome:
		return "redirect_to_role_home"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Result pairs a decision with the role whose home page to redirect to.
// Role is set only for RedirectToRoleHome.
type Result struct {
	Decision Decision
	Role     authorization.UserRole
}

// Target returns the route a redirect decision points at, or "" when the
// decision is not a redirect.
func (r Result) Target() string {
	switch r.Decision {
	case RedirectToLogin:
		return "/login"
	case RedirectToRoleHome:
		return r.Role.HomeRoute()
	default:
		return ""
	}
}

// Evaluate decides a boundary. Loading wins over everything: until the
// first rehydration settles, no other decision can be trusted.
func Evaluate(state session.State, required authorization.UserRole) Result {
	if state.Loading {
		return Result{Decision: ShowLoading}
	}
	if state.User == nil {
		return Result{Decision: RedirectToLogin}
	}
	if state.User.Role != required {
		return Result{Decision: RedirectToRoleHome, Role: state.User.Role}
	}
	return Result{Decision: Render}
}
