// Package guard decides what to render for a requested route given the
// current session state. It is the client-side counterpart of the server's
// auth middleware: it never grants access by itself, only avoids flashing
// protected views at users who will be rejected anyway.
package guard

import "clubhub-service/internal/client/session"

// Access is the entry requirement of a route.
type Access int

const (
	// AccessPublic routes render for everyone.
	AccessPublic Access = iota
	// AccessAuthenticated routes require a live session.
	AccessAuthenticated
)

// Route describes a navigable view and its entry requirement. Role is only
// consulted when Access is AccessAuthenticated; empty means any role.
type Route struct {
	Name   string
	Access Access
	Role   string
}

// Action tells the caller what to render.
type Action int

const (
	// Render means show the requested view.
	Render Action = iota
	// ShowLoading means the session is still being restored; show a
	// neutral placeholder and re-resolve once restoration settles.
	ShowLoading
	// RedirectLogin means send the user to the login view; From names the
	// route to return to after a successful login.
	RedirectLogin
	// ShowDenied means the user is logged in but lacks the required role.
	ShowDenied
)

// Decision is the outcome of resolving a route.
type Decision struct {
	Action Action
	// From is set on RedirectLogin so login can bounce back afterwards.
	From string
}

// Resolve maps a requested route and the session's current state to a
// render decision. The authentication check always runs before the role
// check: an anonymous user heading for an admin view is sent to login, not
// shown a denial for a role they never proved they lack.
func Resolve(sess *session.Session, route Route) Decision {
	if route.Access == AccessPublic {
		return Decision{Action: Render}
	}

	switch sess.State() {
	case session.StateUnknown, session.StateRestoring:
		return Decision{Action: ShowLoading}
	case session.StateAuthenticated:
	default:
		return Decision{Action: RedirectLogin, From: route.Name}
	}

	if route.Role != "" {
		user := sess.User()
		if user == nil || user.Role != route.Role {
			return Decision{Action: ShowDenied}
		}
	}
	return Decision{Action: Render}
}
