// Package auth decides whether a decoded session may access a route. The
// decisions here drive navigation only; the GraphQL backend re-checks
// authorization on every operation it executes.
package auth

import (
	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/token"
)

// Decision is the outcome of evaluating a session against a route's
// required role
type Decision int

const (
	// Allow grants access to the route
	Allow Decision = iota
	// RedirectLogin means no session is present
	RedirectLogin
	// RedirectHome means a session is present but its role does not match
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

// RoleAny marks a route that needs a session but no specific role
const RoleAny = domain.Role("")

// Evaluate applies the access decision table. A nil claims value means no
// session. Role comparison is case-insensitive.
//
//	session absent            -> RedirectLogin
//	session present, no role  -> Allow
//	session present, match    -> Allow
//	session present, mismatch -> RedirectHome
func Evaluate(claims *token.Claims, required domain.Role) Decision {
	if claims == nil {
		return RedirectLogin
	}
	if required == RoleAny {
		return Allow
	}
	if claims.Role.Matches(required) {
		return Allow
	}
	return RedirectHome
}
