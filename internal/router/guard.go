package router

// Decision is the guard's verdict on a single transition.
type Decision struct {
	Allow      bool
	RedirectTo string
}

var allow = Decision{Allow: true}

// Guard decides whether a transition to target may proceed. fullPath is
// the requested path including any query, preserved as the redirect-back
// parameter so login can return the operator to where they were headed.
//
// Routes requiring auth need a non-empty token; the login route bounces
// an already-authenticated session back to the root. Pure: no network, no
// blocking.
func Guard(target Route, fullPath string, tokens TokenReader) Decision {
	token := ""
	if tokens != nil {
		token = tokens.Token()
	}

	if target.Meta.RequiresAuth {
		if token != "" {
			return allow
		}
		return Decision{RedirectTo: LoginPath + "?redirect=" + fullPath}
	}

	if target.Path == LoginPath && token != "" {
		return Decision{RedirectTo: RootPath}
	}

	return allow
}
