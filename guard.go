package jobnest

// LoginPath is where unauthenticated navigation is redirected.
const LoginPath = "/login"

// Decision is the route guard's verdict for a navigation attempt.
type Decision int

const (
	// DecisionPending means session state is still resolving: neither allow
	// nor redirect, render a neutral pending view.
	DecisionPending Decision = iota
	// DecisionAllow renders the protected content.
	DecisionAllow
	// DecisionRedirect navigates to Outcome.RedirectTo instead.
	DecisionRedirect
)

// Outcome couples the guard decision with the redirect target when one
// applies.
type Outcome struct {
	Decision   Decision
	RedirectTo string
}

// EvaluateGuard gates access to a role-restricted view from the current
// session snapshot. An empty required role admits any authenticated user.
// Unauthenticated navigation goes to the login view; an authenticated user
// with the wrong role goes to its own role's dashboard.
func EvaluateGuard(snap Snapshot, required Role) Outcome {
	if snap.Loading {
		return Outcome{Decision: DecisionPending}
	}
	if snap.User == nil {
		return Outcome{Decision: DecisionRedirect, RedirectTo: LoginPath}
	}
	if required != "" && snap.User.Role != required {
		return Outcome{Decision: DecisionRedirect, RedirectTo: snap.User.Role.DashboardPath()}
	}
	return Outcome{Decision: DecisionAllow}
}
