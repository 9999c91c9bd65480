package jobnest

// Phase is the session manager's lifecycle state.
//
// Valid phase graph:
//
//	initializing ──► resolving ──► authenticated ◄──► anonymous
//	                     │                              ▲
//	                     └──────────────────────────────┘
//
// There is no terminal phase; the manager lives for the process lifetime.
type Phase string

const (
	// PhaseInitializing lasts from construction until the identity provider
	// delivers its first session event.
	PhaseInitializing Phase = "initializing"
	// PhaseResolving covers the handling of that first event.
	PhaseResolving Phase = "resolving"
	// PhaseAuthenticated means a profile is published.
	PhaseAuthenticated Phase = "authenticated"
	// PhaseAnonymous means no profile is published.
	PhaseAnonymous Phase = "anonymous"
)

// validPhaseTransitions lists every allowed (from → to) pair. The only way
// out of initializing is resolving.
var validPhaseTransitions = map[Phase][]Phase{
	PhaseInitializing:  {PhaseResolving},
	PhaseResolving:     {PhaseAuthenticated, PhaseAnonymous},
	PhaseAuthenticated: {PhaseAnonymous},
	PhaseAnonymous:     {PhaseAuthenticated},
}

// CanTransition returns true when moving from → to is permitted. Staying in
// the same phase is always allowed (wholesale replacement of the published
// profile does not change phase).
func CanTransition(from, to Phase) bool {
	if from == to {
		return true
	}
	for _, next := range validPhaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
