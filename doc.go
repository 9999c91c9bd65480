// Package jobnest implements the session/identity core of the JobNest job
// board client: the current-user lifecycle, its persistence, and the route
// gating derived from it.
//
// Session lifecycle:
//   - Manager is the single source of truth for "who is currently
//     authenticated". It reconciles two independent signals, the identity
//     provider's session events and the locally persisted profile blob, into
//     one published Profile value plus a loading flag. Construct it with an
//     IdentityService and a SessionStorage and call Start; there is no
//     ambient global.
//   - Session phases cover initializing, resolving, authenticated, and
//     anonymous flows. The transition table lives in state_machine.go.
//   - Every state-publishing write carries a monotonic generation. A write
//     that loses a race against a newer one is discarded instead of
//     clobbering fresher state.
//
// Route gating:
//   - EvaluateGuard turns a session Snapshot plus an optional required Role
//     into one of allow, redirect, or pending. The guardware subpackage
//     applies the same decision to fiber routes.
//
// The catalog subpackage holds the static posting collection and its filter;
// provider/mockidp and store/bunkv provide the default external capability
// implementations.
package jobnest
