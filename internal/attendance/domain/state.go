package domain

// State is a step of one attendance attempt.
type State string

// Attendance attempt states. Every state may move to StateRejected.
const (
	StateTokenPresented State = "token_presented"
	StateSessionActive  State = "session_active"
	StateAuthorized     State = "authorized"
	StateClosed         State = "closed"
	StateRejected       State = "rejected"
)
