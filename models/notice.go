package models

// Severity distinguishes informational notices from errors in the UI.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

// Notice is a user-visible message raised outside of a direct user action,
// for example by the idle lock.
type Notice struct {
	Severity Severity
	Message  string
}
