package enum

// SessionStatus is the state of a cash register session
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "open"
	SessionStatusClosed SessionStatus = "closed"
)

// SessionState describes a business day from the cash register's point of view
type SessionState string

const (
	SessionStateOpen   SessionState = "open"
	SessionStateClosed SessionState = "closed"
	SessionStateNone   SessionState = "none"
)
