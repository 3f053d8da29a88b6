package postgres

// PostgreSQL error codes
const (
	// PgErrCodeUniqueViolation is raised when an insert hits a unique constraint
	PgErrCodeUniqueViolation = "23505"
)

// Participant roles within a debate
const (
	roleChallenger = "CHALLENGER"
	roleOpponent   = "OPPONENT"
	roleMember     = "MEMBER"
)
