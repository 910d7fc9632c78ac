package class

import "context"

// SessionFilter narrows ListSessions. "available" implies upcoming.
type SessionFilter string

const (
	FilterAll       SessionFilter = "all"
	FilterUpcoming  SessionFilter = "upcoming"
	FilterPast      SessionFilter = "past"
	FilterAvailable SessionFilter = "available"
)

type Repository interface {
	CreateType(ctx context.Context, name string, description *string) (*ClassType, error)
	ListTypes(ctx context.Context) ([]ClassType, error)
	DeleteType(ctx context.Context, id int) error
	CreateSession(ctx context.Context, s *Session) (*Session, error)
	FindSessionByID(ctx context.Context, id int) (*Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]SessionDetail, error)
}
