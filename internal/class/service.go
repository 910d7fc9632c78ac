package class

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrSessionInvalid = errors.New("invalid session data")
	ErrInvalidFilter  = errors.New("unknown session filter")
)

type Service interface {
	CreateType(ctx context.Context, req CreateClassTypeRequest) (*ClassType, error)
	ListTypes(ctx context.Context) ([]ClassType, error)
	DeleteType(ctx context.Context, id int) error
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
	GetSession(ctx context.Context, id int) (*Session, error)
	ListSessions(ctx context.Context, filter string) ([]SessionDetail, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateType(ctx context.Context, req CreateClassTypeRequest) (*ClassType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrSessionInvalid
	}

	var description *string
	if desc := strings.TrimSpace(req.Description); desc != "" {
		description = &desc
	}

	return s.repo.CreateType(ctx, name, description)
}

func (s *service) ListTypes(ctx context.Context) ([]ClassType, error) {
	return s.repo.ListTypes(ctx)
}

func (s *service) DeleteType(ctx context.Context, id int) error {
	return s.repo.DeleteType(ctx, id)
}

func (s *service) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	if req.DurationMinutes <= 0 || req.Capacity <= 0 {
		return nil, ErrSessionInvalid
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrSessionInvalid
	}

	var description *string
	if desc := strings.TrimSpace(req.Description); desc != "" {
		description = &desc
	}

	return s.repo.CreateSession(ctx, &Session{
		TrainerID:       req.TrainerID,
		ClassTypeID:     req.ClassTypeID,
		Name:            name,
		Description:     description,
		StartsAt:        startsAt,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
	})
}

func (s *service) GetSession(ctx context.Context, id int) (*Session, error) {
	return s.repo.FindSessionByID(ctx, id)
}

func (s *service) ListSessions(ctx context.Context, filter string) ([]SessionDetail, error) {
	f := SessionFilter(strings.ToLower(strings.TrimSpace(filter)))
	if f == "" {
		f = FilterAll
	}

	switch f {
	case FilterAll, FilterUpcoming, FilterPast, FilterAvailable:
	default:
		return nil, ErrInvalidFilter
	}

	return s.repo.ListSessions(ctx, f)
}
