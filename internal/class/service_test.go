package class

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) CreateType(ctx context.Context, name string, description *string) (*ClassType, error) {
	args := m.Called(ctx, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClassType), args.Error(1)
}

func (m *MockRepo) ListTypes(ctx context.Context) ([]ClassType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassType), args.Error(1)
}

func (m *MockRepo) DeleteType(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) CreateSession(ctx context.Context, s *Session) (*Session, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockRepo) FindSessionByID(ctx context.Context, id int) (*Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockRepo) ListSessions(ctx context.Context, filter SessionFilter) ([]SessionDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SessionDetail), args.Error(1)
}

func validSessionRequest() CreateSessionRequest {
	return CreateSessionRequest{
		TrainerID:       1,
		ClassTypeID:     2,
		Name:            "Morning Spinning",
		StartsAt:        "2026-10-01T09:00:00Z",
		DurationMinutes: 45,
		Capacity:        12,
	}
}

func TestCreateSessionValidation(t *testing.T) {
	svc := NewService(new(MockRepo))

	t.Run("Bad timestamp", func(t *testing.T) {
		req := validSessionRequest()
		req.StartsAt = "01-10-2026 09:00"
		_, err := svc.CreateSession(context.Background(), req)
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("Blank name", func(t *testing.T) {
		req := validSessionRequest()
		req.Name = "   "
		_, err := svc.CreateSession(context.Background(), req)
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("Zero capacity", func(t *testing.T) {
		req := validSessionRequest()
		req.Capacity = 0
		_, err := svc.CreateSession(context.Background(), req)
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})
}

func TestCreateSessionSuccess(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	startsAt := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	repo.On("CreateSession", mock.Anything, mock.MatchedBy(func(s *Session) bool {
		return s.Name == "Morning Spinning" && s.StartsAt.Equal(startsAt) && s.Description == nil
	})).Return(&Session{ID: 7, Name: "Morning Spinning", StartsAt: startsAt}, nil)

	created, err := svc.CreateSession(context.Background(), validSessionRequest())
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	repo.AssertExpectations(t)
}

func TestCreateTypeTrimsInput(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	repo.On("CreateType", mock.Anything, "Yoga", (*string)(nil)).
		Return(&ClassType{ID: 3, Name: "Yoga"}, nil)

	ct, err := svc.CreateType(context.Background(), CreateClassTypeRequest{Name: "  Yoga  "})
	require.NoError(t, err)
	assert.Equal(t, "Yoga", ct.Name)
	repo.AssertExpectations(t)
}

func TestListSessionsFilter(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	t.Run("Defaults to all", func(t *testing.T) {
		repo.On("ListSessions", mock.Anything, FilterAll).Return([]SessionDetail{}, nil).Once()
		_, err := svc.ListSessions(context.Background(), "")
		require.NoError(t, err)
	})

	t.Run("Normalizes case", func(t *testing.T) {
		repo.On("ListSessions", mock.Anything, FilterAvailable).Return([]SessionDetail{}, nil).Once()
		_, err := svc.ListSessions(context.Background(), " Available ")
		require.NoError(t, err)
	})

	t.Run("Rejects unknown filter", func(t *testing.T) {
		_, err := svc.ListSessions(context.Background(), "tomorrow")
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	repo.AssertExpectations(t)
}

func TestGetSession(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo)

	t.Run("Found", func(t *testing.T) {
		want := &Session{ID: 3, Name: "Morning Spin", Capacity: 10}
		repo.On("FindSessionByID", mock.Anything, 3).Return(want, nil).Once()

		got, err := svc.GetSession(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Missing", func(t *testing.T) {
		repo.On("FindSessionByID", mock.Anything, 99).Return(nil, ErrSessionNotFound).Once()

		_, err := svc.GetSession(context.Background(), 99)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	repo.AssertExpectations(t)
}
