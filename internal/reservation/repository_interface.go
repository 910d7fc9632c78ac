package reservation

import "context"

type Repository interface {
	Reserve(ctx context.Context, memberID, sessionID int) (*Reservation, error)
	FindDetail(ctx context.Context, id int) (*ReservationDetail, error)
	Cancel(ctx context.Context, id int) error
	MarkAttendance(ctx context.Context, id int, attended bool) error
	ListByMember(ctx context.Context, memberID int) ([]ReservationDetail, error)
	ListBySession(ctx context.Context, sessionID int) ([]ReservationDetail, error)
}
