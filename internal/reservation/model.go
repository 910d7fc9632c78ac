package reservation

import "time"

type Reservation struct {
	ID             int       `db:"id" json:"id"`
	MemberID       int       `db:"member_id" json:"member_id"`
	ClassSessionID int       `db:"class_session_id" json:"class_session_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	Status         string    `db:"status" json:"status"`
	Attended       bool      `db:"attended" json:"attended"`
}

// ReservationDetail joins session and member data for list views.
type ReservationDetail struct {
	Reservation
	SessionName string    `db:"session_name" json:"session_name"`
	StartsAt    time.Time `db:"starts_at" json:"starts_at"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       *string   `db:"email" json:"email,omitempty"`
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)
