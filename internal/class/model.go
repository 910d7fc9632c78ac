package class

import "time"

type ClassType struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}

type Session struct {
	ID              int       `db:"id" json:"id"`
	TrainerID       int       `db:"trainer_id" json:"trainer_id"`
	ClassTypeID     int       `db:"class_type_id" json:"class_type_id"`
	Name            string    `db:"name" json:"name"`
	Description     *string   `db:"description" json:"description,omitempty"`
	StartsAt        time.Time `db:"starts_at" json:"starts_at"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Capacity        int       `db:"capacity" json:"capacity"`
}

// SessionDetail is a session joined with its trainer and type plus the
// confirmed-reservation count at query time.
type SessionDetail struct {
	Session
	TrainerName   string `db:"trainer_name" json:"trainer_name"`
	TypeName      string `db:"type_name" json:"type_name"`
	ReservedCount int    `db:"reserved_count" json:"reserved_count"`
	Available     int    `json:"available"`
	IsFull        bool   `json:"is_full"`
}

type CreateClassTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateSessionRequest struct {
	TrainerID       int    `json:"trainer_id" binding:"required"`
	ClassTypeID     int    `json:"class_type_id" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	StartsAt        string `json:"starts_at" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	Capacity        int    `json:"capacity" binding:"required,min=1"`
}
