package subscription

import "time"

type Subscription struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	PlanID    int       `db:"plan_id" json:"plan_id"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Status    string    `db:"status" json:"status"`
}

// SubscriptionDetail joins the plan name for member history views.
type SubscriptionDetail struct {
	Subscription
	PlanName string `db:"plan_name" json:"plan_name"`
}

// ExpiringSubscription feeds the renewal-reminder mail and the dashboard
// expiry panel.
type ExpiringSubscription struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	PlanName  string    `db:"plan_name" json:"plan_name"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     *string   `db:"email" json:"email,omitempty"`
	DaysLeft  int       `db:"days_left" json:"days_left"`
}

type CreateSubscriptionRequest struct {
	MemberID  int    `json:"member_id" binding:"required"`
	PlanID    int    `json:"plan_id" binding:"required"`
	StartDate string `json:"start_date"`
}

const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)
