package payment

import "time"

type Payment struct {
	ID             int       `db:"id" json:"id"`
	SubscriptionID int       `db:"subscription_id" json:"subscription_id"`
	PaidAt         time.Time `db:"paid_at" json:"paid_at"`
	AmountCents    int64     `db:"amount_cents" json:"amount_cents"`
	Method         string    `db:"method" json:"method"`
	Status         string    `db:"status" json:"status"`
	Receipt        *string   `db:"receipt" json:"receipt,omitempty"`
}

// PaymentDetail joins member and plan names for the payment history view.
type PaymentDetail struct {
	Payment
	FirstName string  `db:"first_name" json:"first_name"`
	LastName  string  `db:"last_name" json:"last_name"`
	Email     *string `db:"email" json:"email,omitempty"`
	PlanName  string  `db:"plan_name" json:"plan_name"`
}

type RecordPaymentRequest struct {
	SubscriptionID int    `json:"subscription_id" binding:"required"`
	AmountCents    int64  `json:"amount_cents" binding:"required,gt=0"`
	Method         string `json:"method" binding:"required"`
	Receipt        string `json:"receipt"`
}
