package plan

type Plan struct {
	ID             int     `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	PriceCents     int64   `db:"price_cents" json:"price_cents"`
	DurationMonths int     `db:"duration_months" json:"duration_months"`
	ClassLimit     *int    `db:"class_limit" json:"class_limit,omitempty"`
	Perks          *string `db:"perks" json:"perks,omitempty"`
	Description    *string `db:"description" json:"description,omitempty"`
}

type CreatePlanRequest struct {
	Name           string  `json:"name" binding:"required"`
	PriceCents     int64   `json:"price_cents" binding:"required,gt=0"`
	DurationMonths int     `json:"duration_months" binding:"required,gt=0"`
	ClassLimit     *int    `json:"class_limit,omitempty"`
	Perks          *string `json:"perks,omitempty"`
	Description    *string `json:"description,omitempty"`
}
