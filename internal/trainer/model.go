package trainer

import "time"

type Trainer struct {
	ID        int       `db:"id" json:"id"`
	TaxID     string    `db:"tax_id" json:"tax_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Specialty string    `db:"specialty" json:"specialty"`
}

type CreateTrainerRequest struct {
	TaxID     string `json:"tax_id" binding:"required,min=9"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date" binding:"required"`
	Specialty string `json:"specialty" binding:"required"`
}
