package member

import "time"

type Member struct {
	ID         int       `db:"id" json:"id"`
	TaxID      string    `db:"tax_id" json:"tax_id"`
	FirstName  string    `db:"first_name" json:"first_name"`
	LastName   string    `db:"last_name" json:"last_name"`
	MiddleName *string   `db:"middle_name" json:"middle_name,omitempty"`
	BirthDate  time.Time `db:"birth_date" json:"birth_date"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Address    *string   `db:"address" json:"address,omitempty"`
	Active     bool      `db:"active" json:"active"`
}

type CreateMemberRequest struct {
	TaxID      string `json:"tax_id" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	BirthDate  string `json:"birth_date" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address"`
}

type UpdateMemberRequest struct {
	TaxID      string `json:"tax_id" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	BirthDate  string `json:"birth_date" binding:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address"`
}
