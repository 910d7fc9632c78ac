package member

import (
	"context"
	"errors"
	"strings"
	"time"
)

const minTaxIDLength = 9

var (
	ErrMissingFields   = errors.New("required fields are missing")
	ErrInvalidTaxID    = errors.New("tax ID must be at least 9 characters")
	ErrInvalidBirthDate = errors.New("birth date must be YYYY-MM-DD")
)

type Service interface {
	Register(ctx context.Context, req CreateMemberRequest) (*Member, error)
	List(ctx context.Context) ([]Member, error)
	Get(ctx context.Context, id int) (*Member, error)
	SearchByTaxID(ctx context.Context, taxID string) (*Member, error)
	Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error)
	Deactivate(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func buildMember(taxID, firstName, lastName, middleName, birthDate, phone, email, address string) (*Member, error) {
	taxID = strings.TrimSpace(taxID)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if taxID == "" || firstName == "" || lastName == "" || strings.TrimSpace(birthDate) == "" {
		return nil, ErrMissingFields
	}
	if len(taxID) < minTaxIDLength {
		return nil, ErrInvalidTaxID
	}

	born, err := time.Parse("2006-01-02", strings.TrimSpace(birthDate))
	if err != nil {
		return nil, ErrInvalidBirthDate
	}

	return &Member{
		TaxID:      taxID,
		FirstName:  firstName,
		LastName:   lastName,
		MiddleName: optional(middleName),
		BirthDate:  born,
		Phone:      optional(phone),
		Email:      optional(email),
		Address:    optional(address),
	}, nil
}

func (s *service) Register(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	m, err := buildMember(req.TaxID, req.FirstName, req.LastName, req.MiddleName, req.BirthDate, req.Phone, req.Email, req.Address)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, m)
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) Get(ctx context.Context, id int) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) SearchByTaxID(ctx context.Context, taxID string) (*Member, error) {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil, ErrMissingFields
	}
	return s.repo.FindByTaxID(ctx, taxID)
}

func (s *service) Update(ctx context.Context, id int, req UpdateMemberRequest) (*Member, error) {
	m, err := buildMember(req.TaxID, req.FirstName, req.LastName, req.MiddleName, req.BirthDate, req.Phone, req.Email, req.Address)
	if err != nil {
		return nil, err
	}
	m.ID = id

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id int) error {
	return s.repo.SoftDelete(ctx, id)
}
