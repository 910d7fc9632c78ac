package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	ListActive(ctx context.Context) ([]Member, error)
	FindByID(ctx context.Context, id int) (*Member, error)
	FindByTaxID(ctx context.Context, taxID string) (*Member, error)
	Update(ctx context.Context, m *Member) error
	SoftDelete(ctx context.Context, id int) error
}
