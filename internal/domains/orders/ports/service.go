package ports

import (
	"context"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/domain"
)

// Service exposes the order store use cases to adapters.
type Service interface {
	Load(ctx context.Context) ([]domain.Order, error)
	Save(ctx context.Context) error
	Create(ctx context.Context, fields domain.Fields) (domain.Order, error)
	Get(ctx context.Context, id string) (domain.Order, error)
	Update(ctx context.Context, id string, fields domain.Fields) (domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	ReplaceAll(ctx context.Context, orders []domain.Order) error
	Import(ctx context.Context, orders []domain.Order) (int, error)
	LoadSample(ctx context.Context) error
	List(ctx context.Context) ([]domain.Order, error)
	Query(ctx context.Context, q domain.Query) ([]domain.Order, error)
	Summary(ctx context.Context) (domain.Summary, error)
	Clinics(ctx context.Context) ([]string, error)
}
