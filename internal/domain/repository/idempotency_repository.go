package repository

import (
	"context"
	"time"

	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Update(ctx context.Context, key *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context, before time.Time) error
}
