// Package repository holds the storage interfaces and their gorm and
// in-memory implementations. Writes are last-write-wins; there is no
// optimistic locking.
package repository

import (
	"context"
	"errors"

	"cocktail-bar-api/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (models.User, error)
	// Create and Update fail with ErrConflict when the identifier, email or
	// google id already belongs to another user.
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type CocktailFilter struct {
	Category  models.CocktailCategory
	Available *bool
	Search    string
}

func (f CocktailFilter) IsZero() bool {
	return f.Category == "" && f.Available == nil && f.Search == ""
}

type CocktailRepository interface {
	// List returns cocktails newest first.
	List(ctx context.Context, filter CocktailFilter) ([]models.Cocktail, error)
	GetByID(ctx context.Context, id uint) (models.Cocktail, error)
	// MissingIDs returns the ids that have no cocktail, in input order.
	MissingIDs(ctx context.Context, ids []uint) ([]uint, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, cocktail *models.Cocktail) error
	Update(ctx context.Context, cocktail *models.Cocktail) error
	Delete(ctx context.Context, id uint) error
}

type OrderFilter struct {
	Status      models.OrderStatus
	TableNumber int
}

type OrderRepository interface {
	// List returns orders newest first, items in submitted order.
	List(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (models.Order, error)
	// Create stores the order, its items and the initial history entry
	// atomically.
	Create(ctx context.Context, order *models.Order, entry models.OrderStatusHistory) error
	// Replace overwrites table number, items and status. entry is recorded
	// when non-nil.
	Replace(ctx context.Context, order *models.Order, entry *models.OrderStatusHistory) error
	// UpdateStatus moves the order to entry.ToStatus and records entry with
	// FromStatus filled in from the stored order.
	UpdateStatus(ctx context.Context, id uint, entry models.OrderStatusHistory) (models.Order, error)
	Delete(ctx context.Context, id uint) error
	History(ctx context.Context, id uint) ([]models.OrderStatusHistory, error)
	CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error)
}

type APIKeyRepository interface {
	Create(ctx context.Context, key *models.APIKey) error
	FindByHash(ctx context.Context, hash []byte) (models.APIKey, error)
}
