package repository

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"cocktail-bar-api/models"
)

// The memory repositories back the "memory" database driver and the tests.
// Values are copied on the way in and out so callers never share slices
// with the store.

type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uint]models.User)}
}

func (r *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uint) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryUserRepository) FindByIdentifier(_ context.Context, identifier string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.Identifier != nil && *u.Identifier == identifier })
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.Email != nil && *u.Email == email })
}

func (r *MemoryUserRepository) FindByGoogleID(_ context.Context, googleID string) (models.User, error) {
	return r.find(func(u models.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *MemoryUserRepository) find(match func(models.User) bool) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflicts(user) {
		return ErrConflict
	}
	r.nextID++
	now := time.Now().UTC()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[user.ID]
	if !ok {
		return ErrNotFound
	}
	if r.conflicts(user) {
		return ErrConflict
	}
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// conflicts must be called with the lock held.
func (r *MemoryUserRepository) conflicts(user *models.User) bool {
	same := func(a, b *string) bool { return a != nil && b != nil && *a == *b }
	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if same(u.Identifier, user.Identifier) || same(u.Email, user.Email) || same(u.GoogleID, user.GoogleID) {
			return true
		}
	}
	return false
}

type MemoryCocktailRepository struct {
	mu        sync.RWMutex
	nextID    uint
	cocktails map[uint]models.Cocktail
}

func NewMemoryCocktailRepository() *MemoryCocktailRepository {
	return &MemoryCocktailRepository{cocktails: make(map[uint]models.Cocktail)}
}

func copyCocktail(c models.Cocktail) models.Cocktail {
	if c.Ingredients != nil {
		c.Ingredients = append([]string(nil), c.Ingredients...)
	}
	return c
}

func (r *MemoryCocktailRepository) List(_ context.Context, filter CocktailFilter) ([]models.Cocktail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]models.Cocktail, 0, len(r.cocktails))
	for _, c := range r.cocktails {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Available != nil && c.IsAvailable != *filter.Available {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		out = append(out, copyCocktail(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryCocktailRepository) GetByID(_ context.Context, id uint) (models.Cocktail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cocktails[id]
	if !ok {
		return models.Cocktail{}, ErrNotFound
	}
	return copyCocktail(c), nil
}

func (r *MemoryCocktailRepository) MissingIDs(_ context.Context, ids []uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []uint
	for _, id := range ids {
		if _, ok := r.cocktails[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *MemoryCocktailRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.cocktails)), nil
}

func (r *MemoryCocktailRepository) Create(_ context.Context, cocktail *models.Cocktail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	cocktail.ID = r.nextID
	cocktail.CreatedAt = now
	cocktail.UpdatedAt = now
	r.cocktails[cocktail.ID] = copyCocktail(*cocktail)
	return nil
}

func (r *MemoryCocktailRepository) Update(_ context.Context, cocktail *models.Cocktail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.cocktails[cocktail.ID]
	if !ok {
		return ErrNotFound
	}
	cocktail.CreatedAt = existing.CreatedAt
	cocktail.UpdatedAt = time.Now().UTC()
	r.cocktails[cocktail.ID] = copyCocktail(*cocktail)
	return nil
}

func (r *MemoryCocktailRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cocktails[id]; !ok {
		return ErrNotFound
	}
	delete(r.cocktails, id)
	return nil
}

type MemoryOrderRepository struct {
	mu            sync.RWMutex
	nextID        uint
	nextHistoryID uint
	orders        map[uint]models.Order
	history       map[uint][]models.OrderStatusHistory
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:  make(map[uint]models.Order),
		history: make(map[uint][]models.OrderStatusHistory),
	}
}

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	o.StatusHistory = nil
	return o
}

func (r *MemoryOrderRepository) List(_ context.Context, filter OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.TableNumber > 0 && o.TableNumber != filter.TableNumber {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryOrderRepository) GetByID(_ context.Context, id uint) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order, entry models.OrderStatusHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()
	order.ID = r.nextID
	order.CreatedAt = now
	order.UpdatedAt = now
	numberItems(order.Items)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = copyOrder(*order)

	entry.OrderID = order.ID
	r.appendHistory(entry)
	return nil
}

func (r *MemoryOrderRepository) Replace(_ context.Context, order *models.Order, entry *models.OrderStatusHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[order.ID]
	if !ok {
		return ErrNotFound
	}
	existing.TableNumber = order.TableNumber
	existing.Status = order.Status
	existing.Items = append([]models.OrderItem(nil), order.Items...)
	numberItems(existing.Items)
	for i := range existing.Items {
		existing.Items[i].OrderID = existing.ID
	}
	existing.UpdatedAt = time.Now().UTC()
	r.orders[order.ID] = existing

	if entry != nil {
		entry.OrderID = order.ID
		r.appendHistory(*entry)
	}
	*order = copyOrder(existing)
	return nil
}

func (r *MemoryOrderRepository) UpdateStatus(_ context.Context, id uint, entry models.OrderStatusHistory) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	entry.OrderID = id
	entry.FromStatus = existing.Status
	existing.Status = entry.ToStatus
	existing.UpdatedAt = time.Now().UTC()
	r.orders[id] = existing
	r.appendHistory(entry)
	return copyOrder(existing), nil
}

func (r *MemoryOrderRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrNotFound
	}
	delete(r.orders, id)
	delete(r.history, id)
	return nil
}

func (r *MemoryOrderRepository) History(_ context.Context, id uint) ([]models.OrderStatusHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.orders[id]; !ok {
		return nil, ErrNotFound
	}
	return append([]models.OrderStatusHistory(nil), r.history[id]...), nil
}

func (r *MemoryOrderRepository) CountByStatus(_ context.Context) (map[models.OrderStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.OrderStatus]int64)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

// appendHistory must be called with the write lock held.
func (r *MemoryOrderRepository) appendHistory(entry models.OrderStatusHistory) {
	r.nextHistoryID++
	entry.ID = r.nextHistoryID
	entry.CreatedAt = time.Now().UTC()
	r.history[entry.OrderID] = append(r.history[entry.OrderID], entry)
}

type MemoryAPIKeyRepository struct {
	mu     sync.RWMutex
	nextID uint
	keys   []models.APIKey
}

func NewMemoryAPIKeyRepository() *MemoryAPIKeyRepository {
	return &MemoryAPIKeyRepository{}
}

func (r *MemoryAPIKeyRepository) Create(_ context.Context, key *models.APIKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.keys {
		if bytes.Equal(k.KeyHash, key.KeyHash) {
			return ErrConflict
		}
	}
	r.nextID++
	key.ID = r.nextID
	key.CreatedAt = time.Now().UTC()
	r.keys = append(r.keys, *key)
	return nil
}

func (r *MemoryAPIKeyRepository) FindByHash(_ context.Context, hash []byte) (models.APIKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.keys {
		if bytes.Equal(k.KeyHash, hash) {
			return k, nil
		}
	}
	return models.APIKey{}, ErrNotFound
}
