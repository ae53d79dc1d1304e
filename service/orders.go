package service

import (
	"context"
	"fmt"
	"strings"

	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
	"cocktail-bar-api/statemachine"
)

type OrderItemInput struct {
	CocktailID uint
	Quantity   int
}

// OrderInput is the full replaceable content of an order. Status is ignored
// on create.
type OrderInput struct {
	TableNumber int
	Items       []OrderItemInput
	Status      models.OrderStatus
}

type OrderService struct {
	orders                repository.OrderRepository
	cocktails             repository.CocktailRepository
	requireKnownCocktails bool
}

func NewOrderService(orders repository.OrderRepository, cocktails repository.CocktailRepository, requireKnownCocktails bool) *OrderService {
	return &OrderService{
		orders:                orders,
		cocktails:             cocktails,
		requireKnownCocktails: requireKnownCocktails,
	}
}

// Create places a new order. Anyone may call it; actor is nil for anonymous
// customers.
func (s *OrderService) Create(ctx context.Context, in OrderInput, actor *uint) (models.Order, error) {
	items, err := s.validate(ctx, in)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		TableNumber: in.TableNumber,
		Items:       items,
		Status:      statemachine.InitialStatus,
	}
	entry := models.OrderStatusHistory{
		ToStatus:  statemachine.InitialStatus,
		ChangedBy: actor,
		Note:      "order placed",
	}
	if err := s.orders.Create(ctx, &order, entry); err != nil {
		return models.Order{}, storeErr("order", err)
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !statemachine.IsDeclared(filter.Status) {
		return nil, validationf("unknown status filter %q", filter.Status)
	}
	orders, err := s.orders.List(ctx, filter)
	return orders, storeErr("order", err)
}

func (s *OrderService) Get(ctx context.Context, id uint) (models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	return order, storeErr("order", err)
}

// Update replaces table, items and status. The payload is validated before
// the order is looked up. An empty status keeps the current one.
func (s *OrderService) Update(ctx context.Context, id uint, in OrderInput, actor uint) (models.Order, error) {
	items, err := s.validate(ctx, in)
	if err != nil {
		return models.Order{}, err
	}
	if in.Status != "" && !statemachine.IsDeclared(in.Status) {
		return models.Order{}, validationf("%v", statemachine.CanTransition("", in.Status))
	}

	current, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return models.Order{}, storeErr("order", err)
	}

	next := current.Status
	var entry *models.OrderStatusHistory
	if in.Status != "" && in.Status != current.Status {
		if err := statemachine.CanTransition(current.Status, in.Status); err != nil {
			return models.Order{}, validationf("%v", err)
		}
		next = in.Status
		entry = &models.OrderStatusHistory{
			FromStatus: current.Status,
			ToStatus:   next,
			ChangedBy:  &actor,
			Note:       "order updated",
		}
	}

	order := models.Order{
		ID:          id,
		TableNumber: in.TableNumber,
		Items:       items,
		Status:      next,
	}
	if err := s.orders.Replace(ctx, &order, entry); err != nil {
		return models.Order{}, storeErr("order", err)
	}
	return order, nil
}

// UpdateStatus moves an order to status and records who did it.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus, note string, actor uint) (models.Order, error) {
	status = models.OrderStatus(strings.TrimSpace(string(status)))
	if status == "" {
		return models.Order{}, validationf("status is required")
	}
	if !statemachine.IsDeclared(status) {
		return models.Order{}, validationf("%v", statemachine.CanTransition("", status))
	}

	current, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return models.Order{}, storeErr("order", err)
	}
	if err := statemachine.CanTransition(current.Status, status); err != nil {
		return models.Order{}, validationf("%v", err)
	}
	if current.Status == status {
		return current, nil
	}

	order, err := s.orders.UpdateStatus(ctx, id, models.OrderStatusHistory{
		ToStatus:  status,
		ChangedBy: &actor,
		Note:      note,
	})
	return order, storeErr("order", err)
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return storeErr("order", s.orders.Delete(ctx, id))
}

func (s *OrderService) History(ctx context.Context, id uint) ([]models.OrderStatusHistory, error) {
	history, err := s.orders.History(ctx, id)
	return history, storeErr("order", err)
}

// OrderSummary counts orders per status. Every declared status is present.
type OrderSummary struct {
	Total    int64                        `json:"total"`
	ByStatus map[models.OrderStatus]int64 `json:"by_status"`
}

func (s *OrderService) Summary(ctx context.Context) (OrderSummary, error) {
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return OrderSummary{}, storeErr("order", err)
	}

	summary := OrderSummary{ByStatus: make(map[models.OrderStatus]int64)}
	for _, status := range statemachine.DeclaredStatuses() {
		summary.ByStatus[status] = 0
	}
	for status, n := range counts {
		summary.ByStatus[status] += n
		summary.Total += n
	}
	return summary, nil
}

func (s *OrderService) validate(ctx context.Context, in OrderInput) ([]models.OrderItem, error) {
	if in.TableNumber <= 0 {
		return nil, validationf("table_number must be a positive integer")
	}
	if len(in.Items) == 0 {
		return nil, validationf("cocktails must contain at least one item")
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	ids := make([]uint, 0, len(in.Items))
	for i, item := range in.Items {
		if item.CocktailID == 0 {
			return nil, validationf("cocktails[%d].cocktail_id is required", i)
		}
		if item.Quantity < 1 {
			return nil, validationf("cocktails[%d].quantity must be at least 1", i)
		}
		items = append(items, models.OrderItem{CocktailID: item.CocktailID, Quantity: item.Quantity})
		ids = append(ids, item.CocktailID)
	}

	if s.requireKnownCocktails {
		missing, err := s.cocktails.MissingIDs(ctx, ids)
		if err != nil {
			return nil, storeErr("cocktail", err)
		}
		if len(missing) > 0 {
			return nil, validationf("unknown cocktail ids %s", joinIDs(missing))
		}
	}
	return items, nil
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}
