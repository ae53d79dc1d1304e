package statemachine

import (
	"errors"
	"fmt"
	"strings"

	"cocktail-bar-api/models"
)

var ErrUndeclaredStatus = errors.New("undeclared order status")

// InitialStatus is forced on every new order regardless of the payload.
const InitialStatus = models.StatusPending

// declaredStatuses is the authoritative list of order states, in display order.
var declaredStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusInProgress,
	models.StatusPreparing,
	models.StatusServed,
	models.StatusCompleted,
	models.StatusCancelled,
}

// Transition defines a valid state change. Only staff may perform them.
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// Every declared status may move to every other declared status; there is
// no terminal state.
var validTransitions = func() []Transition {
	var ts []Transition
	for _, from := range declaredStatuses {
		for _, to := range declaredStatuses {
			if from != to {
				ts = append(ts, Transition{From: from, To: to})
			}
		}
	}
	return ts
}()

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

func DeclaredStatuses() []models.OrderStatus {
	out := make([]models.OrderStatus, len(declaredStatuses))
	copy(out, declaredStatuses)
	return out
}

func IsDeclared(status models.OrderStatus) bool {
	for _, s := range declaredStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition reports whether an order may move from one status to another.
// Re-applying the current status is accepted as a no-op.
func CanTransition(from, to models.OrderStatus) error {
	if !IsDeclared(to) {
		return fmt.Errorf("%w: %q (declared: %s)", ErrUndeclaredStatus, to, describe(declaredStatuses))
	}
	if from == to || transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	// Orders stored before a status was declared can still move to any
	// declared status.
	if !IsDeclared(from) {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s", from, to)
}

func describe(statuses []models.OrderStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
