package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"cocktail-bar-api/statemachine"
)

// GetStateMachineInfo describes the order lifecycle
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"initial_status":  statemachine.InitialStatus,
		"statuses":        statemachine.DeclaredStatuses(),
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": []string{},
		"actor":           "employee or superuser",
		"description":     "Any declared status may move to any other declared status",
	})
}

// Health pings every registered dependency. It always answers 200; a failed
// dependency only marks the status as degraded.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "healthy"
	deps := make(gin.H, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Error().Err(err).Str("dependency", name).Msg("health check failed")
			deps[name] = "error"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"service":      "Cocktail Bar API",
		"environment":  h.environment,
		"dependencies": deps,
	})
}
