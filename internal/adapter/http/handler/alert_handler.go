package handler

import (
	"net/http"

	. "doneapp/internal/adapter/http/helper"
	"doneapp/internal/adapter/http/middleware"
	"doneapp/internal/core/model/response"
	"doneapp/internal/core/port"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	todos  port.TodoService
	center port.AlertCenter
}

func NewAlertHandler(todos port.TodoService, center port.AlertCenter) *AlertHandler {
	return &AlertHandler{
		todos:  todos,
		center: center,
	}
}

// GetPendingAlerts lists the pending device alerts derived from the session
// user's todos. The center itself is not user scoped, so the handler filters
// by the alert identifiers the user's todos can produce.
func (a *AlertHandler) GetPendingAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	todos, err := a.todos.List(ctx, sess)

	if err != nil {
		SendInternalError(c, "Error getting alerts")
		return
	}

	owned := make(map[string]bool, len(todos)*2)

	for _, todo := range todos {
		owned[todo.TimeAlertID()] = true
		owned[todo.LocationAlertID()] = true
	}

	data := make([]response.AlertResponse, 0)

	for _, req := range a.center.Pending() {
		if !owned[req.ID] {
			continue
		}

		alert := response.AlertResponse{
			ID:     req.ID,
			Title:  req.Title,
			Body:   req.Body,
			FireAt: req.FireAt,
		}

		if req.Region != nil {
			alert.Region = &response.RegionResponse{
				Latitude:      req.Region.Latitude,
				Longitude:     req.Region.Longitude,
				Radius:        req.Region.Radius,
				NotifyOnEntry: req.Region.NotifyOnEntry,
				NotifyOnExit:  req.Region.NotifyOnExit,
			}
		}

		data = append(data, alert)
	}

	SendSuccess(c, http.StatusOK, data)
}
