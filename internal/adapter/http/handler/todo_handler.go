package handler

import (
	"errors"
	"log/slog"
	"net/http"

	. "doneapp/internal/adapter/http/helper"
	"doneapp/internal/adapter/http/middleware"
	. "doneapp/internal/adapter/http/validation"
	"doneapp/internal/core/domain"
	"doneapp/internal/core/model/request"
	"doneapp/internal/core/model/response"
	"doneapp/internal/core/port"
	"doneapp/internal/core/service"
	"doneapp/internal/core/telemetry"
	"doneapp/internal/core/util"
	"doneapp/pkg/config"
	. "doneapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type TodoHandler struct {
	svc     port.TodoService
	metrics *telemetry.AppMetrics
	Logger  *config.AppLogger
}

func NewTodoHandler(svc port.TodoService, metrics *telemetry.AppMetrics, logger *config.AppLogger) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		metrics: metrics,
		Logger:  logger,
	}
}

func (t *TodoHandler) GetAllTodos(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.GetAllTodos", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllTodos"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	sess := middleware.SessionFromContext(c)

	span.SetAttributes(attribute.Int("user.id", sess.UserID))

	todos, err := t.svc.List(ctx, sess)

	if err != nil {
		AddSpanError(span, err)

		t.Logger.Logger.Ctx(ctx).Error("Failed to get todos",
			zap.Error(err),
			zap.Int("user_id", sess.UserID),
		)

		SendInternalError(c, "Error getting todos")
		return
	}

	data := make([]response.TodoResponse, 0, len(todos))

	for _, todo := range todos {
		data = append(data, response.NewTodoResponse(todo))
	}

	span.SetAttributes(
		attribute.Int("http.status_code", http.StatusOK),
		attribute.Int("todo.count", len(data)),
	)

	SendSuccess(c, http.StatusOK, data)
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	params, err := util.ParamsToMap[request.TodoRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	todo, err := t.svc.Create(ctx, sess, todoFromParams(params))

	if err != nil {
		slog.Error("Error creating todo", "error", err)
		SendBadRequestError(c, "creation", err.Error())
		return
	}

	t.metrics.RecordTodoOperation(ctx, "create")

	SendSuccess(c, http.StatusCreated, response.NewTodoResponse(todo))
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	uid, err := uuid.Parse(c.Param("uuid"))

	if err != nil {
		SendBadRequestError(c, "uuid", "Invalid todo identifier")
		return
	}

	params, err := util.ParamsToMap[request.TodoRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	todo := todoFromParams(params)
	todo.UUID = uid

	updated, err := t.svc.Update(ctx, sess, todo)

	if err != nil {
		t.sendOperationError(c, "update", err)
		return
	}

	t.metrics.RecordTodoOperation(ctx, "update")

	c.JSON(http.StatusOK, gin.H{"data": response.NewTodoResponse(updated)})
}

func (t *TodoHandler) ToggleDone(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	updated, err := t.svc.ToggleDone(ctx, sess, c.Param("uuid"))

	if err != nil {
		t.sendOperationError(c, "toggle_done", err)
		return
	}

	t.metrics.RecordTodoOperation(ctx, "toggle_done")

	c.JSON(http.StatusOK, gin.H{"data": response.NewTodoResponse(updated)})
}

func (t *TodoHandler) ToggleUrgent(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	updated, err := t.svc.ToggleUrgent(ctx, sess, c.Param("uuid"))

	if err != nil {
		t.sendOperationError(c, "toggle_urgent", err)
		return
	}

	t.metrics.RecordTodoOperation(ctx, "toggle_urgent")

	c.JSON(http.StatusOK, gin.H{"data": response.NewTodoResponse(updated)})
}

func (t *TodoHandler) DeleteByUUID(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	if err := t.svc.Delete(ctx, sess, c.Param("uuid")); err != nil {
		t.sendOperationError(c, "delete", err)
		return
	}

	t.metrics.RecordTodoOperation(ctx, "delete")

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

// sendOperationError keeps ownership failures indistinguishable from missing
// rows so a foreign uuid leaks nothing.
func (t *TodoHandler) sendOperationError(c *gin.Context, operation string, err error) {
	if errors.Is(err, service.ErrNotOwner) {
		SendNotFoundError(c, "Todo not found")
		return
	}

	slog.Error("Todo#"+operation, "error", err)
	SendNotFoundError(c, err.Error())
}

func todoFromParams(params request.TodoRequest) domain.Todo {
	return domain.Todo{
		Title:       params.Title,
		Description: params.Description,
		IsUrgent:    params.IsUrgent,

		DueDate: params.DueDate,
		HasTime: params.HasTime,

		ReminderDate: params.ReminderDate,

		HasLocation:   params.HasLocation,
		Address:       params.Address,
		Latitude:      params.Latitude,
		Longitude:     params.Longitude,
		NotifyOnEntry: params.NotifyOnEntry,
	}
}
