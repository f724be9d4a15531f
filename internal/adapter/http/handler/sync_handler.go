package handler

import (
	"net/http"

	. "doneapp/internal/adapter/http/helper"
	"doneapp/internal/adapter/http/middleware"
	"doneapp/internal/core/port"
	"doneapp/internal/core/telemetry"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	svc     port.SyncService
	metrics *telemetry.AppMetrics
}

func NewSyncHandler(svc port.SyncService, metrics *telemetry.AppMetrics) *SyncHandler {
	return &SyncHandler{
		svc:     svc,
		metrics: metrics,
	}
}

// UploadAll pushes every local todo of the session user to the remote
// collection, the recovery path after the remote store was behind.
func (s *SyncHandler) UploadAll(c *gin.Context) {
	ctx := c.Request.Context()

	sess := middleware.SessionFromContext(c)

	s.svc.PushAllLocal(ctx, sess)

	s.metrics.RecordSyncOperation(ctx, "push_all", "ok")

	SendSuccess(c, http.StatusOK, nil, "All todos uploaded")
}
