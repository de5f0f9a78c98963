package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/hr-profile/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

type profileShowBootstrapRequest struct {
	UserIDs    []string `json:"user_ids" validate:"required,min=1,max=1000,dive,required"`
	MaxWorkers int      `json:"max_workers" validate:"omitempty,min=1,max=64"`
}

type internalJobResponse struct {
	Job        string `json:"job"`
	Result     any    `json:"result"`
	DurationMS int64  `json:"duration_ms"`
	TraceID    string `json:"trace_id,omitempty"`
}

func (h *Handler) RunProfileShowBootstrapJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunProfileShowBootstrapJob")
	defer span.End()

	if h.bootstrapService == nil {
		writeError(ctx, w, fmt.Errorf("%w: profile show bootstrap is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req profileShowBootstrapRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	started := time.Now()
	result, err := h.bootstrapService.Run(ctx, usecase.BootstrapProfileShowInput{
		UserIDs:    req.UserIDs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logFailure(ctx, "run profile show bootstrap job failed", err, "users", len(req.UserIDs))
		writeError(ctx, w, err)
		return
	}

	traceID, _ := traceMetaFromContext(ctx)
	writeSuccess(ctx, w, http.StatusOK, internalJobResponse{
		Job:        "profile-show-bootstrap",
		Result:     result,
		DurationMS: time.Since(started).Milliseconds(),
		TraceID:    traceID,
	})
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
