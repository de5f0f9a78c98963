package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/hr-profile/internal/platform/logging"
	"github.com/riskibarqy/hr-profile/internal/usecase"
)

type Handler struct {
	profileShowService    *usecase.ProfileShowService
	workExperienceService *usecase.WorkExperienceService
	bootstrapService      *usecase.ProfileShowBootstrapService
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	profileShowService *usecase.ProfileShowService,
	workExperienceService *usecase.WorkExperienceService,
	bootstrapService *usecase.ProfileShowBootstrapService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		profileShowService:    profileShowService,
		workExperienceService: workExperienceService,
		bootstrapService:      bootstrapService,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeJSONBody decodes a strict JSON body. An empty body is reported as
// invalid input unless allowEmpty is set.
func decodeJSONBody(r *http.Request, dst any, allowEmpty bool) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) && allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// logFailure logs at error level for failures the client cannot fix and at
// warn level otherwise.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
