package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/hr-profile/internal/domain/workexperience"
	"github.com/riskibarqy/hr-profile/internal/usecase"
)

const maxWorkExperienceBatch = 100

type workExperienceDTO struct {
	UserWorkExpID   string    `json:"user_work_exp_id"`
	GUID            string    `json:"guid"`
	UserID          string    `json:"user_id"`
	OrgName         string    `json:"org_name"`
	Description     *string   `json:"description"`
	Position        *string   `json:"position"`
	WorkBeginDate   *string   `json:"work_begin_date"`
	WorkEndDate     *string   `json:"work_end_date"`
	IsWorkContinues bool      `json:"is_work_continues"`
	ShowRowInfo     bool      `json:"show_row_info"`
	ProfIDs         []string  `json:"prof_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type workHistoryDTO struct {
	HavingWorkExperience bool                `json:"having_work_experience"`
	PlacesOfWork         []workExperienceDTO `json:"places_of_work"`
}

type workExperienceRequest struct {
	UserWorkExpID   string   `json:"user_work_exp_id" validate:"omitempty,max=64"`
	OrgName         string   `json:"org_name" validate:"required,max=255"`
	Description     *string  `json:"description" validate:"omitempty,max=4000"`
	Position        *string  `json:"position" validate:"omitempty,max=255"`
	WorkBeginDate   string   `json:"work_begin_date" validate:"omitempty,datetime=2006-01-02"`
	WorkEndDate     string   `json:"work_end_date" validate:"omitempty,datetime=2006-01-02"`
	IsWorkContinues bool     `json:"is_work_continues"`
	ShowRowInfo     *bool    `json:"show_row_info"`
	ProfIDs         []string `json:"prof_ids" validate:"omitempty,dive,required,max=64"`
}

type replaceWorkExperienceRequest struct {
	HavingWorkExperience *bool                   `json:"having_work_experience" validate:"required"`
	PlacesOfWork         []workExperienceRequest `json:"places_of_work" validate:"max=100,dive"`
}

type workExperienceBatchRequest struct {
	PlacesOfWork []workExperienceRequest `json:"places_of_work" validate:"required,min=1,max=100,dive"`
}

type deleteWorkExperienceRequest struct {
	UserWorkExpID string `json:"user_work_exp_id" validate:"required,max=64"`
}

func (h *Handler) GetWorkHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWorkHistory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	history, err := h.workExperienceService.GetWorkHistoryWithSpecializations(ctx, principal.UserID)
	if err != nil {
		h.logFailure(ctx, "get work history failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, workHistoryDTO{
		HavingWorkExperience: history.HavingWorkExperience,
		PlacesOfWork:         workExperiencesToDTO(history.PlacesOfWork),
	})
}

func (h *Handler) ReplaceWorkHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceWorkHistory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req replaceWorkExperienceRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	entries, err := workExperienceEntriesFromRequest(req.PlacesOfWork)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.workExperienceService.ReplaceAllForUser(ctx, principal.UserID, entries, *req.HavingWorkExperience); err != nil {
		h.logFailure(ctx, "replace work history failed", err, "user_id", principal.UserID, "entries", len(entries))
		writeError(ctx, w, err)
		return
	}

	history, err := h.workExperienceService.GetWorkHistoryWithSpecializations(ctx, principal.UserID)
	if err != nil {
		h.logFailure(ctx, "reload work history failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, workHistoryDTO{
		HavingWorkExperience: history.HavingWorkExperience,
		PlacesOfWork:         workExperiencesToDTO(history.PlacesOfWork),
	})
}

func (h *Handler) ListWorkExperience(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWorkExperience")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.workExperienceService.ListAllForUser(ctx, principal.UserID)
	if err != nil {
		h.logFailure(ctx, "list work experience failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, workExperiencesToDTO(items))
}

func (h *Handler) AddWorkExperience(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddWorkExperience")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, ok := h.decodeWorkExperienceBatch(ctx, w, r)
	if !ok {
		return
	}
	for i := range entries {
		entries[i].UserID = principal.UserID
	}

	items, err := h.workExperienceService.BulkAdd(ctx, entries)
	if err != nil {
		h.logFailure(ctx, "add work experience failed", err, "user_id", principal.UserID, "entries", len(entries))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, workExperiencesToDTO(items))
}

func (h *Handler) UpdateWorkExperience(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateWorkExperience")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, ok := h.decodeWorkExperienceBatch(ctx, w, r)
	if !ok {
		return
	}

	items, err := h.workExperienceService.BulkUpdate(ctx, principal.UserID, entries)
	if err != nil {
		h.logFailure(ctx, "update work experience failed", err, "user_id", principal.UserID, "entries", len(entries))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, workExperiencesToDTO(items))
}

func (h *Handler) DeleteWorkExperience(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteWorkExperience")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req deleteWorkExperienceRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.workExperienceService.DeleteOneAndReturnList(ctx, principal.UserID, req.UserWorkExpID)
	if err != nil {
		h.logFailure(ctx, "delete work experience failed", err, "user_id", principal.UserID, "user_work_exp_id", req.UserWorkExpID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, workExperiencesToDTO(items))
}

func (h *Handler) DeleteAllWorkExperience(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAllWorkExperience")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.workExperienceService.DeleteAllForUser(ctx, principal.UserID); err != nil {
		h.logFailure(ctx, "delete all work experience failed", err, "user_id", principal.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, []workExperienceDTO{})
}

func (h *Handler) decodeWorkExperienceBatch(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]workexperience.Entry, bool) {
	var req workExperienceBatchRequest
	if err := decodeJSONBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return nil, false
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return nil, false
	}
	entries, err := workExperienceEntriesFromRequest(req.PlacesOfWork)
	if err != nil {
		writeError(ctx, w, err)
		return nil, false
	}

	return entries, true
}

func workExperienceEntriesFromRequest(items []workExperienceRequest) ([]workexperience.Entry, error) {
	if len(items) > maxWorkExperienceBatch {
		return nil, fmt.Errorf("%w: at most %d work experiences per request", usecase.ErrInvalidInput, maxWorkExperienceBatch)
	}

	out := make([]workexperience.Entry, 0, len(items))
	for i, item := range items {
		begin, err := parseOptionalDate(item.WorkBeginDate)
		if err != nil {
			return nil, fmt.Errorf("%w: places_of_work[%d].work_begin_date: %v", usecase.ErrInvalidInput, i, err)
		}
		end, err := parseOptionalDate(item.WorkEndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: places_of_work[%d].work_end_date: %v", usecase.ErrInvalidInput, i, err)
		}
		showRowInfo := true
		if item.ShowRowInfo != nil {
			showRowInfo = *item.ShowRowInfo
		}

		out = append(out, workexperience.Entry{
			WorkExperience: workexperience.WorkExperience{
				ID:              strings.TrimSpace(item.UserWorkExpID),
				OrgName:         item.OrgName,
				Description:     item.Description,
				Position:        item.Position,
				BeginDate:       begin,
				EndDate:         end,
				IsWorkContinues: item.IsWorkContinues,
				ShowRowInfo:     showRowInfo,
			},
			SpecializationIDs: item.ProfIDs,
		})
	}

	return out, nil
}

func workExperiencesToDTO(items []workexperience.Entry) []workExperienceDTO {
	out := make([]workExperienceDTO, 0, len(items))
	for _, item := range items {
		profIDs := item.SpecializationIDs
		if profIDs == nil {
			profIDs = []string{}
		}
		out = append(out, workExperienceDTO{
			UserWorkExpID:   item.ID,
			GUID:            item.GUID,
			UserID:          item.UserID,
			OrgName:         item.OrgName,
			Description:     item.Description,
			Position:        item.Position,
			WorkBeginDate:   formatOptionalDate(item.BeginDate),
			WorkEndDate:     formatOptionalDate(item.EndDate),
			IsWorkContinues: item.IsWorkContinues,
			ShowRowInfo:     item.ShowRowInfo,
			ProfIDs:         profIDs,
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.UpdatedAt,
		})
	}
	return out
}

func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", value)
	}
	return &parsed, nil
}

func formatOptionalDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.UTC().Format(time.DateOnly)
	return &formatted
}
