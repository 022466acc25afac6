package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"eventportal/internal/delivery/http/helpers"
	"eventportal/internal/domain"
	"eventportal/internal/draft"
)

// maxUploadBytes caps the multipart request body for attachment uploads.
// Slightly above the attachment size limit so an oversized file is reported
// as a field violation instead of a dropped connection.
const maxUploadBytes = 8 << 20

// DraftController serves the event creation form session endpoints.
type DraftController struct {
	Logger      *slog.Logger
	Store       *draft.Store
	Coordinator *draft.Coordinator
}

func NewDraftController(logger *slog.Logger, store *draft.Store, coordinator *draft.Coordinator) *DraftController {
	return &DraftController{
		Logger:      logger,
		Store:       store,
		Coordinator: coordinator,
	}
}

// DraftViewResponse is the success response envelope for endpoints returning a draft view.
type DraftViewResponse struct {
	Data  *draft.View       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateDraft godoc
// @Summary Start a new event draft
// @Description Creates a draft session pre-filled with the form defaults and one empty row in each of the schedule, facilitators, and sponsors collections.
// @Tags drafts
// @Produce json
// @Success 201 {object} DraftViewResponse
// @Router /admin/drafts [post]
func (c *DraftController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	s := c.Store.Create()
	c.Logger.InfoContext(r.Context(), "draft created", "draft_id", s.ID)
	helpers.WriteJSONSuccess(w, http.StatusCreated, s.View())
}

// GetDraft godoc
// @Summary Get a draft's current state
// @Description Returns the draft's field values plus any image previews that have finished decoding, keyed by field path.
// @Tags drafts
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Success 200 {object} DraftViewResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/drafts/{draftID} [get]
func (c *DraftController) GetDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s.View())
}

// UpdateDraft godoc
// @Summary Update draft scalar fields
// @Description Sets one or more top-level form fields. The body is a flat object of field name to value, e.g. {"title": "My Event", "capacity": "250"}. Values are stored as entered; validation happens on submit.
// @Tags drafts
// @Accept json
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Param fields body object true "Field name to value"
// @Success 200 {object} DraftViewResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/drafts/{draftID} [patch]
func (c *DraftController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	var fields map[string]string
	if !helpers.DecodeAndValidate(w, r, &fields) {
		return
	}
	for name, value := range fields {
		if err := s.SetField(name, value); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s.View())
}

// DeleteDraft godoc
// @Summary Discard a draft
// @Description Deletes the draft session. Nothing is saved.
// @Tags drafts
// @Param draftID path string true "Draft session ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/drafts/{draftID} [delete]
func (c *DraftController) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if _, ok := c.session(w, r); !ok {
		return
	}
	c.Store.Delete(r.PathValue("draftID"))
	w.WriteHeader(http.StatusNoContent)
}

// AppendRow godoc
// @Summary Add a row to a repeatable collection
// @Description Appends an empty row to the named collection (schedule, facilitators, or sponsors).
// @Tags drafts
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Param collection path string true "Collection name" Enums(schedule, facilitators, sponsors)
// @Success 200 {object} DraftViewResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/drafts/{draftID}/{collection} [post]
func (c *DraftController) AppendRow(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	switch r.PathValue("collection") {
	case "schedule":
		s.AppendScheduleItem()
	case "facilitators":
		s.AppendFacilitator()
	case "sponsors":
		s.AppendSponsor()
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown collection")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s.View())
}

// UpdateRowRequest is the request body for PATCH on a collection row.
type UpdateRowRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Validate implements Validator.
func (u UpdateRowRequest) Validate() []string {
	var errs []string
	if u.Field == "" {
		errs = append(errs, "field is required")
	}
	return errs
}

// UpdateRow godoc
// @Summary Update one field of a collection row
// @Description Sets a single field of the row at index in the named collection. Out-of-range indexes are ignored.
// @Tags drafts
// @Accept json
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Param collection path string true "Collection name" Enums(schedule, facilitators, sponsors)
// @Param index path int true "Row index"
// @Param update body UpdateRowRequest true "Field and value"
// @Success 200 {object} DraftViewResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/drafts/{draftID}/{collection}/{index} [patch]
func (c *DraftController) UpdateRow(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	i, ok := parseIndex(w, r)
	if !ok {
		return
	}
	var req UpdateRowRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var err error
	switch r.PathValue("collection") {
	case "schedule":
		err = s.SetScheduleField(i, draft.ScheduleField(req.Field), req.Value)
	case "facilitators":
		err = s.SetFacilitatorField(i, draft.FacilitatorField(req.Field), req.Value)
	case "sponsors":
		err = s.SetSponsorField(i, draft.SponsorField(req.Field), req.Value)
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown collection")
		return
	}
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s.View())
}

// RemoveRow godoc
// @Summary Remove a collection row
// @Description Removes the row at index. A collection never shrinks below one row; removing the last remaining row is a no-op. Attachments on later rows move down with their rows.
// @Tags drafts
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Param collection path string true "Collection name" Enums(schedule, facilitators, sponsors)
// @Param index path int true "Row index"
// @Success 200 {object} DraftViewResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/drafts/{draftID}/{collection}/{index} [delete]
func (c *DraftController) RemoveRow(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	i, ok := parseIndex(w, r)
	if !ok {
		return
	}
	switch r.PathValue("collection") {
	case "schedule":
		s.RemoveScheduleItem(i)
	case "facilitators":
		s.RemoveFacilitator(i)
	case "sponsors":
		s.RemoveSponsor(i)
	default:
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unknown collection")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s.View())
}

// UploadAttachment godoc
// @Summary Attach an image to a slot
// @Description Uploads an image (multipart field "file") into the named slot: banner, facilitators.{i}.photo, or sponsors.{i}.logo. Replaces any previous file in the slot. The preview decodes asynchronously and appears in the draft view when ready. Files over the size limit or of a non-image type are rejected as a field violation.
// @Tags drafts
// @Accept multipart/form-data
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Param slot path string true "Attachment slot"
// @Param file formData file true "Image file"
// @Success 200 {object} DraftViewResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /admin/drafts/{draftID}/attachments/{slot} [put]
func (c *DraftController) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	slot, err := draft.ParseSlot(r.PathValue("slot"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not parse upload")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "could not read upload")
		return
	}
	file := &domain.PendingFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	if err := s.Attach(slot, file); err != nil {
		var slotErr *draft.SlotError
		if errors.As(err, &slotErr) {
			helpers.WriteJSONValidationError(w, map[string]string{slotErr.Slot.FieldPath(): slotErr.Message})
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, s.View())
}

// RemoveAttachment godoc
// @Summary Remove an attachment from a slot
// @Description Clears the slot's pending file and preview. Clearing an empty slot is a no-op.
// @Tags drafts
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Param slot path string true "Attachment slot"
// @Success 200 {object} DraftViewResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /admin/drafts/{draftID}/attachments/{slot} [delete]
func (c *DraftController) RemoveAttachment(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	slot, err := draft.ParseSlot(r.PathValue("slot"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	s.ClearAttachment(slot)
	helpers.WriteJSONSuccess(w, http.StatusOK, s.View())
}

// SubmitDraftResponse is the success response envelope for POST /admin/drafts/{draftID}/submit (201).
type SubmitDraftResponse struct {
	Data  *draft.Result     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SubmitDraft godoc
// @Summary Submit the draft
// @Description Validates the whole form. If any field is invalid, all violations are returned with status 422, keyed by field path, and the draft is left untouched. Otherwise the event is created, the draft is discarded, and the created event is returned with a redirect location.
// @Tags drafts
// @Produce json
// @Param draftID path string true "Draft session ID"
// @Success 201 {object} SubmitDraftResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/drafts/{draftID}/submit [post]
func (c *DraftController) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	result, violations, err := c.Coordinator.Submit(r.Context(), s)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "submit draft failed", "draft_id", s.ID, "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not create event")
		return
	}
	if !violations.OK() {
		helpers.WriteJSONValidationError(w, violations)
		return
	}
	c.Store.Delete(s.ID)
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// session resolves the draftID path value to a live session, writing a 404
// when it does not exist.
func (c *DraftController) session(w http.ResponseWriter, r *http.Request) (*draft.Session, bool) {
	id := r.PathValue("draftID")
	s, ok := c.Store.Get(id)
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "draft not found")
		return nil, false
	}
	return s, true
}

func parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || i < 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid row index")
		return 0, false
	}
	return i, true
}
