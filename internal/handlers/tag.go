package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scentbase/perfume-catalog-api/internal/dto"
	apierrors "github.com/scentbase/perfume-catalog-api/internal/errors"
	"github.com/scentbase/perfume-catalog-api/internal/models"
	"github.com/scentbase/perfume-catalog-api/internal/services"
	"github.com/scentbase/perfume-catalog-api/internal/utils"
)

// Tag endpoints are deliberately not scoped to the owner: tags form a
// shared vocabulary, so every authenticated user sees and manages the same
// set.

// NoteHandler coordinates note HTTP handlers.
type NoteHandler struct {
	noteService *services.TagService[models.Note]
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.TagService[models.Note]) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// ListNotes returns all notes ordered by descending name. With
// assigned_only=1 only notes attached to at least one perfume are listed;
// any other value of the flag means no filtering.
func (h *NoteHandler) ListNotes(c *gin.Context) {
	input := services.ListTagsInput{
		AssignedOnly: utils.ParseBoolFlag(c.Query("assigned_only")),
	}

	notes, err := h.noteService.ListTags(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch notes")
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTOs(notes))
}

// CreateNote creates a new note.
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondFieldError(c, "name", "Name cannot be empty")
		return
	}

	note := models.Note{Name: name, Type: *req.Type}
	if err := h.noteService.CreateTag(&note); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNoteDTO(note))
}

// UpdateNote applies a partial update to a note.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	type UpdateNoteRequest struct {
		Name *string `json:"name" binding:"omitempty,max=255"`
		Type *int    `json:"type"`
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	note, err := h.noteService.GetTag(id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondFieldError(c, "name", "Name cannot be empty")
			return
		}
		note.Name = name
	}
	if req.Type != nil {
		note.Type = *req.Type
	}

	if err := h.noteService.UpdateTag(note); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// ReplaceNote is the full-update variant of UpdateNote.
func (h *NoteHandler) ReplaceNote(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondFieldError(c, "name", "Name cannot be empty")
		return
	}

	note, err := h.noteService.GetTag(id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	note.Name = name
	note.Type = *req.Type

	if err := h.noteService.UpdateTag(note); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteDTO(*note))
}

// DeleteNote removes a note, detaching it from all perfumes.
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteTag(id); err != nil {
		respondTagError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DesignerHandler coordinates designer HTTP handlers.
type DesignerHandler struct {
	designerService *services.TagService[models.Designer]
}

// NewDesignerHandler creates a new DesignerHandler.
func NewDesignerHandler(designerService *services.TagService[models.Designer]) *DesignerHandler {
	return &DesignerHandler{
		designerService: designerService,
	}
}

// ListDesigners returns all designers ordered by descending name, with the
// same assigned_only flag as notes.
func (h *DesignerHandler) ListDesigners(c *gin.Context) {
	input := services.ListTagsInput{
		AssignedOnly: utils.ParseBoolFlag(c.Query("assigned_only")),
	}

	designers, err := h.designerService.ListTags(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch designers")
		return
	}

	c.JSON(http.StatusOK, dto.ToDesignerDTOs(designers))
}

// CreateDesigner creates a new designer.
func (h *DesignerHandler) CreateDesigner(c *gin.Context) {
	var req DesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondFieldError(c, "name", "Name cannot be empty")
		return
	}

	designer := models.Designer{Name: name}
	if err := h.designerService.CreateTag(&designer); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDesignerDTO(designer))
}

// UpdateDesigner applies a partial update to a designer.
func (h *DesignerHandler) UpdateDesigner(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	type UpdateDesignerRequest struct {
		Name *string `json:"name" binding:"omitempty,max=255"`
	}

	var req UpdateDesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	designer, err := h.designerService.GetTag(id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondFieldError(c, "name", "Name cannot be empty")
			return
		}
		designer.Name = name
	}

	if err := h.designerService.UpdateTag(designer); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDesignerDTO(*designer))
}

// ReplaceDesigner is the full-update variant of UpdateDesigner.
func (h *DesignerHandler) ReplaceDesigner(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	var req DesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondFieldError(c, "name", "Name cannot be empty")
		return
	}

	designer, err := h.designerService.GetTag(id)
	if err != nil {
		respondTagError(c, err)
		return
	}

	designer.Name = name

	if err := h.designerService.UpdateTag(designer); err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDesignerDTO(*designer))
}

// DeleteDesigner removes a designer, detaching it from all perfumes.
func (h *DesignerHandler) DeleteDesigner(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	if err := h.designerService.DeleteTag(id); err != nil {
		respondTagError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseTagID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid tag ID")
		return 0, false
	}
	return id, true
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTagNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTagExists):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
