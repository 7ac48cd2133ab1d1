package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scentbase/perfume-catalog-api/internal/dto"
	apierrors "github.com/scentbase/perfume-catalog-api/internal/errors"
	"github.com/scentbase/perfume-catalog-api/internal/middleware"
	"github.com/scentbase/perfume-catalog-api/internal/services"
	"github.com/scentbase/perfume-catalog-api/internal/utils"
	"github.com/shopspring/decimal"
)

// PerfumeHandler coordinates perfume HTTP handlers.
type PerfumeHandler struct {
	perfumeService *services.PerfumeService
}

// NewPerfumeHandler creates a new PerfumeHandler.
func NewPerfumeHandler(perfumeService *services.PerfumeService) *PerfumeHandler {
	return &PerfumeHandler{
		perfumeService: perfumeService,
	}
}

// NoteRequest is a note candidate in a perfume payload. Type uses a
// pointer so 0 (a top note) still satisfies the required rule; codes
// outside the conventional 0/1/2 are stored as-is.
type NoteRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Type *int   `json:"type" binding:"required"`
}

// DesignerRequest is a designer candidate in a perfume payload.
type DesignerRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ListPerfumes returns the current user's perfumes, optionally filtered by
// tag ids. Both filters accept comma-joined id lists and reject any token
// that is not an integer.
func (h *PerfumeHandler) ListPerfumes(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	designerIDs, err := utils.ParseIDList(c.Query("designers"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid designers filter")
		return
	}

	noteIDs, err := utils.ParseIDList(c.Query("notes"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid notes filter")
		return
	}

	perfumes, err := h.perfumeService.ListPerfumes(services.ListPerfumesInput{
		UserID:      userID,
		DesignerIDs: designerIDs,
		NoteIDs:     noteIDs,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch perfumes")
		return
	}

	c.JSON(http.StatusOK, dto.ToPerfumeDTOs(perfumes))
}

// CreatePerfume creates a new perfume owned by the current user.
func (h *PerfumeHandler) CreatePerfume(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePerfumeRequest struct {
		Title         string            `json:"title" binding:"required,max=255"`
		Description   string            `json:"description"`
		Rating        *decimal.Decimal  `json:"rating" binding:"required"`
		NumberOfVotes *int              `json:"number_of_votes" binding:"required"`
		Gender        *int              `json:"gender" binding:"required"`
		Longevity     *decimal.Decimal  `json:"longevity" binding:"required"`
		Sillage       *decimal.Decimal  `json:"sillage" binding:"required"`
		PriceValue    *decimal.Decimal  `json:"price_value" binding:"required"`
		Notes         []NoteRequest     `json:"notes" binding:"omitempty,dive"`
		Designers     []DesignerRequest `json:"designers" binding:"omitempty,dive"`
	}

	var req CreatePerfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	perfume, err := h.perfumeService.CreatePerfume(services.CreatePerfumeInput{
		UserID:        userID,
		Title:         req.Title,
		Rating:        *req.Rating,
		NumberOfVotes: *req.NumberOfVotes,
		Gender:        *req.Gender,
		Longevity:     *req.Longevity,
		Sillage:       *req.Sillage,
		PriceValue:    *req.PriceValue,
		Description:   req.Description,
		Notes:         toNoteInputs(req.Notes),
		Designers:     toDesignerInputs(req.Designers),
	})
	if err != nil {
		respondPerfumeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPerfumeDetailDTO(*perfume))
}

// GetPerfume returns the perfume loaded by RequirePerfumeAccess.
func (h *PerfumeHandler) GetPerfume(c *gin.Context) {
	perfume, ok := middleware.GetPerfume(c)
	if !ok {
		apierrors.InternalError(c, "Perfume not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToPerfumeDetailDTO(perfume))
}

// UpdatePerfumeRequest carries a partial update. Every field is a pointer:
// nil means the key was absent. For the tag slices that distinction drives
// the sync behavior, so an explicit empty list clears the relation while an
// omitted key leaves it alone.
type UpdatePerfumeRequest struct {
	Title         *string            `json:"title" binding:"omitempty,max=255"`
	Description   *string            `json:"description"`
	Rating        *decimal.Decimal   `json:"rating"`
	NumberOfVotes *int               `json:"number_of_votes"`
	Gender        *int               `json:"gender"`
	Longevity     *decimal.Decimal   `json:"longevity"`
	Sillage       *decimal.Decimal   `json:"sillage"`
	PriceValue    *decimal.Decimal   `json:"price_value"`
	Notes         *[]NoteRequest     `json:"notes" binding:"omitempty,dive"`
	Designers     *[]DesignerRequest `json:"designers" binding:"omitempty,dive"`
}

// UpdatePerfume applies a partial update to a perfume.
func (h *PerfumeHandler) UpdatePerfume(c *gin.Context) {
	perfume, ok := middleware.GetPerfume(c)
	if !ok {
		apierrors.InternalError(c, "Perfume not found in context")
		return
	}

	var req UpdatePerfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	updated, err := h.perfumeService.UpdatePerfume(&perfume, services.UpdatePerfumeInput{
		Title:         req.Title,
		Rating:        req.Rating,
		NumberOfVotes: req.NumberOfVotes,
		Gender:        req.Gender,
		Longevity:     req.Longevity,
		Sillage:       req.Sillage,
		PriceValue:    req.PriceValue,
		Description:   req.Description,
		Notes:         toNoteInputsPtr(req.Notes),
		Designers:     toDesignerInputsPtr(req.Designers),
	})
	if err != nil {
		respondPerfumeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPerfumeDetailDTO(*updated))
}

// ReplacePerfume is the full-update variant: scalar fields are required,
// while the tag relations follow the same absent-key-untouched policy as
// the partial update.
func (h *PerfumeHandler) ReplacePerfume(c *gin.Context) {
	perfume, ok := middleware.GetPerfume(c)
	if !ok {
		apierrors.InternalError(c, "Perfume not found in context")
		return
	}

	type ReplacePerfumeRequest struct {
		Title         string             `json:"title" binding:"required,max=255"`
		Description   *string            `json:"description"`
		Rating        *decimal.Decimal   `json:"rating" binding:"required"`
		NumberOfVotes *int               `json:"number_of_votes" binding:"required"`
		Gender        *int               `json:"gender" binding:"required"`
		Longevity     *decimal.Decimal   `json:"longevity" binding:"required"`
		Sillage       *decimal.Decimal   `json:"sillage" binding:"required"`
		PriceValue    *decimal.Decimal   `json:"price_value" binding:"required"`
		Notes         *[]NoteRequest     `json:"notes" binding:"omitempty,dive"`
		Designers     *[]DesignerRequest `json:"designers" binding:"omitempty,dive"`
	}

	var req ReplacePerfumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	updated, err := h.perfumeService.UpdatePerfume(&perfume, services.UpdatePerfumeInput{
		Title:         &req.Title,
		Rating:        req.Rating,
		NumberOfVotes: req.NumberOfVotes,
		Gender:        req.Gender,
		Longevity:     req.Longevity,
		Sillage:       req.Sillage,
		PriceValue:    req.PriceValue,
		Description:   req.Description,
		Notes:         toNoteInputsPtr(req.Notes),
		Designers:     toDesignerInputsPtr(req.Designers),
	})
	if err != nil {
		respondPerfumeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPerfumeDetailDTO(*updated))
}

// DeletePerfume removes a perfume.
func (h *PerfumeHandler) DeletePerfume(c *gin.Context) {
	perfume, ok := middleware.GetPerfume(c)
	if !ok {
		apierrors.InternalError(c, "Perfume not found in context")
		return
	}

	if err := h.perfumeService.DeletePerfume(&perfume); err != nil {
		apierrors.InternalError(c, "Failed to delete perfume")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage accepts a multipart image for a perfume and returns the
// public URL of the stored file.
func (h *PerfumeHandler) UploadImage(c *gin.Context) {
	perfume, ok := middleware.GetPerfume(c)
	if !ok {
		apierrors.InternalError(c, "Perfume not found in context")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondFieldError(c, "image", "An image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apierrors.InternalError(c, "Failed to read uploaded file")
		return
	}

	updated, err := h.perfumeService.AttachImage(&perfume, data)
	if err != nil {
		respondPerfumeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPerfumeImageDTO(*updated))
}

func respondPerfumeError(c *gin.Context, err error) {
	var fieldErr *services.FieldError
	switch {
	case errors.Is(err, services.ErrPerfumeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.As(err, &fieldErr):
		apierrors.BadRequestWithDetails(c, "Validation failed", map[string]string{
			fieldErr.Field: fieldErr.Err.Error(),
		})
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}

func toNoteInputs(reqs []NoteRequest) []services.NoteInput {
	inputs := make([]services.NoteInput, len(reqs))
	for i, req := range reqs {
		inputs[i] = services.NoteInput{Name: req.Name, Type: *req.Type}
	}
	return inputs
}

func toNoteInputsPtr(reqs *[]NoteRequest) *[]services.NoteInput {
	if reqs == nil {
		return nil
	}
	inputs := toNoteInputs(*reqs)
	return &inputs
}

func toDesignerInputs(reqs []DesignerRequest) []services.DesignerInput {
	inputs := make([]services.DesignerInput, len(reqs))
	for i, req := range reqs {
		inputs[i] = services.DesignerInput{Name: req.Name}
	}
	return inputs
}

func toDesignerInputsPtr(reqs *[]DesignerRequest) *[]services.DesignerInput {
	if reqs == nil {
		return nil
	}
	inputs := toDesignerInputs(*reqs)
	return &inputs
}
