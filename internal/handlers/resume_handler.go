package handlers

import (
	"errors"
	"log"

	"resumebuilder/internal/middleware"
	"resumebuilder/internal/models"
	"resumebuilder/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ResumeHandler handles HTTP requests for resume CRUD.
type ResumeHandler struct {
	resumeService *services.ResumeService
	validate      *validator.Validate
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(resumeService *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		resumeService: resumeService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the resume routes with the Fiber app.
// Fixed paths are registered before the :id parameter routes.
func (h *ResumeHandler) RegisterRoutes(router fiber.Router) {
	resumeRoutes := router.Group("/resumes")
	resumeRoutes.Post("/", h.HandleCreate)
	resumeRoutes.Get("/", h.HandleList)
	resumeRoutes.Get("/search", h.HandleSearch)
	resumeRoutes.Get("/count", h.HandleCount)
	resumeRoutes.Get("/:id", h.HandleGet)
	resumeRoutes.Put("/:id", h.HandleUpdate)
	resumeRoutes.Delete("/:id", h.HandleDelete)
	resumeRoutes.Patch("/:id/title", h.HandleUpdateTitle)
	resumeRoutes.Patch("/:id/template", h.HandleUpdateTemplate)
	resumeRoutes.Patch("/:id/color-theme", h.HandleUpdateColorTheme)
}

// HandleCreate creates a new resume for the authenticated owner. The quota
// rule is checked here, before the create.
func (h *ResumeHandler) HandleCreate(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	var resume models.Resume
	if err := c.BodyParser(&resume); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(resume); err != nil {
		return validationFailed(c, err)
	}

	allowed, err := h.resumeService.CanCreateMore(principal.UserID, principal.IsPremium)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	if !allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Resume limit reached. Upgrade to premium to create more resumes.",
		})
	}

	created, err := h.resumeService.Create(&resume, principal.UserID)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleList returns all resumes belonging to the authenticated owner.
func (h *ResumeHandler) HandleList(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	resumes, err := h.resumeService.ListByOwner(principal.UserID)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(resumes)
}

// HandleSearch returns the owner's resumes whose title contains the query.
func (h *ResumeHandler) HandleSearch(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	resumes, err := h.resumeService.Search(principal.UserID, c.Query("q"))
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(resumes)
}

// HandleCount returns the owner's resume count.
func (h *ResumeHandler) HandleCount(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	count, err := h.resumeService.Count(principal.UserID)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"count": count,
	})
}

// HandleGet returns a single resume scoped to the authenticated owner.
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	resume, err := h.resumeService.GetByID(c.Params("id"), principal.UserID)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(resume)
}

// HandleUpdate replaces a resume's content.
func (h *ResumeHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	var resume models.Resume
	if err := c.BodyParser(&resume); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(resume); err != nil {
		return validationFailed(c, err)
	}

	updated, err := h.resumeService.Update(c.Params("id"), principal.UserID, &resume)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(updated)
}

// HandleDelete removes a resume scoped to the authenticated owner.
func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	if err := h.resumeService.Delete(c.Params("id"), principal.UserID); err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Resume deleted successfully",
	})
}

// UpdateTitleRequest represents the request body for renaming a resume.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
}

// HandleUpdateTitle renames a resume.
func (h *ResumeHandler) HandleUpdateTitle(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	var req UpdateTitleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	resume, err := h.resumeService.UpdateTitle(c.Params("id"), principal.UserID, req.Title)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(resume)
}

// UpdateTemplateRequest represents the request body for switching templates.
type UpdateTemplateRequest struct {
	Template string `json:"template" validate:"required,max=50"`
}

// HandleUpdateTemplate switches a resume's template.
func (h *ResumeHandler) HandleUpdateTemplate(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	var req UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	resume, err := h.resumeService.UpdateTemplate(c.Params("id"), principal.UserID, req.Template)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(resume)
}

// UpdateColorThemeRequest represents the request body for switching themes.
type UpdateColorThemeRequest struct {
	ColorTheme string `json:"color_theme" validate:"required,max=50"`
}

// HandleUpdateColorTheme switches a resume's color theme.
func (h *ResumeHandler) HandleUpdateColorTheme(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	var req UpdateColorThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	resume, err := h.resumeService.UpdateColorTheme(c.Params("id"), principal.UserID, req.ColorTheme)
	if err != nil {
		return resumeErrorResponse(c, err)
	}
	return c.JSON(resume)
}

// resumeErrorResponse maps resume failures. Not-found and not-yours are
// deliberately the same response.
func resumeErrorResponse(c *fiber.Ctx, err error) error {
	log.Printf("Resume operation failed: %v", err)
	if errors.Is(err, services.ErrNotFoundOrForbidden) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process request",
	})
}
