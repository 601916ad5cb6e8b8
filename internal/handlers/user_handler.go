package handlers

import (
	"errors"
	"log"

	"resumebuilder/internal/middleware"
	"resumebuilder/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/user")
	userRoutes.Get("/profile", h.HandleGetProfile)
	userRoutes.Put("/profile", h.HandleUpdateProfile)
	userRoutes.Put("/profile/image", h.HandleUpdateProfileImage)
	userRoutes.Get("/stats", h.HandleGetStats)
	userRoutes.Delete("/account", h.HandleDeleteAccount)
}

// HandleGetProfile returns the authenticated user's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	user, err := h.userService.GetByEmail(principal.Email)
	if err != nil {
		return userErrorResponse(c, err)
	}
	return c.JSON(user)
}

// UpdateProfileRequest represents the request body for profile updates.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
}

// HandleUpdateProfile updates the mutable profile fields.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateProfile(principal.Email, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		return userErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// UpdateProfileImageRequest represents the request body for image updates.
type UpdateProfileImageRequest struct {
	ImageURL string `json:"image_url" validate:"required,url"`
}

// HandleUpdateProfileImage replaces the profile image URL.
func (h *UserHandler) HandleUpdateProfileImage(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	var req UpdateProfileImageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateProfileImage(principal.Email, req.ImageURL)
	if err != nil {
		return userErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Profile image updated successfully",
		"user":    user,
	})
}

// HandleGetStats returns the account summary.
func (h *UserHandler) HandleGetStats(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	stats, err := h.userService.Stats(principal.Email)
	if err != nil {
		return userErrorResponse(c, err)
	}
	return c.JSON(stats)
}

// HandleDeleteAccount deletes the account and all its resumes.
func (h *UserHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFromCtx(c)

	if err := h.userService.DeleteAccount(principal.Email); err != nil {
		return userErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}

func userErrorResponse(c *fiber.Ctx, err error) error {
	log.Printf("User operation failed: %v", err)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process request",
	})
}
