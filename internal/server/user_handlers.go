package server

import (
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users
// Admin-only account listing.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	users, err := s.userService.ListUsers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetUser handles GET /api/users/:userUuid
// Full account details are visible to the account owner and admins only.
func (s *Server) GetUser(c *fiber.Ctx) error {
	targetID, err := s.parseUUID(c, "userUuid")
	if err != nil {
		return nil
	}

	allowed, err := s.canActFor(c, currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if !allowed {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only an admin or the user of this account can view it"))
	}

	user, err := s.userService.GetUser(c.Context(), targetID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

// UpdateUser handles POST /api/users/:userUuid
// Profile updates by the owner or an admin. Password changes require the
// current password even for admins.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	targetID, err := s.parseUUID(c, "userUuid")
	if err != nil {
		return nil
	}

	allowed, err := s.canActFor(c, currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if !allowed {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only an admin or the user of this account can update it"))
	}

	var req service.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.UpdateUser(c.Context(), targetID, req)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}

// EmailSearch handles POST /api/users/emailSearch
// Resolves an email to a connectable profile. Accounts that opted out of
// discovery look identical to unknown addresses.
func (s *Server) EmailSearch(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}

	user, err := s.userService.EmailSearch(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"user": user,
	})
}
