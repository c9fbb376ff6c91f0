package server

import (
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Connect handles POST /api/users/connect/:userUuid
// One endpoint drives the whole handshake: the first call from either side
// creates a pending invite, the reciprocal call accepts it.
func (s *Server) Connect(c *fiber.Ctx) error {
	targetID, err := s.parseUUID(c, "userUuid")
	if err != nil {
		return nil
	}

	message, err := s.connectionService.Connect(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"message": message,
	})
}

// Disconnect handles DELETE /api/users/connect/:userUuid
// Removes a pending or accepted connection in either direction.
func (s *Server) Disconnect(c *fiber.Ctx) error {
	targetID, err := s.parseUUID(c, "userUuid")
	if err != nil {
		return nil
	}

	if err := s.connectionService.Disconnect(c.Context(), currentUserID(c), targetID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"message": "connection removed",
	})
}

// GetPendingConnections handles GET /api/users/connections/:userUuid
// Lists invites awaiting the user's acceptance. Restricted to the account
// owner and admins.
func (s *Server) GetPendingConnections(c *fiber.Ctx) error {
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
			models.NewForbiddenError("Only an admin or the user of this account can view these details"))
	}

	invites, err := s.connectionService.PendingInvites(c.Context(), targetID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"users": invites,
	})
}
