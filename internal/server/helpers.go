package server

import (
	"context"
	"errors"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseUUID extracts a route parameter by name as a UUID.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return uuid.Nil, errResponseWritten
	}
	return id, nil
}

// currentUserID reads the authenticated user ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals("userID").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// validateStruct runs the request struct through the validator and converts
// the first failure into a 400 response. Returns errResponseWritten when the
// response has been committed.
func (s *Server) validateStruct(c *fiber.Ctx, v any) error {
	if err := s.validate.Struct(v); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
		return errResponseWritten
	}
	return nil
}

// isAdmin checks whether the given user has admin privileges.
func (s *Server) isAdmin(c *fiber.Ctx, userID uuid.UUID) (bool, error) {
	return s.isAdminByUserID(c.Context(), userID)
}

func (s *Server) isAdminByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_admin").Where("id = ?", userID).First(&user).Error; err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// canActFor reports whether actorID may operate on resources owned by
// ownerID: either the owner themselves or an admin.
func (s *Server) canActFor(c *fiber.Ctx, actorID, ownerID uuid.UUID) (bool, error) {
	if actorID == ownerID {
		return true, nil
	}
	return s.isAdmin(c, actorID)
}
