package server

import (
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/repository"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminAllRecipes handles GET /api/recipes/adminall
// Unrestricted listing with filters, admin only. The response keeps the
// count/rows shape so admin tooling can paginate.
func (s *Server) AdminAllRecipes(c *fiber.Ctx) error {
	page := parsePagination(c, repository.DefaultListLimit)
	filter := repository.RecipeFilter{
		RecipeName:   c.Query("recipeName"),
		Categories:   c.Query("categories"),
		Instructions: c.Query("instructions"),
		ToolsNeeded:  c.Query("toolsNeeded"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	if raw := c.Query("recipeUuid"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid recipeUuid"))
		}
		filter.ID = id
	}
	if raw := c.Query("disabled"); raw != "" {
		disabled := c.QueryBool("disabled")
		filter.Disabled = &disabled
	}

	result, err := s.recipeService.ListRecipes(c.Context(), filter)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"recipes": result,
	})
}

// ViewRecipes handles GET /api/recipes/view
// Lists recipes visible to the caller: their own plus, unless
// includeConnections=false, those of accepted connections. An optional
// search term matches across name, categories, source, instructions and
// ingredient labels.
func (s *Server) ViewRecipes(c *fiber.Ctx) error {
	userID := currentUserID(c)
	page := parsePagination(c, repository.DefaultListLimit)
	includeConnections := c.QueryBool("includeConnections", true)
	search := c.Query("search")

	recipes, err := s.recipeService.VisibleRecipes(
		c.Context(), userID, includeConnections, search, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"recipes": recipes,
	})
}

// GetRecipe handles GET /api/recipes/:recipeUuid
// Returns the fully hydrated recipe to its owner or an admin. Connections
// browse each other's recipes through the view listing instead.
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	recipeID, err := s.parseUUID(c, "recipeUuid")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	full, err := s.recipeService.GetFullRecipe(c.Context(), repository.RecipeFilter{ID: recipeID})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if full.UserID != userID {
		admin, err := s.isAdmin(c, userID)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You are not authorized to view this recipe"))
		}
	}

	return c.JSON(fiber.Map{
		"recipe": full,
	})
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	var req service.CreateRecipeInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}

	result, err := s.recipeService.CreateRecipe(c.Context(), currentUserID(c), req)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	resp := fiber.Map{
		"validMessage": "Recipe has been created",
		"recipe":       result.Recipe,
	}
	if len(result.FailedLabels) > 0 {
		resp["failedIngredients"] = result.FailedLabels
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// updateRecipeRequest is the PATCH body: the target recipe plus the partial
// update to apply to it.
type updateRecipeRequest struct {
	RecipeID uuid.UUID `json:"recipeUuid" validate:"required"`
	service.UpdateRecipeInput
}

// UpdateRecipe handles PATCH /api/recipes
// Only the owner or an admin may update. The updated recipe is returned so
// clients can read the recomputed search columns without a second fetch.
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	var req updateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.RecipeID == uuid.Nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("recipeUuid is required"))
	}
	if err := s.validateStruct(c, &req); err != nil {
		return nil
	}

	userID := currentUserID(c)
	existing, err := s.recipeService.GetRecipe(c.Context(), req.RecipeID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	allowed, err := s.canActFor(c, userID, existing.UserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if !allowed {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only an admin or the owner can update this recipe"))
	}

	result, err := s.recipeService.UpdateRecipe(c.Context(), req.RecipeID, req.UpdateRecipeInput)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	if len(result.FailedLabels) > 0 {
		return c.JSON(fiber.Map{
			"recipe":            result.Recipe,
			"failedIngredients": result.FailedLabels,
		})
	}
	return c.JSON(result.Recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:recipeUuid
// The recipe's ingredient lines are removed with it; catalog ingredients
// stay behind for other recipes.
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	recipeID, err := s.parseUUID(c, "recipeUuid")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	existing, err := s.recipeService.GetRecipe(c.Context(), recipeID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	allowed, err := s.canActFor(c, userID, existing.UserID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if !allowed {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Only an admin or the user of this account can delete this recipe"))
	}

	if err := s.recipeService.DeleteRecipe(c.Context(), recipeID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{
		"message": "recipe deleted",
	})
}
