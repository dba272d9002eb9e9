package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kondate-ai/backend/internal/service"
	"github.com/kondate-ai/backend/internal/types"
)

// RecipeHandler serves the blocking recipe generation endpoints.
type RecipeHandler struct {
	generation service.IGenerationService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(generation service.IGenerationService) *RecipeHandler {
	return &RecipeHandler{generation: generation}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, limiter gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", limiter, h.GenerateRecipes)
		recipes.POST("/detail", limiter, h.GenerateDetail)
		recipes.GET("/:id", h.GetRecipe)
	}
}

// GenerateRecipes produces one summary proposal per persona.
func (h *RecipeHandler) GenerateRecipes(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error())
		return
	}
	if err := input.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	recipes, err := h.generation.GenerateRecipes(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrAllGenerationsFailed) {
			respondError(c, http.StatusInternalServerError, CodeGenerationFailed, "recipe generation failed for all chefs")
			return
		}
		respondError(c, http.StatusInternalServerError, CodeInternalError, "failed to generate recipes")
		return
	}

	respondOK(c, gin.H{"recipes": recipes})
}

// DetailRequest asks for the full recipe behind one proposal. Title is
// optional; when omitted the stored summary supplies it.
type DetailRequest struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	AgentType types.AgentType `json:"agentType"`
}

// GenerateDetail produces the full recipe for one summary proposal.
func (h *RecipeHandler) GenerateDetail(c *gin.Context) {
	var req DetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeValidationError, "invalid request body: "+err.Error())
		return
	}
	if req.ID == "" {
		respondError(c, http.StatusBadRequest, CodeValidationError, "id is required")
		return
	}
	if !req.AgentType.Valid() {
		respondError(c, http.StatusBadRequest, CodeValidationError, "unknown agent type: "+string(req.AgentType))
		return
	}

	title := req.Title
	if title == "" {
		draft, err := h.generation.ResolveDraft(c.Request.Context(), req.ID)
		if err != nil {
			respondError(c, http.StatusNotFound, CodeNotFound, "recipe draft not found")
			return
		}
		title = draft.Title
	}

	detail, err := h.generation.GenerateRecipeDetail(c.Request.Context(), req.ID, title, req.AgentType)
	if err != nil {
		respondError(c, http.StatusInternalServerError, CodeGenerationFailed, "failed to generate recipe detail")
		return
	}

	respondOK(c, gin.H{"recipe": detail})
}

// GetRecipe returns a previously persisted recipe by id.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.generation.GetRecipeByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			respondError(c, http.StatusNotFound, CodeNotFound, "recipe not found")
			return
		}
		respondError(c, http.StatusInternalServerError, CodeInternalError, "failed to load recipe")
		return
	}

	respondOK(c, gin.H{"recipe": detail})
}
