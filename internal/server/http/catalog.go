package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vaultcore/api/internal/common"
	"github.com/vaultcore/api/internal/logging"
	"github.com/vaultcore/api/internal/server/models"
	"github.com/vaultcore/api/internal/server/services"
)

// CatalogHandler serves the /techs and /projects endpoints.
type CatalogHandler struct {
	catalog *services.CatalogService
	logger  logging.Logger
}

func NewCatalogHandler(catalog *services.CatalogService, logger logging.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

type techResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type projectResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Techs       []techResponse `json:"techs"`
}

func toTechResponse(t *models.Tech) techResponse {
	return techResponse{ID: t.ID, Name: t.Name, Description: t.Description}
}

func toProjectResponse(p *models.Project) projectResponse {
	resp := projectResponse{ID: p.ID, Name: p.Name, Description: p.Description, Techs: []techResponse{}}
	for i := range p.Techs {
		resp.Techs = append(resp.Techs, toTechResponse(&p.Techs[i]))
	}
	return resp
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondError maps repository sentinels to HTTP statuses; anything else is a
// logged 500.
func (h *CatalogHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "name already taken"})
	default:
		h.logger.Error(c.Request.Context(), "catalog operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// --- techs ---

func (h *CatalogHandler) ListTechs(c *gin.Context) {
	list, err := h.catalog.ListTechs(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]techResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, toTechResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetTech(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tech, err := h.catalog.GetTech(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTechResponse(tech))
}

func (h *CatalogHandler) CreateTech(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required,max=50"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	tech, err := h.catalog.CreateTech(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTechResponse(tech))
}

func (h *CatalogHandler) UpdateTech(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name" binding:"omitempty,max=50"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	tech, err := h.catalog.UpdateTech(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTechResponse(tech))
}

func (h *CatalogHandler) DeleteTech(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteTech(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- projects ---

func (h *CatalogHandler) ListProjects(c *gin.Context) {
	list, err := h.catalog.ListProjects(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	resp := make([]projectResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) GetProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	project, err := h.catalog.GetProject(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *CatalogHandler) CreateProject(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required,max=100"`
		Description *string `json:"description"`
		TechIDs     []int64 `json:"tech_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	project, err := h.catalog.CreateProject(c.Request.Context(), req.Name, req.Description, req.TechIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (h *CatalogHandler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Name        *string `json:"name" binding:"omitempty,max=100"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	project, err := h.catalog.UpdateProject(c.Request.Context(), id, req.Name, req.Description, nil)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

// LinkProjectTechs attaches techs to a project. Linking an already linked
// tech is a no-op.
func (h *CatalogHandler) LinkProjectTechs(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		TechIDs []int64 `json:"tech_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	project, err := h.catalog.UpdateProject(c.Request.Context(), id, nil, nil, req.TechIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *CatalogHandler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProject(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
