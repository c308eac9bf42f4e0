package handler

import (
	"io"
	"net/http"

	"budget-backend/internal/middleware"
	"budget-backend/internal/model"
	"budget-backend/internal/service"
	"budget-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// importMaxBytes caps the accepted settings import payload.
const importMaxBytes = 1 << 20

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	admins := middleware.RequireRole(model.RoleAdmin, model.RoleFinanceManager)

	settings := router.Group("/api/settings")
	{
		settings.GET("", middleware.RequireAuth(), h.GetSettings)
		settings.PUT("", admins, h.SaveSettings)
		settings.GET("/export", admins, h.ExportSettings)
		settings.POST("/import", admins, h.ImportSettings)
	}
}

// GetSettings handles GET /api/settings
// @Summary      Get application settings
// @Description  Returns the stored settings merged over defaults
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.Settings}
// @Failure      500  {object}  response.Response
// @Router       /api/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to load settings"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settings))
}

// SaveSettings handles PUT /api/settings
// @Summary      Save application settings
// @Description  Merges the supplied overrides over defaults and stores the full blob
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.Settings  true  "Settings overrides"
// @Success      200      {object}  response.Response{data=service.Settings}
// @Failure      400      {object}  response.Response
// @Router       /api/settings [put]
func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var overrides service.Settings
	if err := c.ShouldBindJSON(&overrides); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	saved, err := h.settingsService.Save(c.Request.Context(), overrides)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to save settings"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, saved))
}

// ExportSettings handles GET /api/settings/export
// @Summary      Export settings
// @Description  Downloads the current settings as a JSON file
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {file}    file
// @Failure      500  {object}  response.Response
// @Router       /api/settings/export [get]
func (h *SettingsHandler) ExportSettings(c *gin.Context) {
	raw, err := h.settingsService.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to export settings"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="settings.json"`)
	c.Data(http.StatusOK, "application/json", raw)
}

// ImportSettings handles POST /api/settings/import
// @Summary      Import settings
// @Description  Replaces stored settings with an uploaded JSON blob merged over defaults
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.Settings}
// @Failure      400  {object}  response.Response
// @Router       /api/settings/import [post]
func (h *SettingsHandler) ImportSettings(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, importMaxBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Failed to read request body"))
		return
	}

	imported, err := h.settingsService.Import(c.Request.Context(), raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, imported))
}
