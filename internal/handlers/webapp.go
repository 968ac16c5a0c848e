// internal/handlers/webapp.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nexushub/webhub-backend/internal/middleware"
	"github.com/nexushub/webhub-backend/internal/services"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type WebappHandler struct {
	webappService  *services.WebappService
	engagement     *services.EngagementService
	storageService *services.StorageService
}

func NewWebappHandler(webappService *services.WebappService, engagement *services.EngagementService, storageService *services.StorageService) *WebappHandler {
	return &WebappHandler{
		webappService:  webappService,
		engagement:     engagement,
		storageService: storageService,
	}
}

func (h *WebappHandler) List(c *gin.Context) {
	params := services.ListWebappsParams{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Trending: c.Query("trending") == "true",
		New:      c.Query("new") == "true",
		Limit:    utils.GetLimitParam(c, 50, 100),
	}

	webapps, err := h.webappService.List(params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, webapps)
}

// Get serves webapp detail. An authenticated read counts as a view.
func (h *WebappHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	var viewerID *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		viewerID = &userID
	}

	webapp, err := h.webappService.Get(id, viewerID)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, webapp)
}

func (h *WebappHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	var req services.CreateWebappRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	result, validationErrors, err := h.webappService.Create(userID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}
	if len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *WebappHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	var req services.UpdateWebappRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	webapp, validationErrors, err := h.webappService.Update(id, userID, &req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}
	if len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	utils.SuccessResponse(c, webapp)
}

type deleteWebappRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *WebappHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	var req deleteWebappRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "password confirmation is required")
		return
	}

	if err := h.webappService.Delete(id, userID, req.Password); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

func (h *WebappHandler) GetVersions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	versions, err := h.webappService.GetVersions(id)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, versions)
}

// TrackClick records an outbound click. Failures are logged, never
// surfaced: telemetry must not break the user's navigation.
func (h *WebappHandler) TrackClick(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	var userID *uuid.UUID
	if uid, ok := middleware.GetUserID(c); ok {
		userID = &uid
	}

	if err := h.engagement.TrackClick(id, userID, c.Query("source")); err != nil {
		logrus.WithError(err).WithField("webapp_id", id).Warn("click tracking failed")
	}

	utils.SuccessResponse(c, gin.H{"tracked": true})
}

func (h *WebappHandler) TrackShare(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	var userID *uuid.UUID
	if uid, ok := middleware.GetUserID(c); ok {
		userID = &uid
	}

	if err := h.engagement.TrackShare(id, userID, c.Query("method")); err != nil {
		logrus.WithError(err).WithField("webapp_id", id).Warn("share tracking failed")
	}

	utils.SuccessResponse(c, gin.H{"tracked": true})
}

func (h *WebappHandler) PopularTags(c *gin.Context) {
	tags, err := h.webappService.PopularTags(utils.GetLimitParam(c, 20, 50))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, tags)
}

// UploadImage accepts a screenshot and returns its public URL for use as
// image_url on a submission.
func (h *WebappHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "image file is required")
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.storageService.UploadFile(file, header, services.ScreenshotUploadOptions())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, result)
}
