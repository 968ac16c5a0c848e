// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexushub/webhub-backend/internal/middleware"
	"github.com/nexushub/webhub-backend/internal/services"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type UserHandler struct {
	userService    *services.UserService
	webappService  *services.WebappService
	storageService *services.StorageService
}

func NewUserHandler(userService *services.UserService, webappService *services.WebappService, storageService *services.StorageService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		webappService:  webappService,
		storageService: storageService,
	}
}

// GetProfile serves a public profile. Badge refresh happens as a side
// effect of the read.
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid user id")
		return
	}

	profile, err := h.userService.GetProfile(id)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":          profile.User.Public(),
		"webapps_count": profile.WebappsCount,
		"reviews_count": profile.ReviewsCount,
	})
}

func (h *UserHandler) GetUserWebapps(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid user id")
		return
	}

	webapps, err := h.webappService.ListByCreator(id)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, webapps)
}

// UploadAvatar stores a new profile image and points the caller's
// avatar_url at it.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "authentication required")
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, "avatar file is required")
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.storageService.UploadFile(file, header, services.AvatarUploadOptions())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	if err := h.userService.UpdateAvatar(userID, result.URL); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

func (h *UserHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.userService.GetPlatformStats()
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}
