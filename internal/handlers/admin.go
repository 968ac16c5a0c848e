// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nexushub/webhub-backend/internal/services"
	"github.com/nexushub/webhub-backend/internal/utils"
)

type AdminHandler struct {
	adminService  *services.AdminService
	authService   *services.AuthService
	reportService *services.ReportService
}

func NewAdminHandler(adminService *services.AdminService, authService *services.AuthService, reportService *services.ReportService) *AdminHandler {
	return &AdminHandler{
		adminService:  adminService,
		authService:   authService,
		reportService: reportService,
	}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the static admin credentials. There is no admin session;
// the response only confirms the credentials so the client can start
// sending the key header.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	if err := h.authService.AdminLogin(req.Email, req.Password); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"admin": true})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	params := services.ListReportsParams{
		Status:     c.Query("status"),
		Pagination: utils.GetPaginationParams(c),
	}

	reports, total, err := h.reportService.List(params)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, reports, utils.CreatePaginationMeta(params.Pagination, total))
}

type resolveReportRequest struct {
	AdminNotes string `json:"admin_notes"`
}

func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid report id")
		return
	}

	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}

	report, err := h.reportService.Resolve(id, req.AdminNotes)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, report)
}

func (h *AdminHandler) ListWebapps(c *gin.Context) {
	filter := services.AdminWebappFilter{
		Status:     c.Query("status"),
		Category:   c.Query("category"),
		Pagination: utils.GetPaginationParams(c),
	}

	webapps, total, err := h.adminService.ListWebapps(filter)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, webapps, utils.CreatePaginationMeta(filter.Pagination, total))
}

func (h *AdminHandler) ApproveWebapp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	webapp, err := h.adminService.ApproveWebapp(id)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, webapp)
}

func (h *AdminHandler) DeleteWebapp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "invalid webapp id")
		return
	}

	if err := h.adminService.DeleteWebapp(id); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"deleted": true})
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}
