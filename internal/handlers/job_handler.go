package handlers

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("", h.ListOpen)
		jobs.GET("/:jobId", h.Get)
	}

	customer := r.Group("/jobs")
	customer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCustomer))
	{
		customer.POST("", h.Create)
		customer.GET("/my", h.ListMine)
		customer.PUT("/:jobId/status", h.UpdateStatus)
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(h.GetDB(c), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.CreatedResult(c, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	job, err := h.jobService.Get(h.GetDB(c), c.Param("jobId"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, job)
}

func (h *JobHandler) ListOpen(c *gin.Context) {
	jobs, err := h.jobService.ListOpen(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, jobs)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListByCustomer(h.GetDB(c), customerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, jobs)
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateStatus(h.GetDB(c), c.Param("jobId"), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, job)
}
