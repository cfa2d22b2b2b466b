package handlers

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/services/dto"
)

type ProposalHandler struct {
	*BaseHandler
	proposalService services.ProposalService
}

func NewProposalHandler(base *BaseHandler, proposalService services.ProposalService) *ProposalHandler {
	return &ProposalHandler{BaseHandler: base, proposalService: proposalService}
}

func (h *ProposalHandler) RegisterRoutes(r *gin.RouterGroup) {
	proposals := r.Group("/proposals")
	proposals.Use(middleware.AuthMiddleware())
	{
		proposals.GET("/:proposalId", h.Get)
	}

	usta := r.Group("/proposals")
	usta.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleUsta))
	{
		usta.POST("", h.Create)
	}

	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCustomer))
	{
		jobs.GET("/:jobId/proposals", h.ListByJob)
	}
}

func (h *ProposalHandler) Create(c *gin.Context) {
	ustaID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProposalRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	proposal, err := h.proposalService.Create(h.GetDB(c), ustaID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.CreatedResult(c, proposal)
}

func (h *ProposalHandler) Get(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.Get(h.GetDB(c), c.Param("proposalId"), callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, proposal)
}

func (h *ProposalHandler) ListByJob(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	proposals, err := h.proposalService.ListByJob(h.GetDB(c), c.Param("jobId"), customerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, proposals)
}
