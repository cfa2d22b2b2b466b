package handlers

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/services/dto"
)

type InvitationHandler struct {
	*BaseHandler
	invitationService services.InvitationService
}

func NewInvitationHandler(base *BaseHandler, invitationService services.InvitationService) *InvitationHandler {
	return &InvitationHandler{BaseHandler: base, invitationService: invitationService}
}

func (h *InvitationHandler) RegisterRoutes(r *gin.RouterGroup) {
	invitations := r.Group("/invitations")
	invitations.Use(middleware.AuthMiddleware())
	{
		invitations.GET("", h.List)
		invitations.GET("/:invitationId", h.Get)
		invitations.GET("/:invitationId/chain", h.GetChain)
	}

	customer := r.Group("/invitations")
	customer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCustomer))
	{
		customer.POST("", h.Create)
		customer.POST("/:invitationId/cancel", h.Cancel)
		customer.POST("/:invitationId/follow-up", h.FollowUp)
	}

	usta := r.Group("/invitations")
	usta.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleUsta))
	{
		usta.POST("/:invitationId/view", h.MarkViewed)
		usta.POST("/:invitationId/respond", h.Respond)
	}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	invitation, err := h.invitationService.Create(h.GetDB(c), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.CreatedResult(c, invitation)
}

func (h *InvitationHandler) Get(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	invitation, err := h.invitationService.Get(h.GetDB(c), c.Param("invitationId"), callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, invitation)
}

func (h *InvitationHandler) GetChain(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	chain, err := h.invitationService.GetChain(h.GetDB(c), c.Param("invitationId"), callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, chain)
}

func (h *InvitationHandler) List(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var filter dto.InvitationListFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	// Callers only list their own side of the table.
	roleVal, _ := c.Get("role")
	if role, ok := roleVal.(models.UserRole); ok && role == models.UserRoleUsta {
		filter.UstaID = callerID
		filter.CustomerID = ""
	} else {
		filter.CustomerID = callerID
		filter.UstaID = ""
	}
	filter.Page, filter.PageSize = ParsePagination(c)

	list, err := h.invitationService.List(h.GetDB(c), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, list)
}

func (h *InvitationHandler) MarkViewed(c *gin.Context) {
	ustaID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	invitation, err := h.invitationService.MarkViewed(h.GetDB(c), c.Param("invitationId"), ustaID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, invitation)
}

func (h *InvitationHandler) Respond(c *gin.Context) {
	ustaID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondInvitationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	invitation, err := h.invitationService.Respond(h.GetDB(c), c.Param("invitationId"), ustaID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, invitation)
}

func (h *InvitationHandler) Cancel(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	invitation, err := h.invitationService.Cancel(h.GetDB(c), c.Param("invitationId"), customerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, invitation)
}

func (h *InvitationHandler) FollowUp(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.FollowUpInvitationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	invitation, err := h.invitationService.FollowUp(h.GetDB(c), c.Param("invitationId"), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.CreatedResult(c, invitation)
}
