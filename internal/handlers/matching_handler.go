package handlers

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/services/dto"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{BaseHandler: base, matchingService: matchingService}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	matching := r.Group("/matching")
	matching.Use(middleware.AuthMiddleware())
	{
		matching.GET("/ustas/nearby", middleware.RequireRoles(models.UserRoleCustomer), h.UstasNearMe)
		matching.GET("/jobs/:jobId/ustas", middleware.RequireRoles(models.UserRoleCustomer), h.UstasNearJob)
		matching.GET("/jobs/nearby", middleware.RequireRoles(models.UserRoleUsta), h.JobsNearMe)
	}
}

func (h *MatchingHandler) UstasNearMe(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var filter dto.NearbyFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	matches, err := h.matchingService.UstasNearCustomer(h.GetDB(c), customerID, &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, matches)
}

func (h *MatchingHandler) UstasNearJob(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var filter dto.NearbyFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	matches, err := h.matchingService.UstasNearJob(h.GetDB(c), c.Param("jobId"), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, matches)
}

func (h *MatchingHandler) JobsNearMe(c *gin.Context) {
	ustaID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var filter dto.NearbyFilter
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	matches, err := h.matchingService.JobsNearUsta(h.GetDB(c), ustaID, &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, matches)
}
