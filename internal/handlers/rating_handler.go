package handlers

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/services/dto"
)

type RatingHandler struct {
	*BaseHandler
	ratingService services.RatingService
}

func NewRatingHandler(base *BaseHandler, ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{BaseHandler: base, ratingService: ratingService}
}

func (h *RatingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public read side
	public := r.Group("/ratings")
	{
		public.GET("/:ratingId", h.Get)
		public.GET("/ustas/:ustaId", h.ListByUsta)
		public.GET("/ustas/:ustaId/stats", h.Stats)
	}

	customer := r.Group("/ratings")
	customer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCustomer))
	{
		customer.POST("", h.Create)
		customer.PUT("/:ratingId", h.Update)
	}

	usta := r.Group("/ratings")
	usta.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleUsta))
	{
		usta.POST("/:ratingId/respond", h.Respond)
	}
}

func (h *RatingHandler) Create(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rating, err := h.ratingService.Create(h.GetDB(c), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.CreatedResult(c, rating)
}

func (h *RatingHandler) Update(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateRatingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rating, err := h.ratingService.Update(h.GetDB(c), c.Param("ratingId"), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, rating)
}

func (h *RatingHandler) Respond(c *gin.Context) {
	ustaID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondRatingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rating, err := h.ratingService.Respond(h.GetDB(c), c.Param("ratingId"), ustaID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, rating)
}

func (h *RatingHandler) Get(c *gin.Context) {
	rating, err := h.ratingService.Get(h.GetDB(c), c.Param("ratingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, rating)
}

func (h *RatingHandler) ListByUsta(c *gin.Context) {
	ratings, err := h.ratingService.ListByUsta(h.GetDB(c), c.Param("ustaId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, ratings)
}

func (h *RatingHandler) Stats(c *gin.Context) {
	stats, err := h.ratingService.Stats(h.GetDB(c), c.Param("ustaId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, stats)
}
