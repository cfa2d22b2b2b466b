package handlers

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetMe)
		users.GET("/:userId", h.GetProfile)
		users.PUT("/me/location", h.SetLocation)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(h.GetDB(c), userID, "")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, profile)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(h.GetDB(c), c.Param("userId"), viewerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, profile)
}

func (h *UserHandler) SetLocation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetLocationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.SetLocation(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"message": "Location updated"})
}
