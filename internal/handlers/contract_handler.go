package handlers

import (
	"github.com/gin-gonic/gin"

	"ustahub_backend/internal/middleware"
	"ustahub_backend/internal/models"
	"ustahub_backend/internal/services"
	"ustahub_backend/internal/services/dto"
)

type ContractHandler struct {
	*BaseHandler
	contractService services.ContractService
}

func NewContractHandler(base *BaseHandler, contractService services.ContractService) *ContractHandler {
	return &ContractHandler{BaseHandler: base, contractService: contractService}
}

func (h *ContractHandler) RegisterRoutes(r *gin.RouterGroup) {
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthMiddleware())
	{
		contracts.GET("/my", h.ListMine)
		contracts.GET("/:contractId", h.Get)
	}

	customer := r.Group("/contracts")
	customer.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCustomer))
	{
		customer.POST("", h.Create)
	}

	usta := r.Group("/contracts")
	usta.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleUsta))
	{
		usta.POST("/:contractId/respond", h.Respond)
	}
}

func (h *ContractHandler) Create(c *gin.Context) {
	customerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContractRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contract, err := h.contractService.Create(h.GetDB(c), customerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.CreatedResult(c, contract)
}

func (h *ContractHandler) Respond(c *gin.Context) {
	ustaID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContractStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	contract, err := h.contractService.Respond(h.GetDB(c), c.Param("contractId"), ustaID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, contract)
}

func (h *ContractHandler) Get(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	contract, err := h.contractService.Get(h.GetDB(c), c.Param("contractId"), callerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, contract)
}

func (h *ContractHandler) ListMine(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	roleVal, _ := c.Get("role")
	var (
		contracts []*dto.ContractResponse
		err       error
	)
	if role, isRole := roleVal.(models.UserRole); isRole && role == models.UserRoleUsta {
		contracts, err = h.contractService.ListByUsta(db, callerID)
	} else {
		contracts, err = h.contractService.ListByCustomer(db, callerID)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, contracts)
}
