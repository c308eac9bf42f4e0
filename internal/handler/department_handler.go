package handler

import (
	"net/http"

	"budget-backend/internal/middleware"
	"budget-backend/internal/model"
	"budget-backend/internal/service"
	"budget-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DepartmentHandler struct {
	departmentService service.DepartmentService
}

func NewDepartmentHandler(departmentService service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

func (h *DepartmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	admins := middleware.RequireRole(model.RoleAdmin, model.RoleFinanceManager)

	departments := router.Group("/api/departments")
	{
		departments.GET("", middleware.RequireAuth(), h.ListDepartments)
		departments.POST("", admins, h.CreateDepartment)
		departments.GET("/:id", middleware.RequireAuth(), h.GetDepartment)
		departments.PUT("/:id", admins, h.UpdateDepartment)
		departments.DELETE("/:id", admins, h.DeleteDepartment)

		departments.GET("/:id/cost-centers", middleware.RequireAuth(), h.ListCostCenters)
		departments.POST("/:id/cost-centers", admins, h.CreateCostCenter)
	}

	costCenters := router.Group("/api/cost-centers")
	{
		costCenters.PUT("/:id", admins, h.UpdateCostCenter)
		costCenters.DELETE("/:id", admins, h.DeleteCostCenter)
	}
}

// ListDepartments handles GET /api/departments
// @Summary      List departments
// @Description  Retrieves all departments, optionally only active ones
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        active  query     bool  false  "Only active departments"
// @Success      200     {object}  response.Response{data=[]service.DepartmentResponse}
// @Failure      500     {object}  response.Response
// @Router       /api/departments [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	departments, err := h.departmentService.ListDepartments(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch departments"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, departments))
}

// CreateDepartment handles POST /api/departments
// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.DepartmentRequest  true  "Create Department Payload"
// @Success      201      {object}  response.Response{data=service.DepartmentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/departments [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req service.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	dept, err := h.departmentService.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, dept))
}

// GetDepartment handles GET /api/departments/:id
// @Summary      Get a department
// @Description  Fetches a department with its cost centers
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  response.Response{data=service.DepartmentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/departments/{id} [get]
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	dept, err := h.departmentService.GetDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dept))
}

// UpdateDepartment handles PUT /api/departments/:id
// @Summary      Update a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Department ID"
// @Param        payload  body      service.DepartmentRequest  true  "Update Department Payload"
// @Success      200      {object}  response.Response{data=service.DepartmentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/departments/{id} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var req service.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	dept, err := h.departmentService.UpdateDepartment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dept))
}

// DeleteDepartment handles DELETE /api/departments/:id
// @Summary      Delete a department
// @Description  Removes a department and its cost centers
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/departments/{id} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	if err := h.departmentService.DeleteDepartment(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Department deleted successfully"))
}

// ListCostCenters handles GET /api/departments/:id/cost-centers
// @Summary      List cost centers
// @Description  Lists the cost centers of a department
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Department ID"
// @Success      200  {object}  response.Response{data=[]service.CostCenterResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/departments/{id}/cost-centers [get]
func (h *DepartmentHandler) ListCostCenters(c *gin.Context) {
	centers, err := h.departmentService.ListCostCenters(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, centers))
}

// CreateCostCenter handles POST /api/departments/:id/cost-centers
// @Summary      Create a cost center
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Department ID"
// @Param        payload  body      service.CostCenterRequest  true  "Create Cost Center Payload"
// @Success      201      {object}  response.Response{data=service.CostCenterResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/departments/{id}/cost-centers [post]
func (h *DepartmentHandler) CreateCostCenter(c *gin.Context) {
	var req service.CostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	cc, err := h.departmentService.CreateCostCenter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, cc))
}

// UpdateCostCenter handles PUT /api/cost-centers/:id
// @Summary      Update a cost center
// @Tags         departments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Cost Center ID"
// @Param        payload  body      service.CostCenterRequest  true  "Update Cost Center Payload"
// @Success      200      {object}  response.Response{data=service.CostCenterResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/cost-centers/{id} [put]
func (h *DepartmentHandler) UpdateCostCenter(c *gin.Context) {
	var req service.CostCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	cc, err := h.departmentService.UpdateCostCenter(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cc))
}

// DeleteCostCenter handles DELETE /api/cost-centers/:id
// @Summary      Delete a cost center
// @Tags         departments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cost Center ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/cost-centers/{id} [delete]
func (h *DepartmentHandler) DeleteCostCenter(c *gin.Context) {
	if err := h.departmentService.DeleteCostCenter(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Cost center deleted successfully"))
}
