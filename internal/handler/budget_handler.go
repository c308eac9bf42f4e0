package handler

import (
	"context"
	"errors"
	"net/http"

	"budget-backend/internal/budget"
	"budget-backend/internal/middleware"
	"budget-backend/internal/model"
	"budget-backend/internal/service"
	"budget-backend/pkg/pagination"
	"budget-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgetService service.BudgetService
}

func NewBudgetHandler(budgetService service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

func (h *BudgetHandler) RegisterRoutes(router *gin.RouterGroup) {
	editors := middleware.RequireRole(model.RoleAdmin, model.RoleFinanceManager, model.RoleDepartmentUser, model.RoleDepartmentManager)
	reviewers := middleware.RequireRole(model.RoleAdmin, model.RoleFinanceManager)

	budgets := router.Group("/api/budgets")
	{
		budgets.GET("", middleware.RequireAuth(), h.ListBudgets)
		budgets.POST("", editors, h.CreateBudget)
		budgets.GET("/:id", middleware.RequireAuth(), h.GetBudget)
		budgets.PUT("/:id", editors, h.UpdateBudget)
		budgets.DELETE("/:id", editors, h.DeleteBudget)

		budgets.POST("/:id/items", editors, h.AddLineItem)
		budgets.PUT("/:id/items/:itemId", editors, h.UpdateLineItem)
		budgets.DELETE("/:id/items/:itemId", editors, h.DeleteLineItem)

		budgets.POST("/:id/submit", editors, h.Submit)
		budgets.POST("/:id/resubmit", editors, h.Resubmit)
		budgets.POST("/:id/start-review", reviewers, h.StartReview)
		budgets.POST("/:id/approve", reviewers, h.Approve)
		budgets.POST("/:id/reject", reviewers, h.Reject)
		budgets.POST("/:id/request-revision", reviewers, h.RequestRevision)

		budgets.GET("/:id/history", middleware.RequireAuth(), h.GetHistory)
	}
}

// writeBudgetError translates service and domain errors into HTTP statuses.
func writeBudgetError(c *gin.Context, err error) {
	var vErrs budget.ValidationErrors
	var tErr *budget.TransitionError

	switch {
	case errors.As(err, &vErrs):
		c.JSON(http.StatusUnprocessableEntity, response.Error(http.StatusUnprocessableEntity, vErrs.Error()))
	case errors.As(err, &tErr):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, tErr.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrStateConflict), errors.Is(err, service.ErrNotEditable):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	}
}

// callerID pulls the authenticated user id the auth middleware stored.
func callerID(c *gin.Context) (string, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return "", false
	}
	id, ok := raw.(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid User ID format"))
		return "", false
	}
	return id, true
}

// CreateBudget handles POST /api/budgets
// @Summary      Create a budget request
// @Description  Creates a new draft budget request and assigns its business identifier
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateBudgetRequest  true  "Create Budget Payload"
// @Success      201      {object}  response.Response{data=service.BudgetResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	created, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, created))
}

// ListBudgets handles GET /api/budgets with filter and pagination query params
// @Summary      List budget requests
// @Description  Retrieves budgets matching the optional search, status, department, and date range filters
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        q           query     string  false  "Search over budget id, department, description"
// @Param        status      query     string  false  "Exact status"
// @Param        department  query     string  false  "Exact department"
// @Param        from        query     string  false  "Created-at lower bound (2006-01-02)"
// @Param        to          query     string  false  "Created-at upper bound (2006-01-02)"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Items per page (default 20)"
// @Success      200         {object}  response.Response{data=response.PagedData}
// @Failure      400         {object}  response.Response
// @Router       /api/budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	params := pagination.Parse(c)

	filter := service.ListBudgetsFilter{
		Query:      c.Query("q"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
		From:       c.Query("from"),
		To:         c.Query("to"),
		Page:       params.Page,
		Limit:      params.Limit,
	}

	budgets, total, err := h.budgetService.ListBudgets(c.Request.Context(), filter)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, budgets, total, params.Page, params.Limit))
}

// GetBudget handles GET /api/budgets/:id
// @Summary      Get a budget request
// @Description  Fetches a budget with its line items by UUID or business id
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  response.Response{data=service.BudgetResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	found, err := h.budgetService.GetBudget(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, found))
}

// UpdateBudget handles PUT /api/budgets/:id
// @Summary      Update a budget request
// @Description  Updates header fields of a Draft or Revision Required budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Budget ID"
// @Param        payload  body      service.UpdateBudgetRequest  true  "Update Budget Payload"
// @Success      200      {object}  response.Response{data=service.BudgetResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	updated, err := h.budgetService.UpdateBudget(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// DeleteBudget handles DELETE /api/budgets/:id
// @Summary      Delete a budget request
// @Description  Deletes a Draft or Revision Required budget and its line items
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Budget deleted successfully"))
}

// AddLineItem handles POST /api/budgets/:id/items
// @Summary      Add a line item
// @Description  Appends a line item and recalculates the budget total
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Budget ID"
// @Param        payload  body      service.LineItemRequest  true  "Line Item Payload"
// @Success      201      {object}  response.Response{data=service.BudgetResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/budgets/{id}/items [post]
func (h *BudgetHandler) AddLineItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	updated, err := h.budgetService.AddLineItem(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, updated))
}

// UpdateLineItem handles PUT /api/budgets/:id/items/:itemId
// @Summary      Update a line item
// @Description  Updates a line item and recalculates the budget total
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Budget ID"
// @Param        itemId   path      string                   true  "Line Item ID"
// @Param        payload  body      service.LineItemRequest  true  "Line Item Payload"
// @Success      200      {object}  response.Response{data=service.BudgetResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/budgets/{id}/items/{itemId} [put]
func (h *BudgetHandler) UpdateLineItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req service.LineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	updated, err := h.budgetService.UpdateLineItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID, req)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// DeleteLineItem handles DELETE /api/budgets/:id/items/:itemId
// @Summary      Delete a line item
// @Description  Removes a line item and recalculates the budget total
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Budget ID"
// @Param        itemId  path      string  true  "Line Item ID"
// @Success      200     {object}  response.Response{data=service.BudgetResponse}
// @Failure      404     {object}  response.Response
// @Router       /api/budgets/{id}/items/{itemId} [delete]
func (h *BudgetHandler) DeleteLineItem(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	updated, err := h.budgetService.DeleteLineItem(c.Request.Context(), c.Param("id"), c.Param("itemId"), userID)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// Submit handles POST /api/budgets/:id/submit
// @Summary      Submit a budget for review
// @Description  Validates the draft and moves it to Submitted
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  response.Response{data=service.BudgetResponse}
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/budgets/{id}/submit [post]
func (h *BudgetHandler) Submit(c *gin.Context) {
	h.transition(c, func(userID string) (service.BudgetResponse, error) {
		return h.budgetService.Submit(c.Request.Context(), c.Param("id"), userID)
	})
}

// Resubmit handles POST /api/budgets/:id/resubmit
// @Summary      Resubmit a revised budget
// @Description  Revalidates a Revision Required budget and moves it back to Submitted
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  response.Response{data=service.BudgetResponse}
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/budgets/{id}/resubmit [post]
func (h *BudgetHandler) Resubmit(c *gin.Context) {
	h.transition(c, func(userID string) (service.BudgetResponse, error) {
		return h.budgetService.Resubmit(c.Request.Context(), c.Param("id"), userID)
	})
}

// StartReview handles POST /api/budgets/:id/start-review
// @Summary      Start reviewing a budget
// @Description  Moves a Submitted budget to Under Review and records the reviewer
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  response.Response{data=service.BudgetResponse}
// @Failure      409  {object}  response.Response
// @Router       /api/budgets/{id}/start-review [post]
func (h *BudgetHandler) StartReview(c *gin.Context) {
	h.transition(c, func(userID string) (service.BudgetResponse, error) {
		return h.budgetService.StartReview(c.Request.Context(), c.Param("id"), userID)
	})
}

// Approve handles POST /api/budgets/:id/approve
// @Summary      Approve a budget
// @Description  Moves an Under Review budget to the terminal Approved status
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true   "Budget ID"
// @Param        payload  body      service.ReviewRequest  false  "Optional review comments"
// @Success      200      {object}  response.Response{data=service.BudgetResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/budgets/{id}/approve [post]
func (h *BudgetHandler) Approve(c *gin.Context) {
	h.review(c, h.budgetService.Approve)
}

// Reject handles POST /api/budgets/:id/reject
// @Summary      Reject a budget
// @Description  Moves an Under Review budget to the terminal Rejected status; comments are mandatory
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Budget ID"
// @Param        payload  body      service.ReviewRequest  true  "Review comments"
// @Success      200      {object}  response.Response{data=service.BudgetResponse}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/budgets/{id}/reject [post]
func (h *BudgetHandler) Reject(c *gin.Context) {
	h.review(c, h.budgetService.Reject)
}

// RequestRevision handles POST /api/budgets/:id/request-revision
// @Summary      Request budget revision
// @Description  Sends an Under Review budget back to its owner; comments are mandatory
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true  "Budget ID"
// @Param        payload  body      service.ReviewRequest  true  "Review comments"
// @Success      200      {object}  response.Response{data=service.BudgetResponse}
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/budgets/{id}/request-revision [post]
func (h *BudgetHandler) RequestRevision(c *gin.Context) {
	h.review(c, h.budgetService.RequestRevision)
}

func (h *BudgetHandler) transition(c *gin.Context, run func(userID string) (service.BudgetResponse, error)) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	updated, err := run(userID)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

func (h *BudgetHandler) review(c *gin.Context, run func(ctx context.Context, id, userID, comments string) (service.BudgetResponse, error)) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	// Comments body is optional for approve, required for reject and
	// request-revision; the lifecycle validator enforces that.
	var req service.ReviewRequest
	_ = c.ShouldBindJSON(&req)

	updated, err := run(c.Request.Context(), c.Param("id"), userID, req.Comments)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, updated))
}

// GetHistory handles GET /api/budgets/:id/history
// @Summary      Get budget history
// @Description  Lists the audit trail of a budget, newest first
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Budget ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Items per page (default 20)"
// @Success      200    {object}  response.Response{data=response.PagedData}
// @Failure      404    {object}  response.Response
// @Router       /api/budgets/{id}/history [get]
func (h *BudgetHandler) GetHistory(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.budgetService.GetHistory(c.Request.Context(), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		writeBudgetError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, entries, total, params.Page, params.Limit))
}
