package handler

import (
	"net/http"

	"budget-backend/internal/middleware"
	"budget-backend/internal/service"
	"budget-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/api/reports", middleware.RequireAuth())
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/by-department", h.ByDepartment)
		reports.GET("/monthly", h.Monthly)
		reports.GET("/by-type", h.ByType)
		reports.GET("/filter-options", h.Options)
	}
}

// reportFilter reads the shared filter query params for report endpoints.
func reportFilter(c *gin.Context) service.ListBudgetsFilter {
	return service.ListBudgetsFilter{
		Query:      c.Query("q"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
		From:       c.Query("from"),
		To:         c.Query("to"),
	}
}

// Summary handles GET /api/reports/summary
// @Summary      Budget summary
// @Description  Returns counts, totals, and the approval rate over the filtered budget set
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "Exact status"
// @Param        department  query     string  false  "Exact department"
// @Param        from        query     string  false  "Created-at lower bound (2006-01-02)"
// @Param        to          query     string  false  "Created-at upper bound (2006-01-02)"
// @Success      200         {object}  response.Response{data=budget.Summary}
// @Failure      400         {object}  response.Response
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context(), reportFilter(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}

// ByDepartment handles GET /api/reports/by-department
// @Summary      Budgets grouped by department
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]budget.DepartmentSummary}
// @Failure      400  {object}  response.Response
// @Router       /api/reports/by-department [get]
func (h *ReportHandler) ByDepartment(c *gin.Context) {
	groups, err := h.reportService.ByDepartment(c.Request.Context(), reportFilter(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, groups))
}

// Monthly handles GET /api/reports/monthly
// @Summary      Budgets grouped by creation month
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]budget.MonthBucket}
// @Failure      400  {object}  response.Response
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	buckets, err := h.reportService.Monthly(c.Request.Context(), reportFilter(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, buckets))
}

// ByType handles GET /api/reports/by-type
// @Summary      Budgets grouped by budget type
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]budget.TypeSummary}
// @Failure      400  {object}  response.Response
// @Router       /api/reports/by-type [get]
func (h *ReportHandler) ByType(c *gin.Context) {
	groups, err := h.reportService.ByType(c.Request.Context(), reportFilter(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, groups))
}

// Options handles GET /api/reports/filter-options
// @Summary      Filter dropdown values
// @Description  Returns the distinct statuses, departments, and budget types present in the data
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.FilterOptions}
// @Failure      500  {object}  response.Response
// @Router       /api/reports/filter-options [get]
func (h *ReportHandler) Options(c *gin.Context) {
	options, err := h.reportService.Options(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch filter options"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, options))
}
