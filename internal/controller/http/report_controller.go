package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
	"github.com/politreg/deputy-portal/internal/middleware"
	"github.com/politreg/deputy-portal/internal/reports"
	"github.com/politreg/deputy-portal/internal/security"
)

// ReportController serves the monthly reporting subsystem and the PDF
// renderer.
type ReportController struct {
	reportService   service.ReportService
	renderService   *reports.Service
	securityService *security.SecurityService
	auth            *middleware.AuthMiddleware
}

// NewReportController creates a new ReportController instance
func NewReportController(
	reportService service.ReportService,
	renderService *reports.Service,
	securityService *security.SecurityService,
	auth *middleware.AuthMiddleware,
) *ReportController {
	return &ReportController{
		reportService:   reportService,
		renderService:   renderService,
		securityService: securityService,
		auth:            auth,
	}
}

// RegisterRoutes registers the reporting routes
func (c *ReportController) RegisterRoutes(router *gin.RouterGroup) {
	periods := router.Group("/report-periods")
	periods.Use(c.auth.Authenticate())
	{
		periods.POST("", c.auth.RequireAdmin(), c.CreatePeriod)
		periods.GET("", c.auth.RequireStaff(), c.ListPeriods)
		periods.GET("/:id", c.auth.RequireStaff(), c.GetPeriod)
	}

	router.PATCH("/deputy-records/:id", c.auth.Authenticate(), c.UpdateDeputyRecord)
	router.PUT("/report-records/:id", c.auth.Authenticate(), c.FillReportRecord)

	pdf := router.Group("/reports")
	{
		pdf.GET("/ping", c.Ping)
		pdf.POST("", c.auth.Authenticate(), c.Render)
		pdf.GET("", c.auth.Authenticate(), c.History)
	}
}

// CreatePeriod opens a reporting window
// @Summary Create a reporting period and fan out the rosters
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateReportPeriod true "Period"
// @Success 201 {object} response.ApiResponse[response.ReportPeriodSummary]
// @Failure 400 {object} response.ApiResponse[any]
// @Router /api/v1/report-periods [post]
func (c *ReportController) CreatePeriod(ctx *gin.Context) {
	var req request.CreateReportPeriod
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	period, err := c.reportService.CreatePeriod(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrInvalidPeriod:
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid period dates"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to create period"))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(response.NewReportPeriodSummary(period), "Period created"))
}

// ListPeriods lists reporting windows
// @Summary List reporting periods
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]response.ReportPeriodSummary]
// @Router /api/v1/report-periods [get]
func (c *ReportController) ListPeriods(ctx *gin.Context) {
	periods, err := c.reportService.ListPeriods(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to list periods"))
		return
	}

	result := make([]response.ReportPeriodSummary, 0, len(periods))
	for _, p := range periods {
		result = append(result, response.NewReportPeriodSummary(p))
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// GetPeriod returns one period with the full roster graph
// @Summary Get a reporting period
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Period id"
// @Success 200 {object} response.ApiResponse[entity.ReportPeriod]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/report-periods/{id} [get]
func (c *ReportController) GetPeriod(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid period id"))
		return
	}

	period, err := c.reportService.GetPeriod(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrPeriodNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("period not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to load period"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(period))
}

// UpdateDeputyRecord changes a roster row's availability
// @Summary Mark a deputy available or unavailable for a period
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record id"
// @Param request body request.UpdateDeputyRecord true "Availability"
// @Success 200 {object} response.ApiResponse[entity.DeputyRecord]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/deputy-records/{id} [patch]
func (c *ReportController) UpdateDeputyRecord(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid record id"))
		return
	}

	var req request.UpdateDeputyRecord
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	record, err := c.reportService.UpdateDeputyRecord(ctx.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case service.ErrRecordNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("record not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("update failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(record))
}

// FillReportRecord attaches the completion link to an assignment
// @Summary Fill a report record with its completion link
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record id"
// @Param request body request.FillReportRecord true "Completion link"
// @Success 200 {object} response.ApiResponse[entity.ReportRecord]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/report-records/{id} [put]
func (c *ReportController) FillReportRecord(ctx *gin.Context) {
	id, err := parseUintParam(ctx, "id")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid record id"))
		return
	}

	var req request.FillReportRecord
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	record, err := c.reportService.FillReportRecord(ctx.Request.Context(), id, &req)
	if err != nil {
		switch err {
		case service.ErrRecordNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("record not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("update failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(record))
}

// Render produces a PDF report and returns its public link
// @Summary Render an activity report to PDF
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.RenderReport true "Report content"
// @Success 201 {object} response.ApiResponse[response.RenderedReportResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Router /api/v1/reports [post]
func (c *ReportController) Render(ctx *gin.Context) {
	var req request.RenderReport
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	userID := c.securityService.GetCurrentUserID(ctx)
	rendered, err := c.renderService.Render(ctx.Request.Context(), userID, &req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("rendering failed"))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(*rendered, "Report rendered"))
}

// History lists the caller's rendered reports
// @Summary List the caller's rendered reports, newest first
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]response.RenderedReportResponse]
// @Router /api/v1/reports [get]
func (c *ReportController) History(ctx *gin.Context) {
	userID := c.securityService.GetCurrentUserID(ctx)

	rendered, err := c.renderService.History(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to list reports"))
		return
	}

	result := make([]response.RenderedReportResponse, 0, len(rendered))
	for _, r := range rendered {
		result = append(result, response.RenderedReportResponse{
			FileName:  r.FileName,
			Link:      r.Link,
			CreatedAt: r.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// Ping answers the render subsystem health probe
// @Summary Render subsystem liveness
// @Tags Reports
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/reports/ping [get]
func (c *ReportController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Pong"})
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	return uint(v), err
}
