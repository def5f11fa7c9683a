package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
	"github.com/politreg/deputy-portal/internal/middleware"
	apperrors "github.com/politreg/deputy-portal/pkg/errors"
)

// FormController handles questionnaire intake and staff review screens.
type FormController struct {
	formService service.FormService
	auth        *middleware.AuthMiddleware
}

// NewFormController creates a new FormController instance
func NewFormController(formService service.FormService, auth *middleware.AuthMiddleware) *FormController {
	return &FormController{
		formService: formService,
		auth:        auth,
	}
}

// RegisterRoutes registers the form routes. Submission is public, the
// rest is staff-only.
func (c *FormController) RegisterRoutes(router *gin.RouterGroup) {
	forms := router.Group("/forms")
	{
		forms.POST("", c.Submit)

		staff := forms.Group("")
		staff.Use(c.auth.Authenticate(), c.auth.RequireStaff())
		{
			staff.GET("/pending", c.ListPending)
			staff.GET("/:userId", c.Get)
			staff.PUT("/:userId", c.Update)
		}
	}
}

// Submit handles a public questionnaire submission
// @Summary Submit a registration questionnaire
// @Tags Forms
// @Accept json
// @Produce json
// @Param request body request.SubmitForm true "Questionnaire"
// @Success 201 {object} response.ApiResponse[response.SubmitFormResponse]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 409 {object} response.ApiResponse[any]
// @Router /api/v1/forms [post]
func (c *FormController) Submit(ctx *gin.Context) {
	var req request.SubmitForm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	form, err := c.formService.Submit(ctx.Request.Context(), &req)
	if err != nil {
		if ve, ok := apperrors.AsValidationError(err); ok {
			ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, ve.Fields))
			return
		}
		switch err {
		case service.ErrUserAlreadyActive:
			ctx.JSON(http.StatusConflict, response.NewError[any]("user is already verified"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("submission failed"))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewSuccess(response.SubmitFormResponse{
		UserID:      form.UserID,
		SubmittedAt: form.CreatedAt,
	}, "Questionnaire submitted"))
}

// ListPending lists questionnaires awaiting review
// @Summary List questionnaires of not yet verified users
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]entity.RegistrationForm]
// @Router /api/v1/forms/pending [get]
func (c *FormController) ListPending(ctx *gin.Context) {
	forms, err := c.formService.ListPending(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to list questionnaires"))
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(forms))
}

// Get fetches one questionnaire
// @Summary Get a questionnaire by owner id
// @Tags Forms
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Owner id"
// @Success 200 {object} response.ApiResponse[entity.RegistrationForm]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/forms/{userId} [get]
func (c *FormController) Get(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid user id"))
		return
	}

	form, err := c.formService.Get(ctx.Request.Context(), userID)
	if err != nil {
		switch err {
		case service.ErrFormNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("questionnaire not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to load questionnaire"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(form))
}

// Update replaces a stored questionnaire
// @Summary Update a questionnaire
// @Tags Forms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Owner id"
// @Param request body request.SubmitForm true "Questionnaire"
// @Success 200 {object} response.ApiResponse[entity.RegistrationForm]
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/forms/{userId} [put]
func (c *FormController) Update(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid user id"))
		return
	}

	var req request.SubmitForm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}
	req.UserID = userID

	form, err := c.formService.Update(ctx.Request.Context(), &req)
	if err != nil {
		if ve, ok := apperrors.AsValidationError(err); ok {
			ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, ve.Fields))
			return
		}
		switch err {
		case service.ErrFormNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("questionnaire not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("update failed"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(form))
}
