package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/politreg/deputy-portal/internal/domain/service"
	"github.com/politreg/deputy-portal/internal/dto/request"
	"github.com/politreg/deputy-portal/internal/dto/response"
	"github.com/politreg/deputy-portal/internal/middleware"
	"github.com/politreg/deputy-portal/internal/security"
)

// UserController serves the staff review screens: roster listing,
// detail views and the approve/reject decision.
type UserController struct {
	userService     service.UserService
	securityService *security.SecurityService
	auth            *middleware.AuthMiddleware
}

// NewUserController creates a new UserController instance
func NewUserController(
	userService service.UserService,
	securityService *security.SecurityService,
	auth *middleware.AuthMiddleware,
) *UserController {
	return &UserController{
		userService:     userService,
		securityService: securityService,
		auth:            auth,
	}
}

// RegisterRoutes registers the user routes
func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(c.auth.Authenticate())
	{
		users.GET("/me", c.Me)
		users.GET("/:id", c.GetByID)

		staff := users.Group("")
		staff.Use(c.auth.RequireStaff())
		{
			staff.GET("", c.List)
			staff.POST("/process", c.ProcessForm)
		}
	}
}

// List returns the users visible to the caller
// @Summary List verified users within the caller's scope
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[[]response.UserResponse]
// @Failure 403 {object} response.ApiResponse[any]
// @Router /api/v1/users [get]
func (c *UserController) List(ctx *gin.Context) {
	viewerID := c.securityService.GetCurrentUserID(ctx)

	users, err := c.userService.List(ctx.Request.Context(), viewerID)
	if err != nil {
		switch err {
		case service.ErrAccessDenied:
			ctx.JSON(http.StatusForbidden, response.NewError[any]("insufficient permissions"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to list users"))
		}
		return
	}

	result := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		result = append(result, response.NewUserResponse(user))
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(result))
}

// Me returns the caller's own record
// @Summary Get the current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Router /api/v1/users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	viewerID := c.securityService.GetCurrentUserID(ctx)

	user, err := c.userService.GetByID(ctx.Request.Context(), viewerID, viewerID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("user not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to load user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(response.NewUserResponse(user)))
}

// GetByID returns one user within the caller's scope
// @Summary Get a user by id
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} response.ApiResponse[response.UserResponse]
// @Failure 403 {object} response.ApiResponse[any]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/users/{id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	targetID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid user id"))
		return
	}
	viewerID := c.securityService.GetCurrentUserID(ctx)

	user, err := c.userService.GetByID(ctx.Request.Context(), viewerID, targetID)
	if err != nil {
		switch err {
		case service.ErrAccessDenied:
			ctx.JSON(http.StatusForbidden, response.NewError[any]("insufficient permissions"))
		case service.ErrUserNotFound:
			ctx.JSON(http.StatusNotFound, response.NewError[any]("user not found"))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("failed to load user"))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewSuccessWithData(response.NewUserResponse(user)))
}

// ProcessForm applies the staff decision to a pending questionnaire
// @Summary Approve or reject a pending questionnaire
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.ProcessForm true "Decision"
// @Success 202 {object} response.ProcessFormResponse
// @Success 200 {object} response.ProcessFormResponse
// @Failure 400 {object} response.ApiResponse[any]
// @Failure 404 {object} response.ApiResponse[any]
// @Router /api/v1/users/process [post]
func (c *UserController) ProcessForm(ctx *gin.Context) {
	var req request.ProcessForm
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	resp, err := c.userService.ProcessForm(ctx.Request.Context(), &req)
	if err != nil {
		var relayErr *service.RelayError
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, response.NewError[any]("user not found"))
		case errors.Is(err, service.ErrFormNotFound):
			ctx.JSON(http.StatusNotFound, response.NewError[any]("questionnaire not found"))
		case errors.Is(err, service.ErrUserAlreadyActive):
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("user is already verified"))
		case errors.As(err, &relayErr):
			ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any]("notification failed", relayErr.Message))
		default:
			ctx.JSON(http.StatusInternalServerError, response.NewError[any]("processing failed"))
		}
		return
	}

	// A warning means the decision stuck but the user was not told.
	status := http.StatusAccepted
	if resp.Status == "warning" {
		status = http.StatusOK
	}
	ctx.JSON(status, resp)
}
