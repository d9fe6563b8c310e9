package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rdfzsc/campus-api/internal/api/handler/v1/request"
	"github.com/rdfzsc/campus-api/internal/api/handler/v1/response"
	"github.com/rdfzsc/campus-api/internal/config"
	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListUsers(ctx context.Context, actor domain.User, page, pageSize int) ([]domain.User, int64, error)
	UpdateUser(ctx context.Context, actor domain.User, id uint, upd service.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, actor domain.User, id uint) error
}

type PointsService interface {
	AddPoints(ctx context.Context, actor domain.User, record domain.PointRecord) (domain.PointRecord, error)
	ListRecords(ctx context.Context, actor domain.User, userID uint, page, pageSize int) ([]domain.PointRecord, int64, error)
}

type UserHandler struct {
	conf *config.AppConfig
	svc  UserService
	pSvc PointsService
}

func NewUserHandler(conf *config.AppConfig, svc UserService, pSvc PointsService) *UserHandler {
	return &UserHandler{
		conf: conf,
		svc:  svc,
		pSvc: pSvc,
	}
}

// HandleListUsers godoc
// @Summary      List users
// @Description  Admin only, paginated.
// @Tags         users
// @Produce      json
// @Param        page      query     int  false  "page number"
// @Param        pageSize  query     int  false  "page size"
// @Success      200       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, pageSize := request.ParsePagination(ctx, h.conf.Pagination.DefaultPageSize, h.conf.Pagination.MaxPageSize)

	users, total, err := h.svc.ListUsers(ctx.Request.Context(), actor, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not list users", actor.ID)))
			return
		}

		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, response.Paginated{
		Items:    response.NewUserViews(users, true),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// HandleGetUser godoc
// @Summary      Get a user profile
// @Description  Email and last login are only included for the owner and admins.
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "user id"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /users/{userID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	private := actor.ID == id || actor.Role == domain.RoleAdmin

	response.RenderOK(ctx, response.NewUserView(user, private))
}

// HandleUpdateUser godoc
// @Summary      Update a user profile
// @Description  Self or admin. Role and verification changes are admin only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int                        true  "user id"
// @Param        request  body      request.UpdateUserRequest  true  "request body"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/{userID} [put]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateUserRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(h.conf.Users.MaxBioLength); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	upd := service.UserUpdate{
		Username:    req.Username,
		Email:       req.Email,
		Grade:       req.Grade,
		ClassName:   req.ClassName,
		MinecraftID: req.MinecraftID,
		Bio:         req.Bio,
		IsVerified:  req.IsVerified,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		upd.Role = &role
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), actor, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not update user %v", actor.ID, id)))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
		case errors.Is(err, service.ErrUsernameExists):
			response.RenderErr(ctx, response.ErrUsernameTaken())
		case errors.Is(err, service.ErrEmailExists):
			response.RenderErr(ctx, response.ErrEmailTaken())
		default:
			err = fmt.Errorf("v1.HandleUpdateUser -> h.svc.UpdateUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, response.NewUserView(user, true))
}

// HandleDeleteUser godoc
// @Summary      Soft-delete a user
// @Description  Admin only. Flips the role to deleted; repeating fails.
// @Tags         users
// @Produce      json
// @Param        userID  path      int  true  "user id"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /users/{userID} [delete]
// @Security     BearerAuth
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.DeleteUser(ctx.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not delete users", actor.ID)))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
		case errors.Is(err, service.ErrUserAlreadyDeleted):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrUserAlreadyDeleted))
		default:
			err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, nil)
}

// HandleAddPoints godoc
// @Summary      Add a points ledger record
// @Description  Admin only. Appends a record and moves the balance atomically.
// @Tags         points
// @Accept       json
// @Produce      json
// @Param        userID   path      int                       true  "user id"
// @Param        request  body      request.AddPointsRequest  true  "request body"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /users/{userID}/points/add [post]
// @Security     BearerAuth
func (h *UserHandler) HandleAddPoints(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.AddPointsRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	record, err := h.pSvc.AddPoints(ctx.Request.Context(), actor, domain.PointRecord{
		UserID:            id,
		Points:            req.Points,
		Description:       req.Description,
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not grant points", actor.ID)))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
		default:
			err = fmt.Errorf("v1.HandleAddPoints -> h.pSvc.AddPoints -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, record)
}

// HandleGetPointRecords godoc
// @Summary      List a user's points ledger
// @Description  Owner or admin, newest first.
// @Tags         points
// @Produce      json
// @Param        userID    path      int  true   "user id"
// @Param        page      query     int  false  "page number"
// @Param        pageSize  query     int  false  "page size"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Router       /users/{userID}/points/record [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetPointRecords(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page, pageSize := request.ParsePagination(ctx, h.conf.Pagination.DefaultPageSize, h.conf.Pagination.MaxPageSize)

	records, total, err := h.pSvc.ListRecords(ctx.Request.Context(), actor, id, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not read this ledger", actor.ID)))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", id))
		default:
			err = fmt.Errorf("v1.HandleGetPointRecords -> h.pSvc.ListRecords -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, response.Paginated{
		Items:    records,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
