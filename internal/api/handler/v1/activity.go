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

var errInvalidStatusFilter = errors.New("status must be one of pending, approved, rejected, completed, deleted")

type ActivityService interface {
	CreateActivity(ctx context.Context, actor domain.User, activity domain.Activity) (domain.Activity, error)
	GetActivity(ctx context.Context, actor domain.User, id uint) (domain.Activity, error)
	ListActivities(ctx context.Context, actor domain.User, q service.ListActivitiesQuery) ([]domain.Activity, int64, error)
	UpdateActivity(ctx context.Context, actor domain.User, id uint, upd service.ActivityUpdate) (domain.Activity, error)
	DeleteActivity(ctx context.Context, actor domain.User, id uint) error
	CreateCategory(ctx context.Context, actor domain.User, category domain.ActivityCategory) (domain.ActivityCategory, error)
	ListCategories(ctx context.Context) ([]domain.ActivityCategory, error)
}

type ParticipationService interface {
	Join(ctx context.Context, actor domain.User, activityID, targetUserID uint) error
	Leave(ctx context.Context, actor domain.User, activityID, targetUserID uint) error
	ListParticipants(ctx context.Context, activityID uint, page, pageSize int) ([]domain.ActivityParticipation, int64, error)
	ListJoined(ctx context.Context, actor domain.User, q service.ListJoinedQuery) ([]domain.ActivityParticipation, int64, error)
}

type ActivityHandler struct {
	conf *config.AppConfig
	svc  ActivityService
	pSvc ParticipationService
	uSvc UserService
}

func NewActivityHandler(conf *config.AppConfig, svc ActivityService, pSvc ParticipationService, uSvc UserService) *ActivityHandler {
	return &ActivityHandler{
		conf: conf,
		svc:  svc,
		pSvc: pSvc,
		uSvc: uSvc,
	}
}

// HandleListActivities godoc
// @Summary      List activities
// @Description  Paginated and sortable. Non-admins only see approved and completed activities plus their own.
// @Tags         activities
// @Produce      json
// @Param        page         query     int     false  "page number"
// @Param        pageSize     query     int     false  "page size"
// @Param        orderBy      query     string  false  "title | startDate | endDate | createdAt | updatedAt"
// @Param        order        query     string  false  "asc | desc"
// @Param        categoryId   query     int     false  "filter by category"
// @Param        organizerId  query     int     false  "filter by organizer"
// @Param        status       query     string  false  "filter by status"
// @Success      200          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      500          {object}  response.Response
// @Router       /activities [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleListActivities(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, pageSize := request.ParsePagination(ctx, h.conf.Pagination.DefaultPageSize, h.conf.Pagination.MaxPageSize)

	orderBy, order, err := request.ParseSort(ctx, request.ActivitySortColumns, "createdAt")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	categoryID, err := request.ParseUintQuery(ctx, "categoryId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	organizerID, err := request.ParseUintQuery(ctx, "organizerId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	status := domain.ActivityStatus(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidStatusFilter))
		return
	}

	activities, total, err := h.svc.ListActivities(ctx.Request.Context(), actor, service.ListActivitiesQuery{
		Page:        page,
		PageSize:    pageSize,
		OrderBy:     orderBy,
		Order:       order,
		CategoryID:  categoryID,
		OrganizerID: organizerID,
		Status:      status,
	})
	if err != nil {
		if errors.Is(err, service.ErrRestrictedStatusFilter) {
			response.RenderErr(ctx, response.ErrRestrictedFilter())
			return
		}

		err = fmt.Errorf("v1.HandleListActivities -> h.svc.ListActivities -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, response.Paginated{
		Items:    activities,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// HandleCreateActivity godoc
// @Summary      Create an activity
// @Description  Stored as pending; the organizer is enrolled automatically.
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateActivityRequest  true  "request body"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /activities [post]
// @Security     BearerAuth
func (h *ActivityHandler) HandleCreateActivity(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	activity, err := h.svc.CreateActivity(ctx.Request.Context(), actor, domain.Activity{
		Title:           req.Title,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		Location:        req.Location,
		StartDate:       req.ParsedStartDate,
		EndDate:         req.ParsedEndDate,
		MaxParticipants: req.MaxParticipants,
		FeaturedImage:   req.FeaturedImage,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not create activities", actor.ID)))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNotFound))
		default:
			err = fmt.Errorf("v1.HandleCreateActivity -> h.svc.CreateActivity -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, activity)
}

// HandleGetActivity godoc
// @Summary      Get an activity
// @Description  Pending, rejected and deleted activities are only visible to admins and the organizer.
// @Tags         activities
// @Produce      json
// @Param        activityID  path      int  true  "activity id"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /activities/{activityID} [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleGetActivity(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "activityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	activity, err := h.svc.GetActivity(ctx.Request.Context(), actor, id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetActivity -> h.svc.GetActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, activity)
}

// HandleUpdateActivity godoc
// @Summary      Update an activity
// @Description  Organizer or admin. Edits push the activity back to pending unless an admin sets the status.
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        activityID  path      int                            true  "activity id"
// @Param        request     body      request.UpdateActivityRequest  true  "request body"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /activities/{activityID} [put]
// @Security     BearerAuth
func (h *ActivityHandler) HandleUpdateActivity(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "activityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateActivityRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	upd := service.ActivityUpdate{
		Title:           req.Title,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		Location:        req.Location,
		StartDate:       req.ParsedStartDate,
		EndDate:         req.ParsedEndDate,
		MaxParticipants: req.CapacityUpdate(),
		FeaturedImage:   req.FeaturedImage,
	}
	if req.Status != nil {
		status := domain.ActivityStatus(*req.Status)
		upd.Status = &status
	}

	activity, err := h.svc.UpdateActivity(ctx.Request.Context(), actor, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "id", id))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not update activity %v", actor.ID, id)))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrCategoryNotFound))
		default:
			err = fmt.Errorf("v1.HandleUpdateActivity -> h.svc.UpdateActivity -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, activity)
}

// HandleDeleteActivity godoc
// @Summary      Delete an activity
// @Description  Organizer or admin. Sets the status to deleted; repeating fails.
// @Tags         activities
// @Produce      json
// @Param        activityID  path      int  true  "activity id"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /activities/{activityID} [delete]
// @Security     BearerAuth
func (h *ActivityHandler) HandleDeleteActivity(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "activityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.DeleteActivity(ctx.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "id", id))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not delete activity %v", actor.ID, id)))
		case errors.Is(err, service.ErrActivityAlreadyDeleted):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrActivityAlreadyDeleted))
		default:
			err = fmt.Errorf("v1.HandleDeleteActivity -> h.svc.DeleteActivity -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, nil)
}

// HandleListCategories godoc
// @Summary      List activity categories
// @Tags         activities
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /activities/categories/all [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleListCategories(ctx *gin.Context) {
	_, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	categories, err := h.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListCategories -> h.svc.ListCategories -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, categories)
}

// HandleCreateCategory godoc
// @Summary      Create an activity category
// @Description  Admin only.
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateCategoryRequest  true  "request body"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /activities/categories/new [post]
// @Security     BearerAuth
func (h *ActivityHandler) HandleCreateCategory(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.CreateCategory(ctx.Request.Context(), actor, domain.ActivityCategory{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not create categories", actor.ID)))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCategory -> h.svc.CreateCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, category)
}

// HandleJoinActivity godoc
// @Summary      Join an activity
// @Description  Admins may pass a userId in the body to enroll someone else, and bypass the status and capacity gates.
// @Tags         participation
// @Accept       json
// @Produce      json
// @Param        activityID  path      int                        true   "activity id"
// @Param        request     body      request.JoinLeaveRequest   false  "optional on-behalf-of body"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /activities/{activityID}/join [post]
// @Security     BearerAuth
func (h *ActivityHandler) HandleJoinActivity(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "activityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req, err := bindOptionalJoinLeave(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.pSvc.Join(ctx.Request.Context(), actor, id, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "id", id))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", req.UserID))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not join on behalf of others", actor.ID)))
		case errors.Is(err, service.ErrActivityNotJoinable):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrActivityNotJoinable))
		case errors.Is(err, service.ErrAlreadyJoined):
			response.RenderErr(ctx, response.ErrAlreadyJoined())
		case errors.Is(err, service.ErrActivityFull):
			response.RenderErr(ctx, response.ErrActivityFull())
		default:
			err = fmt.Errorf("v1.HandleJoinActivity -> h.pSvc.Join -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, nil)
}

// HandleLeaveActivity godoc
// @Summary      Leave an activity
// @Description  Admins may pass a userId in the body to remove someone else. The organizer can never leave.
// @Tags         participation
// @Accept       json
// @Produce      json
// @Param        activityID  path      int                        true   "activity id"
// @Param        request     body      request.JoinLeaveRequest   false  "optional on-behalf-of body"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /activities/{activityID}/leave [post]
// @Security     BearerAuth
func (h *ActivityHandler) HandleLeaveActivity(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "activityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	req, err := bindOptionalJoinLeave(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.pSvc.Leave(ctx.Request.Context(), actor, id, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActivityNotFound):
			response.RenderErr(ctx, response.ErrNotFound("activity", "id", id))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "id", req.UserID))
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not leave this activity now", actor.ID)))
		case errors.Is(err, service.ErrActivityAlreadyDeleted):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrActivityAlreadyDeleted))
		case errors.Is(err, service.ErrOrganizerCannotLeave):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrOrganizerCannotLeave))
		case errors.Is(err, service.ErrNotInActivity):
			response.RenderErr(ctx, response.ErrNotInActivity())
		default:
			err = fmt.Errorf("v1.HandleLeaveActivity -> h.pSvc.Leave -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, nil)
}

// HandleListParticipants godoc
// @Summary      List an activity's participants
// @Description  Any authenticated user, paginated by join time.
// @Tags         participation
// @Produce      json
// @Param        activityID  path      int  true   "activity id"
// @Param        page        query     int  false  "page number"
// @Param        pageSize    query     int  false  "page size"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /activities/{activityID}/participants [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleListParticipants(ctx *gin.Context) {
	_, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id, err := request.ParseUintParam(ctx, "activityID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page, pageSize := request.ParsePagination(ctx, h.conf.Pagination.DefaultPageSize, h.conf.Pagination.MaxPageSize)

	participations, total, err := h.pSvc.ListParticipants(ctx.Request.Context(), id, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("activity", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleListParticipants -> h.pSvc.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	response.RenderOK(ctx, response.Paginated{
		Items:    response.NewParticipantViews(participations),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// HandleGetUserActivities godoc
// @Summary      List the activities a user has joined
// @Description  Self or admin. Default order is join time; activity columns are also sortable.
// @Tags         participation
// @Produce      json
// @Param        userID      path      int     true   "user id"
// @Param        page        query     int     false  "page number"
// @Param        pageSize    query     int     false  "page size"
// @Param        orderBy     query     string  false  "joinedAt | title | startDate | endDate | createdAt | updatedAt"
// @Param        order       query     string  false  "asc | desc"
// @Param        categoryId  query     int     false  "filter by category"
// @Param        status      query     string  false  "filter by status"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      401         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Failure      500         {object}  response.Response
// @Router       /users/{userID}/activities [get]
// @Security     BearerAuth
func (h *ActivityHandler) HandleGetUserActivities(ctx *gin.Context) {
	actor, respErr := getUserFromContext(ctx, h.uSvc)
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

	orderBy, order, err := request.ParseSort(ctx, request.JoinedSortColumns, "joinedAt")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	categoryID, err := request.ParseUintQuery(ctx, "categoryId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	status := domain.ActivityStatus(ctx.Query("status"))
	if status != "" && !status.IsValid() {
		response.RenderErr(ctx, response.ErrBadRequest(errInvalidStatusFilter))
		return
	}

	participations, total, err := h.pSvc.ListJoined(ctx.Request.Context(), actor, service.ListJoinedQuery{
		Page:       page,
		PageSize:   pageSize,
		OrderBy:    orderBy,
		Order:      order,
		UserID:     id,
		CategoryID: categoryID,
		Status:     status,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v may not read user %v's activities", actor.ID, id)))
		case errors.Is(err, service.ErrRestrictedStatusFilter):
			response.RenderErr(ctx, response.ErrRestrictedFilter())
		default:
			err = fmt.Errorf("v1.HandleGetUserActivities -> h.pSvc.ListJoined -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	response.RenderOK(ctx, response.Paginated{
		Items:    response.NewJoinedActivityViews(participations),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// bindOptionalJoinLeave tolerates an empty body, which is the common
// self-join case.
func bindOptionalJoinLeave(ctx *gin.Context) (request.JoinLeaveRequest, error) {
	var req request.JoinLeaveRequest

	if ctx.Request.Body == nil || ctx.Request.ContentLength == 0 {
		return req, nil
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		return request.JoinLeaveRequest{}, err
	}

	return req, nil
}
