package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rdfzsc/campus-api/internal/api/handler/v1/response"
	"github.com/rdfzsc/campus-api/internal/api/middleware"
	"github.com/rdfzsc/campus-api/internal/domain"
	"github.com/rdfzsc/campus-api/internal/service"
)

// getUserFromContext resolves the authenticated user id left by the JWT
// middleware into a live user row, so role changes and bans take effect
// immediately instead of at token expiry.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return domain.User{}, response.ErrUnauthorized("user is not authenticated")
	}

	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return domain.User{}, response.ErrUnauthorized("user is not authenticated")
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized("user no longer exists")
		}

		err = fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	if user.Role == domain.RoleDeleted {
		return domain.User{}, response.ErrUnauthorized("user no longer exists")
	}

	if user.Role == domain.RoleBanned {
		return domain.User{}, response.ErrUserBanned()
	}

	return user, nil
}
