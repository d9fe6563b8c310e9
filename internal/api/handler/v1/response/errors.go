package response

import (
	"fmt"
	"net/http"
)

const (
	CodeSuccess            = "SUCCESS"
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeUserBanned         = "USER_BANNED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeActivityNotFound   = "ACTIVITY_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodeUsernameExists     = "USERNAME_ALREADY_EXISTS"
	CodeEmailUsed          = "EMAIL_ALREADY_USED"
	CodeAlreadyJoined      = "ALREADY_JOINED"
	CodeActivityFull       = "ACTIVITY_FULL"
	CodeNotInActivity      = "NOT_IN_ACTIVITY"
	CodeInternalError      = "INTERNAL_SERVER_ERROR"
)

// Err is a renderable API error.
type Err struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Msg        string `json:"message"`

	cause error
}

func (e *Err) Error() string {
	return fmt.Sprintf("%v - %v: %v", e.StatusCode, e.Code, e.Msg)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Code:       CodeBadRequest,
		Msg:        err.Error(),
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeUnauthorized,
		Msg:        msg,
	}
}

// ErrWrongCredentials answers a failed password check.
func ErrWrongCredentials() *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Code:       CodeInvalidCredentials,
		Msg:        "invalid credentials",
	}
}

// ErrUnknownCredentials answers logins against accounts that do not
// exist or are deleted, without telling the two apart.
func ErrUnknownCredentials() *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Code:       CodeInvalidCredentials,
		Msg:        "invalid credentials",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Code:       CodeForbidden,
		Msg:        err.Error(),
	}
}

// ErrRestrictedFilter is the 403 answered to non-admins filtering on a
// hidden activity status. The code stays BAD_REQUEST for compatibility
// with existing clients.
func ErrRestrictedFilter() *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Code:       CodeBadRequest,
		Msg:        "status filter not permitted",
	}
}

func ErrUserBanned() *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Code:       CodeUserBanned,
		Msg:        "user is banned",
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	code := CodeNotFound
	switch resource {
	case "user":
		code = CodeUserNotFound
	case "activity":
		code = CodeActivityNotFound
	}

	return &Err{
		StatusCode: http.StatusNotFound,
		Code:       code,
		Msg:        fmt.Sprintf("%v with %v %v is not found", resource, key, value),
	}
}

func ErrUsernameTaken() *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Code:       CodeUsernameExists,
		Msg:        "username already exists",
	}
}

func ErrEmailTaken() *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Code:       CodeEmailUsed,
		Msg:        "email already used",
	}
}

func ErrAlreadyJoined() *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Code:       CodeAlreadyJoined,
		Msg:        "user already joined this activity",
	}
}

func ErrActivityFull() *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Code:       CodeActivityFull,
		Msg:        "activity is full",
	}
}

func ErrNotInActivity() *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Code:       CodeNotInActivity,
		Msg:        "user has not joined this activity",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Msg:        "something went wrong",
		cause:      err,
	}
}
