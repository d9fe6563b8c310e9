package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rdfzsc/campus-api/internal/domain"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	TraceID string      `json:"traceId,omitempty"`
}

// Paginated wraps a page of items together with the total row count.
type Paginated struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// RenderOK writes the success envelope. Every success path answers 200,
// creates included.
func RenderOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// RenderErr writes the error envelope and aborts the handler chain.
// Internal errors keep their cause out of the body and log it with the
// trace id instead.
func RenderErr(ctx *gin.Context, e *Err) {
	traceID := requestid.Get(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
	}

	if e.StatusCode >= http.StatusInternalServerError && e.cause != nil {
		zap.L().Error("request failed",
			zap.String("traceId", traceID),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.cause),
		)
	}

	ctx.AbortWithStatusJSON(e.StatusCode, Response{
		Code:    e.Code,
		Message: e.Msg,
		TraceID: traceID,
	})
}
