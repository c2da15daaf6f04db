// Package response provides the unified JSON envelope for HTTP handlers.
// Every response carries a business code, a message, and an optional payload;
// error codes map onto the Errno registry in pkg/errors.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/pkg/errors"
	"github.com/kart-io/haven/pkg/validator"
)

// Response is the unified response body.
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Page is the payload shape for paginated list responses.
type Page struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
}

// requestIDKey is the gin context key set by the request ID middleware.
const requestIDKey = "request_id"

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// OK sends a successful response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Code:      errors.OK.Code,
		Message:   errors.OK.Message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &Response{
		Code:      errors.OK.Code,
		Message:   errors.OK.Message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// PageOK sends a paginated list response.
func PageOK(c *gin.Context, items interface{}, total int64) {
	OK(c, &Page{Items: items, Total: total})
}

// Fail sends an error response. The error is resolved to an Errno so the
// response carries a stable business code and the matching HTTP status.
func Fail(c *gin.Context, err error) {
	e := errors.FromError(err)
	c.JSON(e.HTTPStatus(), &Response{
		Code:      e.Code,
		Message:   e.Message,
		RequestID: requestID(c),
	})
}

// FailWithValidation sends a 400 response carrying per-field validation details.
func FailWithValidation(c *gin.Context, verr *validator.ValidationErrors) {
	c.JSON(http.StatusBadRequest, &Response{
		Code:      errors.ErrValidationFailed.Code,
		Message:   verr.First(),
		Data:      verr.ToMap(),
		RequestID: requestID(c),
	})
}

// FailWithBind handles request binding failures. Validation errors produced by
// pkg/validator get the detailed shape; anything else becomes an invalid
// parameter error.
func FailWithBind(c *gin.Context, err error) {
	if verr, ok := err.(*validator.ValidationErrors); ok {
		FailWithValidation(c, verr)
		return
	}
	Fail(c, errors.ErrInvalidParam.WithMessage("invalid request body: "+err.Error()))
}
