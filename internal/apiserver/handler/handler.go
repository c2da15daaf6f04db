// Package handler implements the HTTP handlers of the Haven API server.
// Handlers bind and validate requests, delegate to the biz services, and
// write unified response envelopes.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/haven/pkg/response"
	"github.com/kart-io/haven/pkg/validator"
)

// bindJSON binds the JSON body into req and runs struct validation.
// On failure it writes the error response and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.FailWithBind(c, err)
		return false
	}
	if verr := validator.Struct(req); verr.HasErrors() {
		response.FailWithValidation(c, verr)
		return false
	}
	return true
}

// pagination reads offset/limit query parameters with sane bounds.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
