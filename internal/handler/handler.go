// Package handler contains the gin request handlers, one file per entity.
// Handlers validate input at the boundary, perform a single write (savings
// deposits excepted, see saving.go) and hand row sets to internal/derive for
// anything computed.
package handler

import (
	"net/http"
	"strconv"

	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// pathID parses the :id route parameter, writing the error response itself.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}
