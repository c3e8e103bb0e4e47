package handlers

import (
	"errors"
	"net/http"

	"epias-settlement/internal/api/models"
	"epias-settlement/internal/contract"
	"epias-settlement/internal/cost"

	"github.com/gin-gonic/gin"
)

// writeError maps the calculation-layer error taxonomy onto the API's error
// envelope. Everything here is a caller input error, so the status is 400.
func writeError(c *gin.Context, err error) {
	code := "INVALID_REQUEST"
	switch {
	case errors.Is(err, cost.ErrMissingParameter):
		code = "MISSING_PARAMETER"
	case errors.Is(err, cost.ErrInvalidArgument), errors.Is(err, contract.ErrInvalidArgument):
		code = "INVALID_ARGUMENT"
	case errors.Is(err, contract.ErrInvalidDateFormat):
		code = "INVALID_DATE_FORMAT"
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
