package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/usecase"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// mapErrorToStatus translates orchestrator failures to HTTP statuses: local
// validation is the caller's fault, a backend-reported failure surfaces as a
// bad gateway with the server's detail, anything else is internal.
func mapErrorToStatus(err error) int {
	if usecase.IsValidationError(err) {
		return http.StatusBadRequest
	}

	var apiErr *clients.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
