package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nillow/booking-api/pkg/errors"
)

// Response wraps all API responses. Errors carry the message twice: once at
// the top level and once under response.message, since deployed clients read
// either field.
type Response struct {
	Status   string         `json:"status"`
	Data     interface{}    `json:"data,omitempty"`
	Message  string         `json:"message,omitempty"`
	Response *ErrorEnvelope `json:"response,omitempty"`
}

type ErrorEnvelope struct {
	Message string `json:"message"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	TotalPage int `json:"total_pages"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithCreated sends a success response with 201 status
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	if appErr, ok := err.(*errors.AppError); ok {
		statusCode = appErr.StatusCode()
	}

	message := errors.ExtractMessage(err)
	c.JSON(statusCode, Response{
		Status:   "error",
		Message:  message,
		Response: &ErrorEnvelope{Message: message},
	})
}

// RespondWithPagination sends a paginated response
func RespondWithPagination(c *gin.Context, data interface{}, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	c.JSON(http.StatusOK, Response{
		Status: "success",
		Data: PaginatedResponse{
			Data: data,
			Pagination: Pagination{
				Page:      page,
				PageSize:  pageSize,
				Total:     total,
				TotalPage: totalPages,
			},
		},
	})
}
