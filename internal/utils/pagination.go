package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mnakagawa/task-message-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetMessagePaginationParams extracts the page number from the request. The
// page size is not client-controlled: the message index always serves 5 rows.
func GetMessagePaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPage)))
	if page < constants.MinPage {
		page = constants.MinPage
	}

	limit := constants.MessagePageSize
	offset := (page - 1) * limit

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}
