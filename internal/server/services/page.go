package services

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NewPageRequest validates paging parameters. sort is "asc" or "desc"
// (case-insensitive); anything else means newest first.
func NewPageRequest(page, size int, sort string) (models.PageRequest, error) {
	v := common.NewValidationError()
	if page < 0 {
		v.Add("page", "page must be zero or greater")
	}
	if size < 1 || size > MaxPageSize {
		v.Add("size", fmt.Sprintf("size must be between 1 and %d", MaxPageSize))
	}
	if err := v.Err(); err != nil {
		return models.PageRequest{}, err
	}
	return models.PageRequest{Page: page, Size: size, Asc: strings.EqualFold(sort, "asc")}, nil
}
