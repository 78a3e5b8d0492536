package services

import (
	"errors"

	"github.com/dmitrijs2005/mdd/internal/common"
)

// notFound replaces a bare repository ErrNotFound with a message naming the
// missing entity. Other errors pass through.
func notFound(err error, format string, args ...any) error {
	var ce *common.Error
	if errors.Is(err, common.ErrNotFound) && !errors.As(err, &ce) {
		return common.NotFound(format, args...)
	}
	return err
}
