package e

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("payment not found")

func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
