package account

import (
	"errors"
	"strings"

	"github.com/goalcard/console-api/internal/usecase"
)

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	return baseURL + path
}

func isAuthDenial(err error) bool {
	return errors.Is(err, usecase.ErrUnauthorized)
}
