package backend

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNilClient       = errors.New("backend: nil client")
	ErrEmptyURL        = errors.New("backend: empty url")
	ErrRefreshRejected = errors.New("backend: refresh rejected")
)

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatus() int { return e.StatusCode }

func (e *HTTPError) ResponseBody() []byte { return []byte(e.Body) }

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}
