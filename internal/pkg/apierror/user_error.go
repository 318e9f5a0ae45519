package apierror

import (
	"errors"
	"net/http"
)

// UserError is a failed mutation as shown to the user: the display message
// resolved from the backend payload plus the HTTP status to answer with.
type UserError struct {
	Status  int
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *UserError) Unwrap() error { return e.Err }

// Wrap resolves the display message for a failed backend call. Backend 4xx
// statuses pass through; everything else becomes 502.
func Wrap(err error, fallback string) *UserError {
	ue := &UserError{Status: http.StatusBadGateway, Message: Message(err, fallback), Err: err}
	var resp Response
	if errors.As(err, &resp) {
		if s := resp.HTTPStatus(); s >= 400 && s < 500 {
			ue.Status = s
		}
	}
	return ue
}
