package errors

// ErrorWithStatusCode carries the user-facing message and the HTTP status
// the personnel API answered with, so handlers can turn it into a flash
// message. Errors without one are treated as transport failures.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}
