package errorx

import "fmt"

// Error is the only error type the API surface returns to clients. Anything
// else bubbling up to the router is replaced by Unknown so internal details
// never leak into a response.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

var Unknown = Error{Code: codeUnknown, Message: "Request failed"}

func New(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Is(target error) bool {
	if t, ok := target.(Error); ok {
		return e.Code == t.Code
	}

	return false
}
