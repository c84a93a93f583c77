package envelope

import "net/http"

// DefaultOkMessage is used when callers do not supply a success message.
const DefaultOkMessage = "Operation successful"

// Envelope is the uniform result contract every domain operation returns.
// Code 0 means success; nonzero codes follow the HTTP status family they
// map to at the boundary.
type Envelope struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// Ok wraps data in a success envelope with the default message.
func Ok(data any) Envelope {
	return OkMsg(data, DefaultOkMessage)
}

// OkMsg wraps data in a success envelope with a custom message.
func OkMsg(data any, message string) Envelope {
	return Envelope{Message: message, Data: data}
}

// Fail builds a failure envelope. It never carries a payload.
func Fail(code int, message string) Envelope {
	return Envelope{ErrorCode: code, Message: message}
}

// IsOk reports whether the envelope represents success.
func (e Envelope) IsOk() bool {
	return e.ErrorCode == 0
}

// HTTPStatus maps the envelope code to the boundary status. The mapping is
// deterministic and identical for every operation.
func (e Envelope) HTTPStatus() int {
	switch e.ErrorCode {
	case 0:
		return http.StatusOK
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict:
		return e.ErrorCode
	default:
		return http.StatusInternalServerError
	}
}
