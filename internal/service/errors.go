package service

import "net/http"

// Error standardizes API-visible failures. Handlers map it onto the HTTP
// response; anything else that escapes a service is a server fault.
type Error struct {
	Code    string
	Message string
	Status  int
	Fields  []string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func newError(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

// The credential failure message is byte-identical for unknown email and
// wrong password so responses cannot be used to enumerate accounts.
func errInvalidCredentials() *Error {
	return newError("invalid_credentials", "email or password incorrect", http.StatusUnauthorized)
}

func errMissingCredentials() *Error {
	return newError("invalid_request", "missing email or password", http.StatusBadRequest)
}

// The refresh failure message is the same for malformed, expired, replayed,
// and unknown tokens; the real cause goes to the log only.
func errRefreshFailed() *Error {
	return newError("refresh_failed", "fail", http.StatusBadRequest)
}

func errLogoutFailed() *Error {
	return newError("logout_failed", "failed to Logout", http.StatusBadRequest)
}

func errInternal() *Error {
	return newError("server_error", "internal server error", http.StatusInternalServerError)
}

func errConflict(message string) *Error {
	return newError("conflict", message, http.StatusConflict)
}

func errValidation(fields []string) *Error {
	return &Error{
		Code:    "validation_error",
		Message: "Validation error",
		Status:  http.StatusBadRequest,
		Fields:  fields,
	}
}
