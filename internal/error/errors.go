package error

import "errors"

var (
	ErrProviderNotConfigured = errors.New("completion provider not configured")
	ErrNotFound              = errors.New("route not found")
	ErrPanic                 = errors.New("handler panic")
)

const (
	MsgInternalServerError = "Internal server error"
	MsgNotFound            = "Not found"
	MsgEndpointMissing     = "The requested endpoint does not exist"
	MsgSomethingWentWrong  = "Something went wrong"
)
