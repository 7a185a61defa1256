package domain

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageInternalError        = "internal server error"
	MessagePong                 = "pong"
)

var MessageValidationFailed = "request validation failed"
