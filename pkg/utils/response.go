package utils

import "github.com/gin-gonic/gin"

// SuccessBody is the envelope every successful response uses.
type SuccessBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody mirrors the error contract: HTTP status code, human-readable
// message and, in development only, the stack of the originating fault.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessBody{
		Code:    status,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{
		Code:    status,
		Message: message,
	})
}

// ErrorResponseWithStack is used by the development error path only.
func ErrorResponseWithStack(c *gin.Context, status int, message, stack string) {
	c.JSON(status, ErrorBody{
		Code:    status,
		Message: message,
		Stack:   stack,
	})
}
