package serverutils

// ApiResponse is the uniform envelope for successful JSON responses.
type ApiResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Message: message,
		Data:    data,
	}
}

// ErrorResponse is the envelope the error middleware emits for failed
// requests.
func ErrorResponse(code int, message string) map[string]interface{} {
	return map[string]interface{}{
		"code":    code,
		"message": message,
	}
}
