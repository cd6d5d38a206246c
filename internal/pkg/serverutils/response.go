package serverutils

type Response[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Message: message,
		Data:    data,
	}
}

type ErrorBody struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}
