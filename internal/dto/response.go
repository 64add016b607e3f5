package dto

// Response is the envelope for single resource responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is the envelope for paginated collections
type ListResponse struct {
	Success bool        `json:"success"`
	Page    int         `json:"page"`
	Total   int64       `json:"total"`
	Count   int         `json:"count"`
	Data    interface{} `json:"data"`
}

// OK wraps data in a successful response
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// Created wraps data with a confirmation message
func Created(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// List builds a list response for one page of converted items
func List[T any](items []T, page int, total int64) ListResponse {
	if items == nil {
		items = []T{}
	}
	return ListResponse{
		Success: true,
		Page:    page,
		Total:   total,
		Count:   len(items),
		Data:    items,
	}
}

// Map converts every element of in with f
func Map[T, D any](in []T, f func(T) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
