package dto

// Result is the uniform operation envelope handed to the transport layer.
// StatusCode mirrors the HTTP status the caller should map onto.
type Result struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
}

func OK(data interface{}) *Result {
	return &Result{Success: true, Data: data, StatusCode: 200}
}

func Created(data interface{}) *Result {
	return &Result{Success: true, Data: data, StatusCode: 201}
}

func Failed(message string, statusCode int, errs ...string) *Result {
	return &Result{Success: false, Message: message, Errors: errs, StatusCode: statusCode}
}
