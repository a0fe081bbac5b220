package response

// Envelope is the common JSON error/success wrapper.
type Envelope struct {
	Status  string      `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(message string, data interface{}) Envelope {
	return Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data interface{}) Envelope {
	return Envelope{
		Status:  "error",
		Code:    code,
		Message: message,
		Data:    data,
	}
}
