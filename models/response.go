package models

// ErrorResponse is the error body shape shared by the backend and the local UI.
type ErrorResponse struct {
	Status  string `json:"status,omitempty" example:"error"`
	Error   string `json:"error,omitempty" example:"URL is required"`
	Message string `json:"message,omitempty"`
}
