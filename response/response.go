package response

import "github.com/formhub/formhub-go/models"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string      `json:"access_token"`
	Type  string      `json:"token_type"`
	User  models.User `json:"user"`
}

type ReportResponse struct {
	Path string `json:"path"`
}
