package dto

import "github.com/formhub/formhub-go/models"

type CreateFormInput struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Fields      []models.FormField `json:"fields" binding:"required,min=1"`
	SiteID      uint               `json:"site_id" binding:"required"`
}

type UpdateFormInput struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Fields      *[]models.FormField `json:"fields"`
}

type SubmitFormInput struct {
	Data map[string]any `json:"data" binding:"required"`
}
