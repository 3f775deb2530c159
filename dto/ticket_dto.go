package dto

import "github.com/formhub/formhub-go/models"

type CreateTicketInput struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Priority    models.TicketPriority `json:"priority" binding:"required"`
}

// UpdateTicketInput is a partial merge; absent fields keep their
// stored values.
type UpdateTicketInput struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Status      *models.TicketStatus   `json:"status"`
	Priority    *models.TicketPriority `json:"priority"`
}

type CreateTicketCommentInput struct {
	Content string `json:"content" binding:"required"`
}
