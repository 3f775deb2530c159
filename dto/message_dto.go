package dto

type CreateMessageInput struct {
	Subject     string `json:"subject" binding:"required"`
	Content     string `json:"content" binding:"required"`
	RecipientID uint   `json:"recipient_id" binding:"required"`
}
