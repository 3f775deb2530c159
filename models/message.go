package models

import "time"

type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Subject     string    `gorm:"size:200;not null" json:"subject"`
	Content     string    `gorm:"not null" json:"content"`
	SenderID    uint      `gorm:"not null" json:"sender_id"`
	RecipientID uint      `gorm:"not null" json:"recipient_id"`
	IsRead      bool      `gorm:"default:false;not null" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

type MessageAttachment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Filename         string    `gorm:"size:255;not null" json:"filename"`
	OriginalFilename string    `gorm:"size:255;not null" json:"original_filename"`
	FilePath         string    `gorm:"size:500;not null" json:"file_path"`
	MessageID        uint      `gorm:"not null" json:"message_id"`
	CreatedAt        time.Time `json:"created_at"`
}
