package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/formhub/formhub-go/authz"
	"github.com/formhub/formhub-go/dto"
	"github.com/formhub/formhub-go/logging"
	"github.com/formhub/formhub-go/models"
	"github.com/formhub/formhub-go/repositories"
	"github.com/formhub/formhub-go/storage"
	"github.com/google/uuid"
)

type MessageService struct {
	repos *repositories.Repos
	store storage.Store
}

func NewMessageService(repos *repositories.Repos, store storage.Store) *MessageService {
	return &MessageService{repos: repos, store: store}
}

func (s *MessageService) SendMessage(actor authz.Actor, input dto.CreateMessageInput) (models.Message, error) {
	recipient, err := s.repos.User.GetUserByID(input.RecipientID)
	if err != nil {
		return models.Message{}, ErrNotFound
	}

	if !authz.CanMessage(actor, &recipient) {
		return models.Message{}, ErrForbidden
	}

	msg := models.Message{
		Subject:     input.Subject,
		Content:     input.Content,
		SenderID:    actor.ID,
		RecipientID: input.RecipientID,
	}
	if err := s.repos.Message.CreateMessage(&msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func (s *MessageService) ListMessages(actor authz.Actor, received bool, skip, limit int) ([]models.Message, error) {
	if received {
		return s.repos.Message.ListReceived(actor.ID, skip, limit)
	}
	return s.repos.Message.ListSent(actor.ID, skip, limit)
}

// GetMessage returns a message the actor participates in and flips the
// read flag when the recipient views it. The flag only ever goes
// false to true.
func (s *MessageService) GetMessage(actor authz.Actor, id uint) (models.Message, error) {
	msg, err := s.repos.Message.GetMessageByID(id)
	if err != nil {
		return models.Message{}, ErrNotFound
	}

	if msg.SenderID != actor.ID && msg.RecipientID != actor.ID {
		return models.Message{}, ErrNotFound
	}

	if msg.RecipientID == actor.ID && !msg.IsRead {
		msg.IsRead = true
		if err := s.repos.Message.SaveMessage(&msg); err != nil {
			return models.Message{}, err
		}
	}
	return msg, nil
}

func (s *MessageService) CountUnread(userID uint) (int64, error) {
	return s.repos.Message.CountUnread(userID)
}

// AddAttachment stores a file against a message; only the sender may
// attach.
func (s *MessageService) AddAttachment(ctx context.Context, actor authz.Actor, messageID uint, header *multipart.FileHeader) (models.MessageAttachment, error) {
	msg, err := s.repos.Message.GetMessageByID(messageID)
	if err != nil {
		return models.MessageAttachment{}, ErrNotFound
	}
	if msg.SenderID != actor.ID {
		return models.MessageAttachment{}, ErrForbidden
	}

	src, err := header.Open()
	if err != nil {
		return models.MessageAttachment{}, err
	}
	defer src.Close()

	original := filepath.Base(header.Filename)
	unique := fmt.Sprintf("%s_%s", uuid.New().String(), original)
	name := fmt.Sprintf("messages/%d/%s", messageID, unique)

	contentType := header.Header.Get("Content-Type")
	path, err := s.store.Save(ctx, name, contentType, src, header.Size)
	if err != nil {
		return models.MessageAttachment{}, err
	}

	att := models.MessageAttachment{
		Filename:         unique,
		OriginalFilename: original,
		FilePath:         path,
		MessageID:        messageID,
	}
	if err := s.repos.Message.CreateAttachment(&att); err != nil {
		return models.MessageAttachment{}, err
	}
	return att, nil
}

// DeleteMessage removes the message and its attachment rows. File
// removal is best effort; a missing file is not an error.
func (s *MessageService) DeleteMessage(ctx context.Context, actor authz.Actor, id uint) error {
	msg, err := s.repos.Message.GetMessageByID(id)
	if err != nil {
		return ErrNotFound
	}
	if msg.SenderID != actor.ID && msg.RecipientID != actor.ID {
		return ErrNotFound
	}

	attachments, err := s.repos.Message.ListAttachments(id)
	if err != nil {
		return err
	}
	for _, att := range attachments {
		name := fmt.Sprintf("messages/%d/%s", id, att.Filename)
		if err := s.store.Remove(ctx, name); err != nil {
			logging.Logger.Warnf("failed to remove attachment file %s: %v", name, err)
		}
	}
	if err := s.repos.Message.DeleteAttachments(id); err != nil {
		return err
	}

	return s.repos.Message.DeleteMessage(id)
}
