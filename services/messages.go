package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/atelierline/storefront-api/models"
)

const messagesCollection = "contact_messages"

// MessagesService reads and writes the "contact_messages" collection.
type MessagesService struct {
	FS *firestore.Client
}

func NewMessagesService(fs *firestore.Client) *MessagesService {
	return &MessagesService{FS: fs}
}

// All returns every contact message, newest first.
func (s *MessagesService) All(ctx context.Context) ([]models.ContactMessage, error) {
	iter := s.FS.Collection(messagesCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var messages []models.ContactMessage
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch messages: %w", err)
		}
		var m models.ContactMessage
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("decode message %s: %w", doc.Ref.ID, err)
		}
		m.ID = doc.Ref.ID
		messages = append(messages, m)
	}
	return messages, nil
}

// Create inserts a new message with the read flag cleared.
func (s *MessagesService) Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error) {
	ref := s.FS.Collection(messagesCollection).NewDoc()

	m.IsRead = false
	m.CreatedAt = time.Now().UTC()

	if _, err := ref.Set(ctx, m); err != nil {
		return models.ContactMessage{}, fmt.Errorf("send message: %w", err)
	}
	m.ID = ref.ID
	return m, nil
}

// MarkRead sets the read flag on a message.
func (s *MessagesService) MarkRead(ctx context.Context, id string) error {
	_, err := s.FS.Collection(messagesCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

// Delete removes a message document.
func (s *MessagesService) Delete(ctx context.Context, id string) error {
	if _, err := s.FS.Collection(messagesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
