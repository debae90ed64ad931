package repository

import (
	"context"

	"dentmarket/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)

	// ListByUserID returns every message the user sent or received, newest
	// first. Conversations are grouped by the caller.
	ListByUserID(ctx context.Context, userID string) ([]*entity.Message, error)

	// ListByConversationID returns a thread in chronological order.
	ListByConversationID(ctx context.Context, conversationID string) ([]*entity.Message, error)

	// MarkConversationRead marks every unread message addressed to the
	// recipient in the conversation as read.
	MarkConversationRead(ctx context.Context, conversationID, recipientID string) error

	CountUnread(ctx context.Context, recipientID string) (int64, error)
	Update(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id string) error
}
