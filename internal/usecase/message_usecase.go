package usecase

import (
	"context"
	"time"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
)

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *MessageUseCase {
	return &MessageUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

type SendMessageInput struct {
	RecipientID string
	Body        string
	Type        string
	FileURL     string
	ProductID   string
}

func (uc *MessageUseCase) Send(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if input.RecipientID == senderID {
		return nil, errors.BadRequest("You cannot message yourself", nil)
	}

	recipient, err := uc.userRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, errors.NotFound("Recipient", err)
	}
	if recipient.Status != entity.UserStatusActive {
		return nil, errors.BadRequest("This account can no longer receive messages", nil)
	}

	msgType := input.Type
	if msgType == "" {
		msgType = "text"
	}

	message := &entity.Message{
		ConversationID: entity.ConversationID(senderID, input.RecipientID),
		SenderID:       senderID,
		RecipientID:    input.RecipientID,
		Body:           input.Body,
		Type:           msgType,
		FileURL:        input.FileURL,
		ProductID:      input.ProductID,
		CreatedAt:      time.Now(),
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	uc.notifier.NotifyUser(input.RecipientID, "new_message", message)

	return message, nil
}

// ConversationSummary is one row of the inbox: the latest message exchanged
// with a user and the number still unread.
type ConversationSummary struct {
	ConversationID string          `json:"conversation_id"`
	OtherUserID    string          `json:"other_user_id"`
	OtherUserName  string          `json:"other_user_name"`
	LastMessage    *entity.Message `json:"last_message"`
	UnreadCount    int             `json:"unread_count"`
}

func (uc *MessageUseCase) ListConversations(ctx context.Context, userID string) ([]*ConversationSummary, error) {
	messages, err := uc.messageRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// messages arrive newest first, so the first one seen per conversation is
	// the latest
	byConversation := make(map[string]*ConversationSummary)
	var ordered []*ConversationSummary

	for _, msg := range messages {
		summary, ok := byConversation[msg.ConversationID]
		if !ok {
			otherID := msg.SenderID
			if otherID == userID {
				otherID = msg.RecipientID
			}
			summary = &ConversationSummary{
				ConversationID: msg.ConversationID,
				OtherUserID:    otherID,
				LastMessage:    msg,
			}
			byConversation[msg.ConversationID] = summary
			ordered = append(ordered, summary)
		}
		if msg.RecipientID == userID && !msg.Read {
			summary.UnreadCount++
		}
	}

	for _, summary := range ordered {
		other, err := uc.userRepo.GetByID(ctx, summary.OtherUserID)
		if err != nil {
			continue
		}
		summary.OtherUserName = other.FirstName + " " + other.LastName
	}

	return ordered, nil
}

// Thread returns the conversation with another user in chronological order and
// marks the caller's unread messages in it as read.
func (uc *MessageUseCase) Thread(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error) {
	conversationID := entity.ConversationID(userID, otherUserID)

	messages, err := uc.messageRepo.ListByConversationID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := uc.messageRepo.MarkConversationRead(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	return messages, nil
}

func (uc *MessageUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.messageRepo.CountUnread(ctx, userID)
}

func (uc *MessageUseCase) MarkRead(ctx context.Context, userID, messageID string) (*entity.Message, error) {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.RecipientID != userID {
		return nil, errors.Forbidden("Only the recipient can mark a message as read", nil)
	}

	if message.Read {
		return message, nil
	}

	now := time.Now()
	message.Read = true
	message.ReadAt = &now
	if err := uc.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (uc *MessageUseCase) Delete(ctx context.Context, userID, messageID string) error {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != userID {
		return errors.Forbidden("Only the sender can delete a message", nil)
	}

	return uc.messageRepo.Delete(ctx, messageID)
}
