package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
	"dentmarket/pkg/errors"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	doc, err := r.client.Collection("messages").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}

	return &message, nil
}

func (r *firestoreMessageRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Message, error) {
	// Firestore has no OR query across two fields in this client version, so
	// sent and received are queried separately and merged.
	sent, err := r.collect(ctx, r.client.Collection("messages").
		Where("senderId", "==", userID).
		OrderBy("createdAt", firestore.Desc))
	if err != nil {
		return nil, err
	}

	received, err := r.collect(ctx, r.client.Collection("messages").
		Where("recipientId", "==", userID).
		OrderBy("createdAt", firestore.Desc))
	if err != nil {
		return nil, err
	}

	merged := append(sent, received...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	return merged, nil
}

func (r *firestoreMessageRepository) ListByConversationID(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	return r.collect(ctx, r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		OrderBy("createdAt", firestore.Asc))
}

func (r *firestoreMessageRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Message, error) {
	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) MarkConversationRead(ctx context.Context, conversationID, recipientID string) error {
	query := r.client.Collection("messages").
		Where("conversationId", "==", conversationID).
		Where("recipientId", "==", recipientID).
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query unread messages", err)
	}

	now := time.Now()
	for _, doc := range docs {
		_, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "read", Value: true},
			{Path: "readAt", Value: now},
		})
		if err != nil {
			return errors.Internal("Failed to mark message read", err)
		}
	}

	return nil
}

func (r *firestoreMessageRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	query := r.client.Collection("messages").
		Where("recipientId", "==", recipientID).
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreMessageRepository) Update(ctx context.Context, message *entity.Message) error {
	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to update message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("messages").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete message", err)
	}

	return nil
}
