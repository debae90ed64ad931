package entity

import (
	"sort"
	"time"
)

type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversation_id" firestore:"conversationId"`
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	RecipientID    string     `json:"recipient_id" firestore:"recipientId"`
	Body           string     `json:"body" firestore:"body"`
	Type           string     `json:"type" firestore:"type"` // "text", "image", "file"
	FileURL        string     `json:"file_url,omitempty" firestore:"fileUrl,omitempty"`
	ProductID      string     `json:"product_id,omitempty" firestore:"productId,omitempty"`
	Read           bool       `json:"read" firestore:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
}

// ConversationID derives the deterministic thread key for two users: the
// sorted pair of ids joined by "_", so both directions map to the same thread.
func ConversationID(userA, userB string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}
