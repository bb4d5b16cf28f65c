package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a user-submitted sighting with a store-managed comment thread.
// Field contents vary by app version, so the full field map rides along for
// the moderation browser's free-text filtering.
type Post struct {
	ID     uuid.UUID `json:"id"`
	Fields Fields    `json:"fields"`
}

// Comment is one entry in a post's nested comment subcollection.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// PostFromDocument builds a post view over a posts document.
func PostFromDocument(doc *Document) *Post {
	return &Post{ID: doc.ID, Fields: doc.Fields}
}

// CommentFromDocument builds a comment view over a comments subdocument.
func CommentFromDocument(postID uuid.UUID, doc *Document) *Comment {
	return &Comment{
		ID:        doc.ID,
		PostID:    postID,
		User:      doc.Fields.String("user"),
		Text:      doc.Fields.String("text"),
		CreatedAt: doc.Fields.Time("timestamp"),
	}
}
