package models

// Comment is owned by the interaction-service. IDs are UUID strings assigned
// by the service, timestamps are epoch millis.
type Comment struct {
	ID        string `json:"id"`
	PostID    int64  `json:"postId"`
	AuthorID  int64  `json:"authorId"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Like is a row in the likes table. The composite key (PostID, UserEmail) is
// the whole identity: existence of the row is the "liked" state, there is no
// separate flag to drift out of sync.
type Like struct {
	PostID    int64
	UserEmail string
	Timestamp int64
}
