package models

// Post is owned by the content-service. PublishedAt is epoch millis, set at
// creation time. Author identity lives in the user-service; AuthorID is a
// cross-service reference, not a foreign key.
type Post struct {
	ID          int64
	Title       string
	Summary     string
	Content     string
	Category    string
	AuthorID    int64
	PublishedAt int64
	ImageURL    *string
}
