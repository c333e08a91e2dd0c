package domain

import "time"

// Moderation codes used by the content API.
const (
	ModerationApproved = "0"
	ModerationPending  = "2"
)

// AnonymousAuthor is shown in place of the author of an anonymous review or complaint.
const AnonymousAuthor = "Anonymous"

// Review is a business or product review.
type Review struct {
	ID          string    `json:"id"`
	Rating      Rating    `json:"rating"`
	Content     string    `json:"content"`
	IsAnonymous bool      `json:"is_anonymous"`
	AuthorName  string    `json:"author_name,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	Replies     []Reply   `json:"replies,omitempty"`
}

// CreatedTime returns the creation instant, zero when unknown.
func (r Review) CreatedTime() time.Time {
	return r.CreatedAt.Time
}

// Public returns a copy that is safe to show to other users: the author of
// an anonymous review is never exposed.
func (r Review) Public() Review {
	if r.IsAnonymous {
		r.AuthorName = AnonymousAuthor
	}
	return r
}

// Reply is a business response to a review or complaint.
type Reply struct {
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}
