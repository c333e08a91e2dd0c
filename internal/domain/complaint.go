package domain

import "time"

// Complaint status codes used by the content API. Only closed complaints are
// displayed publicly; new submissions start as pending.
const (
	ComplaintClosed  = "0"
	ComplaintPending = "1"
)

// Complaint is a customer complaint filed against a business.
type Complaint struct {
	ID          string    `json:"id,omitempty"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	Status      string    `json:"status"`
	IsAnonymous bool      `json:"is_anonymous"`
	AuthorName  string    `json:"author_name,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	Replies     []Reply   `json:"replies"`
}

// CreatedTime returns the creation instant, zero when unknown.
func (c Complaint) CreatedTime() time.Time {
	return c.CreatedAt.Time
}

// StatusLabel returns the human-readable status.
func (c Complaint) StatusLabel() string {
	if c.Status == ComplaintClosed {
		return "closed"
	}
	return "pending"
}

// Public returns a copy with the author hidden when the complaint is anonymous.
func (c Complaint) Public() Complaint {
	if c.IsAnonymous {
		c.AuthorName = AnonymousAuthor
	}
	if c.Replies == nil {
		c.Replies = []Reply{}
	}
	return c
}
