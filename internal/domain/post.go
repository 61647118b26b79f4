package domain

import "time"

type PostStatus string

const (
	StatusOpen       PostStatus = "open"
	StatusPlanned    PostStatus = "planned"
	StatusInProgress PostStatus = "in_progress"
	StatusDone       PostStatus = "done"
)

// ValidStatus reports whether s is one of the four post statuses.
func ValidStatus(s PostStatus) bool {
	switch s {
	case StatusOpen, StatusPlanned, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Post struct {
	Id          PostId
	BoardId     BoardId
	Title       PostTitle
	Description string
	Status      PostStatus
	// VoteCount is maintained by a database trigger and treated as read-only
	// here. Callers display it clamped to zero.
	VoteCount    int
	CommentCount int
	AuthorEmail  Email
	CreatedAt    time.Time
}

// DisplayVoteCount clamps transient negative counts from the derived column.
func (p *Post) DisplayVoteCount() int {
	return max(0, p.VoteCount)
}

type PostCreationData struct {
	BoardId     BoardId
	Title       PostTitle
	Description string
	AuthorEmail Email
}

type Vote struct {
	Id         string
	PostId     PostId
	VoterEmail Email
	CreatedAt  time.Time
}
