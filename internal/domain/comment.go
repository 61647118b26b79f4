package domain

import "time"

// MaxCommentLen bounds free-text comment content.
const MaxCommentLen = 2000

type Comment struct {
	Id          CommentId
	PostId      PostId
	AuthorEmail Email
	Content     string
	CreatedAt   time.Time
}

type CommentCreationData struct {
	PostId      PostId
	AuthorEmail Email
	Content     string
}
