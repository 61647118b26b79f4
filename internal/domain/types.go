package domain

type (
	Email     = string
	AccountId = string

	BoardId   = string
	BoardName = string
	BoardSlug = string

	PostId    = string
	PostTitle = string

	CommentId   = string
	ChangelogId = string
)
