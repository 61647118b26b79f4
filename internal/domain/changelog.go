package domain

import "time"

type ChangelogEntry struct {
	Id          ChangelogId
	BoardId     BoardId
	Title       string
	Content     string
	PublishedAt time.Time
	CreatedAt   time.Time
}

type ChangelogCreationData struct {
	BoardId BoardId
	Title   string
	Content string
}
