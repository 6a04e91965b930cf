package domain

import "time"

// KBCategory groups knowledgebase articles.
type KBCategory struct {
	ID   int64
	Name string
}

// KBArticle is a knowledgebase entry.
type KBArticle struct {
	ID           int64
	KBCategoryID int64
	Title        string
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
