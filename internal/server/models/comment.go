package models

import "time"

type Comment struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	ArticleID      int64     `json:"articleId"`
	ArticleTitle   string    `json:"articleTitle"`
}
