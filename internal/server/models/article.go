package models

import "time"

// Article carries the author and subject names resolved by a join.
type Article struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	SubjectID      int64     `json:"subjectId"`
	SubjectName    string    `json:"subjectName"`
}
