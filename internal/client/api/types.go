package api

import "time"

type AuthResult struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	ExpiresIn int64  `json:"expiresIn"`
}

type Message struct {
	Message string            `json:"message"`
	Type    string            `json:"type"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type Subject struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	IsSubscribed bool      `json:"isSubscribed"`
}

type Article struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	AuthorUsername string    `json:"authorUsername"`
	SubjectID      int64     `json:"subjectId"`
	SubjectName    string    `json:"subjectName"`
}

type Comment struct {
	ID             int64     `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	AuthorUsername string    `json:"authorUsername"`
	ArticleID      int64     `json:"articleId"`
}

type Profile struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	CreatedAt     time.Time  `json:"createdAt"`
	Subscriptions []*Subject `json:"subscriptions"`
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}
