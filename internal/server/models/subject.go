package models

import "time"

type Subject struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	IsSubscribed bool      `json:"isSubscribed"`
}
