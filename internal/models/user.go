package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}
