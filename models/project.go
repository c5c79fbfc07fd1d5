package models

import "time"

// Project groups secrets. Secrets reference projects softly: removing a
// project leaves its secrets unassigned.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectPayload is the request body of POST and PUT /vault/projects.
type ProjectPayload struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

const (
	DefaultProjectColor = "#6366f1"
	DefaultProjectIcon  = "folder"
)
