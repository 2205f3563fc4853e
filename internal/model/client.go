package model

import "time"

// Client groups tasks and meetings by the customer they are billed to.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
