package dto

import (
	"time"
)

type NotificationResponse struct {
	Id          uint       `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	RelatedType string     `json:"related_type,omitempty"`
	RelatedId   uint       `json:"related_id,omitempty"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Items    []*NotificationResponse `json:"items"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}
