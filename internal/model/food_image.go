package model

import "time"

// FoodImage is an uploaded food photo together with what was recognized in it.
type FoodImage struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	FoodName    string    `json:"food_name"`
	Category    string    `json:"category"`
	ExpiryDays  int       `json:"expiry_days"`
	CreatedAt   time.Time `json:"created_at"`
}
