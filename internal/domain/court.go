package domain

import "time"

// Court is a bookable resource
type Court struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
