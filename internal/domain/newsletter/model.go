package newsletter

import "time"

type Subscriber struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"not null;uniqueIndex:idx_subscribers_email"`
	Name  string

	Active         bool `gorm:"not null;default:true;index"`
	UnsubscribedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
