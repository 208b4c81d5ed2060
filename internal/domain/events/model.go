package events

import "time"

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"not null;uniqueIndex:idx_events_slug"`
	Description string `gorm:"type:text"`
	Location    string
	StartsAt    time.Time `gorm:"index"`

	// Zero means unlimited.
	Capacity int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Registration struct {
	ID      uint  `gorm:"primaryKey"`
	EventID uint  `gorm:"not null;uniqueIndex:idx_event_regs_event_email"`
	Event   Event `gorm:"constraint:OnDelete:CASCADE"`

	Name  string `gorm:"not null"`
	Email string `gorm:"not null;uniqueIndex:idx_event_regs_event_email"`
	Phone string

	CreatedAt time.Time
}
