package programs

import (
	"time"

	"gorm.io/datatypes"
)

// Program is a landing-page entry. Content is an untyped JSON bag edited by
// the CMS; the payment workflow never reads into it.
type Program struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
	Slug    string `gorm:"not null;uniqueIndex:idx_programs_slug"`
	Summary string

	Content datatypes.JSON

	Active bool `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
