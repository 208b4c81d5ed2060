package memberships

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// AudienceType is the registration category a member signs up under.
type AudienceType string

const (
	AudienceStudent      AudienceType = "student"
	AudienceTeacher      AudienceType = "teacher"
	AudienceInstitution  AudienceType = "institution"
	AudienceProfessional AudienceType = "professional"
	AudienceCompany      AudienceType = "company"
	AudienceNGO          AudienceType = "ngo"
)

func ParseAudienceType(s string) (AudienceType, error) {
	switch AudienceType(s) {
	case AudienceStudent, AudienceTeacher, AudienceInstitution,
		AudienceProfessional, AudienceCompany, AudienceNGO:
		return AudienceType(s), nil
	}
	return "", fmt.Errorf("unknown audience type %q", s)
}

const (
	StatusActive = "active"
)

// Membership is created only by the payment verification service, after the
// provider signature has been checked. There is no pending row: an unpaid
// registration lives solely in the in-memory flow draft.
type Membership struct {
	ID           uint   `gorm:"primaryKey"`
	ReferenceID  string `gorm:"uniqueIndex:idx_memberships_reference_id"`
	AudienceType string `gorm:"type:varchar(20);not null;index"`

	Name  string `gorm:"not null"`
	Email string `gorm:"not null;index"`
	Phone string `gorm:"not null"`

	// Audience-specific form fields; untyped external content, kept out of
	// the typed domain model on purpose.
	Details datatypes.JSON

	AmountINR int64
	Currency  string `gorm:"type:varchar(5)"`

	RazorpayOrderID   string `gorm:"column:razorpay_order_id;uniqueIndex:idx_memberships_rzp_order"`
	RazorpayPaymentID string `gorm:"column:razorpay_payment_id;uniqueIndex:idx_memberships_rzp_payment"`

	Status string `gorm:"type:varchar(20);not null;default:'active'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
