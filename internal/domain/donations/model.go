package donations

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Donation is created as a pending intent before any provider order exists,
// and marked completed only by the payment verification service.
type Donation struct {
	ID          uint    `gorm:"primaryKey"`
	ReferenceID *string `gorm:"uniqueIndex:idx_donations_reference_id"`

	DonorName string `gorm:"not null"`
	Email     string `gorm:"not null;index"`
	Phone     string

	AmountINR int64  `gorm:"not null"`
	Currency  string `gorm:"type:varchar(5)"`

	// Free-form program designation chosen by the donor.
	Purpose string

	RazorpayOrderID   *string `gorm:"column:razorpay_order_id;uniqueIndex:idx_donations_rzp_order"`
	RazorpayPaymentID *string `gorm:"column:razorpay_payment_id;uniqueIndex:idx_donations_rzp_payment"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
