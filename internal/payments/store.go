package payments

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/memberships"
)

// MembershipStore and DonationStore are the only persistence the payment
// services perform. Both are implemented on GORM here and faked in tests.

type MembershipStore interface {
	// FindByPayment returns (nil, nil) when no record exists for the pair.
	FindByPayment(orderID, paymentID string) (*memberships.Membership, error)
	Create(m *memberships.Membership) error
}

type DonationStore interface {
	Find(id uint) (*donations.Donation, error)
	FindByPayment(orderID, paymentID string) (*donations.Donation, error)
	MarkCompleted(id uint, orderID, paymentID, referenceID string) error
}

type GormMembershipStore struct {
	DB *gorm.DB
}

func (s *GormMembershipStore) FindByPayment(orderID, paymentID string) (*memberships.Membership, error) {
	var m memberships.Membership
	err := s.DB.
		Where("razorpay_order_id = ? AND razorpay_payment_id = ?", orderID, paymentID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormMembershipStore) Create(m *memberships.Membership) error {
	return s.DB.Create(m).Error
}

type GormDonationStore struct {
	DB *gorm.DB
}

func (s *GormDonationStore) Find(id uint) (*donations.Donation, error) {
	var d donations.Donation
	err := s.DB.First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *GormDonationStore) FindByPayment(orderID, paymentID string) (*donations.Donation, error) {
	var d donations.Donation
	err := s.DB.
		Where("razorpay_order_id = ? AND razorpay_payment_id = ?", orderID, paymentID).
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *GormDonationStore) MarkCompleted(id uint, orderID, paymentID, referenceID string) error {
	res := s.DB.Model(&donations.Donation{}).
		Where("id = ? AND status = ?", id, donations.StatusPending).
		Updates(map[string]interface{}{
			"status":              donations.StatusCompleted,
			"razorpay_order_id":   orderID,
			"razorpay_payment_id": paymentID,
			"reference_id":        referenceID,
			"updated_at":          time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("donation %d not pending", id)
	}
	return nil
}
