package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/infra/razorpay"
)

const testSecret = "test_key_secret"

// sign reproduces the provider's checkout signature.
func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeGateway struct {
	created    []razorpay.Order
	failCreate error
	nextID     int
}

func (g *fakeGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (razorpay.Order, error) {
	if g.failCreate != nil {
		return razorpay.Order{}, g.failCreate
	}
	g.nextID++
	o := razorpay.Order{
		ID:       fmt.Sprintf("order_%06d", g.nextID),
		Amount:   amount,
		Currency: currency,
	}
	g.created = append(g.created, o)
	return o, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(signature), []byte(sign(orderID, paymentID, testSecret)))
}

type fakeMembershipStore struct {
	rows       []*memberships.Membership
	failCreate error
}

func (s *fakeMembershipStore) FindByPayment(orderID, paymentID string) (*memberships.Membership, error) {
	for _, m := range s.rows {
		if m.RazorpayOrderID == orderID && m.RazorpayPaymentID == paymentID {
			return m, nil
		}
	}
	return nil, nil
}

func (s *fakeMembershipStore) Create(m *memberships.Membership) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	for _, existing := range s.rows {
		if existing.RazorpayPaymentID == m.RazorpayPaymentID {
			return errors.New("duplicated key not allowed")
		}
	}
	m.ID = uint(len(s.rows) + 1)
	s.rows = append(s.rows, m)
	return nil
}

type fakeDonationStore struct {
	rows         []*donations.Donation
	failComplete error
}

func (s *fakeDonationStore) Find(id uint) (*donations.Donation, error) {
	for _, d := range s.rows {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (s *fakeDonationStore) FindByPayment(orderID, paymentID string) (*donations.Donation, error) {
	for _, d := range s.rows {
		if d.RazorpayOrderID != nil && *d.RazorpayOrderID == orderID &&
			d.RazorpayPaymentID != nil && *d.RazorpayPaymentID == paymentID {
			return d, nil
		}
	}
	return nil, nil
}

func (s *fakeDonationStore) MarkCompleted(id uint, orderID, paymentID, referenceID string) error {
	if s.failComplete != nil {
		return s.failComplete
	}
	for _, d := range s.rows {
		if d.ID == id {
			d.Status = donations.StatusCompleted
			d.RazorpayOrderID = &orderID
			d.RazorpayPaymentID = &paymentID
			d.ReferenceID = &referenceID
			return nil
		}
	}
	return fmt.Errorf("donation %d not found", id)
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendReceipt(to, name, referenceID string, amount int64, currency string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, referenceID)
	return nil
}
