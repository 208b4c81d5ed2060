package payments

import (
	"fmt"

	"github.com/google/uuid"

	"ngo-portal/config"
	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/infra/razorpay"
)

// OrderService creates one provider order per invocation. It never
// deduplicates: a retried payment attempt gets a brand-new order.
type OrderService struct {
	gw        razorpay.Gateway
	donations DonationStore
	keyID     string
}

func NewOrderService(gw razorpay.Gateway, donationStore DonationStore, cfg config.RazorpayConfig) *OrderService {
	return &OrderService{gw: gw, donations: donationStore, keyID: cfg.KeyID}
}

func (s *OrderService) Create(req OrderRequest) (OrderResult, error) {
	amount, currency, err := s.resolveAmount(req)
	if err != nil {
		return OrderResult{}, err
	}

	receipt := "rcpt_" + uuid.NewString()
	notes := map[string]interface{}{
		"purpose": string(req.Purpose),
		"email":   req.Contact.Email,
	}
	if req.Purpose == PurposeMembership {
		notes["audience_type"] = string(req.AudienceType)
	} else {
		notes["donation_id"] = fmt.Sprint(req.DonationID)
	}

	order, err := s.gw.CreateOrder(amount, currency, receipt, notes)
	if err != nil {
		return OrderResult{}, orderErr("Could not create payment order", err)
	}

	return OrderResult{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.keyID,
	}, nil
}

func (s *OrderService) resolveAmount(req OrderRequest) (int64, string, error) {
	switch req.Purpose {
	case PurposeMembership:
		amount, ok := memberships.Price(req.AudienceType)
		if !ok {
			return 0, "", inputErr(fmt.Sprintf("unknown audience type %q", req.AudienceType))
		}
		return amount, memberships.Currency, nil

	case PurposeDonation:
		if req.DonationID == 0 {
			return 0, "", orderErr("donation reference missing", nil)
		}
		d, err := s.donations.Find(req.DonationID)
		if err != nil {
			return 0, "", orderErr("Could not look up donation", err)
		}
		if d == nil {
			return 0, "", orderErr("donation reference missing", nil)
		}
		if d.Status != donations.StatusPending {
			return 0, "", orderErr("donation is already completed", nil)
		}
		return d.AmountINR, d.Currency, nil

	default:
		return 0, "", inputErr(fmt.Sprintf("unknown payment purpose %q", req.Purpose))
	}
}
