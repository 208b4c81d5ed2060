package payments

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ngo-portal/internal/domain/memberships"
)

// SignatureVerifier is the slice of the gateway the verification service
// needs; production passes the razorpay client.
type SignatureVerifier interface {
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// ReceiptMailer sends the post-payment receipt. Delivery is best effort and
// never fails a verified payment.
type ReceiptMailer interface {
	SendReceipt(to, name, referenceID string, amount int64, currency string) error
}

// VerifyService is the only code path that marks a domain record as paid.
// The signature check always precedes persistence, and (orderId, paymentId)
// acts as an idempotency key: replays return the original reference id
// instead of double-crediting.
type VerifyService struct {
	verifier SignatureVerifier
	members  MembershipStore
	dons     DonationStore
	mailer   ReceiptMailer
	logf     func(format string, args ...interface{})
}

func NewVerifyService(verifier SignatureVerifier, members MembershipStore, dons DonationStore, mailer ReceiptMailer) *VerifyService {
	return &VerifyService{
		verifier: verifier,
		members:  members,
		dons:     dons,
		mailer:   mailer,
		logf:     func(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) },
	}
}

func (s *VerifyService) Verify(req VerifyRequest) (VerifyResult, error) {
	p := req.Proof
	if p.OrderID == "" || p.PaymentID == "" || p.Signature == "" {
		return VerifyResult{}, inputErr("orderId, paymentId and signature are all required")
	}

	// The signature gate comes first, unconditionally: a forged proof is
	// rejected even when the (orderId, paymentId) pair is already confirmed.
	if !s.verifier.VerifyPaymentSignature(p.OrderID, p.PaymentID, p.Signature) {
		return VerifyResult{}, signatureErr(p.OrderID, p.PaymentID)
	}

	// Replay of an already-confirmed payment: acknowledge with the original
	// reference, touch nothing.
	if res, ok, err := s.findExisting(req); err != nil {
		return VerifyResult{}, persistenceErr(p.OrderID, p.PaymentID, err)
	} else if ok {
		return res, nil
	}

	// Signature is genuine from here on. Any failure below means money may
	// already be captured, so it must surface as a persistence error with
	// support guidance.
	switch req.Purpose {
	case PurposeMembership:
		return s.confirmMembership(req)
	case PurposeDonation:
		return s.confirmDonation(req)
	default:
		return VerifyResult{}, inputErr(fmt.Sprintf("unknown payment purpose %q", req.Purpose))
	}
}

func (s *VerifyService) findExisting(req VerifyRequest) (VerifyResult, bool, error) {
	switch req.Purpose {
	case PurposeMembership:
		m, err := s.members.FindByPayment(req.Proof.OrderID, req.Proof.PaymentID)
		if err != nil || m == nil {
			return VerifyResult{}, false, err
		}
		return VerifyResult{ReferenceID: m.ReferenceID, MembershipID: m.ID}, true, nil

	case PurposeDonation:
		d, err := s.dons.FindByPayment(req.Proof.OrderID, req.Proof.PaymentID)
		if err != nil || d == nil {
			return VerifyResult{}, false, err
		}
		ref := ""
		if d.ReferenceID != nil {
			ref = *d.ReferenceID
		}
		return VerifyResult{ReferenceID: ref, DonationID: d.ID}, true, nil
	}
	return VerifyResult{}, false, nil
}

func (s *VerifyService) confirmMembership(req VerifyRequest) (VerifyResult, error) {
	if _, ok := memberships.Config(req.AudienceType); !ok {
		return VerifyResult{}, inputErr(fmt.Sprintf("unknown audience type %q", req.AudienceType))
	}

	amount, _ := memberships.Price(req.AudienceType)

	var details []byte
	if len(req.Details) > 0 {
		details, _ = json.Marshal(req.Details)
	}

	m := &memberships.Membership{
		ReferenceID:       newReferenceID("M"),
		AudienceType:      string(req.AudienceType),
		Name:              req.Contact.Name,
		Email:             req.Contact.Email,
		Phone:             req.Contact.Phone,
		Details:           details,
		AmountINR:         amount,
		Currency:          memberships.Currency,
		RazorpayOrderID:   req.Proof.OrderID,
		RazorpayPaymentID: req.Proof.PaymentID,
		Status:            memberships.StatusActive,
	}

	if err := s.members.Create(m); err != nil {
		// Lost a race with a concurrent replay: the unique index on the
		// payment id guarantees a single row, so read it back.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.members.FindByPayment(req.Proof.OrderID, req.Proof.PaymentID); ferr == nil && existing != nil {
				return VerifyResult{ReferenceID: existing.ReferenceID, MembershipID: existing.ID}, nil
			}
		}
		return VerifyResult{}, persistenceErr(req.Proof.OrderID, req.Proof.PaymentID, err)
	}

	s.sendReceipt(req.Contact, m.ReferenceID, amount)
	return VerifyResult{ReferenceID: m.ReferenceID, MembershipID: m.ID}, nil
}

func (s *VerifyService) confirmDonation(req VerifyRequest) (VerifyResult, error) {
	if req.DonationID == 0 {
		return VerifyResult{}, inputErr("donation reference missing")
	}

	d, err := s.dons.Find(req.DonationID)
	if err != nil {
		return VerifyResult{}, persistenceErr(req.Proof.OrderID, req.Proof.PaymentID, err)
	}
	if d == nil {
		return VerifyResult{}, inputErr("donation reference missing")
	}

	ref := newReferenceID("D")
	if err := s.dons.MarkCompleted(d.ID, req.Proof.OrderID, req.Proof.PaymentID, ref); err != nil {
		return VerifyResult{}, persistenceErr(req.Proof.OrderID, req.Proof.PaymentID, err)
	}

	s.sendReceipt(Contact{Name: d.DonorName, Email: d.Email}, ref, d.AmountINR)
	return VerifyResult{ReferenceID: ref, DonationID: d.ID}, nil
}

func (s *VerifyService) sendReceipt(to Contact, referenceID string, amount int64) {
	if s.mailer == nil || to.Email == "" {
		return
	}
	if err := s.mailer.SendReceipt(to.Email, to.Name, referenceID, amount, memberships.Currency); err != nil {
		s.logf("receipt email for %s failed: %v", referenceID, err)
	}
}

func newReferenceID(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + id[:8]
}
