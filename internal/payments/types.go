package payments

import "ngo-portal/internal/domain/memberships"

// Purpose selects which domain record a payment confirms.
type Purpose string

const (
	PurposeMembership Purpose = "membership"
	PurposeDonation   Purpose = "donation"
)

func ParsePurpose(s string) (Purpose, bool) {
	switch Purpose(s) {
	case PurposeMembership, PurposeDonation:
		return Purpose(s), true
	}
	return "", false
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderRequest describes one payment attempt. For memberships the amount
// comes from the static price table, never from the caller; for donations
// the amount was fixed when the pending donation was created.
type OrderRequest struct {
	Purpose      Purpose
	AudienceType memberships.AudienceType
	DonationID   uint
	Contact      Contact
}

type OrderResult struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// Proof is what the hosted checkout hands back after the user pays.
// It exists only to be passed to the verification service.
type Proof struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type VerifyRequest struct {
	Proof   Proof
	Purpose Purpose

	// Membership purpose only.
	AudienceType memberships.AudienceType
	Contact      Contact
	Details      map[string]string

	// Donation purpose only.
	DonationID uint
}

type VerifyResult struct {
	ReferenceID  string
	MembershipID uint
	DonationID   uint
}
