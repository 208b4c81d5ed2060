package payments

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/memberships"
)

func newVerifyService(members MembershipStore, dons DonationStore, mailer ReceiptMailer) *VerifyService {
	svc := NewVerifyService(&fakeGateway{}, members, dons, mailer)
	svc.logf = func(string, ...interface{}) {}
	return svc
}

func membershipVerifyRequest(orderID, paymentID, signature string) VerifyRequest {
	return VerifyRequest{
		Proof:        Proof{OrderID: orderID, PaymentID: paymentID, Signature: signature},
		Purpose:      PurposeMembership,
		AudienceType: memberships.AudienceStudent,
		Contact:      Contact{Name: "Asha", Email: "asha@example.com", Phone: "9999999999"},
		Details:      map[string]string{"institution_name": "IIT Delhi"},
	}
}

func TestVerifyRejectsIncompleteProof(t *testing.T) {
	svc := newVerifyService(&fakeMembershipStore{}, &fakeDonationStore{}, nil)

	_, err := svc.Verify(membershipVerifyRequest("order_1", "", ""))
	require.Error(t, err)
	assert.Equal(t, KindInput, AsError(err).Kind)
}

func TestVerifySignatureMismatchCreatesNothing(t *testing.T) {
	members := &fakeMembershipStore{}
	svc := newVerifyService(members, &fakeDonationStore{}, nil)

	_, err := svc.Verify(membershipVerifyRequest("order_1", "pay_1", "forged"))
	require.Error(t, err)

	pe := AsError(err)
	assert.Equal(t, KindSignature, pe.Kind)
	assert.True(t, pe.ContactSupport())
	assert.Contains(t, pe.Message, "contact support")
	assert.Empty(t, members.rows, "no domain record may exist after a failed signature check")
}

func TestVerifyValidSignatureActivatesMembership(t *testing.T) {
	members := &fakeMembershipStore{}
	mailer := &recordingMailer{}
	svc := newVerifyService(members, &fakeDonationStore{}, mailer)

	result, err := svc.Verify(membershipVerifyRequest("order_1", "pay_1", sign("order_1", "pay_1", testSecret)))
	require.NoError(t, err)

	assert.NotEmpty(t, result.ReferenceID)
	assert.Regexp(t, `^M-[0-9A-F]{8}$`, result.ReferenceID)
	require.Len(t, members.rows, 1)

	m := members.rows[0]
	assert.Equal(t, memberships.StatusActive, m.Status)
	assert.Equal(t, "Asha", m.Name)
	assert.Equal(t, int64(300), m.AmountINR)
	assert.Equal(t, "order_1", m.RazorpayOrderID)

	assert.Equal(t, []string{result.ReferenceID}, mailer.sent, "receipt email follows confirmation")
}

func TestVerifyReplayReturnsOriginalReference(t *testing.T) {
	members := &fakeMembershipStore{}
	svc := newVerifyService(members, &fakeDonationStore{}, nil)

	req := membershipVerifyRequest("order_1", "pay_1", sign("order_1", "pay_1", testSecret))
	first, err := svc.Verify(req)
	require.NoError(t, err)

	second, err := svc.Verify(req)
	require.NoError(t, err)

	assert.Equal(t, first.ReferenceID, second.ReferenceID)
	assert.Len(t, members.rows, 1, "a replay must not double-credit")
}

// A replay of a confirmed payment is only acknowledged when its signature is
// genuine: a forged proof carrying a known (orderId, paymentId) pair must
// still be rejected.
func TestVerifyReplayWithForgedSignatureIsRejected(t *testing.T) {
	members := &fakeMembershipStore{}
	svc := newVerifyService(members, &fakeDonationStore{}, nil)

	first, err := svc.Verify(membershipVerifyRequest("order_1", "pay_1", sign("order_1", "pay_1", testSecret)))
	require.NoError(t, err)
	require.NotEmpty(t, first.ReferenceID)

	_, err = svc.Verify(membershipVerifyRequest("order_1", "pay_1", "totally-forged"))
	require.Error(t, err)
	assert.Equal(t, KindSignature, AsError(err).Kind)
	assert.Len(t, members.rows, 1)
}

// Two verifications race: both miss the replay lookup, the second insert
// trips the unique index and must return the winner's reference.
func TestVerifyDuplicateInsertRaceReadsBackWinner(t *testing.T) {
	winner := &memberships.Membership{
		ID: 1, ReferenceID: "M-WINNER01",
		RazorpayOrderID: "order_1", RazorpayPaymentID: "pay_1",
		Status: memberships.StatusActive,
	}
	members := &racingMembershipStore{winner: winner}
	svc := newVerifyService(members, &fakeDonationStore{}, nil)

	result, err := svc.Verify(membershipVerifyRequest("order_1", "pay_1", sign("order_1", "pay_1", testSecret)))
	require.NoError(t, err)
	assert.Equal(t, "M-WINNER01", result.ReferenceID)
}

// racingMembershipStore misses the first lookup and fails the insert with a
// duplicate-key error, like a concurrent replay landing first.
type racingMembershipStore struct {
	winner  *memberships.Membership
	lookups int
}

func (s *racingMembershipStore) FindByPayment(orderID, paymentID string) (*memberships.Membership, error) {
	s.lookups++
	if s.lookups == 1 {
		return nil, nil
	}
	return s.winner, nil
}

func (s *racingMembershipStore) Create(*memberships.Membership) error {
	return gorm.ErrDuplicatedKey
}

func TestVerifyPersistenceFailureIsDistinctFromSignatureMismatch(t *testing.T) {
	members := &fakeMembershipStore{failCreate: errors.New("database unavailable")}
	svc := newVerifyService(members, &fakeDonationStore{}, nil)

	req := VerifyRequest{
		Proof:        Proof{OrderID: "order_9", PaymentID: "pay_9", Signature: sign("order_9", "pay_9", testSecret)},
		Purpose:      PurposeMembership,
		AudienceType: memberships.AudienceInstitution,
		Contact:      Contact{Name: "St. Mary's", Email: "office@stmarys.example", Phone: "8888888888"},
	}
	_, err := svc.Verify(req)
	require.Error(t, err)

	pe := AsError(err)
	assert.Equal(t, KindPersistence, pe.Kind)
	assert.NotEqual(t, KindSignature, pe.Kind)
	assert.True(t, pe.ContactSupport())
	assert.Contains(t, pe.Message, "order_9", "support guidance must carry the payment reference")
}

func TestVerifyCompletesDonation(t *testing.T) {
	dons := &fakeDonationStore{rows: []*donations.Donation{
		{ID: 3, DonorName: "Ravi", Email: "ravi@example.com", AmountINR: 1500, Currency: "INR", Status: donations.StatusPending},
	}}
	mailer := &recordingMailer{}
	svc := newVerifyService(&fakeMembershipStore{}, dons, mailer)

	result, err := svc.Verify(VerifyRequest{
		Proof:      Proof{OrderID: "order_3", PaymentID: "pay_3", Signature: sign("order_3", "pay_3", testSecret)},
		Purpose:    PurposeDonation,
		DonationID: 3,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^D-[0-9A-F]{8}$`, result.ReferenceID)
	assert.Equal(t, donations.StatusCompleted, dons.rows[0].Status)
	assert.Len(t, mailer.sent, 1)
}

func TestVerifyDonationMissingReference(t *testing.T) {
	svc := newVerifyService(&fakeMembershipStore{}, &fakeDonationStore{}, nil)

	_, err := svc.Verify(VerifyRequest{
		Proof:      Proof{OrderID: "order_3", PaymentID: "pay_3", Signature: sign("order_3", "pay_3", testSecret)},
		Purpose:    PurposeDonation,
		DonationID: 3,
	})
	require.Error(t, err)
	assert.Equal(t, KindInput, AsError(err).Kind)
}

func TestVerifyMailerFailureDoesNotFailPayment(t *testing.T) {
	members := &fakeMembershipStore{}
	svc := newVerifyService(members, &fakeDonationStore{}, &recordingMailer{err: errors.New("smtp down")})

	_, err := svc.Verify(membershipVerifyRequest("order_1", "pay_1", sign("order_1", "pay_1", testSecret)))
	assert.NoError(t, err, "receipt delivery is best effort")
	assert.Len(t, members.rows, 1)
}
