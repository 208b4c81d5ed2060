package payments

import "fmt"

// Kind classifies payment-step failures so the client can render each class
// differently. Signature and persistence failures must surface a
// support-contact message, never a bare "try again": the provider may have
// captured money even though no domain record was confirmed.
type Kind string

const (
	KindInput       Kind = "input"
	KindOrder       Kind = "order"
	KindGateway     Kind = "gateway"
	KindCancelled   Kind = "gateway-cancelled"
	KindSignature   Kind = "signature"
	KindPersistence Kind = "persistence"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// ContactSupport reports whether the error class requires the
// support-contact guidance in user-facing output.
func (e *Error) ContactSupport() bool {
	return e.Kind == KindSignature || e.Kind == KindPersistence
}

func inputErr(msg string) *Error {
	return &Error{Kind: KindInput, Message: msg}
}

func orderErr(msg string, err error) *Error {
	return &Error{Kind: KindOrder, Message: msg, Err: err}
}

func signatureErr(orderID, paymentID string) *Error {
	return &Error{Kind: KindSignature, Message: SupportMessage("Payment could not be verified", orderID, paymentID)}
}

func persistenceErr(orderID, paymentID string, err error) *Error {
	return &Error{
		Kind:    KindPersistence,
		Message: SupportMessage("Payment was received but the record could not be saved", orderID, paymentID),
		Err:     err,
	}
}

// SupportMessage builds the user-facing guidance carrying the payment
// reference, so support staff can reconcile a captured-but-unconfirmed
// payment.
func SupportMessage(lead, orderID, paymentID string) string {
	return fmt.Sprintf("%s. Please contact support and quote order %s / payment %s.", lead, orderID, paymentID)
}

// AsError returns err as a *Error, wrapping unknown errors as persistence
// failures (the conservative class).
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*Error); ok {
		return pe
	}
	return &Error{Kind: KindPersistence, Message: err.Error(), Err: err}
}
