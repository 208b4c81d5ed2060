package mail

import "fmt"

// SMTPReceiptMailer wires payment confirmations to a receipt email.
// It satisfies the verification service's ReceiptMailer.
type SMTPReceiptMailer struct{}

func (SMTPReceiptMailer) SendReceipt(to, name, referenceID string, amount int64, currency string) error {
	if name == "" {
		name = "Supporter"
	}
	subject := fmt.Sprintf("Payment received: %s", referenceID)
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you! We have received your payment of %d %s.\nYour reference id is %s. Keep it for any support queries.\n\nWarm regards,\nThe team",
		name, amount, currency, referenceID,
	)
	return Send(to, subject, body)
}
