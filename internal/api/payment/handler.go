package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/payments"
)

type Handler struct {
	Orders *payments.OrderService
	Verify *payments.VerifyService
}

func NewHandler(orders *payments.OrderService, verify *payments.VerifyService) *Handler {
	return &Handler{Orders: orders, Verify: verify}
}

type orderRequest struct {
	PaymentPurpose string           `json:"paymentPurpose" binding:"required"`
	AudienceType   string           `json:"membershipType"`
	DonationID     uint             `json:"donationId"`
	UserDetails    payments.Contact `json:"userDetails"`
}

// POST /api/payment/order
func (h *Handler) CreateOrder(c *gin.Context) {
	var body orderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	purpose, ok := payments.ParsePurpose(body.PaymentPurpose)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown payment purpose"})
		return
	}

	req := payments.OrderRequest{
		Purpose:      purpose,
		AudienceType: memberships.AudienceType(body.AudienceType),
		DonationID:   body.DonationID,
		Contact:      body.UserDetails,
	}

	result, err := h.Orders.Create(req)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":       result.OrderID,
			"amount":   result.Amount,
			"currency": result.Currency,
		},
		"keyId": result.KeyID,
	})
}

type verifyRequest struct {
	OrderID        string            `json:"orderId" binding:"required"`
	PaymentID      string            `json:"paymentId" binding:"required"`
	Signature      string            `json:"signature" binding:"required"`
	PaymentPurpose string            `json:"paymentPurpose" binding:"required"`
	AudienceType   string            `json:"membershipType"`
	DonationID     uint              `json:"donationId"`
	UserDetails    payments.Contact  `json:"userDetails"`
	AdditionalData map[string]string `json:"additionalData"`
}

// POST /api/payment/verify
func (h *Handler) VerifyPayment(c *gin.Context) {
	var body verifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	purpose, ok := payments.ParsePurpose(body.PaymentPurpose)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Unknown payment purpose"})
		return
	}

	result, err := h.Verify.Verify(payments.VerifyRequest{
		Proof: payments.Proof{
			OrderID:   body.OrderID,
			PaymentID: body.PaymentID,
			Signature: body.Signature,
		},
		Purpose:      purpose,
		AudienceType: memberships.AudienceType(body.AudienceType),
		Contact:      body.UserDetails,
		Details:      body.AdditionalData,
		DonationID:   body.DonationID,
	})
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	resp := gin.H{"success": true, "referenceId": result.ReferenceID}
	if result.MembershipID != 0 {
		resp["membershipId"] = result.MembershipID
	}
	if result.DonationID != 0 {
		resp["donationId"] = result.DonationID
	}
	c.JSON(http.StatusOK, resp)
}

// Domain failures keep a 200 with success:false so the client can branch on
// errorKind; only malformed requests get a 4xx.
func respondPaymentError(c *gin.Context, err error) {
	pe := payments.AsError(err)
	c.JSON(http.StatusOK, gin.H{
		"success":        false,
		"error":          pe.Message,
		"errorKind":      string(pe.Kind),
		"contactSupport": pe.ContactSupport(),
	})
}
