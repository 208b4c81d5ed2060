package registration

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/payments"
	"ngo-portal/internal/registration"
)

// Handler drives a server-held registration flow. The hosted checkout runs
// in the browser; the handler sequences order creation before it and
// verification after it, and only a verified payment reaches success.
type Handler struct {
	Flows  *registration.Store
	Orders *payments.OrderService
	Verify *payments.VerifyService
}

func NewHandler(flows *registration.Store, orders *payments.OrderService, verify *payments.VerifyService) *Handler {
	return &Handler{Flows: flows, Orders: orders, Verify: verify}
}

// POST /api/registration
func (h *Handler) Start(c *gin.Context) {
	f := registration.New()
	h.Flows.Put(f)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flowState(f)})
}

// GET /api/registration/:id
func (h *Handler) GetState(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flowState(f)})
}

// POST /api/registration/:id/audience
func (h *Handler) SelectAudience(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}

	var body struct {
		AudienceType string `json:"audienceType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	t, err := memberships.ParseAudienceType(body.AudienceType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := f.SelectAudience(t); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flowState(f)})
}

// PUT /api/registration/:id/form
func (h *Handler) UpdateForm(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}

	var patch registration.FormPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := f.UpdateForm(patch); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flowState(f)})
}

// POST /api/registration/:id/submit — the guarded form -> payment move.
func (h *Handler) SubmitForm(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}
	if err := f.SubmitForm(); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":       false,
			"error":         err.Error(),
			"missingFields": f.MissingFields(),
			"data":          flowState(f),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flowState(f)})
}

// POST /api/registration/:id/back
func (h *Handler) Back(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}
	if err := f.Back(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flowState(f)})
}

// POST /api/registration/:id/order — create a fresh provider order for this
// attempt and hand the checkout what it needs.
func (h *Handler) CreateOrder(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}
	if f.Step() != registration.StepPayment {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "flow is not at the payment step"})
		return
	}

	intent := f.Intent()
	result, err := h.Orders.Create(payments.OrderRequest{
		Purpose:      payments.PurposeMembership,
		AudienceType: intent.Audience,
		Contact:      payments.Contact{Name: intent.Name, Email: intent.Email, Phone: intent.Phone},
	})
	if err != nil {
		pe := payments.AsError(err)
		f.Fail(pe.Kind, pe.Message)
		c.JSON(http.StatusOK, gin.H{"success": false, "error": pe.Message, "errorKind": string(pe.Kind), "data": flowState(f)})
		return
	}

	_ = f.BeginAttempt(result.OrderID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":       result.OrderID,
			"amount":   result.Amount,
			"currency": result.Currency,
		},
		"keyId": result.KeyID,
		"prefill": gin.H{
			"name":  intent.Name,
			"email": intent.Email,
			"phone": intent.Phone,
		},
		"data": flowState(f),
	})
}

// POST /api/registration/:id/complete — the checkout returned a proof;
// verify it and, only then, move to success.
func (h *Handler) Complete(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}
	if f.Step() != registration.StepPayment {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "flow is not at the payment step"})
		return
	}

	var proof payments.Proof
	if err := c.ShouldBindJSON(&proof); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	intent := f.Intent()
	result, err := h.Verify.Verify(payments.VerifyRequest{
		Proof:        proof,
		Purpose:      payments.PurposeMembership,
		AudienceType: intent.Audience,
		Contact:      payments.Contact{Name: intent.Name, Email: intent.Email, Phone: intent.Phone},
		Details:      intent.Details,
	})
	if err != nil {
		pe := payments.AsError(err)
		f.Fail(pe.Kind, pe.Message)
		c.JSON(http.StatusOK, gin.H{
			"success":        false,
			"error":          pe.Message,
			"errorKind":      string(pe.Kind),
			"contactSupport": pe.ContactSupport(),
			"data":           flowState(f),
		})
		return
	}

	if err := f.Complete(result.ReferenceID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "referenceId": result.ReferenceID, "data": flowState(f)})
}

// POST /api/registration/:id/cancel — the user dismissed the checkout.
// Not an error; the flow stays retryable at the payment step.
func (h *Handler) Cancel(c *gin.Context) {
	f := h.flow(c)
	if f == nil {
		return
	}
	if f.Step() != registration.StepPayment {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "flow is not at the payment step"})
		return
	}
	f.Cancel()
	c.JSON(http.StatusOK, gin.H{"success": true, "data": flowState(f)})
}

func (h *Handler) flow(c *gin.Context) *registration.Flow {
	f := h.Flows.Get(c.Param("id"))
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Registration flow not found or expired"})
		return nil
	}
	return f
}

func flowState(f *registration.Flow) gin.H {
	state := gin.H{
		"flowId": f.ID,
		"step":   string(f.Step()),
		"intent": f.Intent(),
	}
	if cfg := f.Config(); cfg.Title != "" {
		state["audience"] = gin.H{
			"type":     string(f.Intent().Audience),
			"title":    cfg.Title,
			"amount":   cfg.AmountINR,
			"currency": memberships.Currency,
			"fields":   cfg.Fields,
		}
	}
	if e := f.Err(); e != nil {
		state["error"] = e
	}
	if ref := f.ReferenceID(); ref != "" {
		state["referenceId"] = ref
	}
	return state
}
