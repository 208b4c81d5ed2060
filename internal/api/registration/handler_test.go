package registration

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngo-portal/config"
	"ngo-portal/internal/domain/donations"
	"ngo-portal/internal/domain/memberships"
	"ngo-portal/internal/infra/razorpay"
	"ngo-portal/internal/payments"
	"ngo-portal/internal/registration"
)

const testSecret = "test_key_secret"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeGateway struct {
	nextID  int
	created int
}

func (g *fakeGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (razorpay.Order, error) {
	g.nextID++
	g.created++
	return razorpay.Order{ID: fmt.Sprintf("order_%06d", g.nextID), Amount: amount, Currency: currency}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(signature), []byte(sign(orderID, paymentID)))
}

type memStore struct {
	rows       []*memberships.Membership
	failCreate error
}

func (s *memStore) FindByPayment(orderID, paymentID string) (*memberships.Membership, error) {
	for _, m := range s.rows {
		if m.RazorpayOrderID == orderID && m.RazorpayPaymentID == paymentID {
			return m, nil
		}
	}
	return nil, nil
}

func (s *memStore) Create(m *memberships.Membership) error {
	if s.failCreate != nil {
		return s.failCreate
	}
	m.ID = uint(len(s.rows) + 1)
	s.rows = append(s.rows, m)
	return nil
}

type donStore struct{}

func (donStore) Find(uint) (*donations.Donation, error)                   { return nil, nil }
func (donStore) FindByPayment(string, string) (*donations.Donation, error) { return nil, nil }
func (donStore) MarkCompleted(uint, string, string, string) error          { return nil }

type env struct {
	router  *gin.Engine
	gateway *fakeGateway
	members *memStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := &fakeGateway{}
	members := &memStore{}
	cfg := config.RazorpayConfig{KeyID: "rzp_test_key", KeySecret: testSecret}

	orders := payments.NewOrderService(gw, donStore{}, cfg)
	verify := payments.NewVerifyService(gw, members, donStore{}, nil)
	h := NewHandler(registration.NewStore(registration.DefaultTTL), orders, verify)

	r := gin.New()
	r.POST("/api/registration", h.Start)
	r.GET("/api/registration/:id", h.GetState)
	r.POST("/api/registration/:id/audience", h.SelectAudience)
	r.PUT("/api/registration/:id/form", h.UpdateForm)
	r.POST("/api/registration/:id/submit", h.SubmitForm)
	r.POST("/api/registration/:id/back", h.Back)
	r.POST("/api/registration/:id/order", h.CreateOrder)
	r.POST("/api/registration/:id/complete", h.Complete)
	r.POST("/api/registration/:id/cancel", h.Cancel)

	return &env{router: r, gateway: gw, members: members}
}

func (e *env) do(t *testing.T, method, path string, body interface{}) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Less(t, w.Code, 500, "unexpected server error: %s", w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (e *env) startFlow(t *testing.T) string {
	resp := e.do(t, http.MethodPost, "/api/registration", nil)
	data := resp["data"].(map[string]interface{})
	return data["flowId"].(string)
}

func step(resp map[string]interface{}) string {
	return resp["data"].(map[string]interface{})["step"].(string)
}

func TestStudentRegistrationEndToEnd(t *testing.T) {
	e := newEnv(t)
	id := e.startFlow(t)

	resp := e.do(t, http.MethodPost, "/api/registration/"+id+"/audience",
		gin.H{"audienceType": "student"})
	assert.Equal(t, "form", step(resp))

	resp = e.do(t, http.MethodPut, "/api/registration/"+id+"/form", gin.H{
		"name": "Asha", "email": "asha@example.com", "phone": "9999999999",
		"agreedToTerms": true,
	})
	require.Equal(t, true, resp["success"])

	resp = e.do(t, http.MethodPost, "/api/registration/"+id+"/submit", nil)
	require.Equal(t, true, resp["success"])
	assert.Equal(t, "payment", step(resp))

	// The payment step shows the student fee from the price table.
	audience := resp["data"].(map[string]interface{})["audience"].(map[string]interface{})
	assert.Equal(t, float64(300), audience["amount"])
	assert.Equal(t, "INR", audience["currency"])

	resp = e.do(t, http.MethodPost, "/api/registration/"+id+"/order", nil)
	require.Equal(t, true, resp["success"])
	order := resp["order"].(map[string]interface{})
	orderID := order["id"].(string)
	assert.Equal(t, float64(300), order["amount"])
	assert.Equal(t, "rzp_test_key", resp["keyId"])

	resp = e.do(t, http.MethodPost, "/api/registration/"+id+"/complete", gin.H{
		"orderId": orderID, "paymentId": "pay_1", "signature": sign(orderID, "pay_1"),
	})
	require.Equal(t, true, resp["success"], "body: %v", resp)
	assert.Equal(t, "success", step(resp))

	ref := resp["referenceId"].(string)
	assert.Regexp(t, `^M-[0-9A-F]{8}$`, ref)

	require.Len(t, e.members.rows, 1)
	assert.Equal(t, "asha@example.com", e.members.rows[0].Email)
}

func TestIncompleteFormCannotReachPayment(t *testing.T) {
	e := newEnv(t)
	id := e.startFlow(t)

	e.do(t, http.MethodPost, "/api/registration/"+id+"/audience", gin.H{"audienceType": "teacher"})
	e.do(t, http.MethodPut, "/api/registration/"+id+"/form", gin.H{
		"name": "Asha", "email": "asha@example.com", "agreedToTerms": true,
	})

	resp := e.do(t, http.MethodPost, "/api/registration/"+id+"/submit", nil)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "form", step(resp))
	assert.Contains(t, resp["missingFields"], "phone")
}

func TestCancelLeavesPaymentRetryable(t *testing.T) {
	e := newEnv(t)
	id := e.startFlow(t)

	e.do(t, http.MethodPost, "/api/registration/"+id+"/audience", gin.H{"audienceType": "student"})
	e.do(t, http.MethodPut, "/api/registration/"+id+"/form", gin.H{
		"name": "Asha", "email": "asha@example.com", "phone": "9999999999", "agreedToTerms": true,
	})
	e.do(t, http.MethodPost, "/api/registration/"+id+"/submit", nil)
	e.do(t, http.MethodPost, "/api/registration/"+id+"/order", nil)

	resp := e.do(t, http.MethodPost, "/api/registration/"+id+"/cancel", nil)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "payment", step(resp))
	assert.Empty(t, e.members.rows, "cancellation must not touch the verification service")

	// Retrying creates a second, fresh provider order.
	resp = e.do(t, http.MethodPost, "/api/registration/"+id+"/order", nil)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 2, e.gateway.created)
}

func TestForgedSignatureStaysAtPaymentWithSupportGuidance(t *testing.T) {
	e := newEnv(t)
	id := e.startFlow(t)

	e.do(t, http.MethodPost, "/api/registration/"+id+"/audience", gin.H{"audienceType": "student"})
	e.do(t, http.MethodPut, "/api/registration/"+id+"/form", gin.H{
		"name": "Asha", "email": "asha@example.com", "phone": "9999999999", "agreedToTerms": true,
	})
	e.do(t, http.MethodPost, "/api/registration/"+id+"/submit", nil)
	resp := e.do(t, http.MethodPost, "/api/registration/"+id+"/order", nil)
	orderID := resp["order"].(map[string]interface{})["id"].(string)

	resp = e.do(t, http.MethodPost, "/api/registration/"+id+"/complete", gin.H{
		"orderId": orderID, "paymentId": "pay_1", "signature": "forged",
	})
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "signature", resp["errorKind"])
	assert.Equal(t, true, resp["contactSupport"])
	assert.Equal(t, "payment", step(resp))
	assert.Empty(t, e.members.rows)
}

func TestInstitutionPersistenceFailureIsDistinctError(t *testing.T) {
	e := newEnv(t)
	e.members.failCreate = fmt.Errorf("database unavailable")
	id := e.startFlow(t)

	e.do(t, http.MethodPost, "/api/registration/"+id+"/audience", gin.H{"audienceType": "institution"})
	e.do(t, http.MethodPut, "/api/registration/"+id+"/form", gin.H{
		"name": "St. Mary's", "email": "office@stmarys.example", "phone": "8888888888", "agreedToTerms": true,
	})
	resp := e.do(t, http.MethodPost, "/api/registration/"+id+"/submit", nil)
	audience := resp["data"].(map[string]interface{})["audience"].(map[string]interface{})
	assert.Equal(t, float64(5000), audience["amount"])

	resp = e.do(t, http.MethodPost, "/api/registration/"+id+"/order", nil)
	orderID := resp["order"].(map[string]interface{})["id"].(string)

	resp = e.do(t, http.MethodPost, "/api/registration/"+id+"/complete", gin.H{
		"orderId": orderID, "paymentId": "pay_7", "signature": sign(orderID, "pay_7"),
	})
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "persistence", resp["errorKind"])
	assert.Equal(t, true, resp["contactSupport"])
	assert.Contains(t, resp["error"], "contact support")
}

func TestUnknownFlowReturns404(t *testing.T) {
	e := newEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/registration/nope", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
