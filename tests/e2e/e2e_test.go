package e2e

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"boardinghouse/internal/config"
	"boardinghouse/internal/database"
	"boardinghouse/internal/mailer"
	"boardinghouse/internal/middleware"
	"boardinghouse/internal/modules/auth"
	"boardinghouse/internal/modules/bill"
	"boardinghouse/internal/modules/email"
	"boardinghouse/internal/modules/house"
	"boardinghouse/internal/modules/notify"
	"boardinghouse/internal/modules/payment"
	"boardinghouse/internal/modules/report"
	"boardinghouse/internal/modules/room"
	jwtsvc "boardinghouse/internal/pkg/jwt"
	"boardinghouse/internal/repository"
)

const hashSecret = "e2e-hash-secret"

type E2ETestSuite struct {
	router  *gin.Engine
	db      *gorm.DB
	mailbox *mailer.Mock

	// gateway is the fake VNPay querydr endpoint; queryCode is what it
	// answers with.
	gateway   *httptest.Server
	queryCode string
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	suite := &E2ETestSuite{db: db, queryCode: "00", mailbox: &mailer.Mock{}}

	suite.gateway = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"vnp_ResponseCode":%q,"vnp_Message":"e2e"}`, suite.queryCode)
	}))
	t.Cleanup(suite.gateway.Close)

	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	contractRepo := repository.NewContractRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)
	emailService := email.NewService(suite.mailbox, "noreply@boardinghouse.test", "Boarding House")

	hub := notify.NewHub()
	events := notify.NewEvents(hub, userRepo, billRepo, emailService, nil)

	authService := auth.NewService(userRepo, resetRepo, jwtService, emailService, 10*time.Minute, "http://localhost:3000/reset-password", nil)
	authHandler := auth.NewHandler(authService)

	houseHandler := house.NewHandler(house.NewService(houseRepo))
	roomHandler := room.NewHandler(room.NewService(roomRepo, houseRepo, userRepo, contractRepo))
	billHandler := bill.NewHandler(bill.NewService(billRepo, roomRepo, contractRepo, events, nil))

	vnpCfg := config.VNPayConfig{
		TmnCode:    "E2EDEMO",
		HashSecret: hashSecret,
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/v1/payments/vnpay-return",
		APIURL:     suite.gateway.URL,
	}
	paymentService := payment.NewService(paymentRepo, billRepo, billRepo, events, suite.gateway.Client(), vnpCfg, nil)
	paymentHandler := payment.NewHandler(paymentService, nil)

	reportHandler := report.NewHandler(report.NewService(paymentRepo, roomRepo, houseRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)
	paymentHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		paymentHandler.RegisterProtectedRoutes(protected)
		billHandler.RegisterSharedRoutes(protected)
	}

	landlord := v1.Group("/")
	landlord.Use(middleware.JWTAuth(jwtService), middleware.LandlordOnly())
	{
		houseHandler.RegisterRoutes(landlord)
		roomHandler.RegisterRoutes(landlord)
		billHandler.RegisterLandlordRoutes(landlord)
		reportHandler.RegisterRoutes(landlord)
	}

	suite.router = r
	return suite
}

func (s *E2ETestSuite) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var parsed TestResponse
	_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func (s *E2ETestSuite) registerUser(t *testing.T, name, emailAddr, role string) (token string, id int64) {
	t.Helper()
	w, resp := s.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     name,
		"email":    emailAddr,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token = resp.Data["token"].(string)
	user := resp.Data["user"].(map[string]interface{})
	return token, int64(user["id"].(float64))
}

// signParams mirrors the gateway's canonicalization: drop empty values, sort
// keys, join unescaped, HMAC-SHA512 lowercase hex.
func signParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	mac := hmac.New(sha512.New, []byte(hashSecret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func callbackURL(params map[string]string, signature string) string {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("vnp_SecureHash", signature)
	return "/api/v1/payments/vnpay-return?" + form.Encode()
}

// setupBilledTenant walks the landlord flow up to an issued bill and returns
// everything the payment tests need.
func (s *E2ETestSuite) setupBilledTenant(t *testing.T) (landlordToken, tenantToken string, billID, contractID int64, totalAmount int64) {
	t.Helper()

	landlordToken, _ = s.registerUser(t, "Landlord", "landlord@example.com", "landlord")
	tenantToken, tenantID := s.registerUser(t, "Tenant", "tenant@example.com", "tenant")

	w, resp := s.request(t, http.MethodPost, "/api/v1/houses", landlordToken, gin.H{
		"name":    "Nha Tro E2E",
		"address": "1 Test Street",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	houseID := int64(resp.Data["house"].(map[string]interface{})["id"].(float64))

	w, resp = s.request(t, http.MethodPost, "/api/v1/rooms", landlordToken, gin.H{
		"house_id":      houseID,
		"room_number":   "101",
		"room_type":     "Single",
		"capacity":      1,
		"monthly_price": 1800000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	roomID := int64(resp.Data["room"].(map[string]interface{})["id"].(float64))

	w, _ = s.request(t, http.MethodPost, fmt.Sprintf("/api/v1/rooms/%d/tenant", roomID), landlordToken, gin.H{
		"tenant_id": tenantID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, resp = s.request(t, http.MethodPost, "/api/v1/bills", landlordToken, gin.H{
		"room_id":      roomID,
		"period_month": 8,
		"period_year":  2026,
		"room_charge":  1800000,
		"electricity":  350000,
		"water":        120000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	billData := resp.Data["bill"].(map[string]interface{})

	return landlordToken, tenantToken,
		int64(billData["id"].(float64)),
		int64(billData["contract_id"].(float64)),
		int64(billData["total_amount"].(float64))
}

func TestFullPaymentFlow(t *testing.T) {
	suite := setupTestSuite(t)

	_, tenantToken, billID, contractID, totalAmount := suite.setupBilledTenant(t)
	assert.Equal(t, int64(2270000), totalAmount)

	// Issuing the bill mailed the tenant.
	require.Len(t, suite.mailbox.Sent, 3) // 2 welcome + 1 bill issued
	assert.Contains(t, suite.mailbox.Sent[2].Subject, "bill")

	// Tenant opens a checkout.
	w, _ := suite.request(t, http.MethodPost, "/api/v1/payments/vnpay", tenantToken, gin.H{
		"bill_id":      billID,
		"contract_id":  contractID,
		"total_amount": totalAmount,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var checkout struct {
		PaymentURL      string `json:"payment_url"`
		TransactionCode string `json:"transaction_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))
	require.NotEmpty(t, checkout.TransactionCode)

	// The redirect URL is signed and carries the scaled amount.
	parsed, err := url.Parse(checkout.PaymentURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, fmt.Sprintf("%d", totalAmount*100), query.Get("vnp_Amount"))
	assert.Equal(t, checkout.TransactionCode, query.Get("vnp_TxnRef"))

	urlParams := map[string]string{}
	for k, v := range query {
		if k == "vnp_SecureHash" {
			continue
		}
		urlParams[k] = v[0]
	}
	assert.Equal(t, signParams(urlParams), query.Get("vnp_SecureHash"))

	// Gateway sends the user back with a success code.
	returnParams := map[string]string{
		"vnp_TmnCode":      "E2EDEMO",
		"vnp_TxnRef":       checkout.TransactionCode,
		"vnp_Amount":       fmt.Sprintf("%d", totalAmount*100),
		"vnp_ResponseCode": "00",
		"vnp_TransactionNo": "14221155",
	}
	w, _ = suite.request(t, http.MethodGet, callbackURL(returnParams, signParams(returnParams)), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "00", result.Code)

	// The bill is settled and the tenant got a receipt.
	w, resp := suite.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bills/%d", billID), tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Paid", resp.Data["bill"].(map[string]interface{})["status"])
	require.Len(t, suite.mailbox.Sent, 4)
	assert.Contains(t, suite.mailbox.Sent[3].Subject, "Payment")

	// Replaying the callback acknowledges without a second receipt.
	w, _ = suite.request(t, http.MethodGet, callbackURL(returnParams, signParams(returnParams)), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "00", result.Code)
	assert.Len(t, suite.mailbox.Sent, 4)
}

func TestReturnCallback_TamperedSignature(t *testing.T) {
	suite := setupTestSuite(t)
	_, tenantToken, billID, contractID, totalAmount := suite.setupBilledTenant(t)

	w, _ := suite.request(t, http.MethodPost, "/api/v1/payments/vnpay", tenantToken, gin.H{
		"bill_id":      billID,
		"contract_id":  contractID,
		"total_amount": totalAmount,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var checkout struct {
		TransactionCode string `json:"transaction_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))

	params := map[string]string{
		"vnp_TxnRef":       checkout.TransactionCode,
		"vnp_ResponseCode": "00",
	}
	sig := signParams(params)
	// Flip one hex digit.
	tampered := "0" + sig[1:]
	if tampered == sig {
		tampered = "1" + sig[1:]
	}

	w, _ = suite.request(t, http.MethodGet, callbackURL(params, tampered), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "97", result.Code)

	// Store untouched: the bill is still unpaid.
	w, resp := suite.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bills/%d", billID), tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Unpaid", resp.Data["bill"].(map[string]interface{})["status"])
}

func TestStatusPoller_ReconcilesLostCallback(t *testing.T) {
	suite := setupTestSuite(t)
	landlordToken, tenantToken, billID, contractID, totalAmount := suite.setupBilledTenant(t)

	w, _ := suite.request(t, http.MethodPost, "/api/v1/payments/vnpay", tenantToken, gin.H{
		"bill_id":      billID,
		"contract_id":  contractID,
		"total_amount": totalAmount,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var checkout struct {
		TransactionCode string `json:"transaction_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &checkout))

	// The callback never arrived; the poller asks the gateway directly.
	suite.queryCode = "00"
	w, _ = suite.request(t, http.MethodGet, "/api/v1/payments/vnpay/"+checkout.TransactionCode+"/status", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "00", result.Code)

	w, resp := suite.request(t, http.MethodGet, fmt.Sprintf("/api/v1/bills/%d", billID), tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Paid", resp.Data["bill"].(map[string]interface{})["status"])

	// Income now shows on the landlord dashboard.
	w, resp = suite.request(t, http.MethodGet, "/api/v1/reports/dashboard", landlordToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(totalAmount), resp.Data["total_income"])
}

func TestStatusPoller_UnknownTransaction(t *testing.T) {
	suite := setupTestSuite(t)
	_, tenantToken, _, _, _ := suite.setupBilledTenant(t)

	w, _ := suite.request(t, http.MethodGet, "/api/v1/payments/vnpay/VNPdoesnotexist/status", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "01", result.Code)
}

func TestRoleEnforcement(t *testing.T) {
	suite := setupTestSuite(t)
	tenantToken, _ := suite.registerUser(t, "Tenant", "tenant@example.com", "tenant")

	w, _ := suite.request(t, http.MethodPost, "/api/v1/houses", tenantToken, gin.H{
		"name":    "Should Fail",
		"address": "1 Street",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = suite.request(t, http.MethodGet, "/api/v1/reports/dashboard", tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
