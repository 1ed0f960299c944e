package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"boardinghouse/internal/config"
	"boardinghouse/internal/domain"

	"gorm.io/gorm"
)

type mockBillReader struct {
	bill *domain.Bill
}

func (m *mockBillReader) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	if m.bill == nil || m.bill.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return m.bill, nil
}

type mockBillWriter struct {
	paidBills []int64
}

func (m *mockBillWriter) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	m.paidBills = append(m.paidBills, id)
	return nil
}

type mockNotifier struct {
	completed int
	failed    int
}

func (m *mockNotifier) PaymentCompleted(ctx context.Context, p *domain.Payment) { m.completed++ }
func (m *mockNotifier) PaymentFailed(ctx context.Context, p *domain.Payment)    { m.failed++ }

type mockPaymentRepo struct {
	payment            *domain.Payment
	created            []*domain.Payment
	markCompletedCalls int
	markFailedCalls    int
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	p.ID = int64(len(m.created) + 1)
	m.created = append(m.created, p)
	return nil
}

func (m *mockPaymentRepo) GetByTransactionCode(ctx context.Context, code string) (*domain.Payment, error) {
	if m.payment != nil && m.payment.TransactionCode == code {
		cp := *m.payment
		return &cp, nil
	}
	for _, p := range m.created {
		if p.TransactionCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) MarkCompleted(ctx context.Context, code string, paidAt time.Time) (bool, error) {
	m.markCompletedCalls++
	p := m.find(code)
	if p == nil {
		return false, gorm.ErrRecordNotFound
	}
	if p.Status == domain.PaymentCompleted {
		return false, nil
	}
	p.Status = domain.PaymentCompleted
	p.PaymentDate = &paidAt
	return true, nil
}

func (m *mockPaymentRepo) MarkFailedIfPending(ctx context.Context, code string) (bool, error) {
	m.markFailedCalls++
	p := m.find(code)
	if p == nil {
		return false, gorm.ErrRecordNotFound
	}
	if p.Status != domain.PaymentPending {
		return false, nil
	}
	p.Status = domain.PaymentFailed
	return true, nil
}

func (m *mockPaymentRepo) find(code string) *domain.Payment {
	if m.payment != nil && m.payment.TransactionCode == code {
		return m.payment
	}
	for _, p := range m.created {
		if p.TransactionCode == code {
			return p
		}
	}
	return nil
}

func newTestService(repo *mockPaymentRepo, bills *mockBillReader, billWriter *mockBillWriter, notifier *mockNotifier, apiURL string) *Service {
	cfg := config.VNPayConfig{
		TmnCode:    "DEMO",
		HashSecret: "test-secret",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/v1/payments/vnpay-return",
		APIURL:     apiURL,
	}
	return &Service{
		payments:   repo,
		bills:      bills,
		billWriter: billWriter,
		notifier:   notifier,
		httpClient: http.DefaultClient,
		loggerf:    func(string, ...interface{}) {},
		cfg:        cfg,
		signer:     newSigner(cfg.HashSecret),
		now:        time.Now,
	}
}

func signedReturnParams(s *Service, txnRef, responseCode string) map[string]string {
	params := map[string]string{
		"vnp_TxnRef":        txnRef,
		"vnp_ResponseCode":  responseCode,
		"vnp_Amount":        "180000000",
		"vnp_TmnCode":       "DEMO",
		"vnp_TransactionNo": "14226112",
	}
	params[secureHashField] = s.signer.Sign(params)
	return params
}

func TestCreatePayment_BillNotFound(t *testing.T) {
	repo := &mockPaymentRepo{}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, &mockNotifier{}, "")

	_, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{BillID: 42, ContractID: 1, TotalAmount: 1800000, UserID: 7})
	if err != ErrBillNotFound {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("no payment must be created for a missing bill")
	}
}

func TestCreatePayment_ForeignBill(t *testing.T) {
	repo := &mockPaymentRepo{}
	bills := &mockBillReader{bill: &domain.Bill{ID: 42, TenantID: 9, Status: domain.BillUnpaid}}
	svc := newTestService(repo, bills, &mockBillWriter{}, &mockNotifier{}, "")

	_, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{BillID: 42, ContractID: 1, TotalAmount: 1800000, UserID: 7})
	if err != ErrBillNotFound {
		t.Fatalf("expected ErrBillNotFound for another tenant's bill, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("no payment must be created for another tenant's bill")
	}
}

func TestCreatePayment_PaidBill(t *testing.T) {
	repo := &mockPaymentRepo{}
	bills := &mockBillReader{bill: &domain.Bill{ID: 42, TenantID: 7, Status: domain.BillPaid}}
	svc := newTestService(repo, bills, &mockBillWriter{}, &mockNotifier{}, "")

	_, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{BillID: 42, ContractID: 1, TotalAmount: 1800000, UserID: 7})
	if err != ErrBillAlreadyPaid {
		t.Fatalf("expected ErrBillAlreadyPaid, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("no payment must be created for a paid bill")
	}
}

func TestCreatePayment_BuildsSignedRedirectURL(t *testing.T) {
	repo := &mockPaymentRepo{}
	bills := &mockBillReader{bill: &domain.Bill{ID: 42, RoomID: 201, TenantID: 7, TotalAmount: 1800000, Status: domain.BillUnpaid}}
	svc := newTestService(repo, bills, &mockBillWriter{}, &mockNotifier{}, "")

	resp, err := svc.CreatePayment(context.Background(), CreatePaymentRequest{
		BillID: 42, ContractID: 3, TotalAmount: 1800000, UserID: 7, IPAddress: "10.0.0.1",
	})
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one payment created, got %d", len(repo.created))
	}
	p := repo.created[0]
	if p.Status != domain.PaymentPending {
		t.Fatalf("new payment status = %s, want Pending", p.Status)
	}
	if p.TransactionCode != resp.TransactionCode {
		t.Fatal("returned transaction code must identify the created payment")
	}
	if p.Method != domain.MethodOnline {
		t.Fatalf("payment method = %s, want Online Payment", p.Method)
	}

	if !strings.Contains(resp.PaymentURL, "vnp_Amount=180000000") {
		t.Fatalf("redirect URL must carry the x100 scaled amount: %s", resp.PaymentURL)
	}
	if !strings.Contains(resp.PaymentURL, "vnp_TxnRef="+resp.TransactionCode) {
		t.Fatalf("redirect URL must carry the transaction code: %s", resp.PaymentURL)
	}

	// the signature in the URL must verify over the preceding parameters
	qs := resp.PaymentURL[strings.Index(resp.PaymentURL, "?")+1:]
	params := map[string]string{}
	for _, pair := range strings.Split(qs, "&") {
		kv := strings.SplitN(pair, "=", 2)
		params[kv[0]] = kv[1]
	}
	hash := params[secureHashField]
	delete(params, secureHashField)
	if !svc.signer.Verify(params, hash) {
		t.Fatal("redirect URL signature does not verify")
	}
}

func TestProcessReturn_Success(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, BillID: 42, TransactionCode: "VNP1", Status: domain.PaymentPending,
	}}
	billWriter := &mockBillWriter{}
	notifier := &mockNotifier{}
	svc := newTestService(repo, &mockBillReader{}, billWriter, notifier, "")

	res := svc.ProcessReturn(context.Background(), signedReturnParams(svc, "VNP1", "00"))

	if res.Code != CodeSuccess {
		t.Fatalf("result code = %s, want 00", res.Code)
	}
	if res.PaymentID != 7 {
		t.Fatalf("result payment id = %d, want 7", res.PaymentID)
	}
	if repo.payment.Status != domain.PaymentCompleted {
		t.Fatalf("payment status = %s, want Completed", repo.payment.Status)
	}
	if repo.payment.PaymentDate == nil {
		t.Fatal("payment date must be stamped on completion")
	}
	if len(billWriter.paidBills) != 1 || billWriter.paidBills[0] != 42 {
		t.Fatalf("bill 42 must be marked paid, got %v", billWriter.paidBills)
	}
	if notifier.completed != 1 {
		t.Fatalf("expected one completion notification, got %d", notifier.completed)
	}
}

func TestProcessReturn_UserCancelled(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, BillID: 42, TransactionCode: "VNP1", Status: domain.PaymentPending,
	}}
	notifier := &mockNotifier{}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, notifier, "")

	res := svc.ProcessReturn(context.Background(), signedReturnParams(svc, "VNP1", "24"))

	if res.Code != "24" {
		t.Fatalf("result code = %s, want 24", res.Code)
	}
	if repo.payment.Status != domain.PaymentFailed {
		t.Fatalf("payment status = %s, want Failed", repo.payment.Status)
	}
	if notifier.failed != 1 {
		t.Fatalf("expected one failure notification, got %d", notifier.failed)
	}
}

func TestProcessReturn_ReplayedFailureNotifiesOnce(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, BillID: 42, TransactionCode: "VNP1", Status: domain.PaymentPending,
	}}
	notifier := &mockNotifier{}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, notifier, "")

	params := signedReturnParams(svc, "VNP1", "24")
	first := svc.ProcessReturn(context.Background(), params)
	second := svc.ProcessReturn(context.Background(), params)

	if first.Code != "24" || second.Code != "24" {
		t.Fatalf("result codes = %s/%s, want 24/24", first.Code, second.Code)
	}
	if repo.payment.Status != domain.PaymentFailed {
		t.Fatalf("payment status = %s, want Failed", repo.payment.Status)
	}
	if notifier.failed != 1 {
		t.Fatalf("expected exactly one failure notification, got %d", notifier.failed)
	}
}

func TestProcessReturn_TamperedSignature(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, TransactionCode: "VNP1", Status: domain.PaymentPending,
	}}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, &mockNotifier{}, "")

	params := signedReturnParams(svc, "VNP1", "00")
	sig := []byte(params[secureHashField])
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	params[secureHashField] = string(sig)

	res := svc.ProcessReturn(context.Background(), params)

	if res.Code != CodeInvalidSignature {
		t.Fatalf("result code = %s, want 97", res.Code)
	}
	if repo.payment.Status != domain.PaymentPending {
		t.Fatal("payment record must be untouched on signature mismatch")
	}
	if repo.markCompletedCalls != 0 || repo.markFailedCalls != 0 {
		t.Fatal("store must not be touched on signature mismatch")
	}
}

func TestProcessReturn_UnknownTransaction(t *testing.T) {
	svc := newTestService(&mockPaymentRepo{}, &mockBillReader{}, &mockBillWriter{}, &mockNotifier{}, "")

	res := svc.ProcessReturn(context.Background(), signedReturnParams(svc, "VNP-missing", "00"))
	if res.Code != CodeNotFound {
		t.Fatalf("result code = %s, want 01", res.Code)
	}
}

func TestProcessReturn_IdempotentReplay(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, BillID: 42, TransactionCode: "VNP1", Status: domain.PaymentPending,
	}}
	notifier := &mockNotifier{}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, notifier, "")

	params := signedReturnParams(svc, "VNP1", "00")

	first := svc.ProcessReturn(context.Background(), params)
	if first.Code != CodeSuccess {
		t.Fatalf("first callback code = %s, want 00", first.Code)
	}
	firstDate := *repo.payment.PaymentDate

	second := svc.ProcessReturn(context.Background(), params)
	if second.Code != CodeSuccess {
		t.Fatalf("replayed callback code = %s, want 00", second.Code)
	}
	if !repo.payment.PaymentDate.Equal(firstDate) {
		t.Fatal("replayed callback must not re-stamp the payment date")
	}
	if notifier.completed != 1 {
		t.Fatalf("replay must not re-notify, got %d notifications", notifier.completed)
	}
}

func TestQueryTransaction_UnknownCode(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	svc := newTestService(&mockPaymentRepo{}, &mockBillReader{}, &mockBillWriter{}, &mockNotifier{}, srv.URL)

	res := svc.QueryTransaction(context.Background(), "VNP-missing")
	if res.Code != CodeNotFound {
		t.Fatalf("result code = %s, want 01", res.Code)
	}
	if called {
		t.Fatal("gateway must not be queried for an unknown transaction code")
	}
}

func TestQueryTransaction_RemoteSuccessForcesCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("query call method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %s", ct)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("vnp_Command") != "querydr" {
			t.Errorf("vnp_Command = %s, want querydr", r.PostForm.Get("vnp_Command"))
		}
		if r.PostForm.Get(secureHashField) == "" {
			t.Error("query request must be signed")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vnp_ResponseCode":"00","vnp_Message":"Query successful"}`))
	}))
	defer srv.Close()

	// a prior Failed state is upgraded by remote success
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, BillID: 42, TransactionCode: "VNP1", Status: domain.PaymentFailed,
	}}
	billWriter := &mockBillWriter{}
	svc := newTestService(repo, &mockBillReader{}, billWriter, &mockNotifier{}, srv.URL)

	res := svc.QueryTransaction(context.Background(), "VNP1")
	if res.Code != CodeSuccess {
		t.Fatalf("result code = %s, want 00", res.Code)
	}
	if res.Message != "Query successful" {
		t.Fatalf("result message = %q", res.Message)
	}
	if repo.payment.Status != domain.PaymentCompleted {
		t.Fatalf("payment status = %s, want Completed", repo.payment.Status)
	}
	if repo.payment.PaymentDate == nil {
		t.Fatal("payment date must be stamped on completion")
	}
	if len(billWriter.paidBills) != 1 {
		t.Fatal("bill must be marked paid when the poll completes the payment")
	}
}

func TestQueryTransaction_NeverDowngradesCompleted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vnp_ResponseCode":"02","vnp_Message":"Transaction failed"}`))
	}))
	defer srv.Close()

	paidAt := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, TransactionCode: "VNP1", Status: domain.PaymentCompleted, PaymentDate: &paidAt,
	}}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, &mockNotifier{}, srv.URL)

	res := svc.QueryTransaction(context.Background(), "VNP1")
	if res.Code != "02" {
		t.Fatalf("result code = %s, want 02", res.Code)
	}
	if repo.payment.Status != domain.PaymentCompleted {
		t.Fatalf("completed payment downgraded to %s", repo.payment.Status)
	}
	if !repo.payment.PaymentDate.Equal(paidAt) {
		t.Fatal("payment date must not change on a failed remote poll")
	}
}

func TestQueryTransaction_RemoteFailureFailsPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"vnp_ResponseCode":"24","vnp_Message":"Customer cancelled"}`))
	}))
	defer srv.Close()

	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, TransactionCode: "VNP1", Status: domain.PaymentPending,
	}}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, &mockNotifier{}, srv.URL)

	res := svc.QueryTransaction(context.Background(), "VNP1")
	if res.Code != "24" {
		t.Fatalf("result code = %s, want 24", res.Code)
	}
	if repo.payment.Status != domain.PaymentFailed {
		t.Fatalf("payment status = %s, want Failed", repo.payment.Status)
	}
}

func TestQueryTransaction_NetworkErrorLeavesRecordUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	repo := &mockPaymentRepo{payment: &domain.Payment{
		ID: 7, TransactionCode: "VNP1", Status: domain.PaymentPending,
	}}
	svc := newTestService(repo, &mockBillReader{}, &mockBillWriter{}, &mockNotifier{}, srv.URL)

	res := svc.QueryTransaction(context.Background(), "VNP1")
	if res.Code != CodeSystemError {
		t.Fatalf("result code = %s, want 99", res.Code)
	}
	if repo.payment.Status != domain.PaymentPending {
		t.Fatal("payment must not be mutated when the outbound call fails")
	}
	if repo.markCompletedCalls != 0 || repo.markFailedCalls != 0 {
		t.Fatal("store must not be touched when the outbound call fails")
	}
}
