package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"boardinghouse/internal/config"
	"boardinghouse/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const transactionCodePrefix = "VNP"

type Service struct {
	payments   paymentRepo
	bills      billReader
	billWriter billWriter
	notifier   resultNotifier
	httpClient *http.Client
	loggerf    func(format string, args ...interface{})

	cfg    config.VNPayConfig
	signer signer
	now    func() time.Time
}

func NewService(
	payments paymentRepo,
	bills billReader,
	billWriter billWriter,
	notifier resultNotifier,
	httpClient *http.Client,
	cfg config.VNPayConfig,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Service{
		payments:   payments,
		bills:      bills,
		billWriter: billWriter,
		notifier:   notifier,
		httpClient: httpClient,
		loggerf:    loggerf,
		cfg:        cfg,
		signer:     newSigner(cfg.HashSecret),
		now:        time.Now,
	}
}

// newTransactionCode builds a reference unique under concurrent checkouts:
// fixed prefix, second-resolution timestamp, 8 random hex characters.
func newTransactionCode(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return transactionCodePrefix + now.Format(timestampLayout) + suffix
}

// CreatePayment persists a Pending payment for the bill and returns the
// signed gateway redirect URL together with the generated transaction code.
func (s *Service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error) {
	if s.cfg.TmnCode == "" || s.cfg.HashSecret == "" {
		return nil, ErrNotConfigured
	}

	bill, err := s.bills.GetByID(ctx, req.BillID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("bill check failed: %w", err)
	}
	// Bills are only payable by their own tenant; existence of foreign
	// bills is not revealed.
	if bill.TenantID != req.UserID {
		return nil, ErrBillNotFound
	}
	if bill.Status == domain.BillPaid {
		return nil, ErrBillAlreadyPaid
	}

	now := s.now()
	code := newTransactionCode(now)

	p := &domain.Payment{
		BillID:          req.BillID,
		UserID:          req.UserID,
		ContractID:      req.ContractID,
		Method:          domain.MethodOnline,
		TotalAmount:     req.TotalAmount,
		Status:          domain.PaymentPending,
		TransactionCode: code,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment failed: %w", err)
	}

	params := payParams{
		TmnCode:    s.cfg.TmnCode,
		TxnRef:     code,
		OrderInfo:  fmt.Sprintf("Thanh toan hoa don tien phong %d", bill.RoomID),
		Amount:     req.TotalAmount,
		ReturnURL:  s.cfg.ReturnURL,
		IPAddr:     req.IPAddress,
		CreateDate: now,
	}.values()

	signature := s.signer.Sign(params)
	paymentURL := s.cfg.PayURL + "?" + canonicalQuery(params) + "&" + secureHashField + "=" + signature

	s.loggerf("level=info msg=vnpay payment created txn_ref=%s bill_id=%d amount=%d", code, req.BillID, req.TotalAmount)

	return &CreatePaymentResponse{
		PaymentURL:      paymentURL,
		TransactionCode: code,
	}, nil
}

// ProcessReturn verifies and applies a gateway return callback. The result is
// always structured; signature mismatches leave the store untouched and
// replayed callbacks for a completed payment short-circuit idempotently.
func (s *Service) ProcessReturn(ctx context.Context, raw map[string]string) Result {
	params := make(map[string]string, len(raw))
	for k, v := range raw {
		params[k] = v
	}
	providedHash := params[secureHashField]
	delete(params, secureHashField)
	delete(params, secureHashTypeField)

	if providedHash == "" || !s.signer.Verify(params, providedHash) {
		s.loggerf("level=warn msg=vnpay return signature mismatch txn_ref=%s", params["vnp_TxnRef"])
		return Result{Code: CodeInvalidSignature, Message: "Invalid signature"}
	}

	txnRef := params["vnp_TxnRef"]
	responseCode := params["vnp_ResponseCode"]

	p, err := s.payments.GetByTransactionCode(ctx, txnRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{Code: CodeNotFound, Message: "Transaction not found"}
		}
		s.loggerf("level=error msg=vnpay return lookup failed txn_ref=%s err=%v", txnRef, err)
		return Result{Code: CodeSystemError, Message: "System error"}
	}

	if p.Status == domain.PaymentCompleted {
		s.loggerf("level=info msg=vnpay return replay for completed payment txn_ref=%s", txnRef)
		return Result{Code: CodeSuccess, Message: "Transaction already processed", PaymentID: p.ID}
	}

	if responseCode == CodeSuccess {
		if err := s.complete(ctx, p); err != nil {
			s.loggerf("level=error msg=vnpay return completion failed txn_ref=%s err=%v", txnRef, err)
			return Result{Code: CodeSystemError, Message: "System error"}
		}
		return Result{Code: CodeSuccess, Message: "Transaction successful", PaymentID: p.ID}
	}

	if err := s.fail(ctx, p); err != nil {
		s.loggerf("level=error msg=vnpay return fail-mark failed txn_ref=%s err=%v", txnRef, err)
		return Result{Code: CodeSystemError, Message: "System error"}
	}
	return Result{Code: responseCode, Message: "Transaction failed", PaymentID: p.ID}
}

// QueryTransaction asks the gateway for the transaction's current state and
// reconciles the local payment: remote success always wins, remote failure is
// applied only while the payment has not completed. This is the recovery path
// for lost or never-delivered callbacks.
func (s *Service) QueryTransaction(ctx context.Context, transactionCode string) Result {
	p, err := s.payments.GetByTransactionCode(ctx, transactionCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{Code: CodeNotFound, Message: "Transaction not found"}
		}
		s.loggerf("level=error msg=vnpay query lookup failed txn_ref=%s err=%v", transactionCode, err)
		return Result{Code: CodeSystemError, Message: "System error"}
	}

	now := s.now()
	params := queryParams{
		TmnCode:         s.cfg.TmnCode,
		TxnRef:          transactionCode,
		OrderInfo:       fmt.Sprintf("Kiem tra giao dich %s", transactionCode),
		TransactionDate: now,
		CreateDate:      now,
		IPAddr:          "127.0.0.1",
	}.values()
	signature := s.signer.Sign(params)

	remote, err := s.postQuery(ctx, params, signature)
	if err != nil {
		s.loggerf("level=error msg=vnpay query call failed txn_ref=%s err=%v", transactionCode, err)
		return Result{Code: CodeSystemError, Message: "System error"}
	}

	if remote.ResponseCode == CodeSuccess {
		if err := s.complete(ctx, p); err != nil {
			s.loggerf("level=error msg=vnpay query completion failed txn_ref=%s err=%v", transactionCode, err)
			return Result{Code: CodeSystemError, Message: "System error"}
		}
	} else if p.Status != domain.PaymentCompleted {
		if err := s.fail(ctx, p); err != nil {
			s.loggerf("level=error msg=vnpay query fail-mark failed txn_ref=%s err=%v", transactionCode, err)
			return Result{Code: CodeSystemError, Message: "System error"}
		}
	}

	return Result{Code: remote.ResponseCode, Message: remote.Message, PaymentID: p.ID}
}

type queryResponse struct {
	ResponseCode string `json:"vnp_ResponseCode"`
	Message      string `json:"vnp_Message"`
}

func (s *Service) postQuery(ctx context.Context, params map[string]string, signature string) (*queryResponse, error) {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set(secureHashField, signature)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vnpay query endpoint returned status %d", resp.StatusCode)
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode vnpay query response: %w", err)
	}
	return &out, nil
}

// complete flips the payment to Completed together with the payment date,
// marks the bill paid, and fans out notifications. The repository guard makes
// the flip idempotent, so the racing callback/poll pair described in the
// concurrency model both land on the same terminal row.
func (s *Service) complete(ctx context.Context, p *domain.Payment) error {
	changed, err := s.payments.MarkCompleted(ctx, p.TransactionCode, s.now())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if s.billWriter != nil {
		if err := s.billWriter.MarkPaid(ctx, p.BillID, s.now()); err != nil {
			s.loggerf("level=error msg=failed to mark bill paid bill_id=%d err=%v", p.BillID, err)
		}
	}
	if s.notifier != nil {
		s.notifier.PaymentCompleted(ctx, p)
	}
	return nil
}

// fail transitions a pending payment to Failed. Replayed failure callbacks
// find a terminal row and are absorbed without notifying again.
func (s *Service) fail(ctx context.Context, p *domain.Payment) error {
	if p.Status.Terminal() {
		return nil
	}
	changed, err := s.payments.MarkFailedIfPending(ctx, p.TransactionCode)
	if err != nil {
		return err
	}
	if changed && s.notifier != nil {
		s.notifier.PaymentFailed(ctx, p)
	}
	return nil
}
