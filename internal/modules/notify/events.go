package notify

import (
	"context"

	"boardinghouse/internal/domain"
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type billReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Bill, error)
}

type receiptMailer interface {
	SendBillIssued(ctx context.Context, to, name, roomNumber string, periodMonth, periodYear int, totalAmount int64) error
	SendPaymentReceipt(ctx context.Context, to, name, transactionCode string, totalAmount int64) error
}

// Events fans payment and billing outcomes out to WebSocket clients and
// email. Every method is best-effort: failures are logged, never returned,
// so a flaky mail server cannot break a payment flow.
type Events struct {
	hub     *Hub
	users   userReader
	bills   billReader
	mail    receiptMailer
	loggerf func(format string, args ...interface{})
}

func NewEvents(hub *Hub, users userReader, bills billReader, mail receiptMailer, loggerf func(format string, args ...interface{})) *Events {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Events{
		hub:     hub,
		users:   users,
		bills:   bills,
		mail:    mail,
		loggerf: loggerf,
	}
}

// BillIssued notifies the tenant that a new bill is due. The bill must
// carry its preloaded Room and Tenant associations.
func (e *Events) BillIssued(ctx context.Context, b *domain.Bill) {
	e.hub.SendToUser(b.TenantID, &Event{
		Type: EventBillIssued,
		Payload: map[string]interface{}{
			"bill_id":      b.ID,
			"room_id":      b.RoomID,
			"period_month": b.PeriodMonth,
			"period_year":  b.PeriodYear,
			"total_amount": b.TotalAmount,
		},
	})

	if b.Tenant == nil || e.mail == nil {
		return
	}
	roomNumber := ""
	if b.Room != nil {
		roomNumber = b.Room.RoomNumber
	}
	if err := e.mail.SendBillIssued(ctx, b.Tenant.Email, b.Tenant.Name, roomNumber, b.PeriodMonth, b.PeriodYear, b.TotalAmount); err != nil {
		e.loggerf("bill %d: issue email to %s failed: %v", b.ID, b.Tenant.Email, err)
	}
}

// PaymentCompleted pushes a success event to the payer and the bill's
// landlord, then mails a receipt to the payer.
func (e *Events) PaymentCompleted(ctx context.Context, p *domain.Payment) {
	event := &Event{
		Type: EventPaymentCompleted,
		Payload: map[string]interface{}{
			"payment_id":       p.ID,
			"bill_id":          p.BillID,
			"transaction_code": p.TransactionCode,
			"total_amount":     p.TotalAmount,
		},
	}
	e.hub.SendToUser(p.UserID, event)

	if e.bills != nil {
		if bill, err := e.bills.GetByID(ctx, p.BillID); err == nil && bill.LandlordID != p.UserID {
			e.hub.SendToUser(bill.LandlordID, event)
		}
	}

	if e.mail == nil {
		return
	}
	user, err := e.users.GetByID(ctx, p.UserID)
	if err != nil {
		e.loggerf("payment %s: payer %d lookup failed: %v", p.TransactionCode, p.UserID, err)
		return
	}
	if err := e.mail.SendPaymentReceipt(ctx, user.Email, user.Name, p.TransactionCode, p.TotalAmount); err != nil {
		e.loggerf("payment %s: receipt email to %s failed: %v", p.TransactionCode, user.Email, err)
	}
}

// PaymentFailed pushes a failure event to the payer. No email is sent for
// failed attempts; the user already saw the gateway's result page.
func (e *Events) PaymentFailed(ctx context.Context, p *domain.Payment) {
	e.hub.SendToUser(p.UserID, &Event{
		Type: EventPaymentFailed,
		Payload: map[string]interface{}{
			"payment_id":       p.ID,
			"bill_id":          p.BillID,
			"transaction_code": p.TransactionCode,
		},
	})
}
