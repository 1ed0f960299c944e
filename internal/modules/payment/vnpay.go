package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	vnpVersion    = "2.1.0"
	commandPay    = "pay"
	commandQuery  = "querydr"
	localeVN      = "vn"
	currencyVND   = "VND"
	orderTypeBill = "billpayment"

	// VNPay timestamps are second-resolution, yyyyMMddHHmmss.
	timestampLayout = "20060102150405"

	secureHashField     = "vnp_SecureHash"
	secureHashTypeField = "vnp_SecureHashType"
)

// signer implements the VNPay v2.1.0 signing scheme: HMAC-SHA512 over the
// canonical query string, lowercase hex digest. The gateway recomputes the
// same digest independently, so canonicalization must be bit-reproducible on
// both the signing and the verification path.
type signer struct {
	secret []byte
}

func newSigner(secret string) signer {
	return signer{secret: []byte(secret)}
}

// canonicalQuery serializes params as "k=v&k2=v2" with keys sorted in byte
// order and values left unescaped. Only truly empty values are dropped; "0"
// is meaningful and kept.
func canonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

func (s signer) Sign(params map[string]string) string {
	mac := hmac.New(sha512.New, s.secret)
	mac.Write([]byte(canonicalQuery(params)))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s signer) Verify(params map[string]string, providedHash string) bool {
	expected := s.Sign(params)
	return hmac.Equal([]byte(expected), []byte(providedHash))
}

// payParams is the typed parameter set for the "pay" command. values()
// applies the gateway conventions (amount x100, timestamp formatting) so the
// rest of the service never deals with raw string maps.
type payParams struct {
	TmnCode    string
	TxnRef     string
	OrderInfo  string
	Amount     int64 // VND, before the x100 scaling
	ReturnURL  string
	IPAddr     string
	CreateDate time.Time
}

func (p payParams) values() map[string]string {
	return map[string]string{
		"vnp_Version":    vnpVersion,
		"vnp_Command":    commandPay,
		"vnp_TmnCode":    p.TmnCode,
		"vnp_Locale":     localeVN,
		"vnp_CurrCode":   currencyVND,
		"vnp_TxnRef":     p.TxnRef,
		"vnp_OrderInfo":  p.OrderInfo,
		"vnp_OrderType":  orderTypeBill,
		"vnp_Amount":     strconv.FormatInt(p.Amount*100, 10),
		"vnp_ReturnUrl":  p.ReturnURL,
		"vnp_IpAddr":     p.IPAddr,
		"vnp_CreateDate": p.CreateDate.Format(timestampLayout),
	}
}

// queryParams is the typed parameter set for the "querydr" command.
type queryParams struct {
	TmnCode         string
	TxnRef          string
	OrderInfo       string
	TransactionDate time.Time
	CreateDate      time.Time
	IPAddr          string
}

func (p queryParams) values() map[string]string {
	return map[string]string{
		"vnp_Version":         vnpVersion,
		"vnp_Command":         commandQuery,
		"vnp_TmnCode":         p.TmnCode,
		"vnp_TxnRef":          p.TxnRef,
		"vnp_OrderInfo":       p.OrderInfo,
		"vnp_TransactionDate": p.TransactionDate.Format(timestampLayout),
		"vnp_CreateDate":      p.CreateDate.Format(timestampLayout),
		"vnp_IpAddr":          p.IPAddr,
	}
}
