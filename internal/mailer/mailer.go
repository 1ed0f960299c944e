// Package mailer is the SMTP transport under the email templates. It knows
// nothing about bills or tenants, only how to deliver one message.
package mailer

import "context"

type Service interface {
	Send(ctx context.Context, e Email) error
}

// Email is one outbound message. TextBody and HTMLBody may both be set, in
// which case the message is sent as multipart/alternative.
type Email struct {
	FromName string
	From     string
	To       []string

	Subject string

	TextBody string
	HTMLBody string
}
