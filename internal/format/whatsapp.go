package format

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	whatsAppBaseURL = "https://wa.me/"
	countryCode     = "62"

	// DefaultGreeting opens a chat when the buyer supplied no message.
	DefaultGreeting = "Halo, saya tertarik dengan layanan Anda yang ada di marketplace. Boleh minta info lebih lanjut?"
)

// WhatsAppOptions controls the optional Ref line appended to a message.
type WhatsAppOptions struct {
	IncludeRef bool
	UserID     string
	ProductID  string
}

// NormalizePhone converts a local Indonesian number to international form
// without the plus sign, e.g. "0812-3456" becomes "628123456".
func NormalizePhone(raw string) string {
	number := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, raw)
	number = strings.TrimPrefix(number, "+")

	switch {
	case strings.HasPrefix(number, "0"):
		number = countryCode + number[1:]
	case strings.HasPrefix(number, "8"):
		number = countryCode + number
	}
	return number
}

// WhatsAppMessage returns the chat text, with a "Ref:" line when requested
// and at least one reference id is known.
func WhatsAppMessage(msg string, opts WhatsAppOptions) string {
	if msg == "" {
		msg = DefaultGreeting
	}
	if !opts.IncludeRef {
		return msg
	}

	var refs []string
	if opts.UserID != "" {
		refs = append(refs, "user:"+opts.UserID)
	}
	if opts.ProductID != "" {
		refs = append(refs, "product:"+opts.ProductID)
	}
	if len(refs) == 0 {
		return msg
	}
	return msg + "\n\nRef: " + strings.Join(refs, "|")
}

// WhatsAppURL builds a wa.me deep link with a pre-filled message.
// The result depends only on its arguments.
func WhatsAppURL(phone, msg string, opts WhatsAppOptions) string {
	text := WhatsAppMessage(msg, opts)
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return whatsAppBaseURL + NormalizePhone(phone) + "?text=" + encoded
}
