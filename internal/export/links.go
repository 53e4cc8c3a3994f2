package export

import (
	"net/url"
	"strings"
)

// encodeComponent percent-encodes s for a URI component, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// MailtoLink builds a mailto URL addressed to to.
func MailtoLink(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// WhatsAppLink builds a wa.me deep link opening a chat with phone and a
// pre-filled message. Non-digit characters of phone are ignored.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + encodeComponent(message)
}
