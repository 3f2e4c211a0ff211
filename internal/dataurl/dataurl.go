// Package dataurl splits and builds base64 data URIs of the form
// "data:<mime>;base64,<payload>". Anything that does not match that shape is
// reported as not-a-data-URI rather than an error, since callers treat
// malformed image fields as absent.
package dataurl

import "strings"

// Parse extracts the MIME type and base64 payload from a data URI.
// ok is false when s does not match data:<mime>;base64,<payload> with a
// non-empty mime (no ';') and a non-empty payload.
func Parse(s string) (mime, payload string, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", "", false
	}
	mime, payload, found = strings.Cut(rest, ";base64,")
	if !found || mime == "" || payload == "" || strings.Contains(mime, ";") {
		return "", "", false
	}
	return mime, payload, true
}

// Format builds a data URI from a MIME type and base64 payload.
func Format(mime, payload string) string {
	return "data:" + mime + ";base64," + payload
}
