package dataurl

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		mime    string
		payload string
		ok      bool
	}{
		{"png", "data:image/png;base64,iVBORw0KGgo=", "image/png", "iVBORw0KGgo=", true},
		{"jpeg", "data:image/jpeg;base64,QUJD", "image/jpeg", "QUJD", true},
		{"no prefix", "image/png;base64,QUJD", "", "", false},
		{"not base64 encoding", "data:image/png;utf8,hello", "", "", false},
		{"empty mime", "data:;base64,QUJD", "", "", false},
		{"empty payload", "data:image/png;base64,", "", "", false},
		{"mime with extra parameter", "data:image/png;charset=x;base64,QUJD", "", "", false},
		{"plain text", "hello world", "", "", false},
		{"empty", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, payload, ok := Parse(tt.in)
			if ok != tt.ok || mime != tt.mime || payload != tt.payload {
				t.Errorf("Parse(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.in, mime, payload, ok, tt.mime, tt.payload, tt.ok)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	uri := Format("image/png", "aGVsbG8=")
	mime, payload, ok := Parse(uri)
	if !ok || mime != "image/png" || payload != "aGVsbG8=" {
		t.Errorf("round trip failed: got (%q, %q, %v)", mime, payload, ok)
	}
}
