package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DoneEvent is the sentinel that terminates every outbound event stream.
const DoneEvent = "[DONE]"

// SetSSEHeaders sets the standard headers for a Server-Sent Events response.
func SetSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// WriteEvent marshals v and writes it as a single "data: ..." event.
func WriteEvent(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

// WriteRawEvent writes a pre-encoded event payload, e.g. the [DONE] sentinel.
func WriteRawEvent(w io.Writer, data string) error {
	_, err := fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

// FlushWriter wraps http.ResponseWriter with a Flush that is a no-op when the
// underlying writer does not implement http.Flusher.
type FlushWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func NewFlushWriter(w http.ResponseWriter) *FlushWriter {
	fw := &FlushWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		fw.flusher = f
	}
	return fw
}

func (fw *FlushWriter) Header() http.Header         { return fw.w.Header() }
func (fw *FlushWriter) WriteHeader(code int)        { fw.w.WriteHeader(code) }
func (fw *FlushWriter) Write(p []byte) (int, error) { return fw.w.Write(p) }
func (fw *FlushWriter) Flush() {
	if fw.flusher != nil {
		fw.flusher.Flush()
	}
}
