package gemini

import (
	"bufio"
	"encoding/json"
	"strings"
)

// ReadStream reads SSE lines from a scanner and sends decoded chunks to the
// returned channel. Lines that are not "data:" payloads, and payloads that do
// not decode as JSON, are skipped: a garbled chunk must not abort an
// otherwise healthy stream. A scanner error is delivered as a final chunk
// with Err set. The channel is closed when the stream ends.
func ReadStream(scanner *bufio.Scanner) <-chan StreamChunk {
	ch := make(chan StreamChunk, 16)
	go func() {
		defer close(ch)
		for scanner.Scan() {
			line := scanner.Text()
			rest, ok := strings.CutPrefix(line, "data:")
			if !ok {
				continue
			}
			payload := strings.TrimSpace(rest)
			if payload == "" {
				continue
			}
			var chunk StreamChunk
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				continue
			}
			ch <- chunk
		}
		if err := scanner.Err(); err != nil {
			ch <- StreamChunk{Err: err}
		}
	}()
	return ch
}
