package relay

import "strings"

const fence = "```"

// ExtractFenced returns the body of the first fenced code block in s,
// preferring a ```json-tagged block over a plain ``` one. When s contains no
// fence it is returned unchanged; an unterminated fence yields everything
// after the opener.
func ExtractFenced(s string) string {
	if i := strings.Index(s, fence+"json"); i >= 0 {
		return untilFence(s[i+len(fence+"json"):])
	}
	if i := strings.Index(s, fence); i >= 0 {
		return untilFence(s[i+len(fence):])
	}
	return s
}

func untilFence(s string) string {
	if j := strings.Index(s, fence); j >= 0 {
		return s[:j]
	}
	return s
}
