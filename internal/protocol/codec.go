// Package protocol encodes and decodes the file-modification markup the
// assistant embeds in free-form response text.
//
// The wire format is a repeatable block with fixed tag names and nesting:
//
//	<FILE_MODIFICATION>
//	<FILE_PATH>/absolute/path</FILE_PATH>
//	<FILE_CONTENT>
//	...full file text...
//	</FILE_CONTENT>
//	</FILE_MODIFICATION>
//
// Decoding is implemented as an explicit scanner over the delimiter pairs
// rather than one monolithic regular expression, so the behavior on malformed
// input (leave the fragment untouched, keep scanning) is easy to reason about
// and test in isolation.
package protocol

import "strings"

const (
	openBlock  = "<FILE_MODIFICATION>"
	closeBlock = "</FILE_MODIFICATION>"

	openPath  = "<FILE_PATH>"
	closePath = "</FILE_PATH>"

	openContent  = "<FILE_CONTENT>"
	closeContent = "</FILE_CONTENT>"
)

// ModificationRecord is one decoded (path, content) pair: the intended full
// replacement content for one file. Records are transient; they are consumed
// by the applier immediately and never persisted.
type ModificationRecord struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Decode splits raw assistant text into the user-visible display text and the
// ordered sequence of modification records embedded in it.
//
// Every well-formed block is removed from the display text; records appear in
// the order their blocks occur in the source. A malformed block (missing or
// out-of-order inner tags, unterminated content) yields no record and is left
// in the display text verbatim. Decode never fails - the worst case is zero
// records and the input returned trimmed.
func Decode(raw string) (string, []ModificationRecord) {
	var (
		records []ModificationRecord
		display strings.Builder
	)

	rest := raw
	for {
		i := strings.Index(rest, openBlock)
		if i < 0 {
			display.WriteString(rest)
			break
		}

		rec, consumed, ok := scanBlock(rest[i:])
		if !ok {
			// Malformed block: emit the open tag verbatim and resume
			// scanning right after it, so a later well-formed block is
			// still found.
			display.WriteString(rest[:i+len(openBlock)])
			rest = rest[i+len(openBlock):]
			continue
		}

		display.WriteString(rest[:i])
		records = append(records, rec)
		rest = rest[i+consumed:]
	}

	return strings.TrimSpace(display.String()), records
}

// Encode renders rec as one well-formed modification block. It is the inverse
// of Decode up to the whitespace trimming Decode applies to path and content.
func Encode(rec ModificationRecord) string {
	var b strings.Builder
	b.WriteString(openBlock)
	b.WriteString("\n")
	b.WriteString(openPath)
	b.WriteString(rec.Path)
	b.WriteString(closePath)
	b.WriteString("\n")
	b.WriteString(openContent)
	b.WriteString("\n")
	b.WriteString(rec.Content)
	b.WriteString("\n")
	b.WriteString(closeContent)
	b.WriteString("\n")
	b.WriteString(closeBlock)
	return b.String()
}

// scanBlock reads one modification block from the start of s, which must begin
// with the block open tag. It returns the decoded record and the number of
// bytes consumed.
func scanBlock(s string) (ModificationRecord, int, bool) {
	cur := len(openBlock)

	path, n, ok := scanDelimited(s[cur:], openPath, closePath)
	if !ok {
		return ModificationRecord{}, 0, false
	}
	cur += n

	content, n, ok := scanDelimited(s[cur:], openContent, closeContent)
	if !ok {
		return ModificationRecord{}, 0, false
	}
	cur += n

	// A body that swallowed the next block's open tag means this block was
	// unterminated and the scan ran into its neighbor. Reject it; the
	// neighbor is decoded on its own once scanning resumes.
	if strings.Contains(path, openBlock) || strings.Contains(content, openBlock) {
		return ModificationRecord{}, 0, false
	}

	// Only whitespace may separate the content close tag from the block
	// close tag; anything else means the block is malformed.
	tail := s[cur:]
	unpadded := strings.TrimLeft(tail, " \t\r\n")
	if !strings.HasPrefix(unpadded, closeBlock) {
		return ModificationRecord{}, 0, false
	}
	cur += len(tail) - len(unpadded) + len(closeBlock)

	rec := ModificationRecord{
		Path:    strings.TrimSpace(path),
		Content: strings.TrimSpace(content),
	}
	return rec, cur, true
}

// scanDelimited expects open after optional whitespace and returns the body up
// to the nearest close tag. The close tag is the sole terminator, so the body
// may contain newlines and angle-bracket sequences, but a match can never
// reach across a following block's close tag.
func scanDelimited(s, open, close string) (string, int, bool) {
	unpadded := strings.TrimLeft(s, " \t\r\n")
	if !strings.HasPrefix(unpadded, open) {
		return "", 0, false
	}

	bodyStart := (len(s) - len(unpadded)) + len(open)
	end := strings.Index(s[bodyStart:], close)
	if end < 0 {
		return "", 0, false
	}

	return s[bodyStart : bodyStart+end], bodyStart + end + len(close), true
}
