package format

import "strings"

// LineKind classifies an emitted line.
type LineKind uint8

const (
	KindCode LineKind = iota
	KindLineComment
	KindBlockComment
	KindBlank
)

func (k LineKind) String() string {
	switch k {
	case KindLineComment:
		return "line-comment"
	case KindBlockComment:
		return "block-comment"
	case KindBlank:
		return "blank"
	default:
		return "code"
	}
}

// commentTracker remembers whether the scan is inside a /* */ block.
type commentTracker struct {
	inBlock bool
}

// classify inspects a trimmed line. A block ends on the first line containing */.
func (c *commentTracker) classify(line string) (kind LineKind, continuation bool) {
	if c.inBlock {
		if strings.Contains(line, "*/") {
			c.inBlock = false
		}
		return KindBlockComment, true
	}
	if strings.HasPrefix(line, "/*") {
		if !strings.Contains(line[2:], "*/") {
			c.inBlock = true
		}
		return KindBlockComment, false
	}
	if strings.HasPrefix(line, "//") {
		return KindLineComment, false
	}
	return KindCode, false
}

// splitTrailing separates code from a comment that starts later on the same
// line. An unclosed trailing /* opens a block.
func (c *commentTracker) splitTrailing(line string) (code, comment string) {
	cut := -1
	codeBytes(line, func(i int) bool {
		if line[i] == '/' && i+1 < len(line) && (line[i+1] == '/' || line[i+1] == '*') {
			cut = i
			return false
		}
		return true
	})
	if cut < 0 {
		return line, ""
	}
	code = strings.TrimSpace(line[:cut])
	comment = line[cut:]
	if strings.HasPrefix(comment, "/*") && !strings.Contains(comment[2:], "*/") {
		c.inBlock = true
	}
	return code, comment
}
