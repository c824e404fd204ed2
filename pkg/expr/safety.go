package expr

import "regexp"

// Structural limits enforced before parsing.
const (
	// MaxLength is the maximum accepted expression length in bytes.
	MaxLength = 1000
	// MaxDepth is the maximum accepted parenthesis nesting depth.
	MaxDepth = 10
)

// denyPattern pairs a compiled pattern with the description reported to
// callers. Matching is case-insensitive.
type denyPattern struct {
	re   *regexp.Regexp
	desc string
}

// The denylist targets hostile textual shapes: name-mangled identifiers,
// module imports, code-execution primitives, file/stream access, and
// interactive input. The parser's closed AST is the real barrier; this
// pre-check exists to reject obviously hostile input early with a specific
// message.
var denyPatterns = []denyPattern{
	{regexp.MustCompile(`(?i)__\w+__`), "double-underscore identifier"},
	{regexp.MustCompile(`(?i)\bimport\s`), "import statement"},
	{regexp.MustCompile(`(?i)\bexec\s*\(`), "exec call"},
	{regexp.MustCompile(`(?i)\beval\s*\(`), "eval call"},
	{regexp.MustCompile(`(?i)\bcompile\s*\(`), "compile call"},
	{regexp.MustCompile(`(?i)\bopen\s*\(`), "open call"},
	{regexp.MustCompile(`(?i)\bfile\s*\(`), "file call"},
	{regexp.MustCompile(`(?i)\binput\s*\(`), "input call"},
	{regexp.MustCompile(`(?i)\braw_input\s*\(`), "raw_input call"},
}

// MatchDenylist returns the description of the first denylisted pattern the
// text matches, or "" if none match.
func MatchDenylist(text string) string {
	for _, p := range denyPatterns {
		if p.re.MatchString(text) {
			return p.desc
		}
	}
	return ""
}

// DenylistMatches returns the descriptions of every denylisted pattern the
// text matches, in denylist order. Used by safety reporting, which wants
// all findings rather than the first.
func DenylistMatches(text string) []string {
	var matches []string
	for _, p := range denyPatterns {
		if p.re.MatchString(text) {
			matches = append(matches, p.desc)
		}
	}
	return matches
}

// NestingDepth returns the maximum open-parenthesis depth of the text,
// scanning left to right. Unbalanced input still yields the maximum depth
// reached; balance itself is the parser's concern.
func NestingDepth(text string) int {
	depth, maxDepth := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case ')':
			depth--
		}
	}
	return maxDepth
}

// precheck runs the fail-closed gates that precede structural parsing:
// length, nesting depth, and the pattern denylist.
func precheck(text string) error {
	if len(text) > MaxLength {
		return &TooLongError{Length: len(text), Limit: MaxLength}
	}
	if d := NestingDepth(text); d > MaxDepth {
		return &TooDeepError{Depth: d, Limit: MaxDepth}
	}
	if desc := MatchDenylist(text); desc != "" {
		return &UnsafePatternError{Pattern: desc}
	}
	return nil
}
