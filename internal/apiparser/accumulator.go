package apiparser

import "strings"

// accumulator collects the description of one element or descriptor: the
// fragment that followed its directive plus any continuation lines.
type accumulator struct {
	target *Element
	first  string
	lines  []string
}

func newAccumulator(target *Element, first string) *accumulator {
	return &accumulator{target: target, first: first}
}

func (a *accumulator) add(line string) {
	a.lines = append(a.lines, line)
}

// finish stores the description on the target. It may be called more than
// once; each call rewrites the description from everything seen so far.
func (a *accumulator) finish() {
	var pieces []string
	if a.first != "" {
		pieces = append(pieces, a.first)
	}
	if len(a.lines) > 0 {
		pieces = append(pieces, dedent(a.lines))
	}
	a.target.Description = strings.Join(pieces, "\n")
}

// dedent removes the longest whitespace prefix shared by all non-blank lines
// and joins the result with newlines. Whitespace-only lines become empty and
// do not take part in the prefix computation.
func dedent(lines []string) string {
	out := make([]string, len(lines))
	margin := ""
	marginSet := false
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out[i] = l
		indent := l[:len(l)-len(strings.TrimLeft(l, " \t"))]
		if !marginSet {
			margin, marginSet = indent, true
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	for i, l := range out {
		out[i] = strings.TrimPrefix(l, margin)
	}
	return strings.Join(out, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
