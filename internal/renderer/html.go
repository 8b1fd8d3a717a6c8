package renderer

import "strings"

func wrapID(text, class, id string) string {
	return "\n<div id=\"" + id + "\" class=\"" + class + "\">\n" + text + "\n</div>\n"
}

func wrap(text, class, tag string) string {
	return "\n<" + tag + " class=\"" + class + "\">" + text + "\n</" + tag + ">\n"
}

func wrapInline(text, class, tag string) string {
	return "\n<" + tag + " class=\"" + class + "\">" + text + "</" + tag + ">\n"
}

func span(text, class string) string {
	return "<span class=\"" + class + "\">" + text + "</span>"
}

// indent prefixes every line with two spaces per open <div>. Only lines that
// begin with a div tag change the depth. Lines inside a <pre> element are
// written unchanged.
func indent(text string) string {
	const step = "  "
	var b strings.Builder
	b.Grow(len(text))
	depth := 0
	inPre := false
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if inPre {
			b.WriteString(line)
			if strings.Contains(line, "</pre>") {
				inPre = opensPre(line)
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "<div"):
			b.WriteString(strings.Repeat(step, depth))
			b.WriteString(line)
			if !strings.Contains(line, "</div>") {
				depth++
			}
		default:
			if strings.HasPrefix(line, "</div>") && depth > 0 {
				depth--
			}
			b.WriteString(strings.Repeat(step, depth))
			b.WriteString(line)
		}
		inPre = opensPre(line)
	}
	return b.String()
}

// opensPre reports whether line leaves a <pre> element open.
func opensPre(line string) bool {
	i := strings.LastIndex(line, "<pre")
	if i < 0 || strings.Contains(line[i:], "</pre>") {
		return false
	}
	rest := line[i+len("<pre"):]
	return rest != "" && (rest[0] == '>' || rest[0] == ' ' || rest[0] == '\t')
}
