package apiparser

import (
	"regexp"
	"strings"
)

var nameAttr = regexp.MustCompile(`name\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s>"']+))`)

// cursor is the shared read position of one parse. Only the parser frames of
// a single Parse call touch it.
type cursor struct {
	lines []string
	pos   int
}

func (c *cursor) line() string {
	return strings.TrimRight(c.lines[c.pos], "\r\n")
}

// frame is the state of one <api> element while its body is being read.
type frame struct {
	el  *Element
	ws  workingSet
	acc *accumulator

	// props is the pending run of @prop descriptors. It is flushed onto
	// holder whenever a @param, @returns or </api> closes the run.
	props  []*Element
	holder *Element
}

// ParseElement parses the element whose opening <api> tag is on line index
// start of lines. It returns the element and the index of its closing tag.
func ParseElement(lines []string, start int) (*Element, int, error) {
	if start < 0 || start >= len(lines) {
		return nil, 0, parseErrorf(ErrUnterminatedElement, start+1, "no opening <api> tag at line %d of %d", start+1, len(lines))
	}
	if !strings.HasPrefix(strings.TrimLeft(lines[start], " \t"), "<api") {
		return nil, 0, parseErrorf(ErrMalformedDirective, start+1, "expected an opening <api> tag, got %q", lines[start])
	}
	cur := &cursor{lines: lines, pos: start}
	el, err := parseElement(cur)
	if err != nil {
		return nil, 0, err
	}
	return el, cur.pos, nil
}

// parseElement leaves cur on the closing </api> line of the element.
func parseElement(cur *cursor) (*Element, error) {
	startLine := cur.pos + 1
	name, err := parseTitleLine(cur.line(), startLine)
	if err != nil {
		return nil, err
	}
	el := &Element{Name: name, LineNumber: startLine}
	cur.pos++

	for cur.pos < len(cur.lines) && strings.TrimSpace(cur.line()) == "" {
		cur.pos++
	}
	if cur.pos >= len(cur.lines) {
		return nil, parseErrorf(ErrUnterminatedElement, startLine, "closing </api> tag not found for %q", name)
	}

	f, err := startFrame(el, cur.line(), cur.pos+1)
	if err != nil {
		return nil, err
	}
	cur.pos++

	for ; cur.pos < len(cur.lines); cur.pos++ {
		line := cur.line()
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case isDescriptionLine(trimmed):
			f.acc.add(line)
		case strings.HasPrefix(trimmed, "<api"):
			f.acc.finish()
			nested, err := parseElement(cur)
			if err != nil {
				return nil, err
			}
			if err := f.ws.add(el, nested); err != nil {
				return nil, err
			}
		case strings.HasPrefix(trimmed, "</api"):
			f.acc.finish()
			f.closeProps()
			assemble(el, &f.ws)
			return el, nil
		default:
			f.acc.finish()
			if err := f.directive(line, cur.pos+1); err != nil {
				return nil, err
			}
		}
	}
	return nil, parseErrorf(ErrUnterminatedElement, startLine, "closing </api> tag not found for %q", name)
}

// startFrame reads the type directive that must follow the opening tag.
func startFrame(el *Element, line string, lineno int) (*frame, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "@") {
		return nil, parseErrorf(ErrMissingTypeDirective, lineno, "expected @class, @method or similar, got %q", line)
	}
	kind, ok := elementKinds[fields[0][1:]]
	if !ok {
		return nil, parseErrorf(ErrMissingTypeDirective, lineno, "%s does not name an element type", fields[0])
	}

	_, info, first, err := ParseTypeLine(line, lineno)
	if err != nil {
		return nil, err
	}
	el.Kind = kind
	if kind == KindProperty {
		el.Datatype = info.Datatype
	}
	return &frame{el: el, holder: el, acc: newAccumulator(el, first)}, nil
}

func (f *frame) directive(line string, lineno int) error {
	tag, info, desc, err := ParseTypeLine(line, lineno)
	if err != nil {
		return err
	}
	switch tag {
	case "prop":
		f.props = append(f.props, info)
	case "returns":
		f.closeProps()
		f.el.Returns = info
		f.holder = info
	case "param":
		f.closeProps()
		f.ws.params = append(f.ws.params, info)
		f.holder = info
	default:
		return parseErrorf(ErrUnknownDirective, lineno, "unknown '@' section header %s in %q", tag, line)
	}
	f.acc = newAccumulator(info, desc)
	return nil
}

func (f *frame) closeProps() {
	if len(f.props) == 0 {
		return
	}
	if f.holder == f.el {
		f.ws.ownProps = append(f.ws.ownProps, f.props...)
	} else {
		f.holder.Properties = append(f.holder.Properties, f.props...)
	}
	f.props = nil
}

func parseTitleLine(line string, lineno int) (string, error) {
	m := nameAttr.FindStringSubmatch(line)
	if m == nil {
		return "", parseErrorf(ErrMissingNameAttribute, lineno, "opening <api> tag must have a name attribute")
	}
	name := m[1] + m[2] + m[3]
	if name == "" {
		return "", parseErrorf(ErrMissingNameAttribute, lineno, "no value for name attribute found in opening <api> tag")
	}
	return name, nil
}

func isDescriptionLine(trimmed string) bool {
	return !strings.HasPrefix(trimmed, "@") &&
		!strings.HasPrefix(trimmed, "<api") &&
		!strings.HasPrefix(trimmed, "</api")
}
