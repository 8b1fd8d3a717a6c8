package apiparser

import "strings"

// ParseModule parses a whole annotation source. Everything before the first
// line starting with <api is the module description. Each later <api line
// opens a top-level element; text between top-level elements is ignored.
func ParseModule(text string) (*Module, error) {
	lines := strings.Split(text, "\n")
	m := NewModule()

	first := len(lines)
	for i, l := range lines {
		if strings.HasPrefix(l, "<api") {
			first = i
			break
		}
	}
	m.Desc = strings.Join(lines[:first], "\n")
	if first > 0 && first < len(lines) {
		m.Desc += "\n"
	}

	for i := first; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], "<api") {
			continue
		}
		el, end, err := ParseElement(lines, i)
		if err != nil {
			return nil, err
		}
		if err := m.add(el); err != nil {
			return nil, err
		}
		i = end
	}
	return m, nil
}

func (m *Module) add(el *Element) error {
	switch el.Kind {
	case KindClass:
		m.Classes = append(m.Classes, el)
	case KindFunction, KindMethod:
		m.Functions = append(m.Functions, el)
	case KindProperty:
		m.Properties = append(m.Properties, el)
	case KindEvent:
		m.Events = append(m.Events, el)
	default:
		return parseErrorf(ErrMisplacedElement, el.LineNumber, "%s %q must be declared inside a class", el.Kind, el.Name)
	}
	return nil
}
