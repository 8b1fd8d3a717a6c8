package apiparser

import (
	"fmt"
	"strings"
)

// workingSet holds the children collected while an element body is parsed.
type workingSet struct {
	constructor *Element
	functions   []*Element
	properties  []*Element
	events      []*Element
	params      []*Element

	// ownProps are @prop descriptors attached to the element itself rather
	// than to one of its parameters or its return value.
	ownProps []*Element
}

func (ws *workingSet) add(parent, child *Element) error {
	switch child.Kind {
	case KindConstructor:
		if ws.constructor != nil {
			return parseErrorf(ErrDuplicateConstructor, child.LineNumber,
				"%s %q already has a constructor (line %d)", parent.Kind, parent.Name, ws.constructor.LineNumber)
		}
		ws.constructor = child
	case KindMethod, KindFunction:
		ws.functions = append(ws.functions, child)
	case KindProperty:
		ws.properties = append(ws.properties, child)
	case KindEvent:
		ws.events = append(ws.events, child)
	default:
		return parseErrorf(ErrMisplacedElement, child.LineNumber,
			"%s %q cannot be nested inside %s %q", child.Kind, child.Name, parent.Kind, parent.Name)
	}
	return nil
}

// assemble copies the working set onto el and derives its signature. Only
// non-empty children are set. Calling it twice with the same working set
// yields the same element.
func assemble(el *Element, ws *workingSet) {
	if el.Kind.IsCallable() {
		el.Signature = signature(el.Name, ws.params)
	}
	if len(ws.params) > 0 {
		el.Params = ws.params
	}
	if props := concat(ws.ownProps, ws.properties); len(props) > 0 {
		el.Properties = props
	}
	if ws.constructor != nil {
		el.Constructor = ws.constructor
	}
	if len(ws.functions) > 0 {
		el.Functions = ws.functions
	}
	if len(ws.events) > 0 {
		el.Events = ws.events
	}
}

func signature(name string, params []*Element) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(names, ", "))
}

func concat(a, b []*Element) []*Element {
	if len(a) == 0 {
		return b
	}
	out := make([]*Element, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
