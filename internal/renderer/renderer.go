// Package renderer turns parsed API elements into HTML reference markup.
//
// Every element is rendered through one of four shapes chosen by its kind.
// Class-like elements list their members in titled groups, function-like
// elements list parameters and the return value, parameter-like elements
// list object properties, and property-like elements show a datatype.
package renderer

import (
	"html"
	"strings"

	"github.com/example/apidoc/internal/apiparser"
	"github.com/example/apidoc/internal/markdown"
)

type shape int

const (
	shapeClass shape = iota
	shapeFunction
	shapeParameter
	shapeProperty
)

var shapes = map[apiparser.Kind]shape{
	apiparser.KindClass:       shapeClass,
	apiparser.KindConstructor: shapeFunction,
	apiparser.KindMethod:      shapeFunction,
	apiparser.KindFunction:    shapeFunction,
	apiparser.KindParam:       shapeParameter,
	apiparser.KindEvent:       shapeParameter,
	apiparser.KindReturns:     shapeParameter,
	apiparser.KindProperty:    shapeProperty,
}

// level holds the tags used for group titles and component names.
type level struct {
	group string
	name  string
}

var (
	topLevel    = level{group: "h3", name: "h4"}
	nestedLevel = level{group: "div", name: "div"}
)

// Renderer renders modules and elements. It holds no per-render state and
// may be shared.
type Renderer struct {
	md markdown.Converter
}

// New returns a renderer that converts descriptions with md.
func New(md markdown.Converter) *Renderer {
	return &Renderer{md: md}
}

// RenderModule renders m as a single module_api_docs div. moduleName is
// used for the page heading and the div id.
func (r *Renderer) RenderModule(m *apiparser.Module, moduleName string) (string, error) {
	desc, err := r.md.Convert(m.Desc)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<h1>" + html.EscapeString(moduleName) + "</h1>")
	b.WriteString(wrap(desc, ClassModuleDescription, "div"))
	if m.HasAPI() {
		ref, err := r.apiReference(m)
		if err != nil {
			return "", err
		}
		b.WriteString(ref)
	}
	id := html.EscapeString(moduleName) + IDModuleAPIDocs
	return indent(wrapID(b.String(), ClassModuleAPIDocs, id)), nil
}

// RenderElement renders a single element as an api_component div. A
// non-empty owner qualifies the names of methods, properties and events.
func (r *Renderer) RenderElement(el *apiparser.Element, owner string) (string, error) {
	s, err := r.component(el, owner, nestedLevel.name)
	if err != nil {
		return "", err
	}
	return indent(s), nil
}

// RenderPage renders m as a standalone HTML document.
func (r *Renderer) RenderPage(m *apiparser.Module, moduleName string) (string, error) {
	div, err := r.RenderModule(m, moduleName)
	if err != nil {
		return "", err
	}
	replacer := strings.NewReplacer(
		"{{.Title}}", html.EscapeString(moduleName),
		"{{.Content}}", div,
	)
	return replacer.Replace(pageTemplate), nil
}

func (r *Renderer) apiReference(m *apiparser.Module) (string, error) {
	var b strings.Builder
	b.WriteString(wrapInline("API Reference", ClassAPIHeader, "h2"))
	for _, g := range []struct {
		title    string
		elements []*apiparser.Element
	}{
		{GroupClasses, m.Classes},
		{GroupFunctions, m.Functions},
		{GroupProperties, m.Properties},
		{GroupEvents, m.Events},
	} {
		s, err := r.group(g.title, g.elements, "", topLevel)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return wrap(b.String(), ClassAPIReference, "div"), nil
}

func (r *Renderer) group(title string, elements []*apiparser.Element, owner string, lvl level) (string, error) {
	if len(elements) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString(wrapInline(title, ClassAPIHeader, lvl.group))
	for _, el := range elements {
		s, err := r.component(el, owner, lvl.name)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return wrap(b.String(), ClassComponentGroup, "div"), nil
}

func (r *Renderer) component(el *apiparser.Element, owner, nameTag string) (string, error) {
	sh := shapes[el.Kind]
	desc, err := r.md.Convert(el.Description)
	if err != nil {
		return "", err
	}
	body, err := r.contents(el, sh)
	if err != nil {
		return "", err
	}
	name := wrapInline(displayName(el, owner, sh), ClassAPIName, nameTag)
	return wrap(name+desc+body, ClassComponent, "div"), nil
}

func displayName(el *apiparser.Element, owner string, sh shape) string {
	switch sh {
	case shapeClass:
		return html.EscapeString(el.Name)
	case shapeFunction:
		sig := el.Signature
		if sig == "" {
			sig = el.Name + "()"
		}
		if el.Kind == apiparser.KindConstructor {
			return html.EscapeString(sig)
		}
		return html.EscapeString(qualify(owner, sig))
	}
	name := el.Name
	if el.Optional {
		if el.Default != "" {
			name += "=" + el.Default
		}
		name = "[" + name + "]"
	}
	name = html.EscapeString(qualify(owner, name))
	if el.Datatype != "" {
		name += " : " + span(html.EscapeString(el.Datatype), ClassDatatype)
	}
	return name
}

func qualify(owner, name string) string {
	if owner == "" {
		return name
	}
	return owner + "." + name
}

func (r *Renderer) contents(el *apiparser.Element, sh shape) (string, error) {
	switch sh {
	case shapeFunction:
		params, err := r.parameterSet(el.Params)
		if err != nil {
			return "", err
		}
		ret, err := r.returns(el.Returns)
		if err != nil {
			return "", err
		}
		return params + ret, nil
	case shapeParameter:
		params, err := r.parameterSet(el.Params)
		if err != nil {
			return "", err
		}
		props, err := r.components(el.Properties)
		if err != nil {
			return "", err
		}
		return params + props, nil
	default:
		return r.members(el)
	}
}

// members renders the constructor, methods, properties and events of a
// class-like or property-like element, qualified with its name.
func (r *Renderer) members(el *apiparser.Element) (string, error) {
	var ctor []*apiparser.Element
	if el.Constructor != nil {
		ctor = []*apiparser.Element{el.Constructor}
	}
	var b strings.Builder
	for _, g := range []struct {
		title    string
		elements []*apiparser.Element
	}{
		{GroupConstructors, ctor},
		{GroupMethods, el.Functions},
		{GroupProperties, el.Properties},
		{GroupEvents, el.Events},
	} {
		s, err := r.group(g.title, g.elements, el.Name, nestedLevel)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func (r *Renderer) parameterSet(params []*apiparser.Element) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	s, err := r.components(params)
	if err != nil {
		return "", err
	}
	return wrap(s, ClassParameterSet, "div"), nil
}

func (r *Renderer) returns(ret *apiparser.Element) (string, error) {
	if ret == nil {
		return "", nil
	}
	text := "Returns"
	if ret.Datatype != "" {
		text += ": " + span(html.EscapeString(ret.Datatype), ClassDatatype)
	}
	if ret.Description != "" {
		desc, err := r.md.Convert(ret.Description)
		if err != nil {
			return "", err
		}
		text += desc
	}
	props, err := r.components(ret.Properties)
	if err != nil {
		return "", err
	}
	return wrap(text+props, ClassReturns, "div"), nil
}

// components renders descriptors without a group wrapper or owner.
func (r *Renderer) components(elements []*apiparser.Element) (string, error) {
	var b strings.Builder
	for _, el := range elements {
		s, err := r.component(el, "", nestedLevel.name)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
{{.Content}}</body>
</html>
`
