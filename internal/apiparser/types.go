// Package apiparser parses the <api> annotation dialect into a tree of API
// elements.
package apiparser

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Kind identifies what an Element documents.
type Kind string

// Element kinds. Param and Returns are descriptor kinds that only appear under
// a function-like element; a @prop descriptor has KindProperty.
const (
	KindClass       Kind = "class"
	KindConstructor Kind = "constructor"
	KindMethod      Kind = "method"
	KindFunction    Kind = "function"
	KindProperty    Kind = "property"
	KindEvent       Kind = "event"
	KindParam       Kind = "param"
	KindReturns     Kind = "returns"
)

// elementKinds are the kinds that may follow an opening <api> tag.
var elementKinds = map[string]Kind{
	"class":       KindClass,
	"constructor": KindConstructor,
	"method":      KindMethod,
	"function":    KindFunction,
	"property":    KindProperty,
	"event":       KindEvent,
}

// IsCallable reports whether elements of this kind carry a signature.
func (k Kind) IsCallable() bool {
	return k == KindConstructor || k == KindMethod || k == KindFunction
}

// Element is one documented construct or one descriptor (parameter, return
// value, object property) belonging to it.
type Element struct {
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Kind        Kind       `json:"kind" yaml:"kind"`
	Description string     `json:"description" yaml:"description"`
	LineNumber  int        `json:"line_number" yaml:"line_number"`
	Datatype    string     `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Optional    bool       `json:"optional,omitempty" yaml:"optional,omitempty"`
	Default     string     `json:"default,omitempty" yaml:"default,omitempty"`
	Signature   string     `json:"signature,omitempty" yaml:"signature,omitempty"`
	Params      []*Element `json:"params,omitempty" yaml:"params,omitempty"`
	Returns     *Element   `json:"returns,omitempty" yaml:"returns,omitempty"`
	Constructor *Element   `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Functions   []*Element `json:"functions,omitempty" yaml:"functions,omitempty"`
	Properties  []*Element `json:"properties,omitempty" yaml:"properties,omitempty"`
	Events      []*Element `json:"events,omitempty" yaml:"events,omitempty"`
}

// Module is the result of parsing one annotation source.
type Module struct {
	Desc       string     `json:"desc" yaml:"desc"`
	Classes    []*Element `json:"classes" yaml:"classes"`
	Functions  []*Element `json:"functions" yaml:"functions"`
	Properties []*Element `json:"properties" yaml:"properties"`
	Events     []*Element `json:"events" yaml:"events"`
}

// NewModule returns a module with empty, non-nil element lists so that it
// always serializes with every key present.
func NewModule() *Module {
	return &Module{
		Classes:    []*Element{},
		Functions:  []*Element{},
		Properties: []*Element{},
		Events:     []*Element{},
	}
}

// HasAPI reports whether the module documents any API elements.
func (m *Module) HasAPI() bool {
	return len(m.Classes) > 0 || len(m.Functions) > 0 || len(m.Properties) > 0 || len(m.Events) > 0
}

// JSON encodes the module as indented JSON. HTML characters are not escaped
// so that descriptions stay readable.
func (m *Module) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML encodes the module as YAML with the same keys as JSON.
func (m *Module) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
