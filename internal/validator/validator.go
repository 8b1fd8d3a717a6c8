// Package validator checks module documents written by "apidoc parse" or
// by a site build with emit_json enabled.
package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var groupOrder = []string{"classes", "functions", "properties", "events"}

var moduleGroups = map[string]map[string]bool{
	"classes":    {"class": true},
	"functions":  {"function": true, "method": true},
	"properties": {"property": true},
	"events":     {"event": true},
}

var memberGroups = map[string]map[string]bool{
	"functions":  {"function": true, "method": true},
	"properties": {"property": true},
	"events":     {"event": true},
}

// ValidateFile validates the JSON or YAML module document in filename and
// writes a short report to w.
func ValidateFile(filename string, w io.Writer) error {
	data, err := os.ReadFile(filename) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := decode(data)
	if err != nil {
		return err
	}
	if err := ValidateModule(doc); err != nil {
		return err
	}

	for _, group := range groupOrder {
		items, _ := doc[group].([]interface{})
		fmt.Fprintf(w, "✓ Found %d %s\n", len(items), group)
	}
	fmt.Fprintln(w, "✓ Module document is valid")
	return nil
}

func decode(data []byte) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse file as JSON or YAML: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("empty document")
	}
	return doc, nil
}

// ValidateModule checks a decoded module document.
func ValidateModule(doc map[string]interface{}) error {
	if _, ok := doc["desc"].(string); !ok {
		return fmt.Errorf("missing or invalid 'desc' field")
	}
	for _, group := range groupOrder {
		items, ok := doc[group].([]interface{})
		if !ok {
			return fmt.Errorf("missing or invalid '%s' field", group)
		}
		for i, item := range items {
			if err := validateElement(item, moduleGroups[group]); err != nil {
				return fmt.Errorf("%s[%d]: %w", group, i, err)
			}
		}
	}
	return nil
}

func validateElement(v interface{}, kinds map[string]bool) error {
	el, ok := v.(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid element")
	}
	name, _ := el["name"].(string)
	if name == "" {
		return fmt.Errorf("missing 'name' field")
	}
	kind, _ := el["kind"].(string)
	if !kinds[kind] {
		return fmt.Errorf("%s: unexpected kind %q", name, kind)
	}
	if _, ok := el["line_number"].(float64); !ok {
		if _, ok := el["line_number"].(int); !ok {
			return fmt.Errorf("%s: missing 'line_number' field", name)
		}
	}

	switch kind {
	case "property":
		if dt, _ := el["datatype"].(string); dt == "" {
			return fmt.Errorf("%s: property without 'datatype'", name)
		}
	case "function", "method", "constructor":
		if err := validateCallable(name, el); err != nil {
			return err
		}
	case "class":
		if ctor, ok := el["constructor"]; ok {
			if err := validateElement(ctor, map[string]bool{"constructor": true}); err != nil {
				return fmt.Errorf("%s.constructor: %w", name, err)
			}
		}
	}

	for _, group := range groupOrder {
		items, ok := el[group].([]interface{})
		if !ok || memberGroups[group] == nil {
			continue
		}
		for i, item := range items {
			if err := validateElement(item, memberGroups[group]); err != nil {
				return fmt.Errorf("%s.%s[%d]: %w", name, group, i, err)
			}
		}
	}
	return nil
}

func validateCallable(name string, el map[string]interface{}) error {
	var params []string
	if list, ok := el["params"].([]interface{}); ok {
		for i, p := range list {
			pm, ok := p.(map[string]interface{})
			if !ok {
				return fmt.Errorf("%s: invalid parameter %d", name, i)
			}
			pname, _ := pm["name"].(string)
			if pname == "" {
				return fmt.Errorf("%s: parameter %d has no 'name'", name, i)
			}
			if err := validateDescriptorProps(pm); err != nil {
				return fmt.Errorf("%s(%s): %w", name, pname, err)
			}
			params = append(params, pname)
		}
	}
	want := name + "(" + strings.Join(params, ", ") + ")"
	if sig, _ := el["signature"].(string); sig != want {
		return fmt.Errorf("%s: signature %q does not match parameters, want %q", name, sig, want)
	}
	if ret, ok := el["returns"].(map[string]interface{}); ok {
		if err := validateDescriptorProps(ret); err != nil {
			return fmt.Errorf("%s returns: %w", name, err)
		}
	}
	return nil
}

func validateDescriptorProps(d map[string]interface{}) error {
	props, ok := d["properties"].([]interface{})
	if !ok {
		return nil
	}
	for i, p := range props {
		pm, ok := p.(map[string]interface{})
		if !ok {
			return fmt.Errorf("invalid property %d", i)
		}
		if n, _ := pm["name"].(string); n == "" {
			return fmt.Errorf("property %d has no 'name'", i)
		}
		if dt, _ := pm["datatype"].(string); dt == "" {
			return fmt.Errorf("property %d has no 'datatype'", i)
		}
	}
	return nil
}
