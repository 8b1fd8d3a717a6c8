package apiparser

import (
	"strings"
	"unicode"
)

// ParseTypeLine parses a single directive line such as
//
//	@method
//	@returns {string} description
//	@param [name=default] {type} description
//	@prop name {type} description
//
// into its tag, the descriptor it introduces and the trailing description
// fragment. lineno is the 1-indexed line number used in errors.
func ParseTypeLine(line string, lineno int) (string, *Element, string, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	if rest == "" {
		return "", nil, "", parseErrorf(ErrMalformedDirective, lineno, "line is too short: %q", line)
	}

	var tok string
	tok, rest = nextToken(rest)
	if !strings.HasPrefix(tok, "@") {
		return "", nil, "", parseErrorf(ErrMalformedDirective, lineno, "type line should start with @: %q", line)
	}
	tag := tok[1:]
	info := &Element{LineNumber: lineno, Kind: tagKind(tag)}

	if tag == "param" || tag == "prop" {
		if rest != "" && !strings.HasPrefix(rest, "{") {
			tok, rest = nextToken(rest)
			if err := parseNameToken(tok, info, lineno); err != nil {
				return "", nil, "", err
			}
		}
	}

	if strings.HasPrefix(rest, "{") {
		if end := strings.IndexByte(rest, '}'); end >= 0 {
			info.Datatype = stripSpace(rest[1:end])
			rest = strings.TrimLeftFunc(rest[end+1:], unicode.IsSpace)
		} else {
			tok, rest = nextToken(rest)
			info.Datatype = stripSpace(strings.TrimPrefix(tok, "{"))
		}
	}

	if err := validateInfo(tag, info, line, lineno); err != nil {
		return "", nil, "", err
	}
	return tag, info, rest, nil
}

func validateInfo(tag string, info *Element, line string, lineno int) error {
	switch tag {
	case "property":
		if info.Datatype == "" {
			return parseErrorf(ErrMissingType, lineno, "no type found for @property")
		}
	case "prop":
		if info.Name == "" {
			return parseErrorf(ErrMissingName, lineno, "@prop lines must provide a name: %q", line)
		}
		if info.Datatype == "" {
			return parseErrorf(ErrMissingType, lineno, "@prop lines must include {type}: %q", line)
		}
	case "param":
		if info.Name == "" {
			return parseErrorf(ErrMissingName, lineno, "@param lines must provide a name: %q", line)
		}
	}
	return nil
}

// parseNameToken applies the parameter name grammar:
//
//	name | name=default | [name] | [name=default]
//
// A bracketed name is optional. Only optional names may carry a default.
func parseNameToken(tok string, info *Element, lineno int) error {
	optional := strings.HasPrefix(tok, "[")
	if optional {
		if !strings.HasSuffix(tok, "]") {
			return parseErrorf(ErrMalformedDirective, lineno, "unbalanced brackets in %q", tok)
		}
		tok = tok[1 : len(tok)-1]
	}
	name, def, hasDefault := strings.Cut(tok, "=")
	if name == "" {
		return parseErrorf(ErrMissingName, lineno, "empty name in %q", tok)
	}
	if hasDefault && !optional {
		return parseErrorf(ErrIllegalDefault, lineno, "%s=%s: mandatory parameters do not take defaults", name, def)
	}
	if hasDefault && def == "" {
		return parseErrorf(ErrMalformedDirective, lineno, "empty default for %s", name)
	}
	info.Name = name
	info.Optional = optional
	info.Default = def
	return nil
}

func tagKind(tag string) Kind {
	switch tag {
	case "param":
		return KindParam
	case "prop":
		return KindProperty
	case "returns":
		return KindReturns
	}
	return elementKinds[tag]
}

// nextToken splits s at its first run of whitespace. The remainder has its
// leading whitespace removed but keeps its inner spacing.
func nextToken(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
