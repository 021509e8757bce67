// Package address repairs and parses the semi-structured address cell found
// in the input data. The cell is supposed to contain a JSON object with a
// nested "address" object, but real exports arrive with single-quote
// delimiters, a truncated final brace, unquoted hyphenated postcodes, and
// trailing commas. Parse applies a fixed sequence of textual repairs and then
// requires the result to be strict JSON.
//
// Known limitation: the quote substitution is global, so a value that
// legitimately contains an apostrophe is corrupted and the row lands in the
// malformed set. This matches the behavior of the upstream data contract.
package address

import (
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Fields is the structured result of a repair. Each field is present (a
// string) or absent (nil). The upstream feed misspells the street key as
// "streeet" and writes the postcode key as "post code"; those source keys are
// part of the data contract and are read as-is.
type Fields struct {
	Street   *string
	City     *string
	PostCode *string
	Country  *string
}

// Empty reports whether all four fields are absent. Downstream stages use
// this as the malformed-row sentinel; it is deliberately true both when the
// parse failed and when a valid document simply had no known sub-fields.
func (f Fields) Empty() bool {
	return f.Street == nil && f.City == nil && f.PostCode == nil && f.Country == nil
}

// Result carries the parsed fields plus an internal failure tag. Failed
// distinguishes "could not repair/parse" from "parsed fine, no sub-fields";
// callers that classify rows for the review file must use Fields.Empty()
// only, which collapses the two cases the same way the sink contract does.
type Result struct {
	Fields Fields
	Failed bool
}

// failed is the sentinel returned for any unrecoverable cell.
func failed() Result { return Result{Failed: true} }

// Parser repairs one address cell at a time. The repair patterns are compiled
// once at construction; Parser is immutable and safe for reuse.
type Parser struct {
	singleQuote   *regexp.Regexp
	postcode      *regexp.Regexp
	trailingComma *regexp.Regexp
}

// NewParser compiles the three repair patterns.
func NewParser() *Parser {
	return &Parser{
		singleQuote:   regexp.MustCompile(`'`),
		postcode:      regexp.MustCompile(`"post code":\s*([0-9]{1,5}-[0-9]{1,5})`),
		trailingComma: regexp.MustCompile(`,\s*}`),
	}
}

// FixBraces is the brace-balancing pre-pass: a string with more opening than
// closing braces gets exactly one closing brace appended. This repairs the
// common single-truncation corruption only; nested or multiple missing braces
// are left for the balance check to reject.
func FixBraces(v any) any {
	if s, ok := v.(string); ok && strings.Count(s, "{") > strings.Count(s, "}") {
		return s + "}"
	}
	return v
}

// Parse repairs and parses one raw address cell. It never panics and never
// returns an error; every unrecoverable input maps to the Failed result.
//
// Repair order matters: quotes are normalized first so the postcode and
// trailing-comma patterns can assume double-quoted syntax.
func (p *Parser) Parse(cell any) Result {
	cell = FixBraces(cell)

	s, ok := cell.(string)
	if !ok || !strings.HasPrefix(strings.TrimSpace(s), "{") {
		return failed()
	}
	if strings.Count(s, "{") != strings.Count(s, "}") {
		return failed()
	}

	fixed := p.singleQuote.ReplaceAllString(s, `"`)
	fixed = p.postcode.ReplaceAllString(fixed, `"post code": "$1"`)
	fixed = p.trailingComma.ReplaceAllString(fixed, "}")

	// UseNumber keeps bare numeric values in their textual form instead of
	// collapsing them to float64.
	dec := json.NewDecoder(strings.NewReader(fixed))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return failed()
	}
	// The whole cell must be one JSON document; trailing text after the
	// closing brace is a malformed cell, not a good row.
	if _, err := dec.Token(); err != io.EOF {
		return failed()
	}

	addr := map[string]any{}
	if raw, present := doc["address"]; present {
		m, isObj := raw.(map[string]any)
		if !isObj {
			// A scalar "address" value cannot yield sub-fields; treat as a
			// failed parse, matching the upstream contract.
			return failed()
		}
		addr = m
	}

	return Result{Fields: Fields{
		Street:   fieldString(addr, "streeet"), // upstream typo, preserved
		City:     fieldString(addr, "city"),
		PostCode: fieldString(addr, "post code"),
		Country:  fieldString(addr, "country"),
	}}
}

// fieldString extracts key from m as a string pointer. Strings pass through;
// numbers and bools surface in textual form; absent keys and other shapes
// (nested objects, arrays, null) yield nil.
func fieldString(m map[string]any, key string) *string {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case string:
		return &t
	case json.Number:
		s := t.String()
		return &s
	case bool:
		s := strconv.FormatBool(t)
		return &s
	default:
		return nil
	}
}
