// Package thingsurl builds things:/// URL-scheme requests.
package thingsurl

import (
	"net/url"
	"strconv"
	"strings"
)

const Scheme = "things:///"

type valueKind int

const (
	kindAbsent valueKind = iota
	kindString
	kindBool
	kindList
)

// Value is a single query parameter value. The zero Value is absent.
type Value struct {
	kind valueKind
	s    string
	b    bool
	list []string
}

var Absent = Value{}

func String(s string) Value { return Value{kind: kindString, s: s} }

// OptString is absent for nil, so an explicit "" is still sent.
func OptString(s *string) Value {
	if s == nil {
		return Absent
	}
	return String(*s)
}

func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// Flag only ever asserts true; false is absent.
func Flag(b bool) Value {
	if !b {
		return Absent
	}
	return Bool(true)
}

func List(items []string) Value {
	if len(items) == 0 {
		return Absent
	}
	return Value{kind: kindList, list: append([]string(nil), items...)}
}

func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

func (v Value) encode() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindList:
		return strings.Join(v.list, "\n")
	default:
		return v.s
	}
}

type param struct {
	key   string
	value Value
}

// Params is an ordered parameter set.
type Params struct {
	items []param
}

func NewParams() *Params { return &Params{} }

// Set replaces an existing key in place or appends a new one.
func (p *Params) Set(key string, v Value) *Params {
	for i := range p.items {
		if p.items[i].key == key {
			p.items[i].value = v
			return p
		}
	}
	p.items = append(p.items, param{key: key, value: v})
	return p
}

func (p *Params) Get(key string) (Value, bool) {
	if p == nil {
		return Absent, false
	}
	for _, it := range p.items {
		if it.key == key {
			return it.value, !it.value.IsAbsent()
		}
	}
	return Absent, false
}

func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, it := range p.items {
		if !it.value.IsAbsent() {
			n++
		}
	}
	return n
}

// Encode renders the present parameters in insertion order.
func (p *Params) Encode() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, it := range p.items {
		if it.value.IsAbsent() {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(it.key))
		b.WriteByte('=')
		b.WriteString(escape(it.value.encode()))
	}
	return b.String()
}

// escape percent-encodes everything outside the unreserved set.
// QueryEscape already escapes every reserved character and turns a literal
// '+' into %2B, so the only '+' left in its output stands for a space.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Build returns things:///<command> with the encoded query, if any.
func Build(command string, p *Params) string {
	q := p.Encode()
	if q == "" {
		return Scheme + command
	}
	return Scheme + command + "?" + q
}
