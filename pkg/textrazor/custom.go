// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import "fmt"

// Link is a reference from a custom annotation to another annotation by kind
// and id. Target is filled during response linking; it stays zero when the
// referenced annotation was never constructed.
type Link struct {
	// AnnotationName names the target kind, e.g. "entity" or "word".
	AnnotationName string `json:"annotationName"`
	// LinkedID is the target's id, or its sentence position for word links.
	LinkedID int `json:"linkedId"`

	Target AnnotationRef `json:"-"`
}

// Resolved reports whether the link's target annotation was constructed.
func (l *Link) Resolved() bool { return !l.Target.IsZero() }

// CustomContent is one key/value entry of a custom annotation.
type CustomContent struct {
	Key          string    `json:"key"`
	Links        []Link    `json:"links"`
	IntValues    []int64   `json:"intValue"`
	FloatValues  []float64 `json:"floatValue"`
	StringValues []string  `json:"stringValue"`
	BytesValues  [][]byte  `json:"bytesValue"`
}

// CustomAnnotation is one match of a user-defined rule evaluated server-side.
// Its schema is defined by the rules, so contents are exposed through the
// generic Get accessor.
type CustomAnnotation struct {
	// Name is the rule name that produced this annotation.
	Name string `json:"name"`
	// Contents holds the annotation's key/value entries in declared order.
	Contents []CustomContent `json:"contents"`
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	ValueLink ValueKind = iota
	ValueInt
	ValueFloat
	ValueString
	ValueBytes
)

// Value is one element produced by CustomAnnotation.Get: a link to another
// annotation or a scalar. The field matching Kind is set.
type Value struct {
	Kind  ValueKind
	Link  *Link
	Int   int64
	Float float64
	Str   string
	Bytes []byte
}

// Get returns the values stored under key across this annotation's content
// entries, in declared entry order. Within each entry, links come first, then
// ints, floats, strings and bytes. A key present in no entry returns an error
// wrapping ErrNotFound; a dangling link is not an error and is returned with
// its Target zero.
func (c *CustomAnnotation) Get(key string) ([]Value, error) {
	var out []Value
	found := false
	for i := range c.Contents {
		entry := &c.Contents[i]
		if entry.Key != key {
			continue
		}
		found = true
		for j := range entry.Links {
			out = append(out, Value{Kind: ValueLink, Link: &entry.Links[j]})
		}
		for _, v := range entry.IntValues {
			out = append(out, Value{Kind: ValueInt, Int: v})
		}
		for _, v := range entry.FloatValues {
			out = append(out, Value{Kind: ValueFloat, Float: v})
		}
		for _, v := range entry.StringValues {
			out = append(out, Value{Kind: ValueString, Str: v})
		}
		for _, v := range entry.BytesValues {
			out = append(out, Value{Kind: ValueBytes, Bytes: v})
		}
	}
	if !found {
		return nil, fmt.Errorf("custom annotation %q has no key %q: %w", c.Name, key, ErrNotFound)
	}
	return out, nil
}
