// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"errors"
	"testing"
)

func TestCustomAnnotationGetValueOrder(t *testing.T) {
	ca := &CustomAnnotation{
		Name: "rule1",
		Contents: []CustomContent{
			{
				Key:          "mixed",
				StringValues: []string{"a"},
				IntValues:    []int64{1, 2},
				FloatValues:  []float64{0.5},
				BytesValues:  [][]byte{[]byte("raw")},
			},
			{
				Key:       "mixed",
				IntValues: []int64{3},
			},
		},
	}

	values, err := ca.Get("mixed")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// Within each entry: links, ints, floats, strings, bytes. Entries in
	// declared order.
	wantKinds := []ValueKind{ValueInt, ValueInt, ValueFloat, ValueString, ValueBytes, ValueInt}
	if len(values) != len(wantKinds) {
		t.Fatalf("Get returned %d values, want %d", len(values), len(wantKinds))
	}
	for i, want := range wantKinds {
		if values[i].Kind != want {
			t.Errorf("values[%d].Kind = %v, want %v", i, values[i].Kind, want)
		}
	}
	if values[0].Int != 1 || values[1].Int != 2 || values[5].Int != 3 {
		t.Errorf("int values = %d %d %d, want 1 2 3", values[0].Int, values[1].Int, values[5].Int)
	}
	if values[3].Str != "a" {
		t.Errorf("string value = %q, want %q", values[3].Str, "a")
	}
	if string(values[4].Bytes) != "raw" {
		t.Errorf("bytes value = %q, want %q", values[4].Bytes, "raw")
	}
}

func TestCustomAnnotationBytesDecode(t *testing.T) {
	// bytesValue entries arrive base64-encoded on the wire.
	resp := parseFixture(t, `{
		"ok": true,
		"response": {
			"customAnnotations": [{
				"name": "rule1",
				"contents": [{
					"key": "payload",
					"bytesValue": ["aGVsbG8="]
				}]
			}]
		}
	}`)

	annotations, err := resp.CustomAnnotations("rule1")
	if err != nil {
		t.Fatalf("CustomAnnotations: %v", err)
	}
	values, err := annotations[0].Get("payload")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(values) != 1 || values[0].Kind != ValueBytes {
		t.Fatalf("Get returned %+v, want one bytes value", values)
	}
	if string(values[0].Bytes) != "hello" {
		t.Errorf("bytes value = %q, want %q", values[0].Bytes, "hello")
	}
}

func TestCustomAnnotationGetMissingKey(t *testing.T) {
	ca := &CustomAnnotation{
		Name:     "rule1",
		Contents: []CustomContent{{Key: "present", IntValues: []int64{1}}},
	}

	if _, err := ca.Get("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
	}
}

func TestCustomAnnotationLinkResolution(t *testing.T) {
	resp := parseFixture(t, `{
		"ok": true,
		"response": {
			"customAnnotations": [{
				"name": "company-mention",
				"contents": [{
					"key": "target",
					"links": [{"annotationName": "entity", "linkedId": 0}],
					"floatValue": [0.75]
				}]
			}],
			"entities": [{"id": 0, "entityId": "Apple Inc."}]
		}
	}`)

	annotations, err := resp.CustomAnnotations("company-mention")
	if err != nil {
		t.Fatalf("CustomAnnotations: %v", err)
	}
	values, err := annotations[0].Get("target")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("Get returned %d values, want 2", len(values))
	}

	// The link resolves to the entity and precedes the scalar.
	link := values[0].Link
	if link == nil || !link.Resolved() {
		t.Fatal("link value did not resolve")
	}
	if link.Target.Kind != KindEntity || link.Target.Entity.EntityID != "Apple Inc." {
		t.Errorf("link target = %+v, want the Apple Inc. entity", link.Target)
	}
	if values[1].Kind != ValueFloat || values[1].Float != 0.75 {
		t.Errorf("values[1] = %+v, want float 0.75", values[1])
	}

	// The entity carries the back-reference.
	backRefs := link.Target.Entity.CustomAnnotations()
	if len(backRefs) != 1 || backRefs[0].Name != "company-mention" {
		t.Errorf("entity.CustomAnnotations() = %v, want [company-mention]", backRefs)
	}
}

func TestCustomAnnotationWordLink(t *testing.T) {
	// Word links address words by sentence position rather than id.
	resp := parseFixture(t, `{
		"ok": true,
		"response": {
			"customAnnotations": [{
				"name": "keyword",
				"contents": [{
					"key": "match",
					"links": [{"annotationName": "word", "linkedId": 1}]
				}]
			}],
			"sentences": [{"position": 0, "words": [
				{"position": 0, "token": "hello", "partOfSpeech": "UH"},
				{"position": 1, "token": "world", "partOfSpeech": "NN"}
			]}]
		}
	}`)

	annotations, err := resp.CustomAnnotations("keyword")
	if err != nil {
		t.Fatalf("CustomAnnotations: %v", err)
	}
	values, err := annotations[0].Get("match")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	link := values[0].Link
	if link.Target.Kind != KindWord || link.Target.Word.Token != "world" {
		t.Errorf("link target = %+v, want the word at position 1", link.Target)
	}
	if got := link.Target.Word.CustomAnnotations(); len(got) != 1 || got[0].Name != "keyword" {
		t.Errorf("word.CustomAnnotations() = %v, want [keyword]", got)
	}
}

func TestCustomAnnotationDanglingLink(t *testing.T) {
	// A link whose target was never constructed stays unresolved without
	// failing the parse.
	resp := parseFixture(t, `{
		"ok": true,
		"response": {
			"customAnnotations": [{
				"name": "rule1",
				"contents": [{
					"key": "ghost",
					"links": [{"annotationName": "entity", "linkedId": 42}]
				}]
			}]
		}
	}`)

	annotations, err := resp.CustomAnnotations("rule1")
	if err != nil {
		t.Fatalf("CustomAnnotations: %v", err)
	}
	values, err := annotations[0].Get("ghost")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if values[0].Link.Resolved() {
		t.Error("dangling link reports Resolved() = true")
	}
	if !values[0].Link.Target.IsZero() {
		t.Errorf("dangling link target = %+v, want zero", values[0].Link.Target)
	}
}
