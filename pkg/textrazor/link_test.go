// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import "testing"

func TestLinkerFIFOWithinKey(t *testing.T) {
	idx := newLinker()
	w := &Word{Position: 0, Token: "shared"}

	first := &Entity{DocumentID: 0}
	second := &Entity{DocumentID: 1}
	key := linkKey{KindWord, 0}
	idx.await(key, pendingLink{source: entityRef(first), role: roleEntity})
	idx.await(key, pendingLink{source: entityRef(second), role: roleEntity})

	idx.resolve(key, wordRef(w))

	if len(w.entities) != 2 {
		t.Fatalf("word gained %d entities, want 2", len(w.entities))
	}
	if w.entities[0] != first || w.entities[1] != second {
		t.Error("registrations did not fire in FIFO order")
	}
}

func TestLinkerKeysAreIndependent(t *testing.T) {
	idx := newLinker()
	w0 := &Word{Position: 0}
	w1 := &Word{Position: 1}

	e := &Entity{DocumentID: 0}
	idx.await(linkKey{KindWord, 0}, pendingLink{source: entityRef(e), role: roleEntity})

	idx.resolve(linkKey{KindWord, 1}, wordRef(w1))
	if len(w1.entities) != 0 {
		t.Error("resolving a different key fired the registration")
	}

	idx.resolve(linkKey{KindWord, 0}, wordRef(w0))
	if len(w0.entities) != 1 {
		t.Error("registration did not fire for its own key")
	}
}

func TestLinkerKindsShareNothing(t *testing.T) {
	// The same numeric id under different kinds addresses different targets.
	idx := newLinker()
	link := &Link{AnnotationName: "entity", LinkedID: 3}
	ca := &CustomAnnotation{Name: "rule1"}
	idx.await(linkKey{KindEntity, 3}, pendingLink{source: customRef(ca), link: link})

	idx.resolve(linkKey{KindTopic, 3}, topicRef(&Topic{ID: 3}))
	if link.Resolved() {
		t.Error("topic resolution fired an entity registration")
	}

	e := &Entity{DocumentID: 3}
	idx.resolve(linkKey{KindEntity, 3}, entityRef(e))
	if !link.Resolved() || link.Target.Entity != e {
		t.Error("entity resolution did not fire the registration")
	}
}

func TestLinkerUnresolvedKeysStayPending(t *testing.T) {
	idx := newLinker()
	e := &Entity{DocumentID: 0}
	idx.await(linkKey{KindWord, 9}, pendingLink{source: entityRef(e), role: roleEntity})

	// Never resolving the key is not an error; the entity's list stays empty.
	if len(e.matchedWords) != 0 {
		t.Error("pending registration mutated the source")
	}
}

func TestLinkerRepeatedResolution(t *testing.T) {
	// Two annotations constructed under the same key each fire the pending
	// registrations; a content link ends up pointing at the last one. Regular
	// and coarse topics share the topic key space this way.
	idx := newLinker()
	link := &Link{AnnotationName: "topic", LinkedID: 0}
	ca := &CustomAnnotation{Name: "rule1"}
	idx.await(linkKey{KindTopic, 0}, pendingLink{source: customRef(ca), link: link})

	fine := &Topic{ID: 0, Label: "fine"}
	coarse := &Topic{ID: 0, Label: "coarse"}
	idx.resolve(linkKey{KindTopic, 0}, topicRef(fine))
	idx.resolve(linkKey{KindTopic, 0}, topicRef(coarse))

	if link.Target.Topic != coarse {
		t.Errorf("link target = %v, want the later topic", link.Target.Topic)
	}
	if len(fine.custom) != 1 || len(coarse.custom) != 1 {
		t.Error("both resolved topics should carry the custom back-reference")
	}
}
