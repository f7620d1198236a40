// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

// AnnotationKind identifies one kind of annotation within a response. The
// values match the annotationName strings used by custom-annotation links on
// the wire.
type AnnotationKind string

const (
	KindWord       AnnotationKind = "word"
	KindEntity     AnnotationKind = "entity"
	KindTopic      AnnotationKind = "topic"
	KindEntailment AnnotationKind = "entailment"
	KindRelation   AnnotationKind = "relation"
	// KindRelationParam never appears as a link target on the wire; params are
	// addressed through their parent relation.
	KindRelationParam AnnotationKind = "relationParam"
	KindProperty      AnnotationKind = "property"
	KindNounPhrase    AnnotationKind = "nounPhrase"
	KindCustom        AnnotationKind = "custom"
)

// AnnotationRef points at a single annotation of any kind. Exactly one of the
// pointer fields is non-nil, selected by Kind.
type AnnotationRef struct {
	Kind AnnotationKind

	Word          *Word
	Entity        *Entity
	Topic         *Topic
	Entailment    *Entailment
	Relation      *Relation
	RelationParam *RelationParam
	Property      *Property
	NounPhrase    *NounPhrase
	Custom        *CustomAnnotation
}

// IsZero reports whether the reference points at nothing, e.g. an unresolved
// custom-annotation link target.
func (r AnnotationRef) IsZero() bool { return r.Kind == "" }

func wordRef(w *Word) AnnotationRef          { return AnnotationRef{Kind: KindWord, Word: w} }
func entityRef(e *Entity) AnnotationRef      { return AnnotationRef{Kind: KindEntity, Entity: e} }
func topicRef(t *Topic) AnnotationRef        { return AnnotationRef{Kind: KindTopic, Topic: t} }
func entailmentRef(e *Entailment) AnnotationRef {
	return AnnotationRef{Kind: KindEntailment, Entailment: e}
}
func relationRef(r *Relation) AnnotationRef { return AnnotationRef{Kind: KindRelation, Relation: r} }
func relationParamRef(p *RelationParam) AnnotationRef {
	return AnnotationRef{Kind: KindRelationParam, RelationParam: p}
}
func propertyRef(p *Property) AnnotationRef { return AnnotationRef{Kind: KindProperty, Property: p} }
func nounPhraseRef(n *NounPhrase) AnnotationRef {
	return AnnotationRef{Kind: KindNounPhrase, NounPhrase: n}
}
func customRef(c *CustomAnnotation) AnnotationRef {
	return AnnotationRef{Kind: KindCustom, Custom: c}
}

// attachCustom records ca as a custom annotation linking to the annotation r
// points at.
func (r AnnotationRef) attachCustom(ca *CustomAnnotation) {
	switch r.Kind {
	case KindWord:
		r.Word.custom = append(r.Word.custom, ca)
	case KindEntity:
		r.Entity.custom = append(r.Entity.custom, ca)
	case KindTopic:
		r.Topic.custom = append(r.Topic.custom, ca)
	case KindEntailment:
		r.Entailment.custom = append(r.Entailment.custom, ca)
	case KindRelation:
		r.Relation.custom = append(r.Relation.custom, ca)
	case KindProperty:
		r.Property.custom = append(r.Property.custom, ca)
	case KindNounPhrase:
		r.NounPhrase.custom = append(r.NounPhrase.custom, ca)
	}
}

// linkRole selects which word back-reference list a span attachment feeds.
// Property predicate and modifier positions register under distinct roles so
// they land in separate lists.
type linkRole int

const (
	roleEntity linkRole = iota
	roleEntailment
	roleRelation
	roleRelationParam
	rolePropertyPredicate
	rolePropertyModifier
	roleNounPhrase
)

// linkKey addresses a resolution target: the annotation id for most kinds,
// the sentence position for KindWord.
type linkKey struct {
	kind AnnotationKind
	id   int
}

// pendingLink is one reference waiting for its target to be constructed.
// When link is non-nil the entry is a custom-annotation content link;
// otherwise it is a word-span attachment for source under role.
type pendingLink struct {
	source AnnotationRef
	role   linkRole
	link   *Link
}

// linker is the pending-reference table for a single response parse. It is
// created by ParseResponse, fully consumed during the linking walk, and never
// shared between responses.
type linker struct {
	pending map[linkKey][]pendingLink
}

func newLinker() *linker {
	return &linker{pending: make(map[linkKey][]pendingLink)}
}

// await registers a reference to fire when the annotation matching key is
// constructed. Duplicate registrations fire once each, in registration order.
func (l *linker) await(key linkKey, p pendingLink) {
	l.pending[key] = append(l.pending[key], p)
}

// resolve fires every reference registered under key against target, FIFO.
// A key with no registrations is a no-op, and entries whose target is never
// constructed simply stay pending: a dangling word position or id leaves the
// referencing annotation's lists empty rather than failing the parse.
func (l *linker) resolve(key linkKey, target AnnotationRef) {
	for _, p := range l.pending[key] {
		if p.link != nil {
			p.link.Target = target
			target.attachCustom(p.source.Custom)
			continue
		}
		w := target.Word
		if w == nil {
			continue
		}
		switch p.role {
		case roleEntity:
			e := p.source.Entity
			e.matchedWords = append(e.matchedWords, w)
			w.entities = append(w.entities, e)
		case roleEntailment:
			e := p.source.Entailment
			e.matchedWords = append(e.matchedWords, w)
			w.entailments = append(w.entailments, e)
		case roleRelation:
			rel := p.source.Relation
			rel.predicateWords = append(rel.predicateWords, w)
			w.relations = append(w.relations, rel)
		case roleRelationParam:
			rp := p.source.RelationParam
			rp.words = append(rp.words, w)
			w.relationParams = append(w.relationParams, rp)
		case rolePropertyPredicate:
			pr := p.source.Property
			pr.predicateWords = append(pr.predicateWords, w)
			w.propertyPredicates = append(w.propertyPredicates, pr)
		case rolePropertyModifier:
			pr := p.source.Property
			pr.propertyWords = append(pr.propertyWords, w)
			w.propertyModifiers = append(w.propertyModifiers, pr)
		case roleNounPhrase:
			np := p.source.NounPhrase
			np.words = append(np.words, w)
			w.nounPhrases = append(w.nounPhrases, np)
		}
	}
}
