// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"encoding/json"
	"fmt"
)

// envelope is the top-level wire document returned by every analyze call.
type envelope struct {
	OK       bool         `json:"ok"`
	Error    string       `json:"error"`
	Message  string       `json:"message"`
	Time     float64      `json:"time"`
	Response responseBody `json:"response"`
}

// responseBody holds the flat annotation lists of one analysis. Every array
// is optional; absent extractors leave their list empty.
type responseBody struct {
	CustomAnnotations []CustomAnnotation `json:"customAnnotations"`
	Topics            []Topic            `json:"topics"`
	CoarseTopics      []Topic            `json:"coarseTopics"`
	Entities          []Entity           `json:"entities"`
	Entailments       []Entailment       `json:"entailments"`
	Relations         []Relation         `json:"relations"`
	Properties        []Property         `json:"properties"`
	NounPhrases       []NounPhrase       `json:"nounPhrases"`
	Categories        []ScoredCategory   `json:"categories"`
	Sentences         []Sentence         `json:"sentences"`

	Language               string `json:"language"`
	LanguageIsReliable     bool   `json:"languageIsReliable"`
	RawText                string `json:"rawText"`
	CleanedText            string `json:"cleanedText"`
	CustomAnnotationOutput string `json:"customAnnotationOutput"`
}

// Response is the parsed, fully linked result of one analysis call. All
// cross-references between its annotations are resolved at construction;
// afterwards the graph is read-only and safe to share.
type Response struct {
	ok      bool
	errMsg  string
	message string
	time    float64
	raw     []byte
	body    responseBody

	custom       []*CustomAnnotation
	topics       []*Topic
	coarseTopics []*Topic
	entities     []*Entity
	entailments  []*Entailment
	relations    []*Relation
	properties   []*Property
	nounPhrases  []*NounPhrase
	categories   []*ScoredCategory
	sentences    []*Sentence
}

// ParseResponse decodes an analysis response document and links its
// annotation graph. It succeeds even when the service reports ok=false;
// inspect OK and ErrorMessage on the result.
func ParseResponse(data []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}

	r := &Response{
		ok:      env.OK,
		errMsg:  env.Error,
		message: env.Message,
		time:    env.Time,
		raw:     data,
		body:    env.Response,
	}

	// The decoded slices are the arena; pointers into them are taken only
	// now that decoding is finished, and the slices are never grown again.
	r.custom = ptrs(r.body.CustomAnnotations)
	r.topics = ptrs(r.body.Topics)
	r.coarseTopics = ptrs(r.body.CoarseTopics)
	r.entities = ptrs(r.body.Entities)
	r.entailments = ptrs(r.body.Entailments)
	r.relations = ptrs(r.body.Relations)
	r.properties = ptrs(r.body.Properties)
	r.nounPhrases = ptrs(r.body.NounPhrases)
	r.categories = ptrs(r.body.Categories)
	r.sentences = ptrs(r.body.Sentences)

	r.link()
	return r, nil
}

func ptrs[T any](s []T) []*T {
	out := make([]*T, len(s))
	for i := range s {
		out[i] = &s[i]
	}
	return out
}

// link walks the annotation lists in dependency order, resolving pending
// references as each target is constructed. Annotations that reference word
// positions register first; words, built last, drain the registrations for
// their own position. The order must not change: it guarantees that every
// custom link registers before its possible targets resolve, and that every
// span registers before its words are built.
func (r *Response) link() {
	idx := newLinker()

	for _, ca := range r.custom {
		src := customRef(ca)
		for i := range ca.Contents {
			links := ca.Contents[i].Links
			for j := range links {
				key := linkKey{AnnotationKind(links[j].AnnotationName), links[j].LinkedID}
				idx.await(key, pendingLink{source: src, link: &links[j]})
			}
		}
	}

	for _, t := range r.topics {
		idx.resolve(linkKey{KindTopic, t.ID}, topicRef(t))
	}
	// Coarse topics share the "topic" key space with regular topics.
	for _, t := range r.coarseTopics {
		idx.resolve(linkKey{KindTopic, t.ID}, topicRef(t))
	}

	for _, e := range r.entities {
		idx.resolve(linkKey{KindEntity, e.DocumentID}, entityRef(e))
		for _, pos := range e.MatchingTokens {
			idx.await(linkKey{KindWord, pos}, pendingLink{source: entityRef(e), role: roleEntity})
		}
	}

	for _, e := range r.entailments {
		idx.resolve(linkKey{KindEntailment, e.ID}, entailmentRef(e))
		for _, pos := range e.WordPositions {
			idx.await(linkKey{KindWord, pos}, pendingLink{source: entailmentRef(e), role: roleEntailment})
		}
	}

	for _, rel := range r.relations {
		// Params register before the relation itself, preserving the firing
		// order of span attachments at shared word positions.
		for i := range rel.Params {
			p := &rel.Params[i]
			p.parent = rel
			for _, pos := range p.WordPositions {
				idx.await(linkKey{KindWord, pos}, pendingLink{source: relationParamRef(p), role: roleRelationParam})
			}
		}
		idx.resolve(linkKey{KindRelation, rel.ID}, relationRef(rel))
		for _, pos := range rel.WordPositions {
			idx.await(linkKey{KindWord, pos}, pendingLink{source: relationRef(rel), role: roleRelation})
		}
	}

	for _, p := range r.properties {
		idx.resolve(linkKey{KindProperty, p.ID}, propertyRef(p))
		for _, pos := range p.WordPositions {
			idx.await(linkKey{KindWord, pos}, pendingLink{source: propertyRef(p), role: rolePropertyPredicate})
		}
		for _, pos := range p.PropertyPositions {
			idx.await(linkKey{KindWord, pos}, pendingLink{source: propertyRef(p), role: rolePropertyModifier})
		}
	}

	for _, np := range r.nounPhrases {
		idx.resolve(linkKey{KindNounPhrase, np.ID}, nounPhraseRef(np))
		for _, pos := range np.WordPositions {
			idx.await(linkKey{KindWord, pos}, pendingLink{source: nounPhraseRef(np), role: roleNounPhrase})
		}
	}

	// Categories carry no cross-references.

	for _, s := range r.sentences {
		for i := range s.Words {
			idx.resolve(linkKey{KindWord, s.Words[i].Position}, wordRef(&s.Words[i]))
		}
		s.linkDependencyTree()
	}
}

// OK reports whether the service analyzed the document successfully. When
// false, ErrorMessage describes the failure.
func (r *Response) OK() bool { return r.ok }

// ErrorMessage returns the service's error description, empty on success.
func (r *Response) ErrorMessage() string { return r.errMsg }

// Message returns any warning or informational message from the service.
func (r *Response) Message() string { return r.message }

// Time returns the server-side processing time in seconds.
func (r *Response) Time() float64 { return r.time }

// Raw returns the undecoded response body.
func (r *Response) Raw() []byte { return r.raw }

// Language returns the ISO-639-2 language the document was analyzed in.
func (r *Response) Language() string { return r.body.Language }

// LanguageIsReliable reports whether language detection was confident.
func (r *Response) LanguageIsReliable() bool { return r.body.LanguageIsReliable }

// RawText returns the original document text, when requested.
func (r *Response) RawText() string { return r.body.RawText }

// CleanedText returns the post-cleanup document text, when requested.
func (r *Response) CleanedText() string { return r.body.CleanedText }

// CustomAnnotationOutput returns any output produced while evaluating the
// request's custom rules.
func (r *Response) CustomAnnotationOutput() string { return r.body.CustomAnnotationOutput }

// Topics returns the topics extracted from the document.
func (r *Response) Topics() []*Topic { return r.topics }

// CoarseTopics returns the coarse topics extracted from the document.
func (r *Response) CoarseTopics() []*Topic { return r.coarseTopics }

// Entities returns the entities across all sentences.
func (r *Response) Entities() []*Entity { return r.entities }

// Entailments returns the entailments across all sentences.
func (r *Response) Entailments() []*Entailment { return r.entailments }

// Relations returns the relations across all sentences.
func (r *Response) Relations() []*Relation { return r.relations }

// Properties returns the properties across all sentences.
func (r *Response) Properties() []*Property { return r.properties }

// NounPhrases returns the noun phrases across all sentences.
func (r *Response) NounPhrases() []*NounPhrase { return r.nounPhrases }

// Categories returns the classifier categories matched for the document.
func (r *Response) Categories() []*ScoredCategory { return r.categories }

// Sentences returns the document's sentences.
func (r *Response) Sentences() []*Sentence { return r.sentences }

// Words returns every word across all sentences in source order.
func (r *Response) Words() []*Word {
	var out []*Word
	for _, s := range r.sentences {
		for i := range s.Words {
			out = append(out, &s.Words[i])
		}
	}
	return out
}

// AllCustomAnnotations returns every custom annotation in the response.
func (r *Response) AllCustomAnnotations() []*CustomAnnotation { return r.custom }

// CustomAnnotations returns every custom annotation produced by the rule
// named name, in response order. An unknown name returns an error wrapping
// ErrNotFound.
func (r *Response) CustomAnnotations(name string) ([]*CustomAnnotation, error) {
	var out []*CustomAnnotation
	for _, ca := range r.custom {
		if ca.Name == name {
			out = append(out, ca)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("response has no custom annotation %q: %w", name, ErrNotFound)
	}
	return out, nil
}

// MatchingRules returns the names of the custom rules that matched.
func (r *Response) MatchingRules() []string {
	var out []string
	for _, ca := range r.custom {
		out = append(out, ca.Name)
	}
	return out
}

// Summary returns a short human-readable processing summary.
func (r *Response) Summary() string {
	return fmt.Sprintf("Request processed in %.3f seconds. Sentences: %d", r.time, len(r.sentences))
}
