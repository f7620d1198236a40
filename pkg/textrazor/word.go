// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

// WordSense is one scored Wordnet sense of a word.
type WordSense struct {
	Sense string  `json:"sense"`
	Score float64 `json:"score"`
}

// Word is a single token of a sentence. Returned by the "words" extractor.
// Its back-reference lists are populated during response linking: after a
// parse, every annotation whose span covers this word's position appears in
// the matching list, and nothing else does.
type Word struct {
	// Position is the position of this word within its sentence.
	Position int `json:"position"`
	// Token is the raw token string from the source text.
	Token string `json:"token"`
	Stem  string `json:"stem"`
	// Lemma is the morphological root of the word.
	Lemma string `json:"lemma"`
	// PartOfSpeech is the Penn treebank tag for this word.
	PartOfSpeech string `json:"partOfSpeech"`
	// StartingPos and EndingPos are character offsets into the input text.
	StartingPos int `json:"startingPos"`
	EndingPos   int `json:"endingPos"`
	// ParentPosition is the position of the grammatical parent, nil when this
	// word is a sentence root or the "dependency-trees" extractor was not
	// requested.
	ParentPosition *int `json:"parentPosition"`
	// RelationToParent is the Stanford dependency label between this word and
	// its parent.
	RelationToParent string      `json:"relationToParent"`
	Senses           []WordSense `json:"senses"`

	parent             *Word
	children           []*Word
	entities           []*Entity
	entailments        []*Entailment
	relations          []*Relation
	relationParams     []*RelationParam
	propertyPredicates []*Property
	propertyModifiers  []*Property
	nounPhrases        []*NounPhrase
	custom             []*CustomAnnotation
}

// Parent returns the grammatical parent of this word, nil for sentence roots.
func (w *Word) Parent() *Word { return w.parent }

// Children returns the dependency children of this word, empty for leaves.
func (w *Word) Children() []*Word { return w.children }

// Entities returns the entities this word is part of.
func (w *Word) Entities() []*Entity { return w.entities }

// Entailments returns the entailments this word generated.
func (w *Word) Entailments() []*Entailment { return w.entailments }

// Relations returns the relations this word is a predicate of.
func (w *Word) Relations() []*Relation { return w.relations }

// RelationParams returns the relation params this word is a member of.
func (w *Word) RelationParams() []*RelationParam { return w.relationParams }

// PropertyPredicates returns the properties this word is a predicate (focus)
// member of.
func (w *Word) PropertyPredicates() []*Property { return w.propertyPredicates }

// PropertyModifiers returns the properties this word is a modifier member of.
func (w *Word) PropertyModifiers() []*Property { return w.propertyModifiers }

// NounPhrases returns the noun phrases this word is a member of.
func (w *Word) NounPhrases() []*NounPhrase { return w.nounPhrases }

// CustomAnnotations returns the custom annotations that link to this word.
func (w *Word) CustomAnnotations() []*CustomAnnotation { return w.custom }

// Sentence is one sentence of the analyzed document, owning its words.
type Sentence struct {
	// Position is the position of this sentence within the document.
	Position int `json:"position"`
	// Words holds the sentence's words in source order.
	Words []Word `json:"words"`

	root *Word
}

// RootWord returns the dependency root of this sentence, nil unless the
// "dependency-trees" extractor was requested.
func (s *Sentence) RootWord() *Word { return s.root }

// punctuationTags lists part-of-speech tags that never become sentence roots:
// punctuation is not attached to a parent, but it is not a root either.
var punctuationTags = map[string]bool{
	"$": true, "``": true, "''": true, "(": true, ")": true,
	",": true, "--": true, ".": true, ":": true,
}

// linkDependencyTree wires parent/child pointers between the sentence's words
// from their parent positions and records the root. A word with no parent
// position (or a negative one) is a root candidate unless its tag is
// punctuation; the last candidate encountered wins. A parent position with no
// matching word leaves the word unattached.
func (s *Sentence) linkDependencyTree() {
	if len(s.Words) == 0 {
		return
	}

	byPos := make(map[int]*Word, len(s.Words))
	for i := range s.Words {
		byPos[s.Words[i].Position] = &s.Words[i]
	}

	for i := range s.Words {
		w := &s.Words[i]
		if w.ParentPosition != nil && *w.ParentPosition >= 0 {
			if parent, ok := byPos[*w.ParentPosition]; ok {
				w.parent = parent
				parent.children = append(parent.children, w)
			}
			continue
		}
		if !punctuationTags[w.PartOfSpeech] {
			s.root = w
		}
	}
}
