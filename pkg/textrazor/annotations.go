// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import "encoding/json"

// Topic is one abstract topic extracted from the document. Returned by the
// "topics" and "coarse-topics" extractors; both share this type.
type Topic struct {
	// ID is the id of this topic within its response.
	ID int `json:"id"`
	// Label is the topic name.
	Label string `json:"label"`
	// WikiLink links the topic to Wikipedia, empty when no page matched.
	WikiLink string `json:"wikiLink"`
	// Score is the relevancy of this topic to the document.
	Score float64 `json:"score"`

	custom []*CustomAnnotation
}

// CustomAnnotations returns the custom annotations that link to this topic.
func (t *Topic) CustomAnnotations() []*CustomAnnotation { return t.custom }

// Entity is a named entity recognized in the document. Returned by the
// "entities" extractor.
type Entity struct {
	// DocumentID is the id of this entity within its response. Custom
	// annotation links address entities by this id.
	DocumentID int `json:"id"`
	// EntityID is the disambiguated entity identifier, empty when the entity
	// could not be disambiguated.
	EntityID string `json:"entityId"`
	// FreebaseID is the disambiguated Freebase id, when one exists.
	FreebaseID string `json:"freebaseId"`
	// WikiLink links the entity to Wikipedia, when a page exists.
	WikiLink string `json:"wikiLink"`
	// MatchedText is the source text that matched this entity.
	MatchedText string `json:"matchedText"`
	StartingPos int    `json:"startingPos"`
	EndingPos   int    `json:"endingPos"`
	// MatchingTokens lists the sentence positions of the words making up this
	// entity.
	MatchingTokens []int    `json:"matchingTokens"`
	FreebaseTypes  []string `json:"freebaseTypes"`
	// DBPediaTypes lists the DBpedia types of this entity.
	DBPediaTypes []string `json:"type"`
	// RelevanceScore scores the relevance of the entity to the document, 0-1.
	RelevanceScore float64 `json:"relevanceScore"`
	// ConfidenceScore scores how confident the service is that this is a
	// valid entity, 0.5-10.
	ConfidenceScore float64 `json:"confidenceScore"`
	// Data holds enrichment results keyed by enrichment query.
	Data map[string]json.RawMessage `json:"data"`

	matchedWords []*Word
	custom       []*CustomAnnotation
}

// MatchedWords returns the words that make up this entity, populated during
// response linking.
func (e *Entity) MatchedWords() []*Word { return e.matchedWords }

// CustomAnnotations returns the custom annotations that link to this entity.
func (e *Entity) CustomAnnotations() []*CustomAnnotation { return e.custom }

// EntailedTree is the root node of an entailed phrase.
type EntailedTree struct {
	Word string `json:"word"`
}

// Entailment is a word or phrase entailed by part of a sentence. Returned by
// the "entailments" extractor.
type Entailment struct {
	// ID is the id of this entailment within its response.
	ID int `json:"id"`
	// WordPositions lists the positions of the source words that generated
	// this entailment.
	WordPositions []int `json:"wordPositions"`
	// PriorScore scores the entailment independent of sentence context.
	PriorScore float64 `json:"priorScore"`
	// ContextScore scores agreement between the source word's usage in this
	// sentence and the entailed word's usage in the knowledge base.
	ContextScore float64 `json:"contextScore"`
	// Score combines the prior and context scores.
	Score        float64      `json:"score"`
	EntailedTree EntailedTree `json:"entailedTree"`

	matchedWords []*Word
	custom       []*CustomAnnotation
}

// EntailedWord returns the word string entailed by the source words.
func (e *Entailment) EntailedWord() string { return e.EntailedTree.Word }

// MatchedWords returns the source words that generated this entailment,
// populated during response linking.
func (e *Entailment) MatchedWords() []*Word { return e.matchedWords }

// CustomAnnotations returns the custom annotations that link to this
// entailment.
func (e *Entailment) CustomAnnotations() []*CustomAnnotation { return e.custom }

// ParamRelation is the grammatical role of a relation param relative to its
// predicate.
type ParamRelation string

const (
	ParamSubject ParamRelation = "SUBJECT"
	ParamObject  ParamRelation = "OBJECT"
	ParamOther   ParamRelation = "OTHER"
)

// RelationParam is one argument of a Relation, e.g. its subject or object.
type RelationParam struct {
	// Relation is the role of this param relative to the predicate.
	Relation ParamRelation `json:"relation"`
	// WordPositions lists the positions of the words making up this param.
	WordPositions []int `json:"wordPositions"`

	parent *Relation
	words  []*Word
}

// RelationParent returns the relation that owns this param.
func (p *RelationParam) RelationParent() *Relation { return p.parent }

// Words returns the words that make up this param, populated during response
// linking.
func (p *RelationParam) Words() []*Word { return p.words }

// Entities returns the distinct entities mentioned by this param's words, in
// first-mention order.
func (p *RelationParam) Entities() []*Entity {
	seen := make(map[*Entity]bool)
	var out []*Entity
	for _, w := range p.words {
		for _, e := range w.entities {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// Relation is a grammatical relation between words, typically owning SUBJECT
// and OBJECT params. Returned by the "relations" extractor.
type Relation struct {
	// ID is the id of this relation within its response.
	ID int `json:"id"`
	// WordPositions lists the positions of the predicate words.
	WordPositions []int `json:"wordPositions"`
	// Params holds the arguments of this relation, in response order.
	Params []RelationParam `json:"params"`

	predicateWords []*Word
	custom         []*CustomAnnotation
}

// PredicateWords returns the predicate words of this relation, populated
// during response linking.
func (r *Relation) PredicateWords() []*Word { return r.predicateWords }

// CustomAnnotations returns the custom annotations that link to this
// relation.
func (r *Relation) CustomAnnotations() []*CustomAnnotation { return r.custom }

// Property is an "is-a"/"has-a" style relation between a predicate (focus)
// and its modifier words. Returned by the "relations" extractor.
type Property struct {
	// ID is the id of this property within its response.
	ID int `json:"id"`
	// WordPositions lists the positions of the predicate (focus) words.
	WordPositions []int `json:"wordPositions"`
	// PropertyPositions lists the positions of the modifier words.
	PropertyPositions []int `json:"propertyPositions"`

	predicateWords []*Word
	propertyWords  []*Word
	custom         []*CustomAnnotation
}

// PredicateWords returns the predicate (focus) words, populated during
// response linking.
func (p *Property) PredicateWords() []*Word { return p.predicateWords }

// PropertyWords returns the modifier words targeting the focus, populated
// during response linking.
func (p *Property) PropertyWords() []*Word { return p.propertyWords }

// CustomAnnotations returns the custom annotations that link to this
// property.
func (p *Property) CustomAnnotations() []*CustomAnnotation { return p.custom }

// NounPhrase is a multi-word phrase extracted from a sentence. Returned by
// the "phrases" extractor.
type NounPhrase struct {
	// ID is the id of this phrase within its response.
	ID int `json:"id"`
	// WordPositions lists the positions of the words in this phrase.
	WordPositions []int `json:"wordPositions"`

	words  []*Word
	custom []*CustomAnnotation
}

// Words returns the words that make up this phrase, populated during response
// linking.
func (n *NounPhrase) Words() []*Word { return n.words }

// CustomAnnotations returns the custom annotations that link to this phrase.
func (n *NounPhrase) CustomAnnotations() []*CustomAnnotation { return n.custom }

// ScoredCategory is one classifier category matched against the document.
// Returned when classifiers are requested. Categories carry no word links.
type ScoredCategory struct {
	// ClassifierID names the classifier that produced this match.
	ClassifierID string `json:"classifierId"`
	// CategoryID is the matched category within that classifier.
	CategoryID string `json:"categoryId"`
	Label      string `json:"label"`
	// Score is the relevancy of the category to the document.
	Score float64 `json:"score"`
}
