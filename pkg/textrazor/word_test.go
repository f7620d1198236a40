// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import "testing"

func intPtr(n int) *int { return &n }

func TestLinkDependencyTreeRootSelection(t *testing.T) {
	tests := []struct {
		name     string
		words    []Word
		wantRoot string
	}{
		{
			name: "single parentless word is root",
			words: []Word{
				{Position: 0, Token: "run", PartOfSpeech: "VB"},
				{Position: 1, Token: "fast", PartOfSpeech: "RB", ParentPosition: intPtr(0)},
			},
			wantRoot: "run",
		},
		{
			name: "punctuation never becomes root",
			words: []Word{
				{Position: 0, Token: "go", PartOfSpeech: "VB"},
				{Position: 1, Token: ".", PartOfSpeech: "."},
			},
			wantRoot: "go",
		},
		{
			name: "last parentless non-punctuation word wins",
			words: []Word{
				{Position: 0, Token: "first", PartOfSpeech: "JJ"},
				{Position: 1, Token: "second", PartOfSpeech: "NN"},
			},
			wantRoot: "second",
		},
		{
			name: "trailing punctuation does not displace the root",
			words: []Word{
				{Position: 0, Token: "stop", PartOfSpeech: "VB"},
				{Position: 1, Token: "!", PartOfSpeech: "."},
				{Position: 2, Token: ")", PartOfSpeech: ")"},
			},
			wantRoot: "stop",
		},
		{
			name: "negative parent position counts as parentless",
			words: []Word{
				{Position: 0, Token: "alone", PartOfSpeech: "RB", ParentPosition: intPtr(-1)},
			},
			wantRoot: "alone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sentence{Words: tt.words}
			s.linkDependencyTree()
			root := s.RootWord()
			if root == nil {
				t.Fatal("RootWord() = nil")
			}
			if root.Token != tt.wantRoot {
				t.Errorf("RootWord() = %q, want %q", root.Token, tt.wantRoot)
			}
		})
	}
}

func TestLinkDependencyTreeAllPunctuation(t *testing.T) {
	s := &Sentence{Words: []Word{
		{Position: 0, Token: ".", PartOfSpeech: "."},
		{Position: 1, Token: ",", PartOfSpeech: ","},
	}}
	s.linkDependencyTree()
	if s.RootWord() != nil {
		t.Errorf("RootWord() = %v, want nil for all-punctuation sentence", s.RootWord())
	}
}

func TestLinkDependencyTreeParentChildWiring(t *testing.T) {
	s := &Sentence{Words: []Word{
		{Position: 0, Token: "the", PartOfSpeech: "DT", ParentPosition: intPtr(1)},
		{Position: 1, Token: "dog", PartOfSpeech: "NN", ParentPosition: intPtr(2)},
		{Position: 2, Token: "barks", PartOfSpeech: "VBZ"},
	}}
	s.linkDependencyTree()

	the, dog, barks := &s.Words[0], &s.Words[1], &s.Words[2]
	if the.Parent() != dog {
		t.Error("the.Parent() != dog")
	}
	if dog.Parent() != barks {
		t.Error("dog.Parent() != barks")
	}
	if len(dog.Children()) != 1 || dog.Children()[0] != the {
		t.Errorf("dog.Children() = %v, want [the]", dog.Children())
	}
	if len(barks.Children()) != 1 || barks.Children()[0] != dog {
		t.Errorf("barks.Children() = %v, want [dog]", barks.Children())
	}
}

func TestLinkDependencyTreeMissingParent(t *testing.T) {
	// A parent position with no matching word leaves the word unattached
	// rather than failing.
	s := &Sentence{Words: []Word{
		{Position: 0, Token: "orphan", PartOfSpeech: "NN", ParentPosition: intPtr(7)},
		{Position: 1, Token: "root", PartOfSpeech: "VB"},
	}}
	s.linkDependencyTree()

	if s.Words[0].Parent() != nil {
		t.Error("word with missing parent position should stay unattached")
	}
	if got := s.RootWord(); got == nil || got.Token != "root" {
		t.Errorf("RootWord() = %v, want root", got)
	}
}

func TestLinkDependencyTreeEmptySentence(t *testing.T) {
	s := &Sentence{}
	s.linkDependencyTree()
	if s.RootWord() != nil {
		t.Error("empty sentence should have no root")
	}
}
