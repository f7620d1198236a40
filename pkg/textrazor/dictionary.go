// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"context"
	"fmt"
	"net/http"
)

// MatchType controls how dictionary entries are matched against document
// tokens.
type MatchType string

const (
	// MatchToken matches the entry text against raw tokens.
	MatchToken MatchType = "token"
	// MatchStem matches the entry text against stemmed tokens.
	MatchStem MatchType = "stem"
)

// Dictionary is a custom entity dictionary. Documents analyzed with the
// "entities" extractor are matched against every dictionary on the account.
type Dictionary struct {
	// ID uniquely identifies the dictionary on the account. Required.
	ID string `json:"id"`
	// MatchType selects token or stem matching. Empty means token.
	MatchType MatchType `json:"matchType,omitempty"`
	// CaseInsensitive matches entries regardless of case.
	CaseInsensitive bool `json:"caseInsensitive,omitempty"`
	// Language restricts matching to documents in an ISO-639-2 language.
	// Empty matches any language.
	Language string `json:"language,omitempty"`
}

func (d *Dictionary) validate() error {
	if d.ID == "" {
		return fmt.Errorf("textrazor: dictionary id is required")
	}
	switch d.MatchType {
	case "", MatchToken, MatchStem:
	default:
		return fmt.Errorf("textrazor: invalid dictionary match type %q", d.MatchType)
	}
	return nil
}

// DictionaryEntry is one entity in a custom dictionary.
type DictionaryEntry struct {
	// ID identifies the entry within its dictionary. Optional on creation;
	// the service generates one when empty.
	ID string `json:"id,omitempty"`
	// Text is the string matched against the document.
	Text string `json:"text"`
	// Data holds arbitrary metadata returned on every matching entity.
	Data map[string][]string `json:"data,omitempty"`
}

// CreateDictionary creates or replaces the dictionary identified by d.ID.
func (c *Client) CreateDictionary(ctx context.Context, d Dictionary) error {
	if err := d.validate(); err != nil {
		return err
	}
	return c.manage(ctx, http.MethodPut, "entities/"+d.ID, d, nil)
}

// Dictionaries lists all dictionaries on the account.
func (c *Client) Dictionaries(ctx context.Context) ([]Dictionary, error) {
	var out struct {
		Dictionaries []Dictionary `json:"dictionaries"`
	}
	if err := c.manage(ctx, http.MethodGet, "entities/", nil, &out); err != nil {
		return nil, err
	}
	return out.Dictionaries, nil
}

// Dictionary retrieves the dictionary identified by id.
func (c *Client) Dictionary(ctx context.Context, id string) (*Dictionary, error) {
	var out struct {
		Dictionary Dictionary `json:"dictionary"`
	}
	if err := c.manage(ctx, http.MethodGet, "entities/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Dictionary, nil
}

// DeleteDictionary deletes the dictionary identified by id and all its
// entries.
func (c *Client) DeleteDictionary(ctx context.Context, id string) error {
	return c.manage(ctx, http.MethodDelete, "entities/"+id, nil, nil)
}

// AddDictionaryEntries adds entries to the dictionary identified by
// dictionaryID. Every entry must have non-empty text.
func (c *Client) AddDictionaryEntries(ctx context.Context, dictionaryID string, entries []DictionaryEntry) error {
	for i := range entries {
		if entries[i].Text == "" {
			return fmt.Errorf("textrazor: dictionary entry %d has no text", i)
		}
	}
	return c.manage(ctx, http.MethodPost, "entities/"+dictionaryID+"/", entries, nil)
}

// DictionaryEntries lists the entries of the dictionary identified by
// dictionaryID, one page at a time. A limit of 0 returns the service default
// page size.
func (c *Client) DictionaryEntries(ctx context.Context, dictionaryID string, limit, offset int) ([]DictionaryEntry, error) {
	var out struct {
		Entries []DictionaryEntry `json:"entries"`
	}
	path := "entities/" + dictionaryID + "/_all" + pageQuery(limit, offset)
	if err := c.manage(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}

// DictionaryEntry retrieves one entry of the dictionary identified by
// dictionaryID.
func (c *Client) DictionaryEntry(ctx context.Context, dictionaryID, entryID string) (*DictionaryEntry, error) {
	var out struct {
		Entry DictionaryEntry `json:"entry"`
	}
	if err := c.manage(ctx, http.MethodGet, "entities/"+dictionaryID+"/"+entryID, nil, &out); err != nil {
		return nil, err
	}
	return &out.Entry, nil
}

// DeleteDictionaryEntry deletes one entry of the dictionary identified by
// dictionaryID.
func (c *Client) DeleteDictionaryEntry(ctx context.Context, dictionaryID, entryID string) error {
	return c.manage(ctx, http.MethodDelete, "entities/"+dictionaryID+"/"+entryID, nil, nil)
}
