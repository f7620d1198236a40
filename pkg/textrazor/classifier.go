// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textrazor

import (
	"context"
	"fmt"
	"net/http"
)

// Category is one category of a custom classifier. Documents analyzed with
// the classifier selected in Options.Classifiers are scored against every
// category.
type Category struct {
	// CategoryID identifies the category within its classifier. Required.
	CategoryID string `json:"categoryId"`
	// Label is a human-readable name for the category.
	Label string `json:"label,omitempty"`
	// Query is the TextRazor query expression that defines the category.
	// Required.
	Query string `json:"query"`
}

func (cat *Category) validate() error {
	if cat.CategoryID == "" {
		return fmt.Errorf("textrazor: category id is required")
	}
	if cat.Query == "" {
		return fmt.Errorf("textrazor: category query is required")
	}
	return nil
}

// CreateClassifier creates or replaces the classifier identified by id with
// the given categories.
func (c *Client) CreateClassifier(ctx context.Context, id string, categories []Category) error {
	if id == "" {
		return fmt.Errorf("textrazor: classifier id is required")
	}
	for i := range categories {
		if err := categories[i].validate(); err != nil {
			return err
		}
	}
	return c.manage(ctx, http.MethodPut, "categories/"+id, categories, nil)
}

// DeleteClassifier deletes the classifier identified by id and all its
// categories.
func (c *Client) DeleteClassifier(ctx context.Context, id string) error {
	return c.manage(ctx, http.MethodDelete, "categories/"+id, nil, nil)
}

// ClassifierCategories lists the categories of the classifier identified by
// classifierID, one page at a time. A limit of 0 returns the service default
// page size.
func (c *Client) ClassifierCategories(ctx context.Context, classifierID string, limit, offset int) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	path := "categories/" + classifierID + "/_all" + pageQuery(limit, offset)
	if err := c.manage(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// ClassifierCategory retrieves one category of the classifier identified by
// classifierID.
func (c *Client) ClassifierCategory(ctx context.Context, classifierID, categoryID string) (*Category, error) {
	var out struct {
		Category Category `json:"category"`
	}
	if err := c.manage(ctx, http.MethodGet, "categories/"+classifierID+"/"+categoryID, nil, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

// DeleteClassifierCategory deletes one category of the classifier identified
// by classifierID.
func (c *Client) DeleteClassifierCategory(ctx context.Context, classifierID, categoryID string) error {
	return c.manage(ctx, http.MethodDelete, "categories/"+classifierID+"/"+categoryID, nil, nil)
}
