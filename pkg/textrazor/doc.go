// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textrazor is a client for the TextRazor natural language analysis
// API. A Client submits text or URLs for analysis and returns a Response
// whose flat annotation lists have been linked into a navigable graph:
// entities know their words, words know their sentences' dependency trees,
// relations know their params, and custom rule annotations link back to the
// annotations they reference.
//
// Analysis failures reported by the service (ok=false) are returned on the
// Response so partial results stay inspectable. Transport failures and
// management operation failures return an *AnalysisError.
package textrazor
