// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the get-papers-list pipeline.
// All records are immutable values created fresh per run; nothing here
// persists beyond one invocation.
package types

// Author is one paper author with the raw affiliation strings attached to
// them in the source metadata.
type Author struct {
	// Name is the display name ("ForeName LastName", or the collective
	// name for group authorships).
	Name string `json:"name" yaml:"name"`

	// Affiliations lists the raw affiliation strings in source order.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`

	// Email is the first email address found in the author's affiliation
	// text, if any.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Paper holds the metadata fetched for one PubMed record.
type Paper struct {
	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication date, best-effort normalized to
	// "Year", "Year-Month", or "Year-Month-Day" as supplied upstream.
	PubDate string `json:"publication_date" yaml:"publication_date"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`
}

// ClassifiedAuthor is an Author plus the company-affiliation decision.
type ClassifiedAuthor struct {
	Author

	// CompanyAffiliated reports whether at least one of the author's
	// affiliation strings classified as a pharma/biotech company.
	CompanyAffiliated bool `json:"company_affiliated" yaml:"company_affiliated"`

	// Company is the matched company name when CompanyAffiliated is true.
	// When multiple affiliations match, the first match wins.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
}

// PaperSummary is one output row: a paper with at least one
// company-affiliated author. Name lists are deduplicated and keep
// first-seen order.
type PaperSummary struct {
	PMID    string `json:"pmid" yaml:"pmid"`
	Title   string `json:"title" yaml:"title"`
	PubDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors lists the names of company-affiliated authors.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// Companies lists the distinct matched company names.
	Companies []string `json:"companies" yaml:"companies"`

	// CorrespondingEmail is the best-effort contact email: the first email
	// found among company-affiliated authors, else the first email found
	// anywhere in the paper.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}
