// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides whether author affiliations denote a
// pharmaceutical/biotech company or an academic institution, and builds
// the per-paper summaries that qualify for output.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// suffixPattern matches an organization name ending in a corporate suffix
// ("Acme Biosciences Inc", "Grünenthal GmbH"). Case-insensitive: affiliation
// casing is not reliable upstream.
var suffixPattern = regexp.MustCompile(`(?i)[A-Z][A-Za-z&\- ]+?(?:Incorporated|Inc|Corporation|Corp|Ltd|Limited|LLC|PLC|AG|S\.A|SA|BV|NV|GmbH)\b\.?`)

// industryPattern matches an organization name ending in an industry term
// ("Kronos Pharmaceuticals", "Helix Therapeutics"). Case-insensitive like
// suffixPattern.
var industryPattern = regexp.MustCompile(`(?i)[A-Z][A-Za-z&\- ]+?(?:Pharmaceuticals?|Pharma|Biotechnology|Biotech|Therapeutics|Biosciences|Laboratories)\b`)

// punctReplacer flattens punctuation variance before substring checks, so
// "Pfizer, Inc." and "Pfizer Inc" normalize alike.
var punctReplacer = strings.NewReplacer(".", " ", ",", " ", ";", " ", ":", " ", "(", " ", ")", " ")

// Classification is the decision for one affiliation string.
type Classification struct {
	Company bool
	// Name is the canonical or extracted company name when Company is true.
	Name string
}

// ClassifyAffiliation decides whether one affiliation string denotes a
// pharma/biotech company. Pure function of the string and the lookup
// tables. Decision order:
//
//  1. known-company substring match (beats everything),
//  2. academic-exclusion keyword → academic,
//  3. corporate-suffix or industry-term pattern → company, using the
//     trimmed matched substring as the name,
//  4. otherwise academic/unknown.
func ClassifyAffiliation(affiliation string, lists Lists) Classification {
	norm := normalize(affiliation)
	if norm == "" {
		return Classification{}
	}

	// A known company name is the stronger signal and wins even when
	// academic keywords appear in the same string.
	for _, c := range lists.Companies {
		if matchesCompany(norm, c) {
			return Classification{Company: true, Name: c.Name}
		}
	}

	if containsAny(norm, lists.AcademicKeywords) {
		return Classification{}
	}

	// Industry-term names carry the signal on their own; bare corporate
	// suffixes need an industry keyword somewhere in the string.
	if m := industryPattern.FindString(affiliation); m != "" {
		if name := cleanCompanyName(m); name != "" {
			return Classification{Company: true, Name: name}
		}
	}
	if m := suffixPattern.FindString(affiliation); m != "" && containsAny(norm, lists.IndustryKeywords) {
		if name := cleanCompanyName(m); name != "" {
			return Classification{Company: true, Name: name}
		}
	}

	return Classification{}
}

// ClassifyPaper classifies every author of a paper. An author with at
// least one company-classified affiliation is company-affiliated overall;
// the first matching affiliation supplies the company name.
func ClassifyPaper(p types.Paper, lists Lists) []types.ClassifiedAuthor {
	classified := make([]types.ClassifiedAuthor, 0, len(p.Authors))
	for _, a := range p.Authors {
		ca := types.ClassifiedAuthor{Author: a}
		for _, aff := range a.Affiliations {
			if c := ClassifyAffiliation(aff, lists); c.Company {
				ca.CompanyAffiliated = true
				ca.Company = c.Name
				break
			}
		}
		classified = append(classified, ca)
	}
	return classified
}

// Summarize builds the output row for a paper, or nil when no author is
// company-affiliated. Author and company lists are deduplicated in
// first-seen order. The email is the first found among company-affiliated
// authors, falling back to the first found anywhere.
func Summarize(p types.Paper, classified []types.ClassifiedAuthor) *types.PaperSummary {
	var (
		authors     []string
		companies   []string
		seenAuthor  = map[string]bool{}
		seenCompany = map[string]bool{}
		email       string
		anyEmail    string
	)

	for _, ca := range classified {
		if ca.Email != "" && anyEmail == "" {
			anyEmail = ca.Email
		}
		if !ca.CompanyAffiliated {
			continue
		}
		if !seenAuthor[ca.Name] {
			seenAuthor[ca.Name] = true
			authors = append(authors, ca.Name)
		}
		if !seenCompany[ca.Company] {
			seenCompany[ca.Company] = true
			companies = append(companies, ca.Company)
		}
		if email == "" && ca.Email != "" {
			email = ca.Email
		}
	}

	if len(authors) == 0 {
		return nil
	}
	if email == "" {
		email = anyEmail
	}

	return &types.PaperSummary{
		PMID:               p.PMID,
		Title:              p.Title,
		PubDate:            p.PubDate,
		NonAcademicAuthors: authors,
		Companies:          companies,
		CorrespondingEmail: email,
	}
}

// SummarizeAll runs classification over a set of papers and keeps only the
// qualifying ones, in input order.
func SummarizeAll(papers []types.Paper, lists Lists) []types.PaperSummary {
	var summaries []types.PaperSummary
	for _, p := range papers {
		if s := Summarize(p, ClassifyPaper(p, lists)); s != nil {
			summaries = append(summaries, *s)
		}
	}
	return summaries
}

// normalize lowercases and flattens punctuation for substring checks.
func normalize(s string) string {
	s = punctReplacer.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), " ")
}

func matchesCompany(norm string, c Company) bool {
	if strings.Contains(norm, normalize(c.Name)) {
		return true
	}
	for _, alias := range c.Aliases {
		if strings.Contains(norm, normalize(alias)) {
			return true
		}
	}
	return false
}

// containsAny matches keywords against the normalized string. Keywords are
// normalized too, so user-supplied tables need not be lowercase.
func containsAny(norm string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(norm, normalize(kw)) {
			return true
		}
	}
	return false
}

// cleanCompanyName trims a pattern match down to a presentable name.
// Very short matches are discarded as noise.
func cleanCompanyName(m string) string {
	m = strings.Join(strings.Fields(m), " ")
	m = strings.TrimRight(m, ".,;: ")
	if len(m) <= 3 {
		return ""
	}
	return m
}
