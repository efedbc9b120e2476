// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/get-papers-list/internal/httputil"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// emailPattern matches the first email address embedded in affiliation text.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// yearPattern recovers a bare year from MedlineDate strings like "2023 Jan-Feb".
var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// FetchResult holds the outcome of a batched detail fetch.
type FetchResult struct {
	Papers         []types.Paper
	FailedBatches  int
	SkippedRecords int
}

// FetchDetails fetches full records for the given PMIDs in batches,
// concatenating results in batch order. A failed batch yields zero papers
// and a warning line on w; the run continues with the next batch.
// Malformed individual records are skipped the same way.
func (c *Client) FetchDetails(ctx context.Context, pmids []string, w io.Writer) FetchResult {
	var result FetchResult
	for start := 0; start < len(pmids); start += batchSize {
		end := start + batchSize
		if end > len(pmids) {
			end = len(pmids)
		}
		batch := pmids[start:end]

		papers, skipped, err := c.fetchBatch(ctx, batch)
		if err != nil {
			fmt.Fprintf(w, "warning: batch %d-%d failed: %v\n", start+1, end, err)
			result.FailedBatches++
			continue
		}
		result.Papers = append(result.Papers, papers...)
		result.SkippedRecords += skipped
	}
	return result
}

// fetchBatch issues one efetch request and parses the XML article set.
func (c *Client) fetchBatch(ctx context.Context, pmids []string) ([]types.Paper, int, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
		"rettype": {"abstract"},
	}
	c.identify(params)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, eFetchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}

	var set articleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, 0, fmt.Errorf("parsing efetch response: %w", err)
	}

	var papers []types.Paper
	skipped := 0
	for _, a := range set.Articles {
		p, ok := parseArticle(a)
		if !ok {
			skipped++
			continue
		}
		papers = append(papers, p)
	}
	return papers, skipped, nil
}

// parseArticle converts one PubmedArticle element into a Paper. Records
// without a PMID are rejected.
func parseArticle(a pubmedArticle) (types.Paper, bool) {
	cit := a.MedlineCitation
	pmid := strings.TrimSpace(cit.PMID)
	if pmid == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		PMID:    pmid,
		Title:   strings.TrimSpace(cit.Article.Title),
		PubDate: normalizePubDate(cit.Article.Journal.Issue.PubDate),
	}

	for _, xa := range cit.Article.AuthorList.Authors {
		author := types.Author{Name: authorName(xa)}
		if author.Name == "" {
			continue
		}
		for _, aff := range xa.Affiliations {
			text := strings.TrimSpace(aff.Affiliation)
			if text == "" {
				continue
			}
			author.Affiliations = append(author.Affiliations, text)
			if author.Email == "" {
				author.Email = ExtractEmail(text)
			}
		}
		p.Authors = append(p.Authors, author)
	}

	return p, true
}

// authorName builds the display name: "ForeName LastName", falling back to
// "Initials LastName", then the collective name for group authorships.
func authorName(a xmlAuthor) string {
	last := strings.TrimSpace(a.LastName)
	fore := strings.TrimSpace(a.ForeName)
	if fore != "" && last != "" {
		return fore + " " + last
	}
	if initials := strings.TrimSpace(a.Initials); initials != "" && last != "" {
		return initials + " " + last
	}
	if last != "" {
		return last
	}
	return strings.TrimSpace(a.CollectiveName)
}

// normalizePubDate joins the structured date parts as "Year[-Month[-Day]]".
// When only a MedlineDate range is present the year is pulled out of it.
func normalizePubDate(d pubDate) string {
	year := strings.TrimSpace(d.Year)
	if year != "" {
		parts := []string{year}
		if month := strings.TrimSpace(d.Month); month != "" {
			parts = append(parts, month)
			if day := strings.TrimSpace(d.Day); day != "" {
				parts = append(parts, day)
			}
		}
		return strings.Join(parts, "-")
	}
	return yearPattern.FindString(d.MedlineDate)
}

// ExtractEmail returns the first email address found in text, with any
// trailing sentence punctuation trimmed. Empty when none is present.
func ExtractEmail(text string) string {
	return strings.TrimRight(emailPattern.FindString(text), ".")
}

// efetch XML structures (PubmedArticleSet subset).
type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string      `xml:"PMID"`
	Article articleElem `xml:"Article"`
}

type articleElem struct {
	Title      string      `xml:"ArticleTitle"`
	Journal    journalElem `xml:"Journal"`
	AuthorList authorList  `xml:"AuthorList"`
}

type journalElem struct {
	Issue journalIssue `xml:"JournalIssue"`
}

type journalIssue struct {
	PubDate pubDate `xml:"PubDate"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type authorList struct {
	Authors []xmlAuthor `xml:"Author"`
}

type xmlAuthor struct {
	LastName       string            `xml:"LastName"`
	ForeName       string            `xml:"ForeName"`
	Initials       string            `xml:"Initials"`
	CollectiveName string            `xml:"CollectiveName"`
	Affiliations   []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}
