// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchDetailsBatching(t *testing.T) {
	var batchSizes []int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		batchSizes = append(batchSizes, len(ids))

		var b strings.Builder
		b.WriteString("<PubmedArticleSet>")
		for _, id := range ids {
			b.WriteString(articleXML(id, "Title "+id, "Jane Doe"))
		}
		b.WriteString("</PubmedArticleSet>")
		fmt.Fprint(w, b.String())
	}))
	defer ts.Close()

	old := eFetchBase
	eFetchBase = ts.URL
	defer func() { eFetchBase = old }()

	pmids := make([]string, 250)
	for i := range pmids {
		pmids[i] = fmt.Sprintf("%d", i+1)
	}

	c := testClient(testCfg())
	var buf bytes.Buffer
	result := c.FetchDetails(context.Background(), pmids, &buf)

	if len(batchSizes) != 2 || batchSizes[0] != 200 || batchSizes[1] != 50 {
		t.Errorf("batch sizes = %v, want [200 50]", batchSizes)
	}
	if len(result.Papers) != 250 {
		t.Fatalf("len(papers) = %d, want 250", len(result.Papers))
	}
	// Concatenation must preserve batch order and in-batch order.
	if result.Papers[0].PMID != "1" || result.Papers[199].PMID != "200" || result.Papers[249].PMID != "250" {
		t.Errorf("papers out of order: first=%s, [199]=%s, last=%s",
			result.Papers[0].PMID, result.Papers[199].PMID, result.Papers[249].PMID)
	}
}

func TestFetchDetailsFailedBatchSkipAndContinue(t *testing.T) {
	var call int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call++
		if call == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		var b strings.Builder
		b.WriteString("<PubmedArticleSet>")
		for _, id := range ids {
			b.WriteString(articleXML(id, "Title "+id, "Jane Doe"))
		}
		b.WriteString("</PubmedArticleSet>")
		fmt.Fprint(w, b.String())
	}))
	defer ts.Close()

	old := eFetchBase
	eFetchBase = ts.URL
	defer func() { eFetchBase = old }()

	pmids := make([]string, 250)
	for i := range pmids {
		pmids[i] = fmt.Sprintf("%d", i+1)
	}

	c := testClient(testCfg())
	var buf bytes.Buffer
	result := c.FetchDetails(context.Background(), pmids, &buf)

	if result.FailedBatches != 1 {
		t.Errorf("FailedBatches = %d, want 1", result.FailedBatches)
	}
	// The second batch (PMIDs 201-250) must still come through.
	if len(result.Papers) != 50 {
		t.Fatalf("len(papers) = %d, want 50", len(result.Papers))
	}
	if result.Papers[0].PMID != "201" {
		t.Errorf("first surviving paper = %s, want 201", result.Papers[0].PMID)
	}
	if !strings.Contains(buf.String(), "warning") {
		t.Errorf("expected a warning line for the failed batch, got %q", buf.String())
	}
}

func TestFetchDetailsSkipsMalformedRecords(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<PubmedArticleSet>`+
			articleXML("100", "Good paper", "Jane Doe")+
			`<PubmedArticle><MedlineCitation><Article><ArticleTitle>No PMID</ArticleTitle></Article></MedlineCitation></PubmedArticle>`+
			`</PubmedArticleSet>`)
	}))
	defer ts.Close()

	old := eFetchBase
	eFetchBase = ts.URL
	defer func() { eFetchBase = old }()

	c := testClient(testCfg())
	var buf bytes.Buffer
	result := c.FetchDetails(context.Background(), []string{"100", "101"}, &buf)

	if len(result.Papers) != 1 {
		t.Fatalf("len(papers) = %d, want 1", len(result.Papers))
	}
	if result.SkippedRecords != 1 {
		t.Errorf("SkippedRecords = %d, want 1", result.SkippedRecords)
	}
}

func TestFetchDetailsEmptyInput(t *testing.T) {
	c := testClient(testCfg())
	var buf bytes.Buffer
	result := c.FetchDetails(context.Background(), nil, &buf)
	if len(result.Papers) != 0 || result.FailedBatches != 0 {
		t.Errorf("empty input should make no requests, got %+v", result)
	}
}

// --- parsing ---

func TestParseArticleAuthorsAndAffiliations(t *testing.T) {
	raw := `<PubmedArticle><MedlineCitation><PMID>42</PMID><Article>
		<ArticleTitle> A Study of Things </ArticleTitle>
		<Journal><JournalIssue><PubDate><Year>2022</Year><Month>Nov</Month><Day>3</Day></PubDate></JournalIssue></Journal>
		<AuthorList>
			<Author>
				<LastName>Smith</LastName><ForeName>Alice</ForeName>
				<AffiliationInfo><Affiliation>Pfizer Inc., New York, NY. alice.smith@pfizer.com.</Affiliation></AffiliationInfo>
				<AffiliationInfo><Affiliation>Harvard University</Affiliation></AffiliationInfo>
			</Author>
			<Author>
				<LastName>Jones</LastName><Initials>B</Initials>
			</Author>
			<Author>
				<CollectiveName>The COVID Study Group</CollectiveName>
			</Author>
		</AuthorList>
	</Article></MedlineCitation></PubmedArticle>`

	var a pubmedArticle
	if err := xml.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p, ok := parseArticle(a)
	if !ok {
		t.Fatal("parseArticle() rejected a well-formed record")
	}

	if p.PMID != "42" {
		t.Errorf("PMID = %q", p.PMID)
	}
	if p.Title != "A Study of Things" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.PubDate != "2022-Nov-3" {
		t.Errorf("PubDate = %q, want 2022-Nov-3", p.PubDate)
	}
	if len(p.Authors) != 3 {
		t.Fatalf("len(authors) = %d, want 3", len(p.Authors))
	}
	if p.Authors[0].Name != "Alice Smith" {
		t.Errorf("author[0] = %q", p.Authors[0].Name)
	}
	if len(p.Authors[0].Affiliations) != 2 {
		t.Errorf("author[0] affiliations = %v", p.Authors[0].Affiliations)
	}
	if p.Authors[0].Email != "alice.smith@pfizer.com" {
		t.Errorf("author[0] email = %q", p.Authors[0].Email)
	}
	if p.Authors[1].Name != "B Jones" {
		t.Errorf("author[1] = %q, want initials fallback", p.Authors[1].Name)
	}
	if p.Authors[2].Name != "The COVID Study Group" {
		t.Errorf("author[2] = %q, want collective name", p.Authors[2].Name)
	}
}

func TestNormalizePubDate(t *testing.T) {
	tests := []struct {
		name string
		in   pubDate
		want string
	}{
		{"full date", pubDate{Year: "2023", Month: "Jan", Day: "15"}, "2023-Jan-15"},
		{"year and month", pubDate{Year: "2023", Month: "Jan"}, "2023-Jan"},
		{"year only", pubDate{Year: "2023"}, "2023"},
		{"day without month ignored", pubDate{Year: "2023", Day: "15"}, "2023"},
		{"medline date range", pubDate{MedlineDate: "2019 Jan-Feb"}, "2019"},
		{"medline date no year", pubDate{MedlineDate: "Winter"}, ""},
		{"empty", pubDate{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizePubDate(tt.in); got != tt.want {
				t.Errorf("normalizePubDate(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Contact: jane@acme.com", "jane@acme.com"},
		{"trailing period", "Dept of X, Acme Corp. jane.doe@acme.co.uk.", "jane.doe@acme.co.uk"},
		{"first of several", "a@x.org and b@y.org", "a@x.org"},
		{"none", "Harvard Medical School, Boston, MA", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractEmail(tt.in); got != tt.want {
				t.Errorf("ExtractEmail(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
