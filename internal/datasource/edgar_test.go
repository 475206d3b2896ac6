package datasource

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestCoversFullYear(t *testing.T) {
	cases := []struct {
		start, end string
		want       bool
	}{
		{"2022-01-01", "2022-12-31", true},
		{"2022-10-01", "2022-12-31", false}, // quarterly restatement inside a 10-K
		{"2022-01-01", "2022-09-30", false},
		{"not-a-date", "2022-12-31", false},
		{"2022-01-01", "", false},
	}

	for _, tc := range cases {
		if got := coversFullYear(tc.start, tc.end); got != tc.want {
			t.Errorf("coversFullYear(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestResolveEdgarURL(t *testing.T) {
	indexURL := "https://www.sec.gov/Archives/edgar/data/320193/000032019323000106/index.htm"

	got := resolveEdgarURL(indexURL, "aapl-20230930.htm")
	want := "https://www.sec.gov/Archives/edgar/data/320193/000032019323000106/aapl-20230930.htm"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	got = resolveEdgarURL(indexURL, "/Archives/edgar/data/320193/doc.htm")
	want = "https://www.sec.gov/Archives/edgar/data/320193/doc.htm"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	absolute := "https://www.sec.gov/somewhere/else.htm"
	if got := resolveEdgarURL(indexURL, absolute); got != absolute {
		t.Errorf("Expected absolute URL passthrough, got %s", got)
	}
}

const sampleFilingHTML = `<html><body>
<b>Item 1A. Risk Factors</b>
<b>Competition may materially reduce our operating margins</b>
<b>Supply chain disruption could delay product deliveries</b>
<b>Item 1B. Unresolved Staff Comments</b>
<p>Note 1 Summary of significant accounting policies</p>
<p>Note 2 Revenue recognition</p>
<table>
<tr><td>Revenue</td></tr>
<tr><td>Segment revenue detail</td></tr>
<tr><td>Cost of sales</td></tr>
</table>
<p>Item 7. Management's Discussion and Analysis of Financial Condition</p>
<p>Revenue grew on strength in services while product demand held steady.</p>
<p>Item 7A. Quantitative and Qualitative Disclosures About Market Risk</p>
</body></html>`

func TestExtractDepthMetrics(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sampleFilingHTML))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	set := extractDepthMetrics(doc)

	if set.LineItems != 3 {
		t.Errorf("Expected 3 line items, got %f", set.LineItems)
	}
	if set.DisclosureSections != 2 {
		t.Errorf("Expected 2 disclosure sections, got %f", set.DisclosureSections)
	}
	if set.SegmentDetails != 1 {
		t.Errorf("Expected 1 segment row, got %f", set.SegmentDetails)
	}
	if set.RiskFactors != 2 {
		t.Errorf("Expected 2 risk factor headings, got %f", set.RiskFactors)
	}
	if set.MDAndAPages <= 0 || set.MDAndAPages > 1 {
		t.Errorf("Expected fractional MD&A page estimate, got %f", set.MDAndAPages)
	}
}

func TestExtractDepthMetricsEmptyDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	set := extractDepthMetrics(doc)
	if set.LineItems != 0 || set.DisclosureSections != 0 || set.RiskFactors != 0 {
		t.Errorf("Expected zero metrics for empty document, got %+v", set)
	}
}
