package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"fundamental-screener/internal/api"
	"fundamental-screener/internal/logger"
	"fundamental-screener/internal/screening"
)

const (
	edgarDataHost   = "https://data.sec.gov"
	edgarSiteHost   = "https://www.sec.gov"
	tickerIndexPath = "/files/company_tickers.json"
)

// revenue concepts in rough order of preference across filers
var revenueConcepts = []string{
	"RevenueFromContractWithCustomerExcludingAssessedTax",
	"Revenues",
	"SalesRevenueNet",
	"RevenueFromContractWithCustomerIncludingAssessedTax",
}

// EdgarConfig configures the live EDGAR-backed data provider.
type EdgarConfig struct {
	UserAgent   string        `yaml:"user_agent"`
	CacheDir    string        `yaml:"cache_dir"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	Timeout     time.Duration `yaml:"timeout"`
	FilingYears int           `yaml:"filing_years"`
}

// EdgarProvider fetches revenue history from the XBRL companyfacts API and
// measures 10-K disclosure depth by crawling the filings themselves.
// Implements screening.FinancialDataProvider.
type EdgarProvider struct {
	cfg     EdgarConfig
	client  *api.Client
	cache   *Cache
	limiter *RateLimiter
	diag    *Diagnostics

	cikByTicker map[string]int
}

// NewEdgarProvider creates a provider ready to serve the screening pipeline.
func NewEdgarProvider(cfg EdgarConfig) (*EdgarProvider, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.FilingYears <= 0 {
		cfg.FilingYears = 3
	}

	diag, err := NewDiagnostics("")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fetch diagnostics: %w", err)
	}

	opts := []api.ClientOption{api.WithTimeout(cfg.Timeout), api.WithLogging(true)}
	for k, v := range api.EdgarHeaders(cfg.UserAgent) {
		opts = append(opts, api.WithHeader(k, v))
	}
	client := api.NewClient(opts...)

	return &EdgarProvider{
		cfg:     cfg,
		client:  client,
		cache:   NewCache(cfg.CacheDir, cfg.CacheTTL),
		limiter: NewRateLimiter(10, 100*time.Millisecond),
		diag:    diag,
	}, nil
}

// Close flushes diagnostics.
func (p *EdgarProvider) Close() {
	p.diag.Close()
}

// FetchCompanyRecords resolves each ticker to a CIK and assembles its
// financial history plus 10-K depth metrics.
func (p *EdgarProvider) FetchCompanyRecords(ctx context.Context, tickers []string) ([]screening.CompanyRecord, error) {
	if err := p.loadTickerIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to load EDGAR ticker index: %w", err)
	}

	records := make([]screening.CompanyRecord, 0, len(tickers))
	for _, ticker := range tickers {
		record, err := p.fetchCompany(ctx, ticker)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch company data", err, "ticker", ticker)
			// Marked records are counted as failed by the screener instead
			// of silently shrinking the universe.
			records = append(records, screening.CompanyRecord{Ticker: ticker, FetchError: err.Error()})
			continue
		}
		records = append(records, *record)
	}
	return records, nil
}

func (p *EdgarProvider) fetchCompany(ctx context.Context, ticker string) (*screening.CompanyRecord, error) {
	cik, ok := p.cikByTicker[strings.ToUpper(ticker)]
	if !ok {
		return nil, fmt.Errorf("unknown ticker %q: no CIK mapping", ticker)
	}

	periods, err := p.fetchRevenuePeriods(ctx, cik)
	if err != nil {
		return nil, err
	}

	depth, err := p.fetchDepthMetrics(ctx, cik)
	if err != nil {
		// Depth metrics degrade gracefully downstream; log and continue.
		logger.Warn(ctx, "10-K depth extraction failed", "ticker", ticker, "cik", cik, "error", err)
		depth = nil
	}

	return &screening.CompanyRecord{
		Ticker:  strings.ToUpper(ticker),
		Periods: periods,
		Depth:   depth,
	}, nil
}

// loadTickerIndex fetches the SEC's ticker-to-CIK mapping once per provider.
func (p *EdgarProvider) loadTickerIndex(ctx context.Context) error {
	if p.cikByTicker != nil {
		return nil
	}

	body, err := p.fetchCached(ctx, edgarSiteHost+tickerIndexPath)
	if err != nil {
		return err
	}

	// The index is a map of row number to {cik_str, ticker, title}
	var raw map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("failed to parse ticker index: %w", err)
	}

	p.cikByTicker = make(map[string]int, len(raw))
	for _, row := range raw {
		p.cikByTicker[strings.ToUpper(row.Ticker)] = row.CIK
	}
	return nil
}

type factEntry struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Val   float64 `json:"val"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"`
	Form  string  `json:"form"`
	Frame string  `json:"frame"`
}

type companyFacts struct {
	EntityName string `json:"entityName"`
	Facts      map[string]map[string]struct {
		Units map[string][]factEntry `json:"units"`
	} `json:"facts"`
}

// fetchRevenuePeriods pulls quarterly and annual revenue from companyfacts.
func (p *EdgarProvider) fetchRevenuePeriods(ctx context.Context, cik int) ([]screening.FinancialPeriod, error) {
	factsURL := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%010d.json", edgarDataHost, cik)
	body, err := p.fetchCached(ctx, factsURL)
	if err != nil {
		return nil, err
	}

	var facts companyFacts
	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse companyfacts for CIK %d: %w", cik, err)
	}

	gaap, ok := facts.Facts["us-gaap"]
	if !ok {
		return nil, fmt.Errorf("no us-gaap facts for CIK %d", cik)
	}

	var entries []factEntry
	for _, concept := range revenueConcepts {
		fact, ok := gaap[concept]
		if !ok {
			continue
		}
		if usd, ok := fact.Units["USD"]; ok && len(usd) > 0 {
			entries = usd
			break
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no revenue concept found for CIK %d", cik)
	}

	periods := make([]screening.FinancialPeriod, 0, len(entries))
	seen := make(map[string]bool)
	for _, e := range entries {
		key := fmt.Sprintf("%d-%s", e.FY, e.FP)
		if seen[key] || e.Val <= 0 {
			continue
		}

		switch {
		case e.Form == "10-Q" && strings.HasPrefix(e.FP, "Q"):
			periods = append(periods, screening.FinancialPeriod{
				PeriodLabel: fmt.Sprintf("%s-%d", e.FP, e.FY),
				PeriodType:  screening.PeriodQuarter,
				FiscalYear:  e.FY,
				Revenue:     e.Val,
			})
			seen[key] = true
		case e.Form == "10-K" && e.FP == "FY" && coversFullYear(e.Start, e.End):
			periods = append(periods, screening.FinancialPeriod{
				PeriodLabel: fmt.Sprintf("FY-%d", e.FY),
				PeriodType:  screening.PeriodAnnual,
				FiscalYear:  e.FY,
				Revenue:     e.Val,
			})
			seen[key] = true
		}
	}

	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].FiscalYear != periods[j].FiscalYear {
			return periods[i].FiscalYear < periods[j].FiscalYear
		}
		return periods[i].PeriodLabel < periods[j].PeriodLabel
	})

	return periods, nil
}

// coversFullYear filters out 10-K facts that only restate a single quarter.
func coversFullYear(start, end string) bool {
	s, err1 := time.Parse("2006-01-02", start)
	e, err2 := time.Parse("2006-01-02", end)
	if err1 != nil || err2 != nil {
		return false
	}
	return e.Sub(s) > 300*24*time.Hour
}

// fetchDepthMetrics crawls the company's recent 10-K filings and measures
// disclosure depth in each.
func (p *EdgarProvider) fetchDepthMetrics(ctx context.Context, cik int) ([]screening.DepthMetricSet, error) {
	indexURLs, err := p.crawlFilingIndex(ctx, cik)
	if err != nil {
		return nil, err
	}
	if len(indexURLs) == 0 {
		return nil, fmt.Errorf("no 10-K filings found for CIK %d", cik)
	}

	sets := make([]screening.DepthMetricSet, 0, len(indexURLs))
	for i, indexURL := range indexURLs {
		if i >= p.cfg.FilingYears {
			break
		}
		set, err := p.analyzeFiling(ctx, indexURL)
		if err != nil {
			logger.Warn(ctx, "Skipping unparseable 10-K", "url", indexURL, "error", err)
			continue
		}
		sets = append(sets, *set)
	}
	return sets, nil
}

// crawlFilingIndex scrapes the EDGAR browse page for 10-K filing index URLs,
// newest first.
func (p *EdgarProvider) crawlFilingIndex(ctx context.Context, cik int) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.AllowedDomains("www.sec.gov"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(p.cfg.Timeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range api.EdgarHeaders(p.cfg.UserAgent) {
			r.Headers.Set(k, v)
		}
	})

	var indexURLs []string
	c.OnHTML("a#documentsbutton, a[id=documentsbutton]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if href == "" {
			return
		}
		indexURLs = append(indexURLs, e.Request.AbsoluteURL(href))
	})

	var crawlErr error
	c.OnError(func(r *colly.Response, err error) {
		crawlErr = err
		logger.ErrorWithErr(ctx, "Filing index crawl error", err, "url", r.Request.URL.String())
	})

	browseURL := fmt.Sprintf(
		"%s/cgi-bin/browse-edgar?action=getcompany&CIK=%010d&type=10-K&dateb=&owner=include&count=%d",
		edgarSiteHost, cik, p.cfg.FilingYears+2,
	)
	start := time.Now()
	err := c.Visit(browseURL)
	c.Wait()
	p.diag.Fetch(browseURL, false, 0, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to crawl filing index: %w", err)
	}
	if crawlErr != nil && len(indexURLs) == 0 {
		return nil, crawlErr
	}
	return indexURLs, nil
}

var (
	noteHeadingRe = regexp.MustCompile(`(?i)^note\s+\d+`)
	itemRiskRe    = regexp.MustCompile(`(?i)item\s+1a`)
	itemRiskEndRe = regexp.MustCompile(`(?i)item\s+1b|item\s+2[^0-9]`)
	itemMDARe     = regexp.MustCompile(`(?i)item\s+7[^a0-9]`)
	itemMDAEndRe  = regexp.MustCompile(`(?i)item\s+7a|item\s+8[^0-9]`)
)

// analyzeFiling resolves the primary 10-K document from the filing index page
// and extracts depth metrics from its HTML.
func (p *EdgarProvider) analyzeFiling(ctx context.Context, indexURL string) (*screening.DepthMetricSet, error) {
	indexBody, err := p.fetchCached(ctx, indexURL)
	if err != nil {
		return nil, err
	}

	indexDoc, err := goquery.NewDocumentFromReader(strings.NewReader(string(indexBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse filing index page: %w", err)
	}

	// Filing period from the index page, e.g. "Period of Report 2023-12-31"
	fiscalYear := 0
	indexDoc.Find("div.formContent div.formGrouping").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if !strings.Contains(text, "Period of Report") {
			return
		}
		if t, err := time.Parse("2006-01-02", strings.TrimSpace(s.Find("div.info").Last().Text())); err == nil {
			fiscalYear = t.Year()
		}
	})

	// Primary document: first .htm row in the document table whose type is 10-K
	docURL := ""
	indexDoc.Find("table.tableFile tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		typeCell := strings.TrimSpace(row.Find("td").Eq(3).Text())
		if typeCell != "10-K" {
			return true
		}
		href, ok := row.Find("td a").First().Attr("href")
		if !ok {
			return true
		}
		docURL = resolveEdgarURL(indexURL, href)
		return false
	})
	if docURL == "" {
		return nil, fmt.Errorf("no primary 10-K document in index %s", indexURL)
	}

	docBody, err := p.fetchCached(ctx, docURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(docBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse 10-K document: %w", err)
	}

	set := extractDepthMetrics(doc)
	set.FiscalYear = fiscalYear
	return &set, nil
}

// extractDepthMetrics measures disclosure depth heuristically from 10-K HTML.
// The absolute values matter less than year-over-year consistency, since the
// screening compares a company against its own history.
func extractDepthMetrics(doc *goquery.Document) screening.DepthMetricSet {
	var set screening.DepthMetricSet

	set.LineItems = float64(doc.Find("table tr").Length())

	doc.Find("b, strong, td, p").Each(func(_ int, s *goquery.Selection) {
		if noteHeadingRe.MatchString(strings.TrimSpace(s.Text())) {
			set.DisclosureSections++
		}
	})

	doc.Find("table tr").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(strings.ToLower(s.Text()), "segment") {
			set.SegmentDetails++
		}
	})

	// Risk factor headings sit between Item 1A and Item 1B as bolded runs.
	inRisk := false
	doc.Find("b, strong").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		switch {
		case itemRiskRe.MatchString(text):
			inRisk = true
		case itemRiskEndRe.MatchString(text):
			inRisk = false
		case inRisk && len(text) > 25:
			set.RiskFactors++
		}
	})

	// MD&A length approximated at ~3000 rendered characters per page.
	fullText := doc.Text()
	if start := itemMDARe.FindStringIndex(fullText); start != nil {
		section := fullText[start[1]:]
		if end := itemMDAEndRe.FindStringIndex(section); end != nil {
			section = section[:end[0]]
		}
		set.MDAndAPages = float64(len(section)) / 3000
	}

	return set
}

func resolveEdgarURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	u, err := url.Parse(base)
	if err != nil {
		return edgarSiteHost + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return edgarSiteHost + href
	}
	return u.ResolveReference(ref).String()
}

// fetchCached performs a rate-limited GET with the cache in front.
func (p *EdgarProvider) fetchCached(ctx context.Context, fetchURL string) ([]byte, error) {
	if data, ok := p.cache.Get(fetchURL); ok {
		p.diag.Fetch(fetchURL, true, len(data), 0, nil)
		return data, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := p.client.GETWithRetry(ctx, fetchURL, nil)
	if err != nil {
		p.diag.Fetch(fetchURL, false, 0, time.Since(start), err)
		return nil, err
	}
	p.diag.Fetch(fetchURL, false, len(resp.Body), time.Since(start), nil)

	p.cache.Set(fetchURL, resp.Body)
	return resp.Body, nil
}
