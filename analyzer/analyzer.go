package analyzer

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/halchemylab/marketing-seo-meta-tag-analyzer/stats"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

type cacheEntry struct {
	report    *Report
	timestamp time.Time
}

// Analyzer fetches a page, runs the four category analyses and caches the
// resulting reports.
type Analyzer struct {
	client          *http.Client
	prober          Prober
	logger          *zap.Logger
	stats           *stats.Storage
	cache           map[string]cacheEntry
	cacheMutex      sync.RWMutex
	cacheTTL        time.Duration
	maxCacheSize    int
	lastCleanup     time.Time
	cleanupInterval time.Duration
}

// New creates an Analyzer persisting usage statistics under dataDir.
func New(dataDir string, logger *zap.Logger) (*Analyzer, error) {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	statsStorage, err := stats.NewStorage(dataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing stats storage: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		client: &http.Client{
			Timeout:   fetchTimeout,
			Transport: transport,
		},
		prober:          newHTTPProber(transport, userAgent),
		logger:          logger,
		stats:           statsStorage,
		cache:           make(map[string]cacheEntry),
		cacheTTL:        30 * time.Minute,
		maxCacheSize:    1000,
		cleanupInterval: 5 * time.Minute,
		lastCleanup:     time.Now(),
	}, nil
}

// SetProber substitutes the robots/sitemap prober, mainly for tests.
func (a *Analyzer) SetProber(p Prober) {
	a.prober = p
}

// SetCacheTTL sets how long cached reports stay valid.
func (a *Analyzer) SetCacheTTL(ttl time.Duration) {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cacheTTL = ttl
}

// ClearCache drops all cached reports.
func (a *Analyzer) ClearCache() {
	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()
	a.cache = make(map[string]cacheEntry)
}

// IsCached reports whether a fresh report exists for the URL.
func (a *Analyzer) IsCached(rawURL string) bool {
	a.cacheMutex.RLock()
	defer a.cacheMutex.RUnlock()
	entry, found := a.cache[cacheKey(rawURL)]
	return found && time.Since(entry.timestamp) < a.cacheTTL
}

func cacheKey(rawURL string) string {
	hash := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(hash[:])
}

// Analyze runs a full analysis, serving a cached report when fresh. The
// run is bounded by the page fetch timeout plus one timeout per probe.
func (a *Analyzer) Analyze(rawURL string) (*Report, error) {
	if time.Since(a.lastCleanup) > a.cleanupInterval {
		go a.cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout+2*probeTimeout)
	defer cancel()

	key := cacheKey(rawURL)
	a.cacheMutex.RLock()
	if entry, found := a.cache[key]; found && time.Since(entry.timestamp) < a.cacheTTL {
		a.cacheMutex.RUnlock()
		a.stats.RecordCacheHit()
		return entry.report, nil
	}
	a.cacheMutex.RUnlock()
	a.stats.RecordCacheMiss()

	report, err := a.AnalyzeWithContext(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	a.cacheMutex.Lock()
	a.cache[key] = cacheEntry{report: report, timestamp: time.Now()}
	a.cacheMutex.Unlock()

	return report, nil
}

// AnalyzeWithContext fetches, parses and scores the page. Content and
// link analyses run concurrently with meta; technical runs after meta
// because it reads the extracted viewport value.
func (a *Analyzer) AnalyzeWithContext(ctx context.Context, rawURL string) (*Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	fetched, err := a.fetchPage(req)
	if err != nil {
		a.stats.RecordFetchError()
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fetched.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	baseURL, err := url.Parse(fetched.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing final URL: %w", err)
	}

	report := &Report{
		RequestedURL:    rawURL,
		FinalURL:        fetched.FinalURL,
		Redirected:      !strings.EqualFold(rawURL, fetched.FinalURL),
		ContentTypeWarn: fetched.ContentTypeWarn,
		ElapsedSeconds:  fetched.ElapsedSeconds,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		report.Content, report.ContentScore = AnalyzeContent(doc)
	}()
	go func() {
		defer wg.Done()
		report.Links, report.LinkScore = AnalyzeLinks(doc, baseURL)
	}()

	report.Meta, report.MetaScore = AnalyzeMeta(doc, baseURL)
	report.Technical, report.TechnicalScore = AnalyzeTechnical(ctx, fetched.FinalURL, doc, fetched.ElapsedSeconds, report.Meta, a.prober)
	wg.Wait()

	report.OverallScore = Aggregate(
		report.MetaScore.Percentage,
		report.ContentScore.Percentage,
		report.LinkScore.Percentage,
		report.TechnicalScore.Percentage,
	)
	report.Recommendations = buildRecommendations(report)

	a.stats.RecordAnalysis(fetched.ElapsedSeconds)
	a.logger.Info("analysis complete",
		zap.String("url", fetched.FinalURL),
		zap.Float64("overall", report.OverallScore),
		zap.Float64("elapsedSeconds", fetched.ElapsedSeconds),
	)

	return report, nil
}

// cleanup evicts expired cache entries and enforces the size cap, oldest
// first.
func (a *Analyzer) cleanup() {
	now := time.Now()

	a.cacheMutex.Lock()
	defer a.cacheMutex.Unlock()

	for key, entry := range a.cache {
		if now.Sub(entry.timestamp) > a.cacheTTL {
			delete(a.cache, key)
		}
	}

	if len(a.cache) > a.maxCacheSize {
		type aged struct {
			key       string
			timestamp time.Time
		}
		entries := make([]aged, 0, len(a.cache))
		for key, entry := range a.cache {
			entries = append(entries, aged{key, entry.timestamp})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].timestamp.Before(entries[j].timestamp)
		})
		for i := 0; i < len(entries)-a.maxCacheSize; i++ {
			delete(a.cache, entries[i].key)
		}
	}

	a.lastCleanup = now
}

// GetStats exposes the usage statistics storage.
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// Shutdown flushes statistics and drops the cache.
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}
	if a.stats != nil {
		if err := a.stats.Shutdown(); err != nil {
			return fmt.Errorf("shutting down stats storage: %w", err)
		}
	}
	a.cacheMutex.Lock()
	a.cache = nil
	a.cacheMutex.Unlock()
	return nil
}
