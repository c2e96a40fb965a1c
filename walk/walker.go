package walk

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/scrape"
)

const (
	// DefaultMaxPages caps how many pages a single walk will extract.
	DefaultMaxPages = 1000

	// DefaultConcurrency is the number of concurrent page workers.
	DefaultConcurrency = 4

	// DefaultRPS is the per-domain request rate.
	DefaultRPS = 1.0

	// frontierExpectedURLs sizes the frontier's Bloom filter.
	frontierExpectedURLs = 10000

	// frontierFalsePositiveRate is the Bloom filter false positive rate.
	frontierFalsePositiveRate = 0.01

	// drainTimeout bounds how long the walk waits for in-flight workers
	// after the page cap is reached or the frontier empties.
	drainTimeout = 5 * time.Second
)

// detailPathMarkers are path fragments that suggest a product or profile
// detail page. Links matching one are visited before plain pages.
var detailPathMarkers = []string{"/product", "/products/", "/item", "/p/", "/dp/", "/in/"}

// Result holds the outcome of a walk.
type Result struct {
	Envelopes []*pagelens.Envelope
	Failed    int
}

// Walker fetches pages starting from a seed URL, extracts each through a
// scrape coordinator and follows same-host links until the frontier
// empties or MaxPages is reached.
type Walker struct {
	fetcher     pagelens.Fetcher
	coordinator *scrape.Coordinator
	limiter     *DomainLimiter

	maxPages    int
	concurrency int
	retryDelays []time.Duration

	// OnPage, if set, is called after each page completes, successfully
	// or not. It is called from worker goroutines.
	OnPage func(url string, env *pagelens.Envelope, err error)
}

// Option configures a Walker.
type Option func(*Walker)

// WithMaxPages caps the number of pages extracted per walk.
func WithMaxPages(n int) Option {
	return func(w *Walker) { w.maxPages = n }
}

// WithConcurrency sets the number of concurrent page workers.
func WithConcurrency(n int) Option {
	return func(w *Walker) { w.concurrency = n }
}

// WithRPS sets the per-domain request rate.
func WithRPS(rps float64) Option {
	return func(w *Walker) { w.limiter = NewDomainLimiter(rps) }
}

// WithRetryDelays overrides the fetch retry backoff schedule.
func WithRetryDelays(delays []time.Duration) Option {
	return func(w *Walker) { w.retryDelays = delays }
}

// NewWalker creates a Walker using the given fetcher and coordinator.
func NewWalker(fetcher pagelens.Fetcher, coordinator *scrape.Coordinator, opts ...Option) *Walker {
	w := &Walker{
		fetcher:     fetcher,
		coordinator: coordinator,
		limiter:     NewDomainLimiter(DefaultRPS),
		maxPages:    DefaultMaxPages,
		concurrency: DefaultConcurrency,
		retryDelays: DefaultRetryDelays,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// pageResult carries one processed page back to the coordinator loop.
type pageResult struct {
	url      string
	envelope *pagelens.Envelope
	links    []Link
	err      error
}

// Walk extracts pages starting from startURL. Only links on the same
// host as the seed are followed. Individual page failures are counted
// and do not abort the walk; Walk returns an error only for an invalid
// seed URL or a cancelled context.
func (w *Walker) Walk(ctx context.Context, startURL string) (*Result, error) {
	seed, err := url.Parse(startURL)
	if err != nil || seed.Hostname() == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "invalid start url: %q", startURL)
	}
	host := seed.Hostname()

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(Link{URL: startURL, Priority: PriorityDetail})

	workCh := make(chan Link)
	resultCh := make(chan pageResult)

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				resultCh <- w.processPage(ctx, link)
			}
		}()
	}

	result := &Result{}
	pending := 0
	dispatched := 0

	var nextLink *Link
	if link, ok := frontier.Pop(); ok {
		nextLink = &link
	}

	for nextLink != nil || pending > 0 {
		if ctx.Err() != nil {
			break
		}

		var sendCh chan Link
		var sendLink Link
		if nextLink != nil && dispatched < w.maxPages {
			sendCh = workCh
			sendLink = *nextLink
		}

		select {
		case sendCh <- sendLink:
			dispatched++
			pending++
			nextLink = nil
			if link, ok := frontier.Pop(); ok {
				nextLink = &link
			}
		case res := <-resultCh:
			pending--
			w.collect(result, res, host, frontier)
			if nextLink == nil {
				if link, ok := frontier.Pop(); ok {
					nextLink = &link
				}
			}
		case <-ctx.Done():
		}

		// The cap stops dispatching; anything still queued is dropped.
		if dispatched >= w.maxPages {
			nextLink = nil
		}
	}

	close(workCh)

	// Drain in-flight workers so wg.Wait cannot block forever.
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	deadline := time.After(drainTimeout)
	for {
		select {
		case res := <-resultCh:
			w.collect(result, res, host, frontier)
		case <-done:
			return result, ctx.Err()
		case <-deadline:
			return result, ctx.Err()
		}
	}
}

// processPage fetches one URL, runs extraction and discovers outbound
// links. Rate limiting and retries apply to the fetch.
func (w *Walker) processPage(ctx context.Context, link Link) pageResult {
	res := pageResult{url: link.URL}

	if err := w.limiter.Wait(ctx, link.URL); err != nil {
		res.err = err
		return res
	}

	html, err := FetchWithRetryDelays(ctx, w.fetcher, link.URL, w.retryDelays)
	if err != nil {
		res.err = err
		return res
	}

	snap := goquery.NewSnapshot(link.URL, html)
	res.envelope = w.coordinator.Extract(ctx, snap, "")
	res.links = discoverLinks(link.URL, html)
	return res
}

// collect records one page result and pushes newly discovered in-scope
// links onto the frontier.
func (w *Walker) collect(result *Result, res pageResult, host string, frontier *Frontier) {
	if w.OnPage != nil {
		w.OnPage(res.url, res.envelope, res.err)
	}
	if res.err != nil {
		result.Failed++
		return
	}
	result.Envelopes = append(result.Envelopes, res.envelope)

	for _, link := range res.links {
		if !sameHost(link.URL, host) {
			continue
		}
		frontier.Push(link)
	}
}

// discoverLinks parses anchors out of a page and resolves them against
// the page URL. Non-HTTP schemes are dropped.
func discoverLinks(pageURL, html string) []Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *gq.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		u, err := base.Parse(href)
		if err != nil {
			return
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		links = append(links, Link{
			URL:      u.String(),
			Priority: linkPriority(u.Path),
		})
	})
	return links
}

// linkPriority ranks a link by its path shape.
func linkPriority(path string) int {
	lower := strings.ToLower(path)
	for _, marker := range detailPathMarkers {
		if strings.Contains(lower, marker) {
			return PriorityDetail
		}
	}
	return PriorityDefault
}

func sameHost(rawURL, host string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Hostname() == host
}
