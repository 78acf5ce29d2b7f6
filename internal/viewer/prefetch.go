package viewer

import (
	"context"
	"io"
	"net/http"
	"sync"
)

// HTTPPrefetcher warms page images over HTTP so the adjacent units render
// without a visible load. Each URL is fetched at most once per session;
// failures are ignored, a miss here only costs the warm cache. Close tears
// down all in-flight fetches.
type HTTPPrefetcher struct {
	client *http.Client

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	seen map[string]bool
}

func NewHTTPPrefetcher(client *http.Client) *HTTPPrefetcher {
	if client == nil {
		client = http.DefaultClient
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &HTTPPrefetcher{
		client: client,
		ctx:    ctx,
		cancel: cancel,
		seen:   make(map[string]bool),
	}
}

func (p *HTTPPrefetcher) Prefetch(urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		p.mu.Lock()
		if p.seen[url] {
			p.mu.Unlock()
			continue
		}
		p.seen[url] = true
		p.mu.Unlock()

		go p.fetch(url)
	}
}

func (p *HTTPPrefetcher) fetch(url string) {
	req, err := http.NewRequestWithContext(p.ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
}

func (p *HTTPPrefetcher) Close() {
	p.cancel()
}
