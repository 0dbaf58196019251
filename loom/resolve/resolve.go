// Package resolve provides the default redirect-resolver collaborator
// for the discovery engine: a HEAD-request lookup over net/http with an
// injectable cache so repeated candidates don't hit the network.
package resolve

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/kmorelli/activityloom/loom/telemetry"
)

// Cache stores resolved redirect targets keyed by source URL.
type Cache interface {
	Get(key string) (string, bool)
	Put(key, value string)
}

// MemoryCache is a Cache over an in-process LRU with expiring entries.
type MemoryCache struct {
	cache *ccache.Cache[string]
	ttl   time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: ccache.New(ccache.Configure[string]()),
		ttl:   ttl,
	}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	item := c.cache.Get(key)
	if item == nil || item.Expired() {
		return "", false
	}
	return item.Value(), true
}

func (c *MemoryCache) Put(key, value string) {
	c.cache.Set(key, value, c.ttl)
}

// HTTPResolver follows a URL's redirect chain with a single HEAD-style
// lookup and reports the final location. Timeout policy belongs to the
// injected client.
type HTTPResolver struct {
	Client *http.Client
	Cache  Cache
	// Context bounds every lookup; nil means context.Background().
	Context context.Context
}

func NewHTTPResolver(client *http.Client, cache Cache) *HTTPResolver {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPResolver{Client: client, Cache: cache}
}

// Resolve returns the URL's final location after redirects. On any
// failure the input URL is returned along with the error; callers treat
// failure as identity.
func (r *HTTPResolver) Resolve(rawurl string) (string, error) {
	if r.Cache != nil {
		if final, ok := r.Cache.Get(rawurl); ok {
			return final, nil
		}
	}

	ctx := r.Context
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawurl, nil)
	if err != nil {
		return rawurl, err
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		telemetry.Error(err, "resolving redirects for [%s]", rawurl)
		return rawurl, err
	}
	defer resp.Body.Close()

	final := rawurl
	// only trust redirects that land on an html page
	if resp.Request != nil && resp.Request.URL != nil &&
		strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		final = resp.Request.URL.String()
	}

	if r.Cache != nil {
		r.Cache.Put(rawurl, final)
	}
	return final, nil
}
