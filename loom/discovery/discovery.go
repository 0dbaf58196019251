// Package discovery finds the URLs an object references and decides
// which point at the authoritative copy of its content versus resources
// it merely mentions. This is a variation on original-post discovery
// that keeps multiple candidates instead of electing a single winner.
package discovery

import (
	"net/url"
	"strings"

	"github.com/kmorelli/activityloom/loom/activity"
	"github.com/kmorelli/activityloom/loom/telemetry"
	"github.com/kmorelli/activityloom/loom/textutil"
)

// Resolver follows a URL's redirects to its final location. Resolution
// is the engine's only external call and is injected so discovery stays
// deterministic without a network. Failure is treated as identity.
type Resolver interface {
	Resolve(url string) (string, error)
}

// Options control one discovery run.
type Options struct {
	// Domains restricts which hosts count as original. When non-empty,
	// a candidate matching none of them is a mention regardless of its
	// source.
	Domains []string
	// FollowRedirects resolves each original through Resolver.
	FollowRedirects bool
	Resolver        Resolver
	// OmitRedirectSources drops the pre-redirect URL from results,
	// keeping only the final location.
	OmitRedirectSources bool
}

type candidate struct {
	url      string
	explicit bool // from tags, attachments, or upstreamDuplicates
	derived  bool // scheme synthesized (permashortlink or citation)
}

// Discover collects candidate URLs from the object's attachments and
// tags, its declared upstream duplicates, and URL tokens in its text
// content, then classifies each deduplicated candidate as an original
// or a mention. Result ordering is first-discovery order. Malformed
// URLs are silently excluded.
func Discover(obj *activity.Object, opts Options) (originals, mentions []string) {
	if obj == nil {
		return nil, nil
	}

	var candidates []candidate

	for _, att := range obj.Attachments {
		if att != nil && referenceKind(att.ObjectType) && att.URL != "" {
			candidates = append(candidates, candidate{url: att.URL, explicit: true})
		}
	}
	for _, t := range obj.Tags {
		if t != nil && referenceKind(t.ObjectType) && t.URL != "" {
			candidates = append(candidates, candidate{url: t.URL, explicit: true})
		}
	}
	for _, u := range obj.UpstreamDuplicates {
		candidates = append(candidates, candidate{url: u, explicit: true})
	}
	for _, tok := range textutil.FindURLTokens(strings.TrimSpace(obj.Content)) {
		if tok.Truncated {
			// ellipsized URLs are probably incomplete
			continue
		}
		candidates = append(candidates, candidate{url: tok.URL, derived: tok.Bare || tok.Citation})
	}

	unique := dedupe(candidates)

	domains := opts.Domains
	authorDomains := authorDomains(obj)

	resolved := make(map[string]string) // memoized resolver results
	for _, c := range unique {
		host := hostOf(c.url)
		original := classify(c, host, domains, authorDomains)

		urls := []string{c.url}
		if original && opts.FollowRedirects && opts.Resolver != nil {
			final := resolve(opts.Resolver, resolved, c.url)
			if final != c.url {
				if opts.OmitRedirectSources {
					urls = []string{final}
				} else {
					urls = []string{c.url, final}
				}
			}
		}
		for _, u := range urls {
			if original {
				originals = appendUnique(originals, u)
			} else {
				mentions = appendUnique(mentions, u)
			}
		}
	}

	telemetry.Trace("discovery found %d originals, %d mentions", len(originals), len(mentions))
	return originals, mentions
}

// classify decides original vs mention. An explicit domain list
// overrides every other signal; otherwise explicit sources and
// author-domain matches are original, and with nothing to compare
// against, everything is.
func classify(c candidate, host string, domains, authorDomains []string) bool {
	if len(domains) > 0 {
		return domainMatch(host, domains)
	}
	if c.explicit {
		return true
	}
	if len(authorDomains) == 0 {
		return true
	}
	return domainMatch(host, authorDomains)
}

// referenceKind reports whether a tag or attachment objectType carries
// an article/mention-like reference. An absent type counts.
func referenceKind(objectType string) bool {
	return objectType == "" ||
		objectType == activity.ArticleType ||
		objectType == activity.MentionType
}

func authorDomains(obj *activity.Object) []string {
	if obj.Author == nil {
		return nil
	}
	var domains []string
	for _, u := range append([]string{obj.Author.URL}, obj.Author.URLs...) {
		if h := hostOf(u); h != "" {
			domains = append(domains, h)
		}
	}
	return domains
}

// domainMatch is a case-insensitive suffix match, so sub.example.com
// matches example.com.
func domainMatch(host string, domains []string) bool {
	host = strings.ToLower(host)
	for _, d := range domains {
		d = strings.ToLower(d)
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func hostOf(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// dedupe collapses candidates that reference the same resource: equal
// but for http/https scheme, or but for a trailing slash. The first
// occurrence keeps its position; a scheme-qualified form replaces a
// representative whose scheme was synthesized.
func dedupe(candidates []candidate) []candidate {
	var unique []candidate
	index := make(map[string]int)
	for _, c := range candidates {
		cleaned, key, ok := normalize(c.url)
		if !ok {
			continue
		}
		c.url = cleaned
		at, seen := index[key]
		if !seen {
			index[key] = len(unique)
			unique = append(unique, c)
			continue
		}
		if unique[at].derived && !c.derived {
			// prefer the scheme that appeared explicitly in text
			c.explicit = c.explicit || unique[at].explicit
			unique[at] = c
		} else if c.explicit {
			unique[at].explicit = true
		}
	}
	return unique
}

// normalize strips utm_* tracking parameters and normalizes an empty
// path to "/". The second result is the scheme-insensitive dedup key.
// Malformed URLs report ok false.
func normalize(rawurl string) (cleaned, key string, ok bool) {
	rawurl = strings.TrimSpace(rawurl)
	if rawurl == "" || endsInEllipsis(rawurl) {
		return "", "", false
	}
	u, err := url.Parse(rawurl)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", "", false
	}
	q := u.Query()
	for param := range q {
		if strings.HasPrefix(param, "utm_") {
			q.Del(param)
		}
	}
	u.RawQuery = q.Encode()
	if u.Path == "" {
		u.Path = "/"
	}
	key = strings.ToLower(u.Host) + strings.TrimSuffix(u.Path, "/") + "?" + u.RawQuery
	return u.String(), key, true
}

func endsInEllipsis(s string) bool {
	return strings.HasSuffix(s, "...") || strings.HasSuffix(s, "…")
}

// resolve memoizes resolver calls for the duration of one Discover.
// Resolver failure means the URL stands as-is.
func resolve(r Resolver, memo map[string]string, rawurl string) string {
	if final, ok := memo[rawurl]; ok {
		return final
	}
	final, err := r.Resolve(rawurl)
	if err != nil || final == "" {
		final = rawurl
	}
	memo[rawurl] = final
	return final
}

func appendUnique(list []string, u string) []string {
	for _, have := range list {
		if have == u {
			return list
		}
	}
	return append(list, u)
}
