package classifier

import (
	"net/url"
	"strings"

	"SummaryHub/internal/domain"
)

// rule binds one category to the host patterns that select it. Patterns
// ending in ".*" match the label in any TLD (hashnode.dev, blogspot.com).
type rule struct {
	category domain.ContentCategory
	hosts    []string
}

// Rules are checked in order; the first match wins.
var rules = []rule{
	{domain.CategoryVideo, []string{"youtube.com", "youtu.be"}},
	{domain.CategorySocialPost, []string{"twitter.com", "x.com"}},
	{domain.CategoryForumThread, []string{"reddit.com"}},
	{domain.CategoryCodeRepository, []string{"github.com"}},
	{domain.CategoryBlogArticle, []string{"medium.com", "dev.to", "hashnode.*", "substack.com", "blogspot.*", "wordpress.com"}},
}

// Classify maps a stored item to its content category. Total and
// deterministic: files are always documents, links fall back to
// generic-link when no host rule matches or the URL cannot be parsed.
func Classify(item domain.ContentItem) domain.ContentCategory {
	if item.Kind == domain.KindFile {
		return domain.CategoryDocument
	}

	host := hostOf(item.URL)
	if host == "" {
		return domain.CategoryGenericLink
	}

	for _, r := range rules {
		for _, pattern := range r.hosts {
			if matchHost(host, pattern) {
				return r.category
			}
		}
	}

	return domain.CategoryGenericLink
}

func hostOf(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

func matchHost(host, pattern string) bool {
	if label, ok := strings.CutSuffix(pattern, ".*"); ok {
		parts := strings.Split(host, ".")
		for i, part := range parts {
			if part == label && i < len(parts)-1 {
				return true
			}
		}
		return false
	}
	return host == pattern || strings.HasSuffix(host, "."+pattern)
}
