package prompt

import (
	"strings"
	"testing"

	"SummaryHub/internal/domain"
)

func TestEnhanceKeepsBasePromptVerbatim(t *testing.T) {
	t.Parallel()

	base := "Summarize the main findings, please."
	enhanced := Enhance(base, domain.CategoryDocument, "Q3 Report")

	if enhanced.BasePrompt != base {
		t.Fatalf("base prompt mutated: %q", enhanced.BasePrompt)
	}
	if !strings.Contains(enhanced.ComposedText, base) {
		t.Fatalf("composed text must contain the base prompt: %q", enhanced.ComposedText)
	}
}

func TestEnhancePerCategoryContext(t *testing.T) {
	t.Parallel()

	cases := []struct {
		category domain.ContentCategory
		marker   string
	}{
		{domain.CategoryDocument, "analyzing a document"},
		{domain.CategoryVideo, "analyzing a video"},
		{domain.CategorySocialPost, "social media content"},
		{domain.CategoryForumThread, "forum discussion"},
		{domain.CategoryBlogArticle, "blog post or article"},
		{domain.CategoryCodeRepository, "code repository"},
		{domain.CategoryGenericLink, "analyzing content"},
	}

	for _, tc := range cases {
		enhanced := Enhance("summarize", tc.category, "")
		if !strings.Contains(enhanced.ComposedText, tc.marker) {
			t.Fatalf("%s: composed text missing %q: %q", tc.category, tc.marker, enhanced.ComposedText)
		}
		if enhanced.Category != tc.category {
			t.Fatalf("%s: category not carried through", tc.category)
		}
	}
}

func TestEnhanceComposition(t *testing.T) {
	t.Parallel()

	enhanced := Enhance("what changed?", domain.CategoryDocument, "release-notes.pdf")

	if !strings.Contains(enhanced.ComposedText, "Content: release-notes.pdf") {
		t.Fatalf("title missing from composed text: %q", enhanced.ComposedText)
	}
	if !strings.HasSuffix(enhanced.ComposedText, "User Request: what changed?") {
		t.Fatalf("user request must close the composed text: %q", enhanced.ComposedText)
	}
}

func TestEnhanceWithoutTitle(t *testing.T) {
	t.Parallel()

	enhanced := Enhance("summarize", domain.CategoryGenericLink, "")
	if strings.Contains(enhanced.ComposedText, "Content:") {
		t.Fatalf("title section must be omitted when empty: %q", enhanced.ComposedText)
	}
}

func TestEnhanceUnknownCategoryFallsBack(t *testing.T) {
	t.Parallel()

	enhanced := Enhance("summarize", domain.ContentCategory("mystery"), "")
	if !strings.Contains(enhanced.ComposedText, "analyzing content") {
		t.Fatalf("unknown category must use the generic context: %q", enhanced.ComposedText)
	}
}
