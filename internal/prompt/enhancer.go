package prompt

import (
	"strings"

	"SummaryHub/internal/domain"
)

// Each category carries one fixed interpretive context sentence that is
// prepended to the user's prompt before provider dispatch.
var contextByCategory = map[domain.ContentCategory]string{
	domain.CategoryDocument:       "You are analyzing a document. Focus on extracting key information, main points, and insights from the document structure and content.",
	domain.CategoryVideo:          "You are analyzing a video. Focus on the key topics discussed and the main insights from the visual and audio content.",
	domain.CategorySocialPost:     "You are analyzing social media content. Focus on the key messages, context, engagement, related discussions, and broader implications of the post.",
	domain.CategoryForumThread:    "You are analyzing a forum discussion. Focus on the discussion, key points, and community insights from the thread.",
	domain.CategoryBlogArticle:    "You are analyzing a blog post or article. Focus on the main arguments, key insights, and important information from the written content.",
	domain.CategoryCodeRepository: "You are analyzing a code repository. Focus on the project's purpose, structure, and notable implementation details.",
}

const genericContext = "You are analyzing content. Provide clear, concise insights based on the provided information."

// Enhance composes the provider-ready prompt: category context first,
// optional item title, then the user's request. The base prompt is kept
// verbatim so results can report what the user actually asked.
func Enhance(basePrompt string, category domain.ContentCategory, title string) domain.EnhancedPrompt {
	context, ok := contextByCategory[category]
	if !ok {
		context = genericContext
	}

	var sb strings.Builder
	sb.WriteString(context)
	if title != "" {
		sb.WriteString("\n\nContent: ")
		sb.WriteString(title)
	}
	sb.WriteString("\n\nUser Request: ")
	sb.WriteString(basePrompt)

	return domain.EnhancedPrompt{
		BasePrompt:   basePrompt,
		Category:     category,
		ComposedText: sb.String(),
	}
}
