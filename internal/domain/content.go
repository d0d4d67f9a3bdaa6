package domain

import "time"

// ContentKind distinguishes stored files from saved links.
type ContentKind string

const (
	KindFile ContentKind = "file"
	KindLink ContentKind = "link"
)

// ContentItem is a core entity describing a stored file or link. Rows are
// owned by the storage collaborator; the core only reads them.
type ContentItem struct {
	ID        string
	UserID    string
	Kind      ContentKind
	Name      string
	URL       string
	MimeType  string
	CreatedAt time.Time
}

// ContentCategory is the closed classification used to select prompt
// context and provider capabilities. Derived per request, never stored.
type ContentCategory string

const (
	CategoryDocument       ContentCategory = "document"
	CategoryVideo          ContentCategory = "video"
	CategorySocialPost     ContentCategory = "social-post"
	CategoryForumThread    ContentCategory = "forum-thread"
	CategoryBlogArticle    ContentCategory = "blog-article"
	CategoryCodeRepository ContentCategory = "code-repository"
	CategoryGenericLink    ContentCategory = "generic-link"
)

// EnhancedPrompt carries the provider-ready prompt together with the
// original user prompt. Immutable once built; lifetime is one request.
type EnhancedPrompt struct {
	BasePrompt   string
	Category     ContentCategory
	ComposedText string
}

// PayloadKind tags the ContentPayload union.
type PayloadKind int

const (
	PayloadText PayloadKind = iota
	PayloadBinary
	PayloadURL
)

// ContentPayload is the normalized content handed to a provider adapter:
// inline text, a binary document, or a remote URL.
type ContentPayload struct {
	Kind     PayloadKind
	Text     string
	Data     []byte
	MimeType string
	URL      string
}

// TextPayload wraps inline text.
func TextPayload(text string) ContentPayload {
	return ContentPayload{Kind: PayloadText, Text: text}
}

// BinaryPayload wraps a raw document with its mime type.
func BinaryPayload(data []byte, mimeType string) ContentPayload {
	return ContentPayload{Kind: PayloadBinary, Data: data, MimeType: mimeType}
}

// URLPayload points the adapter at remote content.
func URLPayload(url string) ContentPayload {
	return ContentPayload{Kind: PayloadURL, URL: url}
}

// ProviderDescriptor describes a registered provider and its declared
// capabilities. Registry entries are process-wide and read-only after
// startup.
type ProviderDescriptor struct {
	Name                string
	Model               string
	SupportsBinary      bool
	SupportsURL         bool
	SupportsNativeVideo bool
}

// ProcessingOutput is the normalized success shape every adapter maps its
// backend response into.
type ProcessingOutput struct {
	Text  string
	Model string
}

// ProcessingResult is the uniform per-request result contract. Exactly one
// of {Success with Output, !Success with Error} holds; it is never mutated
// after construction.
type ProcessingResult struct {
	Success        bool
	Output         string
	Provider       string
	Model          string
	Category       ContentCategory
	ComposedPrompt string
	OriginalPrompt string
	UserID         string
	ItemID         string
	Error          *ErrorInfo
}
