package handler

// processFileRequest asks for a stored file to be summarized.
type processFileRequest struct {
	FileID   string `json:"file_id"`
	Prompt   string `json:"prompt"`
	Provider string `json:"provider,omitempty"`
}

// processLinkRequest asks for a saved link to be summarized.
type processLinkRequest struct {
	LinkID   string `json:"link_id"`
	Prompt   string `json:"prompt"`
	Provider string `json:"provider,omitempty"`
}

// aiResponse is the wire contract for processing endpoints.
type aiResponse struct {
	Success           bool   `json:"success"`
	ProcessingResults string `json:"processing_results,omitempty"`
	Error             string `json:"error,omitempty"`
	Service           string `json:"service,omitempty"`
	Model             string `json:"model,omitempty"`
	UserID            string `json:"user_id,omitempty"`
	ContentType       string `json:"content_type,omitempty"`
	OriginalPrompt    string `json:"original_prompt,omitempty"`
}

// providerInfo describes one registered adapter.
type providerInfo struct {
	Name                string `json:"name"`
	Model               string `json:"model"`
	Default             bool   `json:"default"`
	SupportsBinary      bool   `json:"supports_binary"`
	SupportsURL         bool   `json:"supports_url"`
	SupportsNativeVideo bool   `json:"supports_native_video"`
}

// healthResponse reports per-provider availability.
type healthResponse struct {
	Status    string          `json:"status"`
	Providers map[string]bool `json:"providers"`
}
