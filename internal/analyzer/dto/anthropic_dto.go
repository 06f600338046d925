package dto

// AnthropicAPIRequest is the request payload for the Anthropic messages API.
type AnthropicAPIRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []AnthropicMessage `json:"messages"`
}

// AnthropicMessage is one turn in an Anthropic conversation.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnthropicAPIResponse is the response from the Anthropic messages API.
type AnthropicAPIResponse struct {
	Content []AnthropicContentBlock `json:"content"`
	Error   *AnthropicAPIError      `json:"error,omitempty"`
}

// AnthropicContentBlock is one block of response content.
type AnthropicContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AnthropicAPIError is the error body returned on non-2xx responses.
type AnthropicAPIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
