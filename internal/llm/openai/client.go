package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"permits-backend/internal/llm"
)

const (
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Client implements llm.Client using OpenAI Chat Completions with vision
// inputs.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// contentPart is one element of a multimodal message content array.
type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imagePayload `json:"image_url,omitempty"`
	File     *filePayload  `json:"file,omitempty"`
}

type imagePayload struct {
	URL string `json:"url"`
}

type filePayload struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

// chatMessage content is either a plain string or a part array.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *Client) ExtractDocument(ctx context.Context, input llm.ExtractInput) (json.RawMessage, error) {
	if len(input.Data) == 0 {
		return nil, fmt.Errorf("document bytes are required")
	}

	attachment, err := buildAttachment(input)
	if err != nil {
		return nil, err
	}
	system, instructions := BuildSystemPrompt(input.Today)

	messages := []chatMessage{
		{Role: "system", Content: system},
		{Role: "system", Content: instructions},
		{Role: "user", Content: []contentPart{
			{Type: "text", Text: buildUserText(input.FileName, input.TextHint)},
			attachment,
		}},
	}

	raw, usage, err := c.completeOnce(ctx, messages)
	if err != nil {
		return nil, err
	}
	logUsage(c.model, usage)

	if llm.IsJSONObject(raw) {
		return raw, nil
	}

	// One repair pass for broken JSON and for valid non-object output alike.
	fixMessages := []chatMessage{
		{Role: "system", Content: systemPromptFixJSON},
		{Role: "system", Content: instructions},
		{Role: "user", Content: fixUserPrompt(raw)},
	}
	raw, usage, err = c.completeOnce(ctx, fixMessages)
	if err != nil {
		return nil, err
	}
	logUsage(c.model, usage)
	if !llm.IsJSONObject(raw) {
		return nil, &llm.MalformedOutputError{Raw: raw}
	}
	return raw, nil
}

// buildAttachment encodes the document bytes into the part the vision API
// expects: image_url for images, file for PDFs.
func buildAttachment(input llm.ExtractInput) (contentPart, error) {
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	encoded := base64.StdEncoding.EncodeToString(input.Data)

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return contentPart{
			Type:     "image_url",
			ImageURL: &imagePayload{URL: fmt.Sprintf("data:%s;base64,%s", contentType, encoded)},
		}, nil
	case contentType == "application/pdf":
		name := strings.TrimSpace(input.FileName)
		if name == "" {
			name = "document.pdf"
		}
		return contentPart{
			Type: "file",
			File: &filePayload{
				Filename: name,
				FileData: fmt.Sprintf("data:application/pdf;base64,%s", encoded),
			},
		}, nil
	default:
		return contentPart{}, fmt.Errorf("unsupported content type %q", input.ContentType)
	}
}

func (c *Client) completeOnce(ctx context.Context, messages []chatMessage) (json.RawMessage, *chatResponseUsage, error) {
	temp := float32(0)
	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	}
	reqBody.Temperature = &temp
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, nil, fmt.Errorf("openai response empty content")
	}
	return json.RawMessage(content), toUsage(parsed.Usage), nil
}

type chatResponseUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

func toUsage(raw *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) *chatResponseUsage {
	if raw == nil {
		return nil
	}
	return &chatResponseUsage{
		PromptTokens:     raw.PromptTokens,
		CompletionTokens: raw.CompletionTokens,
		TotalTokens:      raw.TotalTokens,
	}
}

func logUsage(model string, usage *chatResponseUsage) {
	if usage == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	log.Printf("llm response model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ llm.Client = (*Client)(nil)
