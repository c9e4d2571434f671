package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

// Client implements ports.Transport and ports.FileFetcher against the
// Telegram Bot API. Session IDs are chat IDs formatted as decimal strings.
type Client struct {
	token   string
	apiBase string // e.g. https://api.telegram.org
	http    *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithAPIBase overrides the API base URL (tests, local bot API servers).
func WithAPIBase(base string) ClientOption {
	return func(c *Client) { c.apiBase = base }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Bot API client.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:   token,
		apiBase: "https://api.telegram.org",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)
}

// SendText posts a text message, optionally with a reply keyboard.
func (c *Client) SendText(ctx context.Context, sessionID, text string, keyboard [][]string) error {
	req := sendMessageRequest{ChatID: sessionID, Text: text}
	if len(keyboard) > 0 {
		rk := &replyKeyboard{ResizeKeyboard: true}
		for _, row := range keyboard {
			buttons := make([]keyboardButton, len(row))
			for i, label := range row {
				buttons[i] = keyboardButton{Text: label}
			}
			rk.Keyboard = append(rk.Keyboard, buttons)
		}
		req.ReplyMarkup = rk
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal sendMessage: %w", err)
	}
	return c.post(ctx, "sendMessage", "application/json", bytes.NewReader(body))
}

// SendDocument uploads a named binary document with a caption.
func (c *Client) SendDocument(ctx context.Context, sessionID string, doc domain.Attachment) error {
	return c.upload(ctx, "sendDocument", "document", sessionID, doc)
}

// SendPhoto uploads a named image with a caption.
func (c *Client) SendPhoto(ctx context.Context, sessionID string, photo domain.Attachment) error {
	return c.upload(ctx, "sendPhoto", "photo", sessionID, photo)
}

func (c *Client) upload(ctx context.Context, method, field, sessionID string, att domain.Attachment) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("chat_id", sessionID); err != nil {
		return fmt.Errorf("write chat_id: %w", err)
	}
	if att.Caption != "" {
		if err := w.WriteField("caption", att.Caption); err != nil {
			return fmt.Errorf("write caption: %w", err)
		}
	}
	part, err := w.CreateFormFile(field, att.Name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(att.Content); err != nil {
		return fmt.Errorf("write attachment: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart: %w", err)
	}

	return c.post(ctx, method, w.FormDataContentType(), &body)
}

func (c *Client) post(ctx context.Context, method, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if !api.OK {
		return fmt.Errorf("%s: api error: %s", method, api.Description)
	}
	return nil
}

// FetchDocument resolves a file ID to its content via getFile + download.
func (c *Client) FetchDocument(ctx context.Context, fileID string) ([]byte, error) {
	u := c.methodURL("getFile") + "?file_id=" + url.QueryEscape(fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build getFile request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getFile: %w", err)
	}
	defer resp.Body.Close()

	var file getFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("getFile: decode response: %w", err)
	}
	if !file.OK || file.Result.FilePath == "" {
		return nil, fmt.Errorf("getFile: no file path for id %q", fileID)
	}

	downloadURL := fmt.Sprintf("%s/file/bot%s/%s", c.apiBase, c.token, file.Result.FilePath)
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	dl, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer dl.Body.Close()

	if dl.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %s", dl.Status)
	}
	return io.ReadAll(dl.Body)
}
