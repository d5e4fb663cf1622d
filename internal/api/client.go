package api

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
)

// DefaultBaseURL is the local development address of the interview
// service. Override it via config in any real deployment.
const DefaultBaseURL = "http://localhost:3000"

// Client is the HTTP client for the interview service. It performs no
// retries: every failure is surfaced and retried only by explicit user
// action.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateSession starts a job-role interview and returns the session
// with its fixed question list.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	var sess Session
	if err := c.postJSON(ctx, "/sessions", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// CreateSkillSession starts a skill-based interview.
func (c *Client) CreateSkillSession(ctx context.Context, req CreateSkillSessionRequest) (*Session, error) {
	var sess Session
	if err := c.postJSON(ctx, "/skill-sessions", req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SubmitAnswer grades one answer for the session. The skill flag picks
// the endpoint family; the response shape is identical.
func (c *Client) SubmitAnswer(ctx context.Context, sessionID string, skill bool, answer string) (*AnswerResponse, error) {
	path := fmt.Sprintf("/sessions/%s/answers", url.PathEscape(sessionID))
	if skill {
		path = fmt.Sprintf("/skill-sessions/%s/answers", url.PathEscape(sessionID))
	}
	var resp AnswerResponse
	if err := c.postJSON(ctx, path, SubmitAnswerRequest{Answer: answer}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReport fetches the terminal report for an exhausted session.
func (c *Client) GetReport(ctx context.Context, sessionID string, skill bool) (*Report, error) {
	path := fmt.Sprintf("/sessions/%s/report", url.PathEscape(sessionID))
	if skill {
		path = fmt.Sprintf("/skill-sessions/%s/report", url.PathEscape(sessionID))
	}

	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

// Synthesize converts text to spoken audio and returns the raw audio
// payload. The format is dictated by the service (mp3).
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	payload, err := json.Marshal(SynthesizeRequest{Text: text, Voice: voice})
	if err != nil {
		return nil, fmt.Errorf("marshal tts request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/tts", "application/json", bytes.NewReader(payload))
}

// Transcribe uploads a recorded audio blob and returns the recognized
// text.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("audio_file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("build upload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/whisper", w.FormDataContentType(), &buf)
	if err != nil {
		return "", err
	}
	var tr Transcript
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}
	return tr.Text, nil
}

// postJSON sends a JSON body and decodes a JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// do executes a request and maps failures into the error taxonomy:
// transport failures and 5xx become ErrServiceUnavailable, other
// non-2xx become APIError with the service's detail message.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ErrServiceUnavailable{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrServiceUnavailable{Err: err}
	}

	if resp.StatusCode >= 500 {
		return nil, &ErrServiceUnavailable{Err: &APIError{Status: resp.StatusCode, Detail: errorDetail(data)}}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(data)}
	}

	return data, nil
}

// errorDetail pulls the "detail" message out of an error body when the
// service sent one.
func errorDetail(data []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return ""
}
