package transcoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fvidal/derivatives-ms-go/internal/model"
	"github.com/fvidal/derivatives-ms-go/internal/port"
	"github.com/fvidal/derivatives-ms-go/internal/usecase/derivative"
)

// wire types of the transcoding RPC. Base64 payloads are decoded here and
// never escape this adapter.

type wireVariant struct {
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Fit     string `json:"fit"`
	Quality int    `json:"quality"`
}

type wireImageRequest struct {
	ImageURL string        `json:"imageUrl"`
	Variants []wireVariant `json:"variants"`
}

type wireVideoRequest struct {
	VideoURL string        `json:"videoUrl"`
	Variants []wireVariant `json:"variants"`
}

type wirePayload struct {
	Data        string `json:"data"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType,omitempty"`
}

type wireResponse struct {
	Success          bool                   `json:"success"`
	Variants         map[string]wirePayload `json:"variants,omitempty"`
	Error            string                 `json:"error,omitempty"`
	ProcessingTimeMs int64                  `json:"processingTimeMs,omitempty"`
}

// Client calls the transcoding service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// compile-time check: *Client must satisfy port.Transcoder
var _ port.Transcoder = (*Client)(nil)

// NewClient builds an HTTP transcoder adapter. An empty baseURL is allowed at
// construction time; every call then fails with ErrTranscoderUnavailable so
// the misconfiguration stays visible on each message instead of degrading
// silently.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) ResizeImage(ctx context.Context, req port.ResizeRequest) (*port.ResizeResult, error) {
	body := wireImageRequest{ImageURL: req.SourceURL, Variants: toWireVariants(req.Recipes)}
	return c.call(ctx, "/resize-image", body)
}

func (c *Client) ResizeVideo(ctx context.Context, req port.ResizeRequest) (*port.ResizeResult, error) {
	body := wireVideoRequest{VideoURL: req.SourceURL, Variants: toWireVariants(req.Recipes)}
	return c.call(ctx, "/resize-video", body)
}

func (c *Client) call(ctx context.Context, path string, body any) (*port.ResizeResult, error) {
	if c.baseURL == "" {
		return nil, derivative.ErrTranscoderUnavailable
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("could not marshal transcoder request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("could not build transcoder request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("transcoder call %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("transcoder call %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("could not decode transcoder response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("transcoder reported failure: %s", out.Error)
	}

	result := &port.ResizeResult{
		Variants:         make(map[string]port.VariantPayload, len(out.Variants)),
		ProcessingTimeMs: out.ProcessingTimeMs,
	}
	for name, p := range out.Variants {
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, fmt.Errorf("malformed base64 payload for variant %q: %w", name, err)
		}
		size := p.Size
		if size == 0 {
			size = int64(len(data))
		}
		result.Variants[name] = port.VariantPayload{Data: data, SizeBytes: size, ContentType: p.ContentType}
	}

	log.Printf("transcoder %s returned %d variants in %dms", path, len(result.Variants), out.ProcessingTimeMs)
	return result, nil
}

func toWireVariants(recipes []model.VariantRecipe) []wireVariant {
	variants := make([]wireVariant, 0, len(recipes))
	for _, r := range recipes {
		variants = append(variants, wireVariant{
			Name:    r.Name,
			Width:   r.TargetWidth,
			Height:  r.TargetHeight,
			Fit:     string(r.Fit),
			Quality: r.Quality,
		})
	}
	return variants
}
