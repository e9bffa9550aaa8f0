// Package generation talks to the remote sketch-to-image endpoint.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
	"github.com/zhubert/sketchlab/internal/logger"
)

const (
	// FileField is the multipart form field carrying the sketch bytes.
	FileField = "file"

	// maxResponseBytes bounds how much of a response body is read. Inline
	// data URIs for large renders can run to tens of megabytes.
	maxResponseBytes = 64 << 20

	// statusSnippetBytes is how much of an error body is kept for diagnostics.
	statusSnippetBytes = 256
)

// Upload is a single sketch submitted for generation.
type Upload struct {
	Name      string // Base file name sent in the multipart header
	MediaType string // MIME type of Data
	Data      []byte
}

// Response is a successful generation.
type Response struct {
	GeneratedImage string // URL or data: URI, opaque to sketchlab
	Raw            []byte // Response body as received
}

// Client sends sketches to a generation endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d, Transport: c.httpClient.Transport}
	}
}

// NewClient creates a client posting to endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		log:        logger.ComponentLogger("Generation"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate sends up as a one-field multipart form and returns the generated
// image reference. Exactly one request is made; there is no retry.
func (c *Client) Generate(ctx context.Context, up Upload) (*Response, error) {
	body, contentType, err := encodeUpload(up)
	if err != nil {
		return nil, pkgerrors.E(pkgerrors.Op("generation.Generate"), pkgerrors.KindInvalid, "failed to encode upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, pkgerrors.TransportFailed(c.endpoint, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.log.Info("sending sketch", "endpoint", c.endpoint, "file", up.Name, "bytes", len(up.Data), "type", up.MediaType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.classifyTransport(ctx, err)
	}

	c.log.Debug("response received", "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pkgerrors.BadStatus(resp.StatusCode, snippet(raw))
	}

	ref, err := parseGeneratedImage(raw)
	if err != nil {
		return nil, err
	}

	c.log.Info("generation succeeded", "elapsed", time.Since(start), "ref", abbreviate(ref))
	return &Response{GeneratedImage: ref, Raw: raw}, nil
}

// Fetch downloads an http(s) image reference and returns its bytes and
// content type.
func (c *Client) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	const op = pkgerrors.Op("generation.Fetch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, "", pkgerrors.E(op, pkgerrors.KindInvalid, fmt.Sprintf("bad image reference %s", ref), err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, "", pkgerrors.E(op, pkgerrors.KindCanceled, "fetch canceled", err)
		}
		return nil, "", pkgerrors.E(op, pkgerrors.KindNetwork, fmt.Sprintf("fetch %s failed", ref), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", pkgerrors.E(op, pkgerrors.KindStatus, fmt.Sprintf("fetch %s returned status %d", ref, resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, "", pkgerrors.E(op, pkgerrors.KindNetwork, fmt.Sprintf("reading %s failed", ref), err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

func (c *Client) classifyTransport(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return pkgerrors.RequestCanceled(err)
	}
	return pkgerrors.TransportFailed(c.endpoint, err)
}

// encodeUpload builds the multipart body. The part carries the upload's own
// MIME type rather than application/octet-stream.
func encodeUpload(up Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := up.Name
	if name == "" {
		name = "sketch"
	}
	mediaType := up.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     FileField,
		"filename": name,
	}))
	h.Set("Content-Type", mediaType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(up.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// parseGeneratedImage extracts the generated_image field. Nothing else in
// the payload is inspected.
func parseGeneratedImage(raw []byte) (string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", pkgerrors.MalformedPayload("response is not a JSON object", err)
	}

	field, ok := payload["generated_image"]
	if !ok {
		return "", pkgerrors.MalformedPayload("response has no generated_image field", nil)
	}

	var ref string
	if err := json.Unmarshal(field, &ref); err != nil {
		return "", pkgerrors.MalformedPayload("generated_image is not a string", err)
	}
	if strings.TrimSpace(ref) == "" {
		return "", pkgerrors.MalformedPayload("generated_image is empty", nil)
	}
	return ref, nil
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > statusSnippetBytes {
		s = s[:statusSnippetBytes] + "..."
	}
	return s
}

// abbreviate shortens long data URIs for log lines.
func abbreviate(ref string) string {
	if len(ref) <= 80 {
		return ref
	}
	return ref[:77] + "..."
}
