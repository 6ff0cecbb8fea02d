// Package layout extracts bibliographic metadata from a PDF through a local
// layout-aware model inference service.
//
// The service is an optional capability: when it is not running, the layout
// source is simply unavailable as a CLI option and the rest of the pipeline
// is unaffected.
package layout

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/apolinex/nameit/internal/crossref"
)

const (
	// DefaultURL is the default layout inference service endpoint.
	DefaultURL = "http://localhost:8750"

	// DefaultModel is the default layout model.
	DefaultModel = "layoutlmv3-base"

	// DefaultTimeout is the timeout for extraction requests. Inference on
	// a rendered page takes a while on CPU.
	DefaultTimeout = 2 * time.Minute

	// apiPathHealth is the service endpoint for availability checks.
	apiPathHealth = "/api/health"

	// apiPathExtract is the service endpoint for metadata extraction.
	apiPathExtract = "/api/extract"
)

// Provider extracts article metadata by sending the PDF to a layout
// inference service, which renders the first page and runs token
// classification over the page image.
type Provider struct {
	baseURL string
	model   string
	client  *http.Client
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL sets the inference service base URL.
func WithBaseURL(url string) Option {
	return func(p *Provider) {
		p.baseURL = url
	}
}

// WithModel sets the layout model name.
func WithModel(model string) Option {
	return func(p *Provider) {
		p.model = model
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		p.client.Timeout = timeout
	}
}

// NewProvider creates a layout extraction provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		baseURL: DefaultURL,
		model:   DefaultModel,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsAvailable checks whether the inference service is reachable.
func (p *Provider) IsAvailable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+apiPathHealth, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("layout service not reachable at %s: %w", p.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("layout service returned status %d", resp.StatusCode)
	}
	return nil
}

// extractRequest is the extraction API request body.
type extractRequest struct {
	Model    string `json:"model"`
	Filename string `json:"filename"`
	Document string `json:"document"` // base64-encoded PDF bytes
}

// extractResponse is the extraction API response body. Authors come back as
// given/family pairs in reading order.
type extractResponse struct {
	Authors []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"authors"`
	Year      int    `json:"year"`
	Title     string `json:"title"`
	Journal   string `json:"journal"`
	Publisher string `json:"publisher"`
}

// Record extracts metadata for the PDF at path and returns it in the raw
// registry record shape, so layout output flows through the same
// normalization and validation as a registry lookup.
func (p *Provider) Record(ctx context.Context, path string) (*crossref.Work, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	reqBody, err := json.Marshal(extractRequest{
		Model:    p.model,
		Filename: path,
		Document: base64.StdEncoding.EncodeToString(raw),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+apiPathExtract, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("layout service returned status %d", resp.StatusCode)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return toWork(&out), nil
}

// toWork maps an extraction response to the raw registry record shape.
// Fields the model did not find stay absent for sentinel defaulting.
func toWork(out *extractResponse) *crossref.Work {
	msg := &crossref.Message{
		Type:      "journal-article",
		Publisher: out.Publisher,
	}
	if out.Title != "" {
		msg.Title = []string{out.Title}
	}
	if out.Journal != "" {
		msg.ContainerTitle = []string{out.Journal}
	}
	if out.Year != 0 {
		msg.Issued = crossref.Date{DateParts: [][]int{{out.Year}}}
	}
	for _, a := range out.Authors {
		msg.Author = append(msg.Author, crossref.Author{Given: a.Given, Family: a.Family})
	}
	return &crossref.Work{Message: msg}
}
