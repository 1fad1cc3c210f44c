// Package ingester fetches PIP identity documents over HTTPS and runs them
// through the validation and normalization core. It is the convenience
// layer callers embed in their own applications; the core in pkg/identity
// never performs I/O itself.
package ingester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "pipid/pkg/errors"
	"pipid/pkg/identity"
)

type Options struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
}

const (
	DefaultTimeout     = 5 * time.Second
	DefaultUserAgent   = "PIP-Ingester-Go/0.1.0"
	DefaultMaxBodySize = 1 << 20 // 1MB
)

type Ingester struct {
	// HTTPClient is exported so tests can point it at a TLS test server.
	HTTPClient *http.Client

	userAgent   string
	maxBodySize int64
	validator   *identity.Validator
}

func New(opts Options) *Ingester {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}

	return &Ingester{
		HTTPClient:  &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		maxBodySize: opts.MaxBodySize,
		validator:   identity.NewValidator(),
	}
}

// LoadOptions tune the Load pipeline. The zero value runs the full
// pipeline: fetch, validate, normalize.
type LoadOptions struct {
	SkipValidate  bool
	SkipNormalize bool
}

// Fetch retrieves and decodes the identity document at url. It returns the
// decoded JSON value untyped; shape enforcement belongs to the validator.
// Failures to obtain or decode a document are reported as fetch errors,
// kept distinct from validation errors.
func (i *Ingester) Fetch(ctx context.Context, url string) (any, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.InvalidInput("identity URL must be a non-empty string")
	}
	if !strings.HasPrefix(url, "https://") {
		return nil, apperrors.InvalidInput("identity URL must use HTTPS")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid identity URL: " + err.Error())
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.HTTPClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, apperrors.Timeout("identity fetch timed out")
		}
		return nil, apperrors.FetchFailed("failed to fetch identity", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.FetchFailed(fmt.Sprintf("identity fetch returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, i.maxBodySize))
	if err != nil {
		return nil, apperrors.FetchFailed("failed to read identity response", err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.FetchFailed("failed to parse identity JSON", err)
	}
	return doc, nil
}

// Load fetches the identity at url and runs it through the core. A
// validation failure carries the full error list in the error details.
func (i *Ingester) Load(ctx context.Context, url string, opts LoadOptions) (identity.Document, error) {
	raw, err := i.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if !opts.SkipValidate {
		result := i.validator.Validate(raw)
		if !result.Valid {
			return nil, apperrors.Validation("identity validation failed", map[string]any{
				"errors": result.Errors,
			})
		}
	}

	if !opts.SkipNormalize {
		return identity.Normalize(raw)
	}

	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, apperrors.InvalidInput("identity must be a JSON object")
	}
	return identity.Document(doc), nil
}

// LoadPreferences loads the identity at url and returns only its
// preferences sub-tree.
func (i *Ingester) LoadPreferences(ctx context.Context, url string, opts LoadOptions) (map[string]any, error) {
	doc, err := i.Load(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	return doc.Preferences(), nil
}

// LoadBehaviors loads the identity at url and returns only its behaviors
// sub-tree.
func (i *Ingester) LoadBehaviors(ctx context.Context, url string, opts LoadOptions) (map[string]any, error) {
	doc, err := i.Load(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	return doc.Behaviors(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
