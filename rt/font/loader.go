package font

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const BuiltinRef = "builtin:gobold"

// DefaultMaxSize caps a remote font download when Loader.MaxSize is unset.
const DefaultMaxSize = 16 << 20

// Loader resolves a font reference: BuiltinRef, a local file path, or an
// http(s) URL. Files ending in .json (or starting with '{') are read as
// typeface JSON, everything else as TrueType/OpenType.
type Loader struct {
	Client  *http.Client
	Timeout time.Duration
	MaxSize int64
}

func NewLoader() *Loader {
	return &Loader{
		Client:  http.DefaultClient,
		Timeout: 10 * time.Second,
		MaxSize: DefaultMaxSize,
	}
}

func (l *Loader) Load(ctx context.Context, ref string) (Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case ref == "" || ref == BuiltinRef:
		return Builtin()
	case strings.HasPrefix(ref, "builtin:"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRef, ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, err := l.fetch(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch font %s: %w", ref, err)
		}
		return decode(ref, data)
	case strings.Contains(ref, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRef, ref)
	}

	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	return decode(ref, data)
}

func decode(ref string, data []byte) (Face, error) {
	trimmed := strings.TrimSpace(string(data[:min(len(data), 64)]))
	if strings.HasSuffix(strings.ToLower(ref), ".json") || strings.HasPrefix(trimmed, "{") {
		return ParseTypeface(data)
	}
	return ParseSFNT(ref, data)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		return nil, errors.New("http client is not configured")
	}

	reqCtx := ctx
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("unexpected status " + resp.Status)
	}
	limit := l.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFontTooLarge, limit)
	}
	return data, nil
}
