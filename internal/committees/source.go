package committees

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Source supplies the normalized committee display name to committee ID
// mapping for one congress.
type Source interface {
	Fetch(ctx context.Context, congress string) (map[string]string, error)
}

// HTTPSource fetches committee name mappings from a URL template with a
// single %s verb receiving the congress number. The endpoint must return a
// JSON object mapping display names to committee IDs.
type HTTPSource struct {
	client      *http.Client
	urlTemplate string
}

// NewHTTPSource builds an HTTPSource with the given URL template and
// request timeout.
func NewHTTPSource(urlTemplate string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client:      &http.Client{Timeout: timeout},
		urlTemplate: urlTemplate,
	}
}

// Fetch retrieves and decodes the mapping for one congress.
func (s *HTTPSource) Fetch(ctx context.Context, congress string) (map[string]string, error) {
	url := fmt.Sprintf(s.urlTemplate, congress)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build committee request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch committee names for congress %s: %w", congress, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch committee names for congress %s: unexpected status %d", congress, resp.StatusCode)
	}

	var names map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, fmt.Errorf("decode committee names for congress %s: %w", congress, err)
	}
	return names, nil
}
