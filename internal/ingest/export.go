package ingest

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrSinkNotConfigured = errors.New("sink not configured")

// Exporter posts rendered views to an external sink, signed with HMAC-SHA256
// in X-Signature.
type Exporter struct {
	c      HTTPClient
	url    string
	secret string
}

func NewExporter(c HTTPClient, url, secret string) *Exporter {
	return &Exporter{c: c, url: url, secret: secret}
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Export sends payload tagged with view and returns the number of bytes posted.
func (e *Exporter) Export(ctx context.Context, view string, payload any) (int, error) {
	if e == nil || e.url == "" || e.secret == "" {
		return 0, ErrSinkNotConfigured
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", view, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", Sign(e.secret, b))
	req.Header.Set("X-View", view)
	resp, err := e.c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return 0, fmt.Errorf("export %s: %w", view, err)
	}
	return len(b), nil
}
