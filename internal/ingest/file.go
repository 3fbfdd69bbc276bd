package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AngelCh415/marketing-dash/internal/models"
)

// FileSource reads a bundle from disk; .yaml/.yml files are decoded as YAML,
// anything else as JSON.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource { return &FileSource{path: path} }

func (s *FileSource) FetchMarketingData(ctx context.Context) (models.MarketingData, error) {
	if err := ctx.Err(); err != nil {
		return models.MarketingData{}, &FetchError{Source: s.path, Err: err}
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return models.MarketingData{}, &FetchError{Source: s.path, Err: err}
	}
	var data models.MarketingData
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &data)
	default:
		err = json.Unmarshal(b, &data)
	}
	if err != nil {
		return models.MarketingData{}, &FetchError{Source: s.path, Err: fmt.Errorf("decode: %w", err)}
	}
	return Normalize(data), nil
}

// SourceFor picks a FileSource for local paths and an HTTPSource for URLs.
func SourceFor(location string, newHTTP func(url string) DataSource) DataSource {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return newHTTP(location)
	}
	return NewFileSource(location)
}
