// pkg/connector/file.go
package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/novacred/credit-ingress/pkg/model"
)

// FileSource reads raw records from a JSON array on disk.
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a source for the JSON dataset at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:   path,
		logger: zap.L().Named("file-source"),
	}
}

// Name identifies the source for logging.
func (s *FileSource) Name() string {
	return s.path
}

// Fetch parses the file as a JSON array of raw records, preserving
// input order. Any structural failure (missing file, malformed JSON,
// not an array of objects) is a SourceReadError.
func (s *FileSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &SourceReadError{Source: s.path, Err: err}
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return nil, &SourceReadError{Source: s.path, Err: err}
	}

	s.logger.Info("Loaded raw records",
		zap.String("path", s.path),
		zap.Int("count", len(records)))
	return records, nil
}

// Close is a no-op: the file handle only lives for the Fetch call.
func (s *FileSource) Close() error {
	return nil
}

// DecodeRecords decodes a JSON array of raw records from r.
func DecodeRecords(r io.Reader) ([]model.RawRecord, error) {
	var records []model.RawRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode record array: %w", err)
	}
	return records, nil
}
