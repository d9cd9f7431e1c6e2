package enginemetrics

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/discochess/enginemetrics/internal/codec"
	"github.com/discochess/enginemetrics/internal/stats"
)

// PreviewLength is the number of characters LoadFile returns.
const PreviewLength = 500

// typesByExtension maps file extensions to ingestion types.
var typesByExtension = map[string]IngestType{
	"pgn":  TypePGN,
	"json": TypeJSON,
	"md":   TypeMarkdown,
}

// FilePreview is the beginning of a stored file.
type FilePreview struct {
	FilePath       string `json:"file_path"`
	ContentLength  int    `json:"content_length"`
	ContentPreview string `json:"content_preview"`
}

// BulkResult tallies an ingestion of many stored files.
type BulkResult struct {
	Processed int      `json:"processed"`
	Errors    int      `json:"errors"`
	Skipped   int      `json:"skipped"`
	Details   []string `json:"details"`
}

// UploadRequest is a file to place in storage.
type UploadRequest struct {
	FileName string
	Content  []byte
	UserID   string
	// Compression is a codec extension such as "zst" or "gz". The file is
	// compressed before it is stored and its name gains the extension.
	// Empty stores the content as given.
	Compression string
}

// UploadResult describes a stored upload.
type UploadResult struct {
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	FileSize int    `json:"file_size"`
	FileType string `json:"file_type"`
	// Compression and StoredSize are set for compressed uploads.
	Compression string `json:"compression,omitempty"`
	StoredSize  int    `json:"stored_size,omitempty"`
}

// ListFiles returns the names of stored files under prefix.
func (c *Client) ListFiles(ctx context.Context, prefix string) ([]string, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.blobs == nil {
		return nil, ErrNoBlobStore
	}

	names, err := c.blobs.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return names, nil
}

// LoadFile returns the length and the first PreviewLength characters of a
// stored file. Compressed files are decompressed first.
func (c *Client) LoadFile(ctx context.Context, name string) (*FilePreview, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.blobs == nil {
		return nil, ErrNoBlobStore
	}

	content, err := c.readFile(ctx, name)
	if err != nil {
		return nil, err
	}

	return &FilePreview{
		FilePath:       name,
		ContentLength:  utf8.RuneCountInString(content),
		ContentPreview: preview(content, PreviewLength),
	}, nil
}

// IngestFromStorage ingests every stored pgn, json, and md file under
// prefix. Files are processed one at a time; a failing file is counted and
// does not stop the run.
func (c *Client) IngestFromStorage(ctx context.Context, prefix string) (*BulkResult, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.blobs == nil {
		return nil, ErrNoBlobStore
	}
	if c.docs == nil {
		return nil, ErrNoDocStore
	}

	res := &BulkResult{Details: []string{}}
	names, err := c.blobs.List(ctx, prefix)
	if err != nil {
		res.Errors++
		res.Details = append(res.Details, fmt.Sprintf("Auto-ingest failed: %v", err))
		return res, nil
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if strings.HasSuffix(name, "/") {
			continue
		}

		_, inner := c.codecs.ForName(name)
		typ, ok := typesByExtension[extension(inner)]
		if !ok {
			res.Skipped++
			continue
		}

		content, err := c.readFile(ctx, name)
		if err != nil || content == "" {
			if err != nil {
				c.logger.Warn("loading stored file", zap.String("name", name), zap.Error(err))
			}
			res.Errors++
			res.Details = append(res.Details, "Failed to load: "+name)
			continue
		}

		_, err = c.Ingest(ctx, IngestRequest{
			Content:  content,
			Type:     typ,
			Metadata: map[string]any{"fileName": path.Base(name)},
		})
		if err != nil {
			res.Errors++
			res.Details = append(res.Details, fmt.Sprintf("Error processing %s: %v", name, err))
			continue
		}
		res.Processed++
		res.Details = append(res.Details, "Processed: "+name)
	}

	c.logger.Info("storage ingestion finished",
		zap.String("prefix", prefix),
		zap.Int("processed", res.Processed),
		zap.Int("errors", res.Errors),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// UploadFile stores a pgn, json, or md file under the user's directory as
// users/{userID}/{unixMillis}_{fileName}.
func (c *Client) UploadFile(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.blobs == nil {
		return nil, ErrNoBlobStore
	}

	if req.FileName == "" || strings.ContainsAny(req.FileName, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileName, req.FileName)
	}
	fileType := extension(req.FileName)
	if _, ok := typesByExtension[fileType]; !ok {
		return nil, fmt.Errorf("%w: only PGN, JSON, and MD files are allowed", ErrInvalidFileName)
	}

	user := req.UserID
	if user == "" {
		user = AnonymousUser
	}
	if strings.ContainsAny(user, `/\`) || user == "." || user == ".." {
		return nil, fmt.Errorf("%w: invalid user %q", ErrInvalidFileName, user)
	}

	name := fmt.Sprintf("users/%s/%d_%s", user, c.now().UnixMilli(), req.FileName)
	data, name, err := c.codecs.Encode(req.Compression, name, req.Content)
	if err != nil {
		if errors.Is(err, codec.ErrUnknownCodec) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
		}
		return nil, err
	}
	if err := c.blobs.Write(ctx, name, data); err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}
	c.stats.IncCounter(stats.MetricBlobWrites, 1)
	c.logger.Info("file uploaded",
		zap.String("path", name),
		zap.Int("size", len(req.Content)),
		zap.Int("stored_size", len(data)),
	)

	res := &UploadResult{
		FilePath: name,
		FileName: req.FileName,
		FileSize: len(req.Content),
		FileType: fileType,
	}
	if req.Compression != "" {
		res.Compression = req.Compression
		res.StoredSize = len(data)
	}
	return res, nil
}

// readFile reads and decompresses a stored file.
func (c *Client) readFile(ctx context.Context, name string) (string, error) {
	data, err := c.blobs.Read(ctx, name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	c.stats.IncCounter(stats.MetricBlobReads, 1)

	decoded, _, err := c.codecs.Decode(name, data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", name, err)
	}
	return string(decoded), nil
}

// extension returns the lowercased text after the last dot of name.
func extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return ""
}

// preview returns the first n runes of s, followed by "..." when s is longer.
func preview(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "..."
		}
		i++
	}
	return s
}
