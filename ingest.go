package enginemetrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/discochess/enginemetrics/internal/analyzer"
	"github.com/discochess/enginemetrics/internal/docstore"
	"github.com/discochess/enginemetrics/internal/game"
	"github.com/discochess/enginemetrics/internal/performance"
	"github.com/discochess/enginemetrics/internal/stats"
)

// IngestType names the format of ingested content.
type IngestType string

// Supported ingestion types.
const (
	TypePGN      IngestType = "pgn"
	TypeJSON     IngestType = "json"
	TypeMarkdown IngestType = "markdown"
)

// UnknownSource is the source file recorded when metadata carries no fileName.
const UnknownSource = "unknown"

// maxStoredGames caps the game records kept in a stored PGN analysis.
const maxStoredGames = 100

// IngestRequest is a single document to ingest.
type IngestRequest struct {
	Content  string         `json:"content"`
	Type     IngestType     `json:"type"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// IngestResult reports what was stored. Exactly one of the embedded
// results is set, according to the request type.
type IngestResult struct {
	DocumentID string `json:"document_id"`
	DataType   string `json:"data_type"`
	*PGNResult
	*JSONResult
	*MarkdownResult
}

// PGNResult is the outcome of a PGN ingestion.
type PGNResult struct {
	GamesProcessed int                `json:"games_processed"`
	GamesSkipped   int                `json:"games_skipped"`
	EngineStats    *performance.Table `json:"engine_stats"`
	GameStats      game.Stats         `json:"game_stats"`
}

// JSONResult is the outcome of a JSON ingestion.
type JSONResult struct {
	MetricsExtracted int `json:"metrics_extracted"`
}

// MarkdownResult is the outcome of a Markdown ingestion.
type MarkdownResult struct {
	SectionsFound int `json:"sections_found"`
}

// PGNAnalysis is the stored payload of a PGN ingestion.
type PGNAnalysis struct {
	TotalGames        int                `json:"total_games"`
	Games             []game.Record      `json:"games"`
	EnginePerformance *performance.Table `json:"engine_performance"`
	GameStats         game.Stats         `json:"game_stats"`
	Metadata          map[string]any     `json:"metadata,omitempty"`
}

// JSONAnalysis is the stored payload of a JSON ingestion.
type JSONAnalysis struct {
	RawData          map[string]any `json:"raw_data"`
	ExtractedMetrics map[string]any `json:"extracted_metrics"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// MarkdownAnalysis is the stored payload of a Markdown ingestion.
type MarkdownAnalysis struct {
	Content  string                    `json:"content"`
	Analysis analyzer.MarkdownAnalysis `json:"analysis"`
	Metadata map[string]any            `json:"metadata,omitempty"`
}

// Ingest parses, analyzes, and stores one document in the knowledge base.
func (c *Client) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.docs == nil {
		return nil, ErrNoDocStore
	}

	source := sourceFile(req.Metadata)
	logger := c.logger.With(zap.String("type", string(req.Type)), zap.String("source", source))

	var (
		res *IngestResult
		err error
	)
	switch req.Type {
	case TypePGN:
		res, err = c.ingestPGN(ctx, req, source)
	case TypeJSON:
		res, err = c.ingestJSON(ctx, req, source)
	case TypeMarkdown:
		res, err = c.ingestMarkdown(ctx, req, source)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, req.Type)
	}
	if err != nil {
		c.stats.IncCounter(stats.MetricIngestionFailures, 1)
		logger.Warn("ingestion failed", zap.Error(err))
		return nil, err
	}

	c.stats.IncCounter(stats.MetricIngestions, 1)
	logger.Info("document ingested", zap.String("id", res.DocumentID))
	return res, nil
}

func (c *Client) ingestPGN(ctx context.Context, req IngestRequest, source string) (*IngestResult, error) {
	batch, err := game.Parse(strings.NewReader(req.Content))
	if err != nil {
		return nil, fmt.Errorf("parsing pgn: %w", err)
	}
	for _, s := range batch.Skipped {
		c.logger.Debug("skipping undecodable game", zap.Int("index", s.Index), zap.Error(s.Err))
	}

	table := performance.Aggregate(batch.Records)
	gameStats := game.Summarize(batch.Records)
	payload := PGNAnalysis{
		TotalGames:        len(batch.Records),
		Games:             batch.Records[:min(maxStoredGames, len(batch.Records))],
		EnginePerformance: table,
		GameStats:         gameStats,
		Metadata:          req.Metadata,
	}

	id, err := c.addDocument(ctx, docstore.KnowledgeBase, docstore.PGNAnalysis, source, payload)
	if err != nil {
		return nil, err
	}

	c.stats.IncCounter(stats.MetricGamesIngested, int64(len(batch.Records)))
	c.stats.IncCounter(stats.MetricGamesSkipped, int64(len(batch.Skipped)))

	return &IngestResult{
		DocumentID: id,
		DataType:   docstore.PGNAnalysis,
		PGNResult: &PGNResult{
			GamesProcessed: len(batch.Records),
			GamesSkipped:   len(batch.Skipped),
			EngineStats:    table,
			GameStats:      gameStats,
		},
	}, nil
}

func (c *Client) ingestJSON(ctx context.Context, req IngestRequest, source string) (*IngestResult, error) {
	// Numbers stay json.Number so stored values keep their exact text.
	dec := json.NewDecoder(strings.NewReader(req.Content))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidContent)
	}
	data, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level JSON value must be an object", ErrInvalidContent)
	}

	metrics := analyzer.ExtractMetrics(data)
	payload := JSONAnalysis{
		RawData:          data,
		ExtractedMetrics: metrics,
		Metadata:         req.Metadata,
	}

	id, err := c.addDocument(ctx, docstore.KnowledgeBase, docstore.JSONAnalysis, source, payload)
	if err != nil {
		return nil, err
	}

	return &IngestResult{
		DocumentID: id,
		DataType:   docstore.JSONAnalysis,
		JSONResult: &JSONResult{MetricsExtracted: len(metrics)},
	}, nil
}

func (c *Client) ingestMarkdown(ctx context.Context, req IngestRequest, source string) (*IngestResult, error) {
	analysis := analyzer.AnalyzeMarkdown(req.Content)
	payload := MarkdownAnalysis{
		Content:  req.Content,
		Analysis: analysis,
		Metadata: req.Metadata,
	}

	id, err := c.addDocument(ctx, docstore.KnowledgeBase, docstore.MarkdownAnalysis, source, payload)
	if err != nil {
		return nil, err
	}

	return &IngestResult{
		DocumentID:     id,
		DataType:       docstore.MarkdownAnalysis,
		MarkdownResult: &MarkdownResult{SectionsFound: len(analysis.Sections)},
	}, nil
}

// addDocument encodes payload and appends it to collection.
func (c *Client) addDocument(ctx context.Context, collection, dataType, source string, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding %s payload: %w", dataType, err)
	}

	id, err := c.docs.Add(ctx, &docstore.Document{
		Collection:  collection,
		SourceFile:  source,
		DataType:    dataType,
		Payload:     raw,
		ProcessedAt: c.now(),
	})
	if err != nil {
		return "", fmt.Errorf("storing %s document: %w", dataType, err)
	}
	return id, nil
}

func sourceFile(metadata map[string]any) string {
	if name, ok := metadata["fileName"].(string); ok && name != "" {
		return name
	}
	return UnknownSource
}
