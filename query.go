package enginemetrics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/enginemetrics/internal/docstore"
	"github.com/discochess/enginemetrics/internal/intent"
	"github.com/discochess/enginemetrics/internal/performance"
	"github.com/discochess/enginemetrics/internal/response"
	"github.com/discochess/enginemetrics/internal/stats"
)

// DefaultRecentQueries is the number of query-log entries RecentQueries
// returns when no limit is given.
const DefaultRecentQueries = 20

// AnonymousUser is the user recorded for queries and uploads without one.
const AnonymousUser = "anonymous"

// QueryRequest is a natural-language question.
type QueryRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id,omitempty"`
}

// QueryResult is the answer to a question together with the intent it
// was classified as.
type QueryResult struct {
	Query       string            `json:"query"`
	Intent      intent.Intent     `json:"intent"`
	Response    response.Response `json:"response"`
	DataSources int               `json:"data_sources"`
	Timestamp   time.Time         `json:"timestamp"`
}

// QueryLog is the stored record of an answered query.
type QueryLog struct {
	Query      string      `json:"query"`
	UserID     string      `json:"user_id"`
	Intent     intent.Type `json:"intent"`
	Confidence float64     `json:"confidence"`
	Answer     string      `json:"answer"`
	Status     string      `json:"status"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Query classifies a question, retrieves matching knowledge-base data,
// and generates an answer. Retrieval failures degrade to an answer without
// data; they never fail the query.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResult, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	start := c.now()
	in := intent.Classify(req.Query)
	data := c.retrieve(ctx, in)
	resp := response.Generate(in, data)

	result := &QueryResult{
		Query:       req.Query,
		Intent:      in,
		Response:    resp,
		DataSources: data.Documents,
		Timestamp:   start,
	}

	c.logQuery(ctx, req, result)

	c.stats.IncCounter(stats.MetricQueries, 1)
	c.stats.ObserveHistogram(stats.MetricQueryDuration, c.now().Sub(start).Seconds())
	c.logger.Debug("query answered",
		zap.String("intent", string(in.Type)),
		zap.Strings("engines", in.Engines),
		zap.Int("documents", data.Documents),
		zap.Float64("confidence", resp.Confidence),
	)

	return result, nil
}

// retrieve gathers the data the response generators read.
func (c *Client) retrieve(ctx context.Context, in intent.Intent) response.Data {
	if c.docs == nil {
		return response.Data{}
	}

	var data response.Data
	summary, err := c.summary(ctx, "")
	if err != nil {
		c.retrievalFailed(err)
	} else {
		data.Summary = summary
	}

	q := docstore.Query{Collection: docstore.KnowledgeBase, Limit: c.scanLimit}
	switch in.Type {
	case intent.TrendAnalysis, intent.ProblemDiagnosis:
		q.DataType = docstore.PGNAnalysis
	}
	docs, err := c.docs.Find(ctx, q)
	if err != nil {
		c.retrievalFailed(err)
	} else {
		data.Documents = len(docs)
	}

	return data
}

func (c *Client) retrievalFailed(err error) {
	c.stats.IncCounter(stats.MetricQueryFailures, 1)
	c.logger.Warn("retrieving knowledge base data", zap.Error(err))
}

// logQuery appends the query to the query log. Failures are only logged.
func (c *Client) logQuery(ctx context.Context, req QueryRequest, result *QueryResult) {
	if c.docs == nil {
		return
	}

	user := req.UserID
	if user == "" {
		user = AnonymousUser
	}
	entry := QueryLog{
		Query:      req.Query,
		UserID:     user,
		Intent:     result.Intent.Type,
		Confidence: result.Response.Confidence,
		Answer:     result.Response.Answer,
		Status:     "completed",
		Timestamp:  result.Timestamp,
	}
	if _, err := c.addDocument(ctx, docstore.Queries, docstore.QueryLog, user, entry); err != nil {
		c.stats.IncCounter(stats.MetricQueryLogFailures, 1)
		c.logger.Warn("logging query", zap.Error(err))
	}
}

// RecentQueries returns the newest query-log entries, newest first.
// A limit of zero or less means DefaultRecentQueries.
func (c *Client) RecentQueries(ctx context.Context, limit int) ([]QueryLog, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.docs == nil {
		return nil, ErrNoDocStore
	}
	if limit <= 0 {
		limit = DefaultRecentQueries
	}

	docs, err := c.docs.Find(ctx, docstore.Query{
		Collection: docstore.Queries,
		DataType:   docstore.QueryLog,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("finding query log: %w", err)
	}

	entries := make([]QueryLog, 0, len(docs))
	for _, doc := range docs {
		var entry QueryLog
		if err := json.Unmarshal(doc.Payload, &entry); err != nil {
			c.logger.Warn("skipping undecodable query log", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PerformanceSummary merges the newest PGN analyses into one table.
// If engine is non-empty only that engine is included.
func (c *Client) PerformanceSummary(ctx context.Context, engine string) (*performance.Summary, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.docs == nil {
		return nil, ErrNoDocStore
	}
	return c.summary(ctx, engine)
}

func (c *Client) summary(ctx context.Context, engine string) (*performance.Summary, error) {
	docs, err := c.docs.Find(ctx, docstore.Query{
		Collection: docstore.KnowledgeBase,
		DataType:   docstore.PGNAnalysis,
		Limit:      c.scanLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("finding pgn analyses: %w", err)
	}

	snapshots := make([]performance.Snapshot, 0, len(docs))
	for _, doc := range docs {
		var snap performance.Snapshot
		if err := json.Unmarshal(doc.Payload, &snap); err != nil {
			c.logger.Warn("skipping undecodable pgn analysis", zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		snapshots = append(snapshots, snap)
	}

	summary := performance.Merge(snapshots, engine, c.mergeOpts)
	summary.LastUpdated = c.now()
	return summary, nil
}
