package server

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/internal/blobstore"
	"github.com/discochess/enginemetrics/internal/performance"
)

var errInvalidBody = fiber.NewError(fiber.StatusBadRequest, "Invalid request body")

type healthResponse struct {
	Success                bool   `json:"success"`
	Status                 string `json:"status"`
	Service                string `json:"service"`
	Version                string `json:"version"`
	AIAvailable            bool   `json:"ai_available"`
	KnowledgeBaseAvailable bool   `json:"knowledge_base_available"`
	StorageAvailable       bool   `json:"storage_available"`
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(healthResponse{
		Success:                true,
		Status:                 "healthy",
		Service:                ServiceName,
		Version:                ServiceVersion,
		AIAvailable:            true,
		KnowledgeBaseAvailable: s.client.HasDocStore(),
		StorageAvailable:       s.client.HasBlobStore(),
	})
}

type queryRequest struct {
	Query  *string `json:"query"`
	UserID string  `json:"user_id"`
}

type queryResponse struct {
	Success bool `json:"success"`
	*enginemetrics.QueryResult
}

func (s *Server) query(c *fiber.Ctx) error {
	var req queryRequest
	if err := parseJSON(c, &req); err != nil {
		return s.fail(c, err, "Query processing failed")
	}
	if req.Query == nil {
		return s.fail(c, fiber.NewError(fiber.StatusBadRequest, "Query is required"), "")
	}

	res, err := s.client.Query(c.UserContext(), enginemetrics.QueryRequest{
		Query:  *req.Query,
		UserID: req.UserID,
	})
	if err != nil {
		return s.fail(c, err, "Query processing failed")
	}
	return c.JSON(queryResponse{Success: true, QueryResult: res})
}

type queriesResponse struct {
	Success bool                     `json:"success"`
	Queries []enginemetrics.QueryLog `json:"queries"`
}

func (s *Server) recentQueries(c *fiber.Ctx) error {
	queries, err := s.client.RecentQueries(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return s.fail(c, err, "Failed to list queries")
	}
	return c.JSON(queriesResponse{Success: true, Queries: queries})
}

type ingestRequest struct {
	Content  *string        `json:"content"`
	Type     *string        `json:"type"`
	Metadata map[string]any `json:"metadata"`
}

type ingestResponse struct {
	Success bool `json:"success"`
	*enginemetrics.IngestResult
}

func (s *Server) ingest(c *fiber.Ctx) error {
	if !s.client.HasDocStore() {
		return s.fail(c, enginemetrics.ErrNoDocStore, "Data ingestion failed")
	}

	var req ingestRequest
	if err := parseJSON(c, &req); err != nil {
		return s.fail(c, err, "")
	}
	if req.Content == nil || req.Type == nil {
		return s.fail(c, fiber.NewError(fiber.StatusBadRequest, "Content and type are required"), "")
	}

	res, err := s.client.Ingest(c.UserContext(), enginemetrics.IngestRequest{
		Content:  *req.Content,
		Type:     enginemetrics.IngestType(*req.Type),
		Metadata: req.Metadata,
	})
	if errors.Is(err, enginemetrics.ErrUnsupportedType) {
		err = fiber.NewError(fiber.StatusBadRequest, "Unsupported data type: "+*req.Type)
	}
	if err != nil {
		return s.fail(c, err, "Data ingestion failed")
	}
	return c.JSON(ingestResponse{Success: true, IngestResult: res})
}

type performanceResponse struct {
	Success bool                 `json:"success"`
	Data    *performance.Summary `json:"data"`
}

func (s *Server) performance(c *fiber.Ctx) error {
	summary, err := s.client.PerformanceSummary(c.UserContext(), c.Query("engine"))
	if err != nil {
		return s.fail(c, err, "Failed to get performance summary")
	}
	return c.JSON(performanceResponse{Success: true, Data: summary})
}

type suggestionsResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

func (s *Server) suggestions(c *fiber.Ctx) error {
	return c.JSON(suggestionsResponse{
		Success:     true,
		Suggestions: enginemetrics.Suggestions(c.Query("context")),
	})
}

type listResponse struct {
	Success bool     `json:"success"`
	Files   []string `json:"files"`
	Count   int      `json:"count"`
}

func (s *Server) listFiles(c *fiber.Ctx) error {
	files, err := s.client.ListFiles(c.UserContext(), c.Query("prefix"))
	if err != nil {
		return s.fail(c, err, "Failed to list storage files")
	}
	return c.JSON(listResponse{Success: true, Files: files, Count: len(files)})
}

type bulkRequest struct {
	Prefix string `json:"prefix"`
}

type bulkResponse struct {
	Success bool                      `json:"success"`
	Result  *enginemetrics.BulkResult `json:"result"`
}

func (s *Server) ingestFromStorage(c *fiber.Ctx) error {
	var req bulkRequest
	if len(c.Body()) > 0 {
		if err := parseJSON(c, &req); err != nil {
			return s.fail(c, err, "")
		}
	}

	res, err := s.client.IngestFromStorage(c.UserContext(), req.Prefix)
	if err != nil {
		return s.fail(c, err, "Auto-ingest failed")
	}
	return c.JSON(bulkResponse{Success: true, Result: res})
}

type loadRequest struct {
	FilePath string `json:"file_path"`
}

type loadResponse struct {
	Success bool `json:"success"`
	*enginemetrics.FilePreview
}

func (s *Server) loadFile(c *fiber.Ctx) error {
	var req loadRequest
	if err := parseJSON(c, &req); err != nil {
		return s.fail(c, err, "")
	}
	if req.FilePath == "" {
		return s.fail(c, fiber.NewError(fiber.StatusBadRequest, "file_path is required"), "")
	}

	preview, err := s.client.LoadFile(c.UserContext(), req.FilePath)
	if errors.Is(err, blobstore.ErrNotFound) {
		err = fiber.NewError(fiber.StatusNotFound, "Failed to load file: "+req.FilePath)
	}
	if err != nil {
		return s.fail(c, err, "Failed to load file")
	}
	return c.JSON(loadResponse{Success: true, FilePreview: preview})
}

type uploadResponse struct {
	Success bool `json:"success"`
	*enginemetrics.UploadResult
}

func (s *Server) uploadFile(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return s.fail(c, fiber.NewError(fiber.StatusBadRequest, "No files uploaded"), "")
	}

	f, err := fh.Open()
	if err != nil {
		return s.fail(c, err, "Upload failed")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return s.fail(c, err, "Upload failed")
	}

	res, err := s.client.UploadFile(c.UserContext(), enginemetrics.UploadRequest{
		FileName:    fh.Filename,
		Content:     content,
		UserID:      c.FormValue("user_id"),
		Compression: c.FormValue("compression"),
	})
	if errors.Is(err, enginemetrics.ErrInvalidFileName) {
		err = fiber.NewError(fiber.StatusBadRequest, "Only PGN, JSON, and MD files are allowed")
	}
	if err != nil {
		return s.fail(c, err, "Upload failed")
	}
	return c.JSON(uploadResponse{Success: true, UploadResult: res})
}

// parseJSON decodes the request body as JSON regardless of Content-Type.
func parseJSON(c *fiber.Ctx, v any) error {
	if err := c.App().Config().JSONDecoder(c.Body(), v); err != nil {
		return errInvalidBody
	}
	return nil
}
