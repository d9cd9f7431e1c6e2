//go:build e2e

package enginemetrics_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/discochess/enginemetrics"
	"github.com/discochess/enginemetrics/internal/docstore/memdocstore"
)

const tournament = `[Event "Engine League"]
[White "V7P3R"]
[Black "SlowMate"]
[Result "1-0"]
[TimeControl "180+2"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0

[Event "Engine League"]
[White "SlowMate"]
[Black "C0BR4"]
[Result "1/2-1/2"]

1. d4 d5 2. c4 e6 1/2-1/2

[Event "Engine League"]
[White "C0BR4"]
[Black "V7P3R"]
[Result "0-1"]

1. f3 e5 2. g4 Qh4# 0-1
`

func TestE2E_StorageToAnswer(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	// Step 1: Seed the data directory with a compressed archive and notes.
	t.Log("📦 Seeding data directory...")
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("creating zstd writer: %v", err)
	}
	if _, err := zw.Write([]byte(tournament)); err != nil {
		t.Fatalf("compressing: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zstd writer: %v", err)
	}
	archive := filepath.Join(dataDir, "archive", "league.pgn.zst")
	if err := os.MkdirAll(filepath.Dir(archive), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archive, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	dataOpt, err := enginemetrics.WithDataDir(dataDir)
	if err != nil {
		t.Fatalf("WithDataDir() error = %v", err)
	}
	client, err := enginemetrics.New(dataOpt, enginemetrics.WithDocStore(memdocstore.New()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	// Step 2: Upload a notes file the way the API does.
	t.Log("⬆️  Uploading notes...")
	up, err := client.UploadFile(ctx, enginemetrics.UploadRequest{
		FileName: "notes.md",
		Content:  []byte("# V7P3R\nElo gained after the tactical search rewrite.\n"),
		UserID:   "e2e",
	})
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if !strings.HasPrefix(up.FilePath, "users/e2e/") {
		t.Errorf("FilePath = %q, want users/e2e/ prefix", up.FilePath)
	}

	// Step 3: Bulk ingest everything.
	t.Log("🔨 Ingesting from storage...")
	start := time.Now()
	res, err := client.IngestFromStorage(ctx, "")
	if err != nil {
		t.Fatalf("IngestFromStorage() error = %v", err)
	}
	t.Logf("   %d processed, %d errors, %d skipped in %v", res.Processed, res.Errors, res.Skipped, time.Since(start))
	if res.Processed != 2 || res.Errors != 0 {
		t.Fatalf("IngestFromStorage() = %+v, want 2 processed and no errors", res)
	}

	// Step 4: Ask questions.
	t.Log("🔍 Querying...")
	best, err := client.Query(ctx, enginemetrics.QueryRequest{Query: "Which engine performs best in blitz?"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if !strings.Contains(best.Response.Answer, "**V7P3R**") {
		t.Errorf("best performer answer = %q, want V7P3R", best.Response.Answer)
	}
	if best.DataSources != 2 {
		t.Errorf("DataSources = %d, want 2", best.DataSources)
	}

	summary, err := client.PerformanceSummary(ctx, "V7P3R")
	if err != nil {
		t.Fatalf("PerformanceSummary() error = %v", err)
	}
	s, ok := summary.Engines.Get("V7P3R")
	if !ok || s.Wins != 2 || s.Total != 2 {
		t.Errorf("V7P3R stats = %+v, want 2 wins of 2", s)
	}
	if summary.TotalGamesAnalyzed != 3 {
		t.Errorf("TotalGamesAnalyzed = %d, want 3", summary.TotalGamesAnalyzed)
	}

	t.Log("✅ Done")
}
