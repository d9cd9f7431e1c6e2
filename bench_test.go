package enginemetrics

import (
	"context"
	"strings"
	"testing"

	"github.com/discochess/enginemetrics/internal/docstore/memdocstore"
)

func benchClient(b *testing.B, snapshots int) *Client {
	b.Helper()
	client, err := New(WithDocStore(memdocstore.New()))
	if err != nil {
		b.Fatalf("creating client: %v", err)
	}
	b.Cleanup(func() { client.Close() })

	ctx := context.Background()
	for range snapshots {
		if _, err := client.Ingest(ctx, IngestRequest{Content: twoGames, Type: TypePGN}); err != nil {
			b.Fatalf("ingest error: %v", err)
		}
	}
	return client
}

// BenchmarkIngest_PGN measures parsing, aggregation, and storage of a batch.
func BenchmarkIngest_PGN(b *testing.B) {
	client := benchClient(b, 0)
	ctx := context.Background()
	content := strings.Repeat(twoGames+"\n", 50)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Ingest(ctx, IngestRequest{Content: content, Type: TypePGN}); err != nil {
			b.Fatalf("ingest error: %v", err)
		}
	}
}

// BenchmarkQuery_FullScan measures a query against a full scan window.
func BenchmarkQuery_FullScan(b *testing.B) {
	client := benchClient(b, DefaultScanLimit)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.Query(ctx, QueryRequest{Query: "Compare SlowMate vs C0BR4 in blitz"}); err != nil {
			b.Fatalf("query error: %v", err)
		}
	}
}

// BenchmarkPerformanceSummary measures merging a full scan window.
func BenchmarkPerformanceSummary(b *testing.B) {
	client := benchClient(b, DefaultScanLimit)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := client.PerformanceSummary(ctx, ""); err != nil {
			b.Fatalf("summary error: %v", err)
		}
	}
}
