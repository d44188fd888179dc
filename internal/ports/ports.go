package ports

import (
	"context"

	"github.com/forPelevin/ytsum/internal/types"
)

type TranscriptSource interface {
	Fetch(ctx context.Context, videoID, language string) (types.Transcript, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, req types.SummaryRequest) (string, error)
}

type ReportWriter interface {
	Write(report types.Report, outputPath string) error
}

// MetadataSource is optional; a nil source leaves the report untitled.
type MetadataSource interface {
	Lookup(ctx context.Context, videoID string) (types.VideoMeta, error)
}

type TranscriptCache interface {
	Get(ctx context.Context, videoID, language string) (types.Transcript, bool, error)
	Put(ctx context.Context, tr types.Transcript) error
	Close() error
}
