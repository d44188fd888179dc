package ytdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/forPelevin/ytsum/internal/types"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrVideoNotFound = errors.New("video not found")

type snippetFunc func(ctx context.Context, videoID string) (*youtube.VideoSnippet, error)

// Adapter looks up video titles through the YouTube Data API v3.
type Adapter struct {
	snippet snippetFunc
}

func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Adapter, error) {
	if apiKey == "" {
		return nil, errors.New("youtube data api key is required")
	}
	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Adapter{snippet: func(ctx context.Context, videoID string) (*youtube.VideoSnippet, error) {
		resp, err := svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
			return nil, ErrVideoNotFound
		}
		return resp.Items[0].Snippet, nil
	}}, nil
}

func (a *Adapter) Lookup(ctx context.Context, videoID string) (types.VideoMeta, error) {
	sn, err := a.snippet(ctx, videoID)
	if err != nil {
		return types.VideoMeta{}, fmt.Errorf("lookup video %s: %w", videoID, err)
	}
	return types.VideoMeta{ID: videoID, Title: sn.Title, Channel: sn.ChannelTitle}, nil
}
