package ytdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func TestLookup(t *testing.T) {
	a := &Adapter{snippet: func(_ context.Context, id string) (*youtube.VideoSnippet, error) {
		if id != "dQw4w9WgXcQ" {
			t.Fatalf("unexpected id %q", id)
		}
		return &youtube.VideoSnippet{Title: "Never Gonna Give You Up", ChannelTitle: "Rick Astley"}, nil
	}}

	meta, err := a.Lookup(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if meta.Title != "Never Gonna Give You Up" || meta.Channel != "Rick Astley" || meta.ID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestLookup_AgainstFakeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		w.Header().Set("Content-Type", "application/json")
		items := []map[string]any{}
		if id == "abc12345678" {
			items = append(items, map[string]any{
				"id":      id,
				"snippet": map[string]any{"title": "Test Video", "channelTitle": "Chan"},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}))
	defer srv.Close()

	a, err := New(context.Background(), "yt-key", option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	meta, err := a.Lookup(context.Background(), "abc12345678")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if meta.Title != "Test Video" {
		t.Fatalf("unexpected title %q", meta.Title)
	}

	_, err = a.Lookup(context.Background(), "zzzzzzzzzzz")
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("expected ErrVideoNotFound, got %v", err)
	}
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty key")
	}
}
