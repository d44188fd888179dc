package sqlitecache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/forPelevin/ytsum/internal/types"
	_ "modernc.org/sqlite"
)

const FileName = "transcripts.db"

// Cache stores fetched transcripts keyed by (video, language).
type Cache struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the cache database inside dir.
func Open(dir string) (*Cache, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("cache dir is empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("cache: mkdir %s: %w", dir, err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Cache{db: db, now: time.Now}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS transcripts (
		video_id   TEXT NOT NULL,
		language   TEXT NOT NULL,
		fragments  TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		PRIMARY KEY (video_id, language)
	)`)
	return err
}

func (c *Cache) Get(ctx context.Context, videoID, language string) (types.Transcript, bool, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT fragments FROM transcripts WHERE video_id = ? AND language = ?`,
		videoID, normLang(language),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Transcript{}, false, nil
	}
	if err != nil {
		return types.Transcript{}, false, fmt.Errorf("cache: get %s/%s: %w", videoID, language, err)
	}

	var frags []types.Fragment
	if err := json.Unmarshal([]byte(raw), &frags); err != nil {
		return types.Transcript{}, false, fmt.Errorf("cache: decode %s/%s: %w", videoID, language, err)
	}
	return types.Transcript{VideoID: videoID, Language: normLang(language), Fragments: frags}, true, nil
}

func (c *Cache) Put(ctx context.Context, tr types.Transcript) error {
	if tr.VideoID == "" {
		return errors.New("cache: transcript has no video id")
	}
	b, err := json.Marshal(tr.Fragments)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO transcripts (video_id, language, fragments, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(video_id, language) DO UPDATE SET fragments = excluded.fragments, fetched_at = excluded.fetched_at`,
		tr.VideoID, normLang(tr.Language), string(b), c.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("cache: put %s/%s: %w", tr.VideoID, tr.Language, err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

func normLang(l string) string {
	return strings.ToLower(strings.TrimSpace(l))
}
