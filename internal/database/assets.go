package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no asset is recorded at a path.
var ErrNotFound = errors.New("asset not found")

// Asset is one catalog row. Artifact paths are project-relative and empty
// when the artifact is absent.
type Asset struct {
	ProjectRoot        string    `json:"projectRoot"`
	RelativePath       string    `json:"relativePath"`
	ID                 string    `json:"id"`
	Kind               string    `json:"kind"`
	ThumbnailPath      string    `json:"thumbnailRelativePath,omitempty"`
	WaveformPath       string    `json:"waveformRelativePath,omitempty"`
	ExtractedAudioPath string    `json:"extractedAudioRelativePath,omitempty"`
	Size               int64     `json:"size"`
	ModTime            time.Time `json:"lastModified"`
	Duration           *float64  `json:"duration,omitempty"`
	Width              *int      `json:"width,omitempty"`
	Height             *int      `json:"height,omitempty"`
	FPS                *float64  `json:"fps,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

const assetColumns = `project_root, relative_path, id, kind, thumbnail_path, waveform_path,
	extracted_audio_path, size, mod_time, duration, width, height, fps, created_at, updated_at`

// UpsertAsset records a. An existing row at the same project root and
// relative path is updated in place but keeps its original ID and creation
// time; a.ID, a.CreatedAt and a.UpdatedAt are set to the stored values.
func (d *Database) UpsertAsset(ctx context.Context, a *Asset) (err error) {
	start := time.Now()
	defer func() { recordQuery("upsert_asset", start, err) }()

	if a.ProjectRoot == "" || a.RelativePath == "" || a.ID == "" {
		return fmt.Errorf("asset requires project root, relative path and id")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().Unix()
	var createdAt, updatedAt int64
	err = d.db.QueryRowContext(ctx, `
		INSERT INTO assets (`+assetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_root, relative_path) DO UPDATE SET
			kind = excluded.kind,
			thumbnail_path = excluded.thumbnail_path,
			waveform_path = excluded.waveform_path,
			extracted_audio_path = excluded.extracted_audio_path,
			size = excluded.size,
			mod_time = excluded.mod_time,
			duration = excluded.duration,
			width = excluded.width,
			height = excluded.height,
			fps = excluded.fps,
			updated_at = excluded.updated_at
		RETURNING id, created_at, updated_at
	`,
		a.ProjectRoot, a.RelativePath, a.ID, a.Kind,
		nullString(a.ThumbnailPath), nullString(a.WaveformPath), nullString(a.ExtractedAudioPath),
		a.Size, a.ModTime.Unix(), a.Duration, a.Width, a.Height, a.FPS, now, now,
	).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert asset %s: %w", a.RelativePath, err)
	}

	a.CreatedAt = time.Unix(createdAt, 0)
	a.UpdatedAt = time.Unix(updatedAt, 0)
	return nil
}

// GetAsset returns the asset recorded at relativePath, or ErrNotFound.
func (d *Database) GetAsset(ctx context.Context, projectRoot, relativePath string) (a *Asset, err error) {
	start := time.Now()
	defer func() { recordQuery("get_asset", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := d.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE project_root = ? AND relative_path = ?`,
		projectRoot, relativePath)

	a, err = scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", relativePath, err)
	}
	return a, nil
}

// ListAssets returns every asset recorded for projectRoot ordered by
// relative path. An empty kind matches all kinds.
func (d *Database) ListAssets(ctx context.Context, projectRoot, kind string) (assets []Asset, err error) {
	start := time.Now()
	defer func() { recordQuery("list_assets", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + assetColumns + ` FROM assets WHERE project_root = ?`
	args := []interface{}{projectRoot}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY relative_path`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	assets = []Asset{}
	for rows.Next() {
		a, scanErr := scanAsset(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan asset: %w", scanErr)
			return nil, err
		}
		assets = append(assets, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// DeleteAsset removes the row at relativePath. Deleting a missing row is not
// an error.
func (d *Database) DeleteAsset(ctx context.Context, projectRoot, relativePath string) (err error) {
	start := time.Now()
	defer func() { recordQuery("delete_asset", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = d.db.ExecContext(ctx,
		`DELETE FROM assets WHERE project_root = ? AND relative_path = ?`,
		projectRoot, relativePath)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(s rowScanner) (*Asset, error) {
	var (
		a                         Asset
		thumb, waveform, audio    sql.NullString
		duration, fps             sql.NullFloat64
		width, height             sql.NullInt64
		modTime, created, updated int64
	)
	err := s.Scan(&a.ProjectRoot, &a.RelativePath, &a.ID, &a.Kind, &thumb, &waveform, &audio,
		&a.Size, &modTime, &duration, &width, &height, &fps, &created, &updated)
	if err != nil {
		return nil, err
	}

	a.ThumbnailPath = thumb.String
	a.WaveformPath = waveform.String
	a.ExtractedAudioPath = audio.String
	a.ModTime = time.Unix(modTime, 0)
	a.CreatedAt = time.Unix(created, 0)
	a.UpdatedAt = time.Unix(updated, 0)
	if duration.Valid {
		a.Duration = &duration.Float64
	}
	if fps.Valid {
		a.FPS = &fps.Float64
	}
	if width.Valid {
		w := int(width.Int64)
		a.Width = &w
	}
	if height.Valid {
		h := int(height.Int64)
		a.Height = &h
	}
	return &a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
