package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// FileSource serves question files from the question_files table, letting a
// deployment manage its question bank in Postgres instead of on disk.
type FileSource struct {
	pool *pgxpool.Pool
}

func NewFileSource(pool *pgxpool.Pool) *FileSource {
	return &FileSource{pool: pool}
}

func (s *FileSource) ListFiles(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM question_files ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list question files: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan question file name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *FileSource) ReadFile(ctx context.Context, name string) (string, error) {
	var content string
	err := s.pool.QueryRow(ctx, `SELECT content FROM question_files WHERE name=$1`, name).Scan(&content)
	if err != nil {
		return "", fmt.Errorf("read question file %s: %w", name, err)
	}
	return content, nil
}
