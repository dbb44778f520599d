// Package storage provides progress persistence behind ports.ProgressStore.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"svw.info/numble/internal/domain"
)

// FS stores progress as one JSON file per game name.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) pathFor(name string) string {
	return filepath.Join(s.dir, sanitize(name)+".json")
}

// sanitize keeps file names flat: separators and dots collapse to '_'.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ':':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
}

func (s *FS) Save(ctx context.Context, p domain.Progress) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("invalid progress: missing name")
	}
	if p.UpdatedAt == 0 {
		p.UpdatedAt = time.Now().Unix()
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(s.pathFor(p.Name))
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (s *FS) Load(ctx context.Context, name string) (domain.Progress, error) {
	data, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		return domain.Progress{}, err
	}
	var out domain.Progress
	if err := json.Unmarshal(data, &out); err != nil {
		return domain.Progress{}, err
	}
	if out.Level < 1 {
		out.Level = 1
	}
	return out, nil
}

func (s *FS) List(ctx context.Context) ([]domain.Progress, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.Progress
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var p domain.Progress
		if err := json.Unmarshal(data, &p); err != nil || p.Name == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
