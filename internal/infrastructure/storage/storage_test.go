package storage

import (
	"context"
	"path/filepath"
	"testing"

	"svw.info/numble/internal/domain"
	"svw.info/numble/internal/ports"
)

func testStore(t *testing.T, name string) ports.ProgressStore {
	t.Helper()
	switch name {
	case "fs":
		return NewFS(t.TempDir())
	case "sqlite":
		s, err := NewSQLite(filepath.Join(t.TempDir(), "progress.db"))
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	default:
		t.Fatalf("unknown store %q", name)
		return nil
	}
}

func TestProgressRoundTrip(t *testing.T) {
	for _, kind := range []string{"fs", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			st := testStore(t, kind)
			ctx := context.Background()

			if err := st.Save(ctx, domain.Progress{Name: "alice", Level: 3}); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := st.Load(ctx, "alice")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got.Name != "alice" || got.Level != 3 {
				t.Fatalf("Load = %+v", got)
			}
			if got.UpdatedAt == 0 {
				t.Fatal("UpdatedAt not stamped")
			}

			// overwrite advances the level
			if err := st.Save(ctx, domain.Progress{Name: "alice", Level: 4}); err != nil {
				t.Fatalf("second Save failed: %v", err)
			}
			got, err = st.Load(ctx, "alice")
			if err != nil {
				t.Fatalf("second Load failed: %v", err)
			}
			if got.Level != 4 {
				t.Fatalf("level after overwrite = %d, want 4", got.Level)
			}
		})
	}
}

func TestProgressList(t *testing.T) {
	for _, kind := range []string{"fs", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			st := testStore(t, kind)
			ctx := context.Background()

			for _, p := range []domain.Progress{
				{Name: "alice", Level: 2, UpdatedAt: 100},
				{Name: "bob", Level: 7, UpdatedAt: 200},
			} {
				if err := st.Save(ctx, p); err != nil {
					t.Fatalf("Save(%s) failed: %v", p.Name, err)
				}
			}
			list, err := st.List(ctx)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(list) != 2 {
				t.Fatalf("List returned %d entries, want 2", len(list))
			}
			levels := map[string]int{}
			for _, p := range list {
				levels[p.Name] = p.Level
			}
			if levels["alice"] != 2 || levels["bob"] != 7 {
				t.Fatalf("unexpected listing: %v", levels)
			}
		})
	}
}

func TestSaveRejectsMissingName(t *testing.T) {
	for _, kind := range []string{"fs", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			st := testStore(t, kind)
			if err := st.Save(context.Background(), domain.Progress{Name: "  ", Level: 1}); err == nil {
				t.Fatal("expected error for missing name")
			}
		})
	}
}

func TestLoadMissingName(t *testing.T) {
	for _, kind := range []string{"fs", "sqlite"} {
		t.Run(kind, func(t *testing.T) {
			st := testStore(t, kind)
			if _, err := st.Load(context.Background(), "ghost"); err == nil {
				t.Fatal("expected error for unknown name")
			}
		})
	}
}
