package processor

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func discoverConfig(root string) JobConfig {
	return JobConfig{
		Root:       root,
		Quality:    70,
		MaxDepth:   -1,
		Extensions: []string{".jpg", ".jpeg", ".png"},
	}
}

func TestDiscoverFiltersAndOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.jpg"), 10)
	writeFile(t, filepath.Join(root, "a.JPG"), 10)
	writeFile(t, filepath.Join(root, "notes.txt"), 10)
	writeFile(t, filepath.Join(root, "sub", "c.png"), 10)
	writeFile(t, filepath.Join(root, ".git", "d.jpg"), 10)
	writeFile(t, filepath.Join(root, "node_modules", "e.jpg"), 10)

	cfg := discoverConfig(root)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	paths, tagged, err := Discover(cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(tagged) != 0 {
		t.Fatalf("expected no tagged results, got %#v", tagged)
	}

	want := []string{
		filepath.Join(cfg.Root, "a.JPG"),
		filepath.Join(cfg.Root, "b.jpg"),
		filepath.Join(cfg.Root, "sub", "c.png"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}

	// Restartable: a second walk over the same tree yields the same sequence.
	again, _, err := Discover(cfg)
	if err != nil {
		t.Fatalf("discover again: %v", err)
	}
	if !reflect.DeepEqual(again, paths) {
		t.Fatalf("second walk differs: %v vs %v", again, paths)
	}
}

func TestDiscoverMaxDepthZero(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.jpg"), 10)
	writeFile(t, filepath.Join(root, "sub", "deep.jpg"), 10)

	cfg := discoverConfig(root)
	cfg.MaxDepth = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	paths, _, err := Discover(cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "top.jpg" {
		t.Fatalf("expected only top.jpg, got %v", paths)
	}
}

func TestDiscoverMaxDepthOne(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "one.jpg"), 10)
	writeFile(t, filepath.Join(root, "sub", "sub2", "two.jpg"), 10)

	cfg := discoverConfig(root)
	cfg.MaxDepth = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	paths, _, err := Discover(cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "one.jpg" {
		t.Fatalf("expected only one.jpg, got %v", paths)
	}
}

func TestDiscoverSizeBoundsInclusive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "exact.jpg"), 100)
	writeFile(t, filepath.Join(root, "under.jpg"), 99)
	writeFile(t, filepath.Join(root, "over.jpg"), 501)
	writeFile(t, filepath.Join(root, "top.jpg"), 500)

	cfg := discoverConfig(root)
	cfg.MinSize = 100
	cfg.MaxSize = 500
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	paths, tagged, err := Discover(cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("expected exact.jpg and top.jpg, got %v", paths)
	}
	if len(tagged) != 2 {
		t.Fatalf("expected 2 filtered results, got %#v", tagged)
	}
	for _, res := range tagged {
		if res.Outcome != OutcomeSkippedFiltered {
			t.Fatalf("expected skipped-filtered, got %v for %s", res.Outcome, res.Path)
		}
		if res.Message == "" {
			t.Fatalf("filtered result should carry a reason")
		}
	}
}

func TestDiscoverSkipsOutputDirInsideRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x.jpg"), 10)
	writeFile(t, filepath.Join(root, DefaultConvertDirName, "x.jpg"), 10)

	cfg := discoverConfig(root)
	cfg.OutDir = filepath.Join(root, DefaultConvertDirName)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	paths, _, err := Discover(cfg)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "x.jpg" || filepath.Dir(paths[0]) != cfg.Root {
		t.Fatalf("output dir should be pruned, got %v", paths)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	root := t.TempDir()

	cfg := discoverConfig(root)
	cfg.Quality = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected quality error")
	}

	cfg = discoverConfig(root)
	cfg.Quality = 101
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected quality error")
	}

	cfg = discoverConfig(root)
	cfg.MinSize = 10
	cfg.MaxSize = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected size window error")
	}

	cfg = discoverConfig(filepath.Join(root, "missing"))
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing directory error")
	}

	file := filepath.Join(root, "plain.jpg")
	writeFile(t, file, 1)
	cfg = discoverConfig(file)
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected not-a-directory error")
	}
}
