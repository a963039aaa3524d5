package system

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFindLatestAnimation(t *testing.T) {
	dir := t.TempDir()

	files := []string{"walk.json", "wave.yaml", "jump.yml", "notes.txt"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(path, modTime, modTime)
	}

	latest, err := FindLatestAnimation(dir)
	if err != nil {
		t.Fatalf("FindLatestAnimation failed: %v", err)
	}

	// notes.txt is newest but not an animation
	if filepath.Base(latest) != "jump.yml" {
		t.Errorf("Expected jump.yml, got %s", latest)
	}
}

func TestFindLatestAnimationEmpty(t *testing.T) {
	if _, err := FindLatestAnimation(t.TempDir()); err == nil {
		t.Error("Expected error for directory without animations")
	}
	if _, err := FindLatestAnimation(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestCanvasPool(t *testing.T) {
	rect := image.Rect(0, 0, 14, 26)
	pool := NewCanvasPool(rect)

	c := pool.Get()
	if c.Rect != rect {
		t.Fatalf("Expected bounds %v, got %v", rect, c.Rect)
	}
	c.Pix[0] = 0xff
	pool.Put(c)
	pool.Put(nil)
	pool.Put(image.NewRGBA(image.Rect(0, 0, 7, 13)))

	for i := 0; i < 4; i++ {
		got := pool.Get()
		if got.Rect != rect {
			t.Fatalf("Pool returned a canvas of the wrong size: %v", got.Rect)
		}
		if got.Pix[0] != 0 {
			t.Error("Returned canvas was not cleared")
		}
	}
}

func TestReport(t *testing.T) {
	report := Report("dev", 10, 2*time.Second, Stats{ProcessRSS: 8 << 20, HostUsedPct: 42, HostTotal: 16 << 30})

	for _, want := range []string{"Frames: 10", "Effective FPS: 5.00", "Process RSS: 8.0 MiB", "42.0% of 16.0 GiB"} {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q:\n%s", want, report)
		}
	}
}

func TestReadStats(t *testing.T) {
	s, err := ReadStats()
	if err != nil {
		t.Skipf("stats unavailable on this host: %v", err)
	}
	if s.ProcessRSS == 0 {
		t.Error("Expected non-zero RSS")
	}
}
