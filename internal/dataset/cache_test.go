package dataset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/KaramelBytes/edareport/internal/dataset/datasettest"
)

func TestCacheReturnsSameTable(t *testing.T) {
	p := datasettest.WriteCSV(t, t.TempDir(), datasettest.Rows())
	c := NewCache(Options{})
	a, err := c.Get(p)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// rewrite the file; the cached table must not change
	if err := os.WriteFile(p, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	b, err := c.Get(p)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if a != b {
		t.Fatalf("cache returned a different table for the same path")
	}
	if c.Loads() != 1 {
		t.Fatalf("loads = %d, want 1", c.Loads())
	}
}

func TestCacheKeysByAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	p := datasettest.WriteCSV(t, dir, datasettest.Rows())
	c := NewCache(Options{})
	if _, err := c.Get(p); err != nil {
		t.Fatalf("Get: %v", err)
	}
	alt := filepath.Join(dir, ".", filepath.Base(p))
	if _, err := c.Get(alt); err != nil {
		t.Fatalf("Get alt: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("cache entries = %d, want 1", c.Len())
	}
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "campaign.csv")
	c := NewCache(Options{})
	if _, err := c.Get(p); err == nil {
		t.Fatalf("expected error for missing file")
	}
	datasettest.WriteCSV(t, dir, datasettest.Rows())
	if _, err := c.Get(p); err != nil {
		t.Fatalf("Get after file appeared: %v", err)
	}
}

func TestCacheInvalidate(t *testing.T) {
	p := datasettest.WriteCSV(t, t.TempDir(), datasettest.Rows())
	c := NewCache(Options{})
	a, _ := c.Get(p)
	c.Invalidate(p)
	b, err := c.Get(p)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a == b {
		t.Fatalf("expected a fresh table after Invalidate")
	}
	if c.Loads() != 2 {
		t.Fatalf("loads = %d, want 2", c.Loads())
	}
}

func TestCacheConcurrentFirstUse(t *testing.T) {
	p := datasettest.WriteCSV(t, t.TempDir(), datasettest.Rows())
	c := NewCache(Options{})
	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := c.Get(p)
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			tables[i] = tbl
		}(i)
	}
	wg.Wait()
	for _, tbl := range tables[1:] {
		if tbl != tables[0] {
			t.Fatalf("concurrent callers received different tables")
		}
	}
	if c.Loads() != 1 {
		t.Fatalf("loads = %d, want 1", c.Loads())
	}
}
