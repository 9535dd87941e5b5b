// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preset

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/fx/effects"
	"github.com/gogpu/fx/noise"
)

func ptr[T any](v T) *T { return &v }

func TestResolveDefaults(t *testing.T) {
	got := (&Params{}).Resolve()

	if got.ColorSpeed != DefaultColorSpeed {
		t.Errorf("colorSpeed = %v, want %v", got.ColorSpeed, DefaultColorSpeed)
	}
	if got.CellSize != DefaultCellSize {
		t.Errorf("cellSize = %v, want %v", got.CellSize, DefaultCellSize)
	}
	if got.CellEdge != DefaultCellEdge {
		t.Errorf("cellEdge = %v, want %v", got.CellEdge, DefaultCellEdge)
	}
	if got.LoopDuration != DefaultLoopDuration {
		t.Errorf("loopDuration = %v, want %v", got.LoopDuration, DefaultLoopDuration)
	}
	if got.Noise != effects.NoiseSimplex {
		t.Errorf("noise kind = %v, want simplex", got.Noise)
	}
	if got.Octaves != DefaultOctaves {
		t.Errorf("octaves = %v, want %v", got.Octaves, DefaultOctaves)
	}
}

func TestResolvePartialSubset(t *testing.T) {
	// Only a subset populated, as persisted bundles commonly are.
	var p Params
	if err := json.Unmarshal([]byte(`{"speed": 2.5, "noiseType": "voronoi", "cellSize": 0.5}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := p.Resolve()

	if got.Speed != 2.5 {
		t.Errorf("speed = %v, want 2.5", got.Speed)
	}
	if got.Noise != effects.NoiseVoronoi {
		t.Errorf("noise kind = %v, want voronoi", got.Noise)
	}
	if got.CellSize != 0.5 {
		t.Errorf("cellSize = %v, want 0.5", got.CellSize)
	}
	if got.CellEdge != DefaultCellEdge {
		t.Errorf("cellEdge = %v, want default %v", got.CellEdge, DefaultCellEdge)
	}
}

func TestResolveClampsOctaves(t *testing.T) {
	for _, tt := range []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{3, 3},
		{8, noise.MaxOctaves},
		{50, noise.MaxOctaves},
	} {
		got := (&Params{Octaves: ptr(tt.in)}).Resolve()
		if got.Octaves != tt.want {
			t.Errorf("octaves %d resolved to %d, want %d", tt.in, got.Octaves, tt.want)
		}
	}
}

func TestResolveRejectsNonFinite(t *testing.T) {
	p := Params{
		Speed:        ptr(math.NaN()),
		LoopDuration: ptr(math.Inf(1)),
	}
	got := p.Resolve()
	if got.Speed != DefaultSpeed {
		t.Errorf("NaN speed resolved to %v, want default", got.Speed)
	}
	if got.LoopDuration != DefaultLoopDuration {
		t.Errorf("Inf loopDuration resolved to %v, want default", got.LoopDuration)
	}
}

func TestResolveNonPositiveLoopDuration(t *testing.T) {
	got := (&Params{LoopDuration: ptr(-2.0)}).Resolve()
	if got.LoopDuration != DefaultLoopDuration {
		t.Errorf("loopDuration = %v, want default for non-positive input", got.LoopDuration)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "presets.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Save(Preset{
		Name:   "lava",
		Params: Params{Speed: ptr(1.5), NoiseType: ptr("perlin")},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Save left ID empty")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatal("Save left timestamps zero")
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "lava" {
		t.Errorf("name = %q, want lava", got.Name)
	}
	if got.Params.Speed == nil || *got.Params.Speed != 1.5 {
		t.Errorf("speed = %v, want 1.5", got.Params.Speed)
	}
	if got.Params.NoiseType == nil || *got.Params.NoiseType != "perlin" {
		t.Errorf("noiseType = %v, want perlin", got.Params.NoiseType)
	}
}

func TestStoreUpdateKeepsCreatedAt(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.Save(Preset{Name: "ocean"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	saved.Name = "deep ocean"
	updated, err := s.Save(saved)
	if err != nil {
		t.Fatalf("update Save: %v", err)
	}

	if !updated.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("update changed CreatedAt from %v to %v", saved.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(saved.UpdatedAt) {
		t.Errorf("UpdatedAt %v not after %v", updated.UpdatedAt, saved.UpdatedAt)
	}

	got, err := s.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "deep ocean" {
		t.Errorf("name = %q, want deep ocean", got.Name)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("list length = %d, want 1 (update must not duplicate)", len(list))
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get("no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestStoreListOrderAndDelete(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"zebra", "aurora", "mint"} {
		if _, err := s.Save(Preset{Name: name}); err != nil {
			t.Fatalf("Save %q: %v", name, err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"aurora", "mint", "zebra"}
	if len(list) != len(want) {
		t.Fatalf("list length = %d, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Name, name)
		}
	}

	if err := s.Delete(list[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("no-such-id"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
	list, err = s.List()
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("list length after delete = %d, want 2", len(list))
	}
}

func TestWatcherLoadsAndReloads(t *testing.T) {
	dir := t.TempDir()
	writeBundle := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write bundle: %v", err)
		}
	}
	writeBundle("lava.json", `{"id": "lava", "name": "Lava", "params": {"speed": 1}}`)
	writeBundle("broken.json", `{not json`)

	changes := make(chan Preset, 16)
	w, err := WatchDir(dir, func(p Preset) { changes <- p })
	if err != nil {
		t.Fatalf("WatchDir: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	// Initial load: the valid bundle is present, the broken one skipped.
	if _, ok := w.Get("lava"); !ok {
		t.Fatal("lava preset missing after initial load")
	}
	if got := len(w.List()); got != 1 {
		t.Errorf("loaded presets = %d, want 1", got)
	}
	<-changes

	writeBundle("lava.json", `{"id": "lava", "name": "Lava", "params": {"speed": 3}}`)
	select {
	case p := <-changes:
		if p.Params.Speed == nil || *p.Params.Speed != 3 {
			t.Errorf("reloaded speed = %v, want 3", p.Params.Speed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload event within deadline")
	}

	if err := os.Remove(filepath.Join(dir, "lava.json")); err != nil {
		t.Fatalf("remove bundle: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := w.Get("lava"); !ok {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("preset still present after file removal")
}

func TestWatcherFileNameFallbackID(t *testing.T) {
	dir := t.TempDir()
	body := `{"name": "Plasma", "params": {}}`
	if err := os.WriteFile(filepath.Join(dir, "plasma.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write bundle: %v", err)
	}

	w, err := WatchDir(dir, nil)
	if err != nil {
		t.Fatalf("WatchDir: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	if _, ok := w.Get("plasma"); !ok {
		t.Error("bundle without id should key to its file name")
	}
}
