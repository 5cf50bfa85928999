package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestService_SetGameIdDefaultsWhenNoConfig(t *testing.T) {
	s := NewService(t.TempDir())
	s.SetGameId("game-a")
	if !s.sprite.WritePNG || !s.texture.WritePNG {
		t.Error("a fresh game with no saved config should get the documented WritePNG=true default")
	}
}

func TestService_ConfigPersistsAcrossSetGameId(t *testing.T) {
	base := t.TempDir()
	s := NewService(base)
	s.SetGameId("game-a")
	s.SetSpriteDumpConfig(SpriteDumpConfig{DumpEnabled: true, ReplaceEnabled: true, WritePNG: false})

	// Switch away and back; the saved config.json should be reloaded.
	s.SetGameId("game-b")
	s.SetGameId("game-a")

	if !s.sprite.DumpEnabled || !s.sprite.ReplaceEnabled || s.sprite.WritePNG {
		t.Errorf("expected persisted sprite config to reload, got %+v", s.sprite)
	}

	path := filepath.Join(base, "game-a", "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config.json at %s: %v", path, err)
	}
}

func TestService_DumpSpriteDedupesByHash(t *testing.T) {
	s := NewService(t.TempDir())
	s.SetGameId("game-a")
	s.SetSpriteDumpConfig(SpriteDumpConfig{DumpEnabled: true, WritePNG: true})

	rgba := []byte{1, 2, 3, 4}
	s.DumpSprite(0xDEAD, 1, 1, rgba)
	s.DumpSprite(0xDEAD, 1, 1, rgba) // same hash again, should be suppressed
	s.Shutdown()

	path := filepath.Join(s.baseDir, "game-a", "sprites", hexHash(0xDEAD)+".png")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected a dump file for the first DumpSprite call: %v", err)
	}
}

func TestService_DumpDisabledWritesNothing(t *testing.T) {
	s := NewService(t.TempDir())
	s.SetGameId("game-a")
	// DumpEnabled left false (default config has it off).
	s.DumpSprite(0xBEEF, 1, 1, []byte{1, 2, 3, 4})
	s.Shutdown()

	path := filepath.Join(s.baseDir, "game-a", "sprites", hexHash(0xBEEF)+".png")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("dump-disabled config should not write a file, stat err=%v", err)
	}
}

func TestService_SampleFindsPreWrittenReplacement(t *testing.T) {
	base := t.TempDir()
	s := NewService(base)
	s.SetGameId("game-a")
	s.SetSpriteDumpConfig(SpriteDumpConfig{ReplaceEnabled: true})

	// Write a 2x-scale replacement PNG by hand, the same dimension contract
	// loadReplacement enforces (exact integer multiple of native size).
	hash := uint64(0x1234)
	img := makeTestImage(4, 4) // native would be 2x2
	data, err := encodePNGBytes(img)
	if err != nil {
		t.Fatalf("encodePNGBytes: %v", err)
	}
	dir := filepath.Join(base, "game-a", "sprites")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, hexHash(hash)+".png"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	r, g, b, a, ok := s.Sample(hash, 0, 0, 2, 2)
	if !ok {
		t.Fatal("expected Sample to find the replacement file")
	}
	if a != 255 {
		t.Errorf("expected an opaque sample, got r=%d g=%d b=%d a=%d", r, g, b, a)
	}
}

func TestService_SampleDisabledReturnsNotOK(t *testing.T) {
	s := NewService(t.TempDir())
	s.SetGameId("game-a")
	// ReplaceEnabled left false.
	_, _, _, _, ok := s.Sample(0x1, 0, 0, 2, 2)
	if ok {
		t.Error("Sample should report ok=false when ReplaceEnabled is false")
	}
}
