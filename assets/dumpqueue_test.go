package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDumpQueue_WritesTGAFile(t *testing.T) {
	dir := t.TempDir()
	q := newDumpQueue(dir)
	defer q.Shutdown()

	req := dumpRequest{
		Kind: KindSprite, Hash: 0x0123456789abcdef,
		Width: 2, Height: 1,
		RGBA:     []byte{255, 0, 0, 255, 0, 255, 0, 255},
		WritePNG: false,
	}
	if !q.Enqueue(req) {
		t.Fatal("Enqueue should succeed on a fresh queue")
	}
	q.Shutdown()

	path := filepath.Join(dir, "sprites", hexHash(req.Hash)+".tga")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected dump file at %s: %v", path, err)
	}
}

func TestDumpQueue_WritesPNGFile(t *testing.T) {
	dir := t.TempDir()
	q := newDumpQueue(dir)

	req := dumpRequest{
		Kind: KindTexture, Hash: 0xAAAABBBBCCCCDDDD,
		Width: 1, Height: 1,
		RGBA:     []byte{10, 20, 30, 255},
		WritePNG: true,
	}
	q.Enqueue(req)
	q.Shutdown()

	path := filepath.Join(dir, "textures", hexHash(req.Hash)+".png")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected dump file at %s: %v", path, err)
	}
}

func TestDumpQueue_DropsWhenFull(t *testing.T) {
	q := &dumpQueue{dir: t.TempDir(), ch: make(chan dumpRequest, 1), stop: make(chan struct{})}
	// No run() goroutine consuming: fill the channel, then overflow it.
	if !q.Enqueue(dumpRequest{}) {
		t.Fatal("first enqueue into an empty buffered channel should succeed")
	}
	if q.Enqueue(dumpRequest{}) {
		t.Error("enqueue into a full channel should report dropped (queued=false)")
	}
}

func TestDumpQueue_ShutdownDrainsBufferedRequests(t *testing.T) {
	dir := t.TempDir()
	q := newDumpQueue(dir)

	hashes := []uint64{1, 2, 3}
	for _, h := range hashes {
		q.Enqueue(dumpRequest{Kind: KindSprite, Hash: h, Width: 1, Height: 1, RGBA: []byte{1, 2, 3, 4}, WritePNG: false})
	}
	q.Shutdown()

	for _, h := range hashes {
		path := filepath.Join(dir, "sprites", hexHash(h)+".tga")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected drained dump at %s: %v", path, err)
		}
	}
}

func TestFilename_ExtensionMatchesWritePNG(t *testing.T) {
	if got := filename(0x1, true); filepath.Ext(got) != ".png" {
		t.Errorf("WritePNG=true should produce .png, got %s", got)
	}
	if got := filename(0x1, false); filepath.Ext(got) != ".tga" {
		t.Errorf("WritePNG=false should produce .tga, got %s", got)
	}
}

func TestHexHash_FixedWidth(t *testing.T) {
	if got := hexHash(0); len(got) != 16 {
		t.Errorf("hexHash(0) should be zero-padded to 16 hex digits, got %q", got)
	}
	if got := hexHash(0xFF); got != "00000000000000ff" {
		t.Errorf("hexHash(0xFF) = %q, want 00000000000000ff", got)
	}
}
