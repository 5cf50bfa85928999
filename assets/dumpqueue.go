package assets

import (
	"image"
	"log"
	"path/filepath"
	"sync"
)

// dumpRequest is one decoded native-resolution image queued for writing to
// disk. RGBA is owned by the queue once submitted; callers must not mutate
// it afterward.
type dumpRequest struct {
	Kind          Kind
	Hash          uint64
	Width, Height int
	RGBA          []byte
	WritePNG      bool
}

// dumpQueueDepth bounds the backlog of pending dumps; a slow disk (or a
// burst of first-seen sprites when a new game loads) drops requests past
// this depth rather than blocking the render thread (spec.md §5's
// concurrency model: dumping is lossy-by-design, never a stall source).
const dumpQueueDepth = 64

// dumpQueue runs dump requests on a single background worker goroutine, the
// same "non-blocking enqueue, one consumer goroutine" shape the teacher
// uses for its HTTP/achievement calls (ui/achievements/manager.go's
// fire-and-forget pattern), adapted here to local file I/O instead of
// network requests.
type dumpQueue struct {
	dir string
	ch  chan dumpRequest

	wg   sync.WaitGroup
	stop chan struct{}
}

func newDumpQueue(dir string) *dumpQueue {
	q := &dumpQueue{
		dir:  dir,
		ch:   make(chan dumpRequest, dumpQueueDepth),
		stop: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// Enqueue submits a dump request without blocking; when the queue is full
// the request is dropped and Enqueue returns false, matching spec.md §8's
// backpressure property.
func (q *dumpQueue) Enqueue(req dumpRequest) (queued bool) {
	select {
	case q.ch <- req:
		return true
	default:
		log.Printf("assets: dump queue full, dropping %s dump for hash %016x", req.Kind.dirName(), req.Hash)
		return false
	}
}

func (q *dumpQueue) run() {
	defer q.wg.Done()
	for {
		select {
		case req := <-q.ch:
			q.write(req)
		case <-q.stop:
			// Drain whatever is still buffered before exiting so a
			// shutdown during heavy dumping doesn't silently lose work
			// that was already accepted into the channel.
			for {
				select {
				case req := <-q.ch:
					q.write(req)
				default:
					return
				}
			}
		}
	}
}

func (q *dumpQueue) write(req dumpRequest) {
	img := &image.RGBA{
		Pix:    req.RGBA,
		Stride: req.Width * 4,
		Rect:   image.Rect(0, 0, req.Width, req.Height),
	}

	name := filename(req.Hash, req.WritePNG)
	path := filepath.Join(q.dir, req.Kind.dirName(), name)

	var data []byte
	var err error
	if req.WritePNG {
		data, err = encodePNGBytes(img)
	} else {
		data = encodeTGA(img)
	}
	if err != nil {
		log.Printf("assets: encoding dump for hash %016x: %v", req.Hash, err)
		return
	}
	if err := atomicWriteFile(path, data); err != nil {
		log.Printf("assets: writing dump %s: %v", path, err)
	}
}

// Shutdown stops the worker, draining any already-enqueued requests first.
// Calling it again is a no-op.
func (q *dumpQueue) Shutdown() {
	select {
	case <-q.stop:
	default:
		close(q.stop)
	}
	q.wg.Wait()
}

func filename(hash uint64, png bool) string {
	ext := ".tga"
	if png {
		ext = ".png"
	}
	return hexHash(hash) + ext
}

func hexHash(h uint64) string {
	const digits = "0123456789abcdef"
	b := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		b[i] = digits[h&0xF]
		h >>= 4
	}
	return string(b)
}
