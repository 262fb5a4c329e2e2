package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Carmen-Shannon/oxy-plaza/common"
)

type result struct {
	ref string
	img *image.RGBA
	err error
}

type managerImpl struct {
	mu *sync.Mutex

	source fs.FS
	pool   worker.DynamicWorkerPool

	workers  int
	iconSize int

	placeholder *image.RGBA
	handles     map[string]*Handle
	done        []result
	pending     int
	nextTaskID  int
	closed      bool

	onReady   func(ready, failed int)
	announced bool

	log zerolog.Logger
}

// Manager loads icon images off the frame thread. Results are only applied
// when the frame loop calls Poll, so a handle changes state between frames
// and never mid-draw.
type Manager interface {
	// Request returns the handle for ref, starting a load the first time a
	// ref is seen. An empty ref is failed immediately without logging.
	//
	// Parameters:
	//   - ref: path of the image inside the asset source
	//
	// Returns:
	//   - Handle: the current snapshot
	Request(ref string) Handle

	// Handle returns the current snapshot for a ref that was requested before.
	Handle(ref string) (Handle, bool)

	// Poll applies finished loads and returns the handles that settled since
	// the last call. Failures are logged as warnings wrapping
	// common.ErrAssetLoadFailure and keep the placeholder.
	Poll() []Handle

	// Pending returns the number of loads still in flight.
	Pending() int

	// Placeholder returns the neutral image shown while loading or after a failure.
	Placeholder() *image.RGBA

	// SetReadyCallback is called from Poll once each time the manager settles
	// with nothing in flight, including when nothing was ever requested.
	SetReadyCallback(cb func(ready, failed int))

	// Close drops all handles. Loads still running finish in the background
	// and their results are discarded.
	Close()
}

var _ Manager = &managerImpl{}

// NewManager creates a manager reading images from source.
//
// Parameters:
//   - source: filesystem holding the image files
//   - options: functional options
//
// Returns:
//   - Manager: the manager
func NewManager(source fs.FS, options ...ManagerBuilderOption) Manager {
	if source == nil {
		panic("asset manager requires a source filesystem")
	}
	m := &managerImpl{
		mu:       &sync.Mutex{},
		source:   source,
		workers:  2,
		iconSize: 128,
		handles:  make(map[string]*Handle),
		log:      zerolog.Nop(),
	}
	for _, option := range options {
		option(m)
	}
	m.placeholder = placeholderImage(m.iconSize)
	m.pool = worker.NewDynamicWorkerPool(m.workers, 256, 1*time.Second)
	return m
}

func (m *managerImpl) Request(ref string) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.handles[ref]; ok {
		return *h
	}
	h := &Handle{Ref: ref, State: StatePending, Image: m.placeholder}
	if m.closed {
		h.State = StateFailed
		h.Err = fmt.Errorf("asset %q requested after close: %w", ref, common.ErrAssetLoadFailure)
		return *h
	}
	m.handles[ref] = h
	if ref == "" {
		h.State = StateFailed
		h.Err = fmt.Errorf("empty asset reference: %w", common.ErrAssetLoadFailure)
		return *h
	}

	m.pending++
	m.announced = false
	id := m.nextTaskID
	m.nextTaskID++
	m.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			img, err := m.load(ref)
			m.mu.Lock()
			defer m.mu.Unlock()
			if !m.closed {
				m.done = append(m.done, result{ref: ref, img: img, err: err})
			}
			return nil, nil
		},
	})
	return *h
}

// load reads, decodes and scales one image. Runs on a pool worker.
func (m *managerImpl) load(ref string) (*image.RGBA, error) {
	data, err := fs.ReadFile(m.source, ref)
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w: %w", ref, common.ErrAssetLoadFailure, err)
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode asset %q: %w: %w", ref, common.ErrAssetLoadFailure, err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, m.iconSize, m.iconSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	m.log.Debug().Str("ref", ref).Str("format", format).Msg("asset decoded")
	return dst, nil
}

func (m *managerImpl) Handle(ref string) (Handle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.handles[ref]
	if !ok {
		return Handle{}, false
	}
	return *h, true
}

func (m *managerImpl) Poll() []Handle {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	done := m.done
	m.done = nil

	var settled []Handle
	for _, r := range done {
		h, ok := m.handles[r.ref]
		if !ok {
			continue
		}
		m.pending--
		if r.err != nil {
			h.State, h.Err = StateFailed, r.err
			m.log.Warn().Err(r.err).Str("ref", r.ref).Msg("asset load failed, keeping placeholder")
		} else {
			h.State, h.Image = StateReady, r.img
		}
		settled = append(settled, *h)
	}

	var after func()
	if m.pending == 0 && !m.announced && m.onReady != nil {
		m.announced = true
		ready, failed := m.counts()
		cb := m.onReady
		after = func() { cb(ready, failed) }
	}
	m.mu.Unlock()

	if after != nil {
		after()
	}
	return settled
}

// counts tallies settled handles. Caller must hold the mutex.
func (m *managerImpl) counts() (ready, failed int) {
	for _, h := range m.handles {
		switch h.State {
		case StateReady:
			ready++
		case StateFailed:
			failed++
		}
	}
	return ready, failed
}

func (m *managerImpl) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

func (m *managerImpl) Placeholder() *image.RGBA {
	return m.placeholder
}

func (m *managerImpl) SetReadyCallback(cb func(ready, failed int)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onReady = cb
}

func (m *managerImpl) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.handles = make(map[string]*Handle)
	m.done = nil
	m.pending = 0
	m.onReady = nil
}

// placeholderImage is a soft grey disc on a transparent square.
func placeholderImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float32(size) / 2
	r2 := c * c * 0.8
	fill := color.RGBA{R: 96, G: 100, B: 112, A: 200}
	for y := range size {
		for x := range size {
			dx, dy := float32(x)+0.5-c, float32(y)+0.5-c
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return img
}
