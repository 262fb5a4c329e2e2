package profiler

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Sample is one frame's GPU workload as reported by the renderer.
type Sample struct {
	DrawCalls int
	Instances int
}

// Report summarizes the frames observed over one update interval.
type Report struct {
	FPS          float64
	AvgFrameMs   float64
	MaxFrameMs   float64
	DrawCalls    int
	Instances    int
	HeapMB       float64
	AllocRateMBs float64
	GCCount      uint32
	MaxPauseUs   uint64
}

// Profiler tracks frame rate, frame time, draw calls and memory statistics.
// Outputs a debug log line at a configurable interval.
type Profiler struct {
	log            zerolog.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	lastFrame      time.Time
	maxFrame       time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Report
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - log: destination for the periodic report
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(log zerolog.Logger) *Profiler {
	p := &Profiler{
		log:            log.With().Str("component", "profiler").Logger(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	p.lastTime = p.now()
	p.lastFrame = p.lastTime
	return p
}

// SetInterval changes how often a report is produced. Non-positive values are ignored.
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// Last returns the most recent report.
func (p *Profiler) Last() Report {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - sample: the GPU workload of the frame just presented
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(sample Sample) bool {
	p.frameCount++
	currentTime := p.now()
	if ft := currentTime.Sub(p.lastFrame); ft > p.maxFrame {
		p.maxFrame = ft
	}
	p.lastFrame = currentTime

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	// PauseNs is a circular buffer of the last 256 GC pauses
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.last = Report{
		FPS:          float64(p.frameCount) / elapsed.Seconds(),
		AvgFrameMs:   float64(elapsed.Milliseconds()) / float64(p.frameCount),
		MaxFrameMs:   float64(p.maxFrame.Microseconds()) / 1000,
		DrawCalls:    sample.DrawCalls,
		Instances:    sample.Instances,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMBs: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:      gcCount,
		MaxPauseUs:   maxPauseUs,
	}
	p.log.Debug().
		Float64("fps", p.last.FPS).
		Float64("frame_ms", p.last.AvgFrameMs).
		Float64("frame_max_ms", p.last.MaxFrameMs).
		Int("draw_calls", p.last.DrawCalls).
		Int("instances", p.last.Instances).
		Float64("heap_mb", p.last.HeapMB).
		Float64("alloc_mb_s", p.last.AllocRateMBs).
		Uint32("gc", gcCount).
		Uint64("gc_max_pause_us", maxPauseUs).
		Msg("frame stats")

	p.frameCount = 0
	p.maxFrame = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
