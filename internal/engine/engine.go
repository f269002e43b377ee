package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/snapmark/photo-overlay/internal/imaging"
	"github.com/snapmark/photo-overlay/internal/metadata"
)

// RequestVariant selects what a render call wants: a downsampled
// preview, a full-quality output, or both.
type RequestVariant string

const (
	VariantPreview     RequestVariant = "preview"
	VariantFullQuality RequestVariant = "full_quality"
	VariantBoth        RequestVariant = "both"
)

// ParseVariant converts a user-supplied string to a RequestVariant.
func ParseVariant(s string) (RequestVariant, error) {
	switch RequestVariant(s) {
	case VariantPreview, VariantFullQuality, VariantBoth:
		return RequestVariant(s), nil
	}
	return "", imaging.NewError(imaging.KindEngine, "", "unknown request variant: %q", s)
}

// ProcessingResult is the tagged payload of a unified render. Variant
// says which byte slices are populated: Preview for VariantPreview,
// Full for VariantFullQuality, both for VariantBoth.
type ProcessingResult struct {
	Variant RequestVariant `json:"variant"`
	Preview []byte         `json:"preview,omitempty"`
	Full    []byte         `json:"full,omitempty"`
}

// Stats is a read-only snapshot of engine counters. Cumulative
// processing time covers cache misses only.
type Stats struct {
	CacheHits             uint64 `json:"cache_hits"`
	CacheMisses           uint64 `json:"cache_misses"`
	TotalProcessingTimeMs int64  `json:"total_processing_time_ms"`
}

// Renderer is the rendering backend the engine dispatches to.
// *imaging.Processor satisfies it.
type Renderer interface {
	GeneratePreview(inputPath string, meta metadata.PhotoMetadata, overlay imaging.OverlaySettings, frame imaging.FrameSettings, maxW, maxH int) ([]byte, error)
	RenderFull(inputPath string, meta metadata.PhotoMetadata, overlay imaging.OverlaySettings, frame imaging.FrameSettings) ([]byte, error)
}

// Options are the engine tunables.
type Options struct {
	CacheCapacity    int
	PreviewMaxWidth  int
	PreviewMaxHeight int
}

// DefaultOptions returns the stock tunables: 100 cached entries and
// 800x600 previews.
func DefaultOptions() Options {
	return Options{
		CacheCapacity:    DefaultCacheCapacity,
		PreviewMaxWidth:  800,
		PreviewMaxHeight: 600,
	}
}

// Engine memoizes and dispatches unified render requests.
type Engine struct {
	renderer Renderer
	cache    *resultCache
	opts     Options
	log      *zap.Logger

	statsMu sync.Mutex
	stats   Stats
}

// New builds an Engine around a renderer. The engine is explicitly
// owned by its caller; construct one and pass it where it is needed.
func New(renderer Renderer, opts Options, log *zap.Logger) *Engine {
	if opts.PreviewMaxWidth <= 0 || opts.PreviewMaxHeight <= 0 {
		def := DefaultOptions()
		opts.PreviewMaxWidth = def.PreviewMaxWidth
		opts.PreviewMaxHeight = def.PreviewMaxHeight
	}
	return &Engine{
		renderer: renderer,
		cache:    newResultCache(opts.CacheCapacity),
		opts:     opts,
		log:      log,
	}
}

// ProcessUnified renders (or recalls) the requested variant for a
// photograph.
//
// The fingerprint includes the variant, so an entry is only ever
// reused by requests that stored exactly the payloads it asks for; a
// Both request never sees a half-empty entry written by a Preview
// request. On a miss the Both variant renders preview and full quality
// concurrently and joins both, failing with the first error if either
// fails (the sibling render is not cancelled).
func (e *Engine) ProcessUnified(inputPath string, meta metadata.PhotoMetadata, overlay imaging.OverlaySettings, frame imaging.FrameSettings, variant RequestVariant) (*ProcessingResult, error) {
	start := time.Now()

	key, err := Fingerprint(inputPath, overlay, frame, variant)
	if err != nil {
		return nil, imaging.WrapError(imaging.KindEngine, inputPath, "failed to compute cache key", err)
	}

	if entry, ok := e.cache.get(key); ok {
		e.recordHit()
		e.log.Debug("cache hit",
			zap.String("path", inputPath),
			zap.String("variant", string(variant)))
		return resultFromEntry(entry, variant), nil
	}

	result := &ProcessingResult{Variant: variant}
	switch variant {
	case VariantPreview:
		data, err := e.renderer.GeneratePreview(inputPath, meta, overlay, frame, e.opts.PreviewMaxWidth, e.opts.PreviewMaxHeight)
		if err != nil {
			return nil, err
		}
		result.Preview = data

	case VariantFullQuality:
		data, err := e.renderer.RenderFull(inputPath, meta, overlay, frame)
		if err != nil {
			return nil, err
		}
		result.Full = data

	case VariantBoth:
		var g errgroup.Group
		g.Go(func() error {
			data, err := e.renderer.GeneratePreview(inputPath, meta, overlay, frame, e.opts.PreviewMaxWidth, e.opts.PreviewMaxHeight)
			if err != nil {
				return err
			}
			result.Preview = data
			return nil
		})
		g.Go(func() error {
			data, err := e.renderer.RenderFull(inputPath, meta, overlay, frame)
			if err != nil {
				return err
			}
			result.Full = data
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

	default:
		return nil, imaging.NewError(imaging.KindEngine, inputPath, "unknown request variant: %q", variant)
	}

	e.cache.put(key, result.Preview, result.Full)
	e.recordMiss(time.Since(start))
	e.log.Debug("cache miss",
		zap.String("path", inputPath),
		zap.String("variant", string(variant)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

// CacheLen reports the current number of cached entries.
func (e *Engine) CacheLen() int {
	return e.cache.len()
}

func (e *Engine) recordHit() {
	e.statsMu.Lock()
	e.stats.CacheHits++
	e.statsMu.Unlock()
}

func (e *Engine) recordMiss(elapsed time.Duration) {
	e.statsMu.Lock()
	e.stats.CacheMisses++
	e.stats.TotalProcessingTimeMs += elapsed.Milliseconds()
	e.statsMu.Unlock()
}

func resultFromEntry(entry cacheEntry, variant RequestVariant) *ProcessingResult {
	result := &ProcessingResult{Variant: variant}
	switch variant {
	case VariantPreview:
		result.Preview = entry.preview
	case VariantFullQuality:
		result.Full = entry.full
	case VariantBoth:
		result.Preview = entry.preview
		result.Full = entry.full
	}
	return result
}
