package player

import (
	"soundeck/internal/analytics"
	"soundeck/internal/logger"
	"soundeck/internal/types"
)

// Pool owns one controller per visible clip, keyed by clip id. Hotkey and
// click dispatch go through direct lookup here rather than any broadcast
// mechanism.
type Pool struct {
	factory     BackendFactory
	recorder    analytics.Recorder
	master      float64
	controllers map[string]*Controller
}

func NewPool(factory BackendFactory, masterVolume float64, recorder analytics.Recorder) *Pool {
	return &Pool{
		factory:     factory,
		recorder:    recorder,
		master:      masterVolume,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the controller for a clip id.
func (p *Pool) Get(id string) (*Controller, bool) {
	c, ok := p.controllers[id]
	return c, ok
}

// Sync reconciles the pool against the current clip sequence: controllers
// appear for new clips, are rebuilt when a clip's source or trim window
// changed (the old resource is released first), and disappear with their
// clip. Volume-only and metadata-only changes update in place.
func (p *Pool) Sync(clips []types.Clip) {
	seen := make(map[string]bool, len(clips))
	for _, clip := range clips {
		seen[clip.ID] = true
		existing, ok := p.controllers[clip.ID]
		if !ok {
			p.controllers[clip.ID] = p.build(clip)
			continue
		}
		if needsRebuild(existing.clip, clip) {
			if err := existing.Close(); err != nil {
				logger.Warn("closing stale audio", logger.String("clip", clip.ID), logger.ErrorField(err))
			}
			p.controllers[clip.ID] = p.build(clip)
			continue
		}
		existing.clip = clip
		existing.SetClipVolume(clip.Volume)
	}

	for id, c := range p.controllers {
		if !seen[id] {
			if err := c.Close(); err != nil {
				logger.Warn("closing removed clip audio", logger.String("clip", id), logger.ErrorField(err))
			}
			delete(p.controllers, id)
		}
	}
}

func (p *Pool) build(clip types.Clip) *Controller {
	backend, err := p.factory(clip)
	if err != nil {
		logger.Error("preparing audio", logger.String("clip", clip.ID), logger.ErrorField(err))
		backend = nil
	}
	return NewController(clip, backend, p.master, p.recorder)
}

// needsRebuild reports whether the clip's underlying audio resource must be
// re-prepared: the source or the trim window changed.
func needsRebuild(old, next types.Clip) bool {
	if old.SourceRef != next.SourceRef {
		return true
	}
	if !floatPtrEqual(old.TrimStart, next.TrimStart) || !floatPtrEqual(old.TrimEnd, next.TrimEnd) {
		return true
	}
	return false
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SetMasterVolume fans the new master volume out to every controller.
func (p *Pool) SetMasterVolume(v float64) {
	p.master = v
	for _, c := range p.controllers {
		c.SetMasterVolume(v)
	}
}

// Tick advances progress sampling on every controller.
func (p *Pool) Tick() {
	for _, c := range p.controllers {
		c.Tick()
	}
}

// AnyPlaying reports whether any clip is currently audible, which is what
// keeps the progress ticker scheduled.
func (p *Pool) AnyPlaying() bool {
	for _, c := range p.controllers {
		if c.State() == types.Playing {
			return true
		}
	}
	return false
}

// StopAll stops every controller.
func (p *Pool) StopAll() {
	for _, c := range p.controllers {
		c.Stop()
	}
}

// Close releases every audio resource.
func (p *Pool) Close() {
	for id, c := range p.controllers {
		if err := c.Close(); err != nil {
			logger.Warn("closing audio", logger.String("clip", id), logger.ErrorField(err))
		}
		delete(p.controllers, id)
	}
}
