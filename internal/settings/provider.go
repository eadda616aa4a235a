package settings

import (
	"sync"
	"sync/atomic"

	"softkey/internal/config"
	"softkey/internal/logging"
)

// Provider hands out the current settings snapshot. Swapping in a new
// snapshot never touches the old one, so transactions built before a
// change keep reading the settings they started with.
type Provider struct {
	current    atomic.Pointer[Values]
	generation atomic.Uint64
	logger     *logging.Logger

	mu        sync.Mutex
	listeners []func(*Values)
}

// NewProvider creates a Provider seeded from cfg. A nil cfg uses defaults.
func NewProvider(cfg *config.Config, logger *logging.Logger) *Provider {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Default()
	}
	p := &Provider{logger: logger.WithComponent("settings")}
	p.Update(cfg)
	return p
}

// Current returns the active snapshot. It is never nil.
func (p *Provider) Current() *Values {
	return p.current.Load()
}

// Update builds and publishes a new snapshot from cfg.
func (p *Provider) Update(cfg *config.Config) *Values {
	v := FromConfig(cfg.Keyboard)
	v.Generation = p.generation.Add(1)
	p.current.Store(v)

	p.logger.Debug("settings snapshot published",
		"generation", v.Generation,
		"locale", v.Locale,
		"auto_capitalize", v.AutoCapitalize,
	)

	p.mu.Lock()
	listeners := append([]func(*Values){}, p.listeners...)
	p.mu.Unlock()
	for _, fn := range listeners {
		fn(v)
	}
	return v
}

// OnChange registers fn to run after each new snapshot is published.
func (p *Provider) OnChange(fn func(*Values)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Follow subscribes the provider to config reloads from l.
func (p *Provider) Follow(l *config.Loader) {
	l.OnChange(func(cfg *config.Config) {
		p.Update(cfg)
	})
}
