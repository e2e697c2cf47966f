package readout

import (
	"sort"
	"sync"
)

// Element ids written by the viewer.
const (
	LoadingProgress = "loading-progress"
	LoadingScreen   = "loading-screen"
	Time            = "time"
	ACState         = "ac-state"
	WindowState     = "window-state"
	Temperature     = "temperature"

	// FadeOut is the class that dismisses the loading screen.
	FadeOut = "fade-out"
)

// Overlay is a blocking error message.
type Overlay struct {
	Title   string
	Message string
}

// Panel is the text surface both front ends draw from: element text,
// element classes, and at most one error overlay. Loader goroutines write
// to it while the render loop reads, so every method locks.
type Panel struct {
	mu      sync.RWMutex
	text    map[string]string
	classes map[string]map[string]struct{}
	overlay *Overlay
}

// NewPanel returns an empty panel.
func NewPanel() *Panel {
	return &Panel{
		text:    make(map[string]string),
		classes: make(map[string]map[string]struct{}),
	}
}

func (p *Panel) SetText(id, text string) {
	p.mu.Lock()
	p.text[id] = text
	p.mu.Unlock()
}

func (p *Panel) Text(id string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text[id]
}

func (p *Panel) AddClass(id, class string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	set, ok := p.classes[id]
	if !ok {
		set = make(map[string]struct{})
		p.classes[id] = set
	}
	set[class] = struct{}{}
}

func (p *Panel) HasClass(id, class string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.classes[id][class]
	return ok
}

// Classes returns id's classes in sorted order.
func (p *Panel) Classes(id string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.classes[id]))
	for c := range p.classes[id] {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ShowError raises the error overlay. Only the first call has an effect;
// it reports whether this call raised it.
func (p *Panel) ShowError(title, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.overlay != nil {
		return false
	}
	p.overlay = &Overlay{Title: title, Message: message}
	return true
}

// Error returns the raised overlay, if any.
func (p *Panel) Error() (Overlay, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.overlay == nil {
		return Overlay{}, false
	}
	return *p.overlay, true
}

// Loading reports whether the loading screen is still up.
func (p *Panel) Loading() bool {
	return !p.HasClass(LoadingScreen, FadeOut)
}
