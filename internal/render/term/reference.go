package term

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// referenceCache provides width-keyed caching of glamour renderers.
// Creating a renderer is expensive; caching by width avoids recreation.
var referenceCache sync.Map // map[referenceKey]*glamour.TermRenderer

type referenceKey struct {
	width   int
	theme   Theme
	profile termenv.Profile
}

// getReference returns a cached glamour renderer for the given settings,
// creating one if needed.
func (r *Renderer) getReference() (*glamour.TermRenderer, error) {
	key := referenceKey{width: r.width, theme: *r.theme, profile: r.lg.ColorProfile()}
	if cached, ok := referenceCache.Load(key); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	opts := []glamour.TermRendererOption{
		glamour.WithStyles(glamourStyle(r.theme)),
		glamour.WithColorProfile(key.profile),
	}
	if r.width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}

	// Race-safe: if another goroutine stored first, ours is discarded.
	actual, _ := referenceCache.LoadOrStore(key, renderer)
	return actual.(*glamour.TermRenderer), nil
}

// RenderReference renders the markdown source with glamour, using the same
// theme and width. It is the baseline the native renderer is compared to.
func (r *Renderer) RenderReference(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	renderer, err := r.getReference()
	if err != nil {
		return "", err
	}
	rendered, err := renderer.Render(src)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rendered), nil
}
