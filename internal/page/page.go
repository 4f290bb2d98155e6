// Package page lays the backdrop's sections out along a scrollable page and
// routes viewport input and visibility to them through the host.
package page

import (
	"math"

	"github.com/iburimskiy/portfolio-backdrop/internal/host"
)

// Section names double as host event targets.
const (
	SectionHero = "hero"
	SectionBand = "band"
)

// Section is a vertical slice of the page in page coordinates.
type Section struct {
	Name   string
	Top    float64
	Height float64
}

// Page lays the sections out top to bottom and tracks the eased scroll
// offset of the viewport.
type Page struct {
	Sections []Section
	Footer   float64

	viewW, viewH float64
	scroll       float64
	target       float64
	easing       float64
}

// New returns a page with the given footer height and scroll easing.
// Call Layout before use.
func New(footer, easing float64) *Page {
	return &Page{Footer: footer, easing: easing}
}

// Layout recomputes section geometry for a w×h viewport: a hero of height
// hero followed by the wave band. The scroll offset is kept within range.
func (p *Page) Layout(w, h, hero, band int) {
	p.viewW, p.viewH = float64(w), float64(h)
	p.Sections = []Section{
		{Name: SectionHero, Top: 0, Height: float64(hero)},
		{Name: SectionBand, Top: float64(hero), Height: float64(band)},
	}
	p.target = clamp(p.target, 0, p.MaxScroll())
	p.scroll = clamp(p.scroll, 0, p.MaxScroll())
}

// Height is the full page height.
func (p *Page) Height() float64 {
	last := p.Sections[len(p.Sections)-1]
	return last.Top + last.Height + p.Footer
}

func (p *Page) MaxScroll() float64 {
	return math.Max(0, p.Height()-p.viewH)
}

// Scroll is the current (eased) viewport offset.
func (p *Page) Scroll() float64 {
	return p.scroll
}

// ScrollBy moves the scroll target by d, clamped to the page.
func (p *Page) ScrollBy(d float64) {
	p.target = clamp(p.target+d, 0, p.MaxScroll())
}

// Update eases the scroll offset toward its target.
func (p *Page) Update() {
	diff := p.target - p.scroll
	if math.Abs(diff) < 0.5 {
		p.scroll = p.target
		return
	}
	p.scroll += diff * p.easing
}

// Section returns the named section.
func (p *Page) Section(name string) (Section, bool) {
	for _, s := range p.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// ScreenY is where the section's top edge sits in the viewport.
func (p *Page) ScreenY(s Section) float64 {
	return s.Top - p.scroll
}

// VisibleFraction is the share of s inside the viewport.
func (p *Page) VisibleFraction(s Section) float64 {
	if s.Height <= 0 {
		return 0
	}
	top := math.Max(s.Top, p.scroll)
	bottom := math.Min(s.Top+s.Height, p.scroll+p.viewH)
	return clamp01((bottom - top) / s.Height)
}

// ToLocal converts a viewport position to s's canvas coordinates and
// reports whether it falls inside s.
func (p *Page) ToLocal(s Section, x, y float64) (float64, float64, bool) {
	ly := y - p.ScreenY(s)
	inside := x >= 0 && x < p.viewW && ly >= 0 && ly < s.Height
	return x, ly, inside
}

// Router turns viewport pointer samples into per-section events,
// sending each section only changes: a sample while the pointer is over it
// and a single "left" event when it goes away.
type Router struct {
	last map[string]host.Pointer
}

func NewRouter() *Router {
	return &Router{last: make(map[string]host.Pointer)}
}

// Route delivers the viewport sample (x, y); present is false when the
// pointer left the window or the last touch ended.
func (r *Router) Route(h *host.Host, p *Page, x, y float64, present bool) {
	for _, s := range p.Sections {
		var next host.Pointer
		if present {
			if lx, ly, inside := p.ToLocal(s, x, y); inside {
				next = host.Pointer{X: lx, Y: ly, Present: true}
			}
		}
		if next == r.last[s.Name] {
			continue
		}
		r.last[s.Name] = next
		h.DispatchPointer(s.Name, next)
	}
}

// Reveal fires the visibility trigger of every section that is at
// least threshold on screen.
func Reveal(h *host.Host, p *Page, threshold float64) {
	for _, s := range p.Sections {
		if !h.Visible(s.Name) && p.VisibleFraction(s) >= threshold {
			h.DispatchVisible(s.Name)
		}
	}
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
