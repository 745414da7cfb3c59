// Package reveal marks content blocks the first time they scroll into view.
package reveal

// Options tune when an element counts as visible.
type Options struct {
	// Threshold is the visible fraction of an element that reveals it.
	Threshold float64
	// BottomMargin shrinks the viewport's bottom edge, in viewport units.
	BottomMargin int
}

func DefaultOptions() Options {
	return Options{Threshold: 0.1, BottomMargin: 50}
}

// Bounds is a vertical span: Top is the first unit, Height the extent.
type Bounds struct {
	Top    int
	Height int
}

func (b Bounds) bottom() int { return b.Top + b.Height }

type Element struct {
	ID     string
	Bounds Bounds
}

// Animator tracks observed elements. Once an element is revealed it stops
// being observed and can never be revealed again.
type Animator struct {
	opts     Options
	observed map[string]struct{}
	revealed map[string]struct{}
}

func New(opts Options) *Animator {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultOptions().Threshold
	}
	if opts.BottomMargin < 0 {
		opts.BottomMargin = 0
	}
	return &Animator{
		opts:     opts,
		observed: make(map[string]struct{}),
		revealed: make(map[string]struct{}),
	}
}

// Observe starts watching ids. Already revealed ids are ignored.
func (a *Animator) Observe(ids ...string) {
	for _, id := range ids {
		if _, done := a.revealed[id]; done {
			continue
		}
		a.observed[id] = struct{}{}
	}
}

func (a *Animator) Observing(id string) bool {
	_, ok := a.observed[id]
	return ok
}

func (a *Animator) Revealed(id string) bool {
	_, ok := a.revealed[id]
	return ok
}

// Check reveals every observed element whose visible ratio inside viewport
// reaches the threshold and returns their IDs in input order.
func (a *Animator) Check(viewport Bounds, elements []Element) []string {
	var out []string
	for _, el := range elements {
		if _, ok := a.observed[el.ID]; !ok {
			continue
		}
		if VisibleRatio(viewport, a.opts.BottomMargin, el.Bounds) < a.opts.Threshold {
			continue
		}
		delete(a.observed, el.ID)
		a.revealed[el.ID] = struct{}{}
		out = append(out, el.ID)
	}
	return out
}

// VisibleRatio returns the fraction of el inside viewport after shrinking the
// viewport's bottom by margin. A zero-height element is fully visible when
// its top lies inside the viewport.
func VisibleRatio(viewport Bounds, margin int, el Bounds) float64 {
	top := viewport.Top
	bottom := viewport.bottom() - margin
	if bottom <= top {
		return 0
	}
	if el.Height <= 0 {
		if el.Top >= top && el.Top < bottom {
			return 1
		}
		return 0
	}
	lo := max(top, el.Top)
	hi := min(bottom, el.bottom())
	if hi <= lo {
		return 0
	}
	return float64(hi-lo) / float64(el.Height)
}
