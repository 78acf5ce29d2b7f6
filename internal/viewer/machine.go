package viewer

import (
	"fmt"
	"sync"
	"time"

	"cataloghub/pkg/models"
)

type Mode string

const (
	// ModeSingle shows one page at a time (narrow viewports).
	ModeSingle Mode = "single"
	// ModeSpread shows facing two-page spreads (wide viewports).
	ModeSpread Mode = "spread"
)

type Status string

const (
	StatusReady  Status = "ready"
	StatusEmpty  Status = "empty"
	StatusClosed Status = "closed"
)

// Prefetcher receives the image URLs of the units adjacent to the current
// one whenever the live index changes. Implementations must not block the
// caller; the machine invokes Prefetch on its own goroutine anyway.
type Prefetcher interface {
	Prefetch(urls []string)
}

// DefaultLock is how long navigation commands are dropped after a
// transition, debouncing rapid double-fired input events.
const DefaultLock = 300 * time.Millisecond

type Config struct {
	Mode     Mode
	Lock     time.Duration    // 0 means DefaultLock
	Now      func() time.Time // injectable clock for tests
	Prefetch Prefetcher
}

// Machine owns the viewer's navigation state. There is one logical
// position, the current flat-page index; the single-page index and the
// spread index are projections of it, so switching layout modes can never
// drift the two tracks apart.
type Machine struct {
	mu          sync.Mutex
	pages       []models.FlatPage
	spreads     []models.Spread
	mode        Mode
	status      Status
	pos         int
	lock        time.Duration
	lockedUntil time.Time
	now         func() time.Time
	prefetch    Prefetcher
	broken      map[int]bool
}

func New(pages []models.FlatPage, cfg Config) *Machine {
	m := &Machine{
		pages:    pages,
		spreads:  PlanSpreads(pages),
		mode:     cfg.Mode,
		status:   StatusReady,
		lock:     cfg.Lock,
		now:      cfg.Now,
		prefetch: cfg.Prefetch,
		broken:   make(map[int]bool),
	}
	if m.mode == "" {
		m.mode = ModeSpread
	}
	if m.lock <= 0 {
		m.lock = DefaultLock
	}
	if m.now == nil {
		m.now = time.Now
	}
	if len(pages) == 0 {
		m.status = StatusEmpty
	}
	return m
}

func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// SetMode switches the layout mode, keeping the logical page position; the
// new live track picks up at the unit containing the current page.
func (m *Machine) SetMode(mode Mode) {
	if mode != ModeSingle && mode != ModeSpread {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

// PageIndex returns the current logical flat-page index.
func (m *Machine) PageIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

// SpreadIndex returns the index of the spread containing the current page.
func (m *Machine) SpreadIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spreadIndexLocked()
}

// UnitIndex returns the position in the live track: the page index in
// single mode, the spread index in spread mode.
func (m *Machine) UnitIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unitIndexLocked()
}

func (m *Machine) UnitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unitCountLocked()
}

// Next advances one unit. Returns false without an error or state change at
// the last unit, while the animation lock is held, or after Close.
func (m *Machine) Next() bool {
	return m.step(1)
}

// Prev retreats one unit; boundary and lock semantics as Next.
func (m *Machine) Prev() bool {
	return m.step(-1)
}

func (m *Machine) step(delta int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusReady || m.lockedLocked() {
		return false
	}
	target := m.unitIndexLocked() + delta
	if target < 0 || target >= m.unitCountLocked() {
		return false
	}
	m.applyUnitLocked(target)
	return true
}

// GoTo jumps directly to a unit of the live track (progress-dot click).
// Out-of-range targets are ignored, never an error.
func (m *Machine) GoTo(unit int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != StatusReady || m.lockedLocked() {
		return false
	}
	if unit < 0 || unit >= m.unitCountLocked() || unit == m.unitIndexLocked() {
		return false
	}
	m.applyUnitLocked(unit)
	return true
}

// Close is the terminal transition back to the catalog list; every command
// after it is ignored.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusClosed
}

func (m *Machine) CanGoPrev() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusReady && m.unitIndexLocked() > 0
}

func (m *Machine) CanGoNext() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status == StatusReady && m.unitIndexLocked() < m.unitCountLocked()-1
}

// CurrentPage returns the page at the logical position, or nil for an empty
// catalog.
func (m *Machine) CurrentPage() *models.FlatPage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pages) == 0 {
		return nil
	}
	return &m.pages[m.pos]
}

// CurrentSpread returns the spread containing the current page.
func (m *Machine) CurrentSpread() models.Spread {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.spreadIndexLocked()
	if idx < 0 || idx >= len(m.spreads) {
		return models.Spread{}
	}
	return m.spreads[idx]
}

// Label describes the current unit: the company name on company pages, the
// page kind otherwise.
func (m *Machine) Label() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pages) == 0 {
		return ""
	}
	p := m.pages[m.pos]
	if p.Type == models.PageCompany {
		return p.CompanyName
	}
	return string(p.Type)
}

// Progress renders "page X of N". In spread mode X becomes the range
// "A–B" when the spread shows two distinct pages.
func (m *Machine) Progress() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := len(m.pages)
	if total == 0 {
		return ""
	}

	if m.mode == ModeSingle {
		return fmt.Sprintf("%d of %d", m.pos+1, total)
	}

	idx := m.spreadIndexLocked()
	if idx < 0 || idx >= len(m.spreads) {
		return fmt.Sprintf("%d of %d", m.pos+1, total)
	}
	sp := m.spreads[idx]
	if sp.Left != nil && sp.Right != nil {
		return fmt.Sprintf("%d–%d of %d", sp.Left.GlobalIndex+1, sp.Right.GlobalIndex+1, total)
	}
	if sp.Left != nil {
		return fmt.Sprintf("%d of %d", sp.Left.GlobalIndex+1, total)
	}
	return fmt.Sprintf("%d of %d", sp.Right.GlobalIndex+1, total)
}

// Fraction is the progress-bar value in [0, 1] over the live track.
func (m *Machine) Fraction() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := m.unitCountLocked()
	if count == 0 {
		return 0
	}
	return float64(m.unitIndexLocked()+1) / float64(count)
}

// MarkBroken records a failed image load so the renderer can show a
// degraded placeholder; the page stays navigable.
func (m *Machine) MarkBroken(pageIndex int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pageIndex >= 0 && pageIndex < len(m.pages) {
		m.broken[pageIndex] = true
	}
}

func (m *Machine) Broken(pageIndex int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broken[pageIndex]
}

func (m *Machine) lockedLocked() bool {
	return m.now().Before(m.lockedUntil)
}

func (m *Machine) unitIndexLocked() int {
	if m.mode == ModeSingle {
		return m.pos
	}
	return m.spreadIndexLocked()
}

func (m *Machine) unitCountLocked() int {
	if m.mode == ModeSingle {
		return len(m.pages)
	}
	return len(m.spreads)
}

func (m *Machine) spreadIndexLocked() int {
	if len(m.spreads) == 0 {
		return -1
	}
	if idx := SpreadIndexOf(m.spreads, m.pos); idx >= 0 {
		return idx
	}
	return 0
}

// applyUnitLocked commits a navigation: moves the logical position to the
// target unit's first page, arms the animation lock and kicks off the
// one-ahead/one-behind prefetch.
func (m *Machine) applyUnitLocked(unit int) {
	if m.mode == ModeSingle {
		m.pos = unit
	} else {
		sp := m.spreads[unit]
		if sp.Left != nil {
			m.pos = sp.Left.GlobalIndex
		} else if sp.Right != nil {
			m.pos = sp.Right.GlobalIndex
		}
	}
	m.lockedUntil = m.now().Add(m.lock)
	m.prefetchAroundLocked(unit)
}

func (m *Machine) prefetchAroundLocked(unit int) {
	if m.prefetch == nil {
		return
	}
	var urls []string
	for _, n := range []int{unit - 1, unit + 1} {
		if n < 0 || n >= m.unitCountLocked() {
			continue
		}
		urls = append(urls, m.unitURLsLocked(n)...)
	}
	if len(urls) == 0 {
		return
	}
	go m.prefetch.Prefetch(urls)
}

func (m *Machine) unitURLsLocked(unit int) []string {
	if m.mode == ModeSingle {
		return []string{m.pages[unit].ImageURL}
	}
	var urls []string
	sp := m.spreads[unit]
	if sp.Left != nil {
		urls = append(urls, sp.Left.ImageURL)
	}
	if sp.Right != nil {
		urls = append(urls, sp.Right.ImageURL)
	}
	return urls
}
