package scene

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"tileworld/pkg/engine/input"
)

// DefaultMaxCascade bounds how many automatic transitions may chain after one event
const DefaultMaxCascade = 32

// Rect is an inclusive screen rectangle
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Normalized returns the rectangle with its corners ordered
func (r Rect) Normalized() Rect {
	if r.X2 < r.X1 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y2 < r.Y1 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// Contains reports whether (x, y) lies inside the rectangle, edges included
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Width returns the horizontal extent in pixels
func (r Rect) Width() int {
	return r.X2 - r.X1
}

// Height returns the vertical extent in pixels
func (r Rect) Height() int {
	return r.Y2 - r.Y1
}

// Rule is one row of the transition table
type Rule struct {
	From string
	To   string
	When []Condition
}

// NamedRegion is a clickable region paired with the state it leads to
type NamedRegion struct {
	Name   string
	Rect   Rect
	Target string
}

// Transition describes a committed state change
type Transition struct {
	From  string
	To    string
	Cause Condition
}

// Options configures a Machine
type Options struct {
	Start    string
	Rules    []Rule
	Regions  map[string]Rect
	Keymap   input.Keymap
	Terminal []string

	// MaxCascade caps chained automatic transitions; zero means DefaultMaxCascade
	MaxCascade int

	Logger       *slog.Logger
	OnTransition func(Transition)
}

// Machine is the scene state machine. Exactly one state is current.
type Machine struct {
	start      string
	rules      []Rule
	regions    map[string]Rect
	keymap     input.Keymap
	states     mapset.Set[string]
	terminal   mapset.Set[string]
	maxCascade int

	current    string
	terminated bool

	log          *slog.Logger
	onTransition func(Transition)
}

// New builds a machine and resolves any automatic transitions leaving the start state
func New(opts Options) (*Machine, error) {
	m := &Machine{
		log:          opts.Logger,
		onTransition: opts.OnTransition,
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if err := m.configure(opts); err != nil {
		return nil, err
	}
	m.current = m.start
	if m.terminal.Has(m.current) {
		m.terminated = true
		return m, nil
	}
	if err := m.cascade(); err != nil {
		return m, err
	}
	return m, nil
}

// configure installs the table from opts without touching the current state
func (m *Machine) configure(opts Options) error {
	if strings.TrimSpace(opts.Start) == "" {
		return ErrNoStartState
	}

	m.start = opts.Start
	m.rules = opts.Rules
	m.keymap = opts.Keymap
	m.maxCascade = opts.MaxCascade
	if m.maxCascade <= 0 {
		m.maxCascade = DefaultMaxCascade
	}

	m.regions = make(map[string]Rect, len(opts.Regions))
	for name, r := range opts.Regions {
		m.regions[name] = r.Normalized()
	}

	m.states = mapset.New[string]()
	m.states.Put(m.start)
	for _, r := range m.rules {
		m.states.Put(r.From)
		m.states.Put(r.To)
		for _, c := range r.When {
			switch c.Kind {
			case CondRegion:
				if _, ok := m.regions[c.Name]; !ok {
					m.log.Warn("transition references undefined region", "from", r.From, "to", r.To, "region", c.Name)
				}
			case CondKey:
				if !m.keymap.Has(c.Name) {
					m.log.Warn("transition references undefined key action", "from", r.From, "to", r.To, "action", c.Name)
				}
			}
		}
	}

	m.terminal = mapset.New[string]()
	for _, s := range opts.Terminal {
		m.terminal.Put(s)
	}
	return nil
}

// Reload swaps in a new table. The current state is kept when the new table
// still knows it; otherwise the machine returns to the start state. Either
// way the new terminal set is applied and automatic transitions leaving the
// resulting state fire.
func (m *Machine) Reload(opts Options) error {
	if opts.Logger == nil {
		opts.Logger = m.log
	}
	if err := m.configure(opts); err != nil {
		return err
	}
	if !m.states.Has(m.current) {
		m.log.Info("current state dropped by reload, returning to start", "state", m.current, "start", m.start)
		m.current = m.start
	}
	m.terminated = m.terminal.Has(m.current)
	if m.terminated {
		return nil
	}
	return m.cascade()
}

// Current returns the current state
func (m *Machine) Current() string {
	return m.current
}

// Terminated reports whether the machine has entered a terminal state
func (m *Machine) Terminated() bool {
	return m.terminated
}

// HasState reports whether s is a known state
func (m *Machine) HasState(s string) bool {
	return m.states.Has(s)
}

// States returns the known states in sorted order
func (m *Machine) States() []string {
	out := make([]string, 0, m.states.Size())
	m.states.Each(func(s string) {
		out = append(out, s)
	})
	sort.Strings(out)
	return out
}

// Keymap returns the key bindings the machine matches against
func (m *Machine) Keymap() input.Keymap {
	return m.keymap
}

// Handle dispatches a backend event. It reports whether a transition fired.
func (m *Machine) Handle(ev input.Event) (bool, error) {
	switch {
	case ev.Kind == input.EventKeyDown:
		return m.HandleKey(ev.Key)
	case ev.IsPrimaryClick():
		return m.HandleClick(ev.X, ev.Y)
	default:
		return false, nil
	}
}

// HandleKey fires the first rule leaving the current state whose key
// condition is bound to k, then resolves automatic transitions.
func (m *Machine) HandleKey(k input.Key) (bool, error) {
	return m.fire(func(c Condition) bool {
		return c.Kind == CondKey && m.keymap.Matches(c.Name, k)
	})
}

// HandleClick fires the first rule leaving the current state whose region
// contains (x, y), then resolves automatic transitions.
func (m *Machine) HandleClick(x, y int) (bool, error) {
	return m.fire(func(c Condition) bool {
		if c.Kind != CondRegion {
			return false
		}
		r, ok := m.regions[c.Name]
		return ok && r.Contains(x, y)
	})
}

// fire commits the first matching rule in table order
func (m *Machine) fire(match func(Condition) bool) (bool, error) {
	if m.terminated {
		return false, nil
	}
	for _, r := range m.rules {
		if r.From != m.current {
			continue
		}
		for _, c := range r.When {
			if !match(c) {
				continue
			}
			m.enter(r.To, c)
			if m.terminated {
				return true, nil
			}
			return true, m.cascade()
		}
	}
	return false, nil
}

// cascade follows automatic transitions until none applies or the cap is hit
func (m *Machine) cascade() error {
	path := []string{m.current}
	for hops := 0; !m.terminated; hops++ {
		next, ok := m.autoTarget()
		if !ok {
			return nil
		}
		if hops >= m.maxCascade {
			return fmt.Errorf("scene: %s: %w (limit %d)", strings.Join(path, " -> "), ErrAutoCascade, m.maxCascade)
		}
		m.enter(next, Auto())
		path = append(path, next)
	}
	return nil
}

// autoTarget returns the destination of the first auto rule from the current state
func (m *Machine) autoTarget() (string, bool) {
	for _, r := range m.rules {
		if r.From != m.current {
			continue
		}
		for _, c := range r.When {
			if c.Kind == CondAuto {
				return r.To, true
			}
		}
	}
	return "", false
}

// enter makes to the current state
func (m *Machine) enter(to string, cause Condition) {
	t := Transition{From: m.current, To: to, Cause: cause}
	m.current = to
	m.log.Debug("scene transition", "from", t.From, "to", t.To, "cause", cause.String())
	if m.terminal.Has(to) {
		m.terminated = true
	}
	if m.onTransition != nil {
		m.onTransition(t)
	}
}

// ActiveRegions returns the regions referenced by rules leaving the current
// state, in table order, each listed once.
func (m *Machine) ActiveRegions() []NamedRegion {
	var out []NamedRegion
	seen := mapset.New[string]()
	for _, r := range m.rules {
		if r.From != m.current {
			continue
		}
		for _, c := range r.When {
			if c.Kind != CondRegion || seen.Has(c.Name) {
				continue
			}
			rect, ok := m.regions[c.Name]
			if !ok {
				continue
			}
			seen.Put(c.Name)
			out = append(out, NamedRegion{Name: c.Name, Rect: rect, Target: r.To})
		}
	}
	return out
}
