package game

import (
	"math/rand"
	"time"
)

// Settings configure a play session.
type Settings struct {
	TargetMin     int   // smallest target drawn, inclusive
	TargetMax     int   // largest target drawn, inclusive
	Required      int   // equations needed to complete a round
	BrokenButtons int   // buttons broken per round
	Seed          int64 // 0 draws a time-based seed
}

// DefaultSettings match the original game: five equations per round,
// three broken buttons, two-digit targets.
func DefaultSettings() Settings {
	return Settings{
		TargetMin:     10,
		TargetMax:     99,
		Required:      5,
		BrokenButtons: 3,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.TargetMin <= 0 {
		s.TargetMin = d.TargetMin
	}
	if s.TargetMax < s.TargetMin {
		s.TargetMax = s.TargetMin + (d.TargetMax - d.TargetMin)
	}
	if s.Required <= 0 {
		s.Required = d.Required
	}
	if s.BrokenButtons < 0 {
		s.BrokenButtons = 0
	}
	return s
}

// Manager owns one play session: its RNG, its settings and its current
// round. Each session must have its own Manager; rounds are never shared
// across sessions.
type Manager struct {
	settings Settings
	rng      *rand.Rand
	round    *Round
}

// NewManager creates a session manager. A zero Seed gives every session a
// fresh sequence of targets; a fixed Seed reproduces rounds exactly.
func NewManager(settings Settings) *Manager {
	settings = settings.withDefaults()
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		settings: settings,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// StartRound draws a fresh target and broken buttons and replaces the
// current round. Any previous round is abandoned as-is.
func (m *Manager) StartRound() *Round {
	target := m.settings.TargetMin + m.rng.Intn(m.settings.TargetMax-m.settings.TargetMin+1)
	broken := GenerateBrokenButtons(m.rng, target, m.settings.BrokenButtons)
	m.round = NewRound(target, m.settings.Required, broken)
	return m.round
}

// Round returns the current round, or nil before the first StartRound.
func (m *Manager) Round() *Round {
	return m.round
}

// Submit forwards to the current round.
func (m *Manager) Submit(raw string) (Equation, error) {
	if m.round == nil {
		return Equation{}, New(CodeRoundComplete, "no active round")
	}
	return m.round.Submit(raw)
}
