// Package player is the audio-player collaborator. Virtual tracks playback
// state and reports it through the logger; decoding streams is left to the
// platform's media element.
package player

import (
	"log/slog"
	"sync"

	"gitlab.com/tinyland/lab/tvnav/pkg/stations"
)

// State is the playback state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// Player is what the navigation core and the pages drive.
type Player interface {
	Play(s stations.Station)
	Pause()
	Resume()
	Stop()
	IsPlaying() bool
}

// Virtual is an in-process Player.
type Virtual struct {
	mu      sync.Mutex
	state   State
	station *stations.Station
	logger  *slog.Logger
}

// NewVirtual returns a stopped player. A nil logger uses slog.Default().
func NewVirtual(logger *slog.Logger) *Virtual {
	if logger == nil {
		logger = slog.Default()
	}
	return &Virtual{logger: logger}
}

// Play starts s, replacing whatever was playing.
func (p *Virtual) Play(s stations.Station) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.station = &s
	p.state = Playing
	p.logger.Info("player: play", "station", s.ID, "url", s.URL)
}

// Pause pauses playback. It is a no-op unless playing.
func (p *Virtual) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing {
		return
	}
	p.state = Paused
	p.logger.Info("player: pause", "station", p.station.ID)
}

// Resume continues paused playback. It is a no-op unless paused.
func (p *Virtual) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Paused {
		return
	}
	p.state = Playing
	p.logger.Info("player: resume", "station", p.station.ID)
}

// Toggle switches between playing and paused.
func (p *Virtual) Toggle() {
	if p.IsPlaying() {
		p.Pause()
	} else {
		p.Resume()
	}
}

// Stop ends playback and forgets the station.
func (p *Virtual) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Stopped {
		return
	}
	p.state = Stopped
	p.station = nil
	p.logger.Info("player: stop")
}

// IsPlaying reports whether audio is playing.
func (p *Virtual) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == Playing
}

// State returns the playback state.
func (p *Virtual) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Station returns the current station, if any.
func (p *Virtual) Station() (stations.Station, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.station == nil {
		return stations.Station{}, false
	}
	return *p.station, true
}
