package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Clip is one loaded sound on a Device.
type Clip interface {
	Play()
	Stop()
	Playing() bool
	SetVolume(v float32)
	SetPan(p float32)
	Unload()
}

// Device loads and synthesizes clips.
type Device interface {
	LoadSound(path string) (Clip, error)
	Tone(freq float32, d time.Duration) (Clip, error)
	Close()
}

// Listener represents the audio listener position and orientation
type Listener struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
}

// Source represents an audio source in the world
type Source struct {
	ID          uint64
	Position    rl.Vector3
	Clip        Clip
	Volume      float32
	MaxDistance float32
	Loop        bool
	Spatial     bool
	playing     bool
}

// Manager handles playback for one device.
type Manager struct {
	mu       sync.Mutex
	device   Device
	listener Listener
	sources  map[uint64]*Source
	nextID   uint64
	muted    bool
}

func NewManager(device Device) *Manager {
	return &Manager{
		device:   device,
		sources:  make(map[uint64]*Source),
		listener: Listener{Forward: rl.Vector3{Z: -1}, Right: rl.Vector3{X: 1}},
	}
}

// SetMuted stops everything and refuses new playback while muted.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	if !muted {
		return
	}
	for _, src := range m.sources {
		if src.playing {
			src.Clip.Stop()
			src.playing = false
		}
	}
}

// Close unloads every source and shuts the device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, src := range m.sources {
		src.Clip.Unload()
	}
	m.sources = nil
	if m.device != nil {
		m.device.Close()
	}
}

// SetListener updates the listener position and orientation
func (m *Manager) SetListener(pos, forward, up rl.Vector3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = NewListener(pos, forward, up)
}

// NewListener normalizes forward (default -Z) and derives right as up x forward.
func NewListener(pos, forward, up rl.Vector3) Listener {
	l := Listener{Position: pos}
	if fwdLen := rl.Vector3Length(forward); fwdLen > 0.001 {
		l.Forward = rl.Vector3Scale(forward, 1.0/fwdLen)
	} else {
		l.Forward = rl.Vector3{Z: -1}
	}
	right := rl.Vector3CrossProduct(up, l.Forward)
	if rightLen := rl.Vector3Length(right); rightLen > 0.001 {
		l.Right = rl.Vector3Scale(right, 1.0/rightLen)
	} else {
		l.Right = rl.Vector3{X: 1}
	}
	return l
}

// Load loads a sound file as a new spatial source.
func (m *Manager) Load(path string) (uint64, error) {
	if m.device == nil {
		return 0, errors.New("audio: no device")
	}
	clip, err := m.device.LoadSound(path)
	if err != nil {
		return 0, fmt.Errorf("load sound %s: %w", path, err)
	}
	return m.add(clip), nil
}

// LoadTone synthesizes a short sine tone as a new spatial source.
func (m *Manager) LoadTone(freq float32, d time.Duration) (uint64, error) {
	if m.device == nil {
		return 0, errors.New("audio: no device")
	}
	clip, err := m.device.Tone(freq, d)
	if err != nil {
		return 0, fmt.Errorf("synthesize tone: %w", err)
	}
	return m.add(clip), nil
}

func (m *Manager) add(clip Clip) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := m.nextID
	m.sources[id] = &Source{
		ID:          id,
		Clip:        clip,
		Volume:      1.0,
		MaxDistance: 50.0,
		Spatial:     true,
	}
	return id
}

// PlayAt moves a source to pos and starts it with the current listener mix.
func (m *Manager) PlayAt(id uint64, pos rl.Vector3) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok || m.muted {
		return false
	}
	src.Position = pos
	m.mix(src)
	src.Clip.Play()
	src.playing = true
	return true
}

func (m *Manager) Stop(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if src, ok := m.sources[id]; ok {
		src.Clip.Stop()
		src.playing = false
	}
}

// Configure edits a source under the manager's lock.
func (m *Manager) Configure(id uint64, fn func(*Source)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if src, ok := m.sources[id]; ok {
		fn(src)
	}
}

// Update re-mixes playing sources against the listener.
func (m *Manager) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, src := range m.sources {
		if !src.playing {
			continue
		}
		if !src.Clip.Playing() {
			if !src.Loop {
				src.playing = false
				continue
			}
			src.Clip.Play()
		}
		m.mix(src)
	}
}

func (m *Manager) mix(src *Source) {
	if !src.Spatial {
		src.Clip.SetVolume(src.Volume)
		src.Clip.SetPan(0.5)
		return
	}
	vol, pan := Spatialize(m.listener, src.Position, src.Volume, src.MaxDistance)
	src.Clip.SetVolume(vol)
	src.Clip.SetPan(pan)
}

func (m *Manager) IsPlaying(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if src, ok := m.sources[id]; ok {
		return src.playing && src.Clip.Playing()
	}
	return false
}

// Spatialize returns the volume and pan for a source at pos: linear
// distance falloff, pan from the listener's right vector, and a cut for
// sources behind the listener.
func Spatialize(l Listener, pos rl.Vector3, volume, maxDistance float32) (float32, float32) {
	toSource := rl.Vector3Subtract(pos, l.Position)
	distance := rl.Vector3Length(toSource)

	var vol float32
	if distance < maxDistance {
		vol = volume * (1.0 - distance/maxDistance)
	}

	var pan float32 = 0.5
	if distance > 0.001 {
		direction := rl.Vector3Scale(toSource, 1.0/distance)
		// -1 = full left, +1 = full right
		rightDot := rl.Vector3DotProduct(direction, l.Right)
		pan = 0.5 + rightDot*0.5
		if pan < 0.0 {
			pan = 0.0
		} else if pan > 1.0 {
			pan = 1.0
		}

		if frontDot := rl.Vector3DotProduct(direction, l.Forward); frontDot < 0 {
			vol *= 0.7 + 0.3*float32(math.Abs(float64(frontDot)))
		}
	}
	return vol, pan
}
