package audio

import (
	"errors"
	"testing"
	"time"

	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClip struct {
	plays    int
	playing  bool
	volume   float32
	pan      float32
	unloaded bool
}

func (c *fakeClip) Play()               { c.plays++; c.playing = true }
func (c *fakeClip) Stop()               { c.playing = false }
func (c *fakeClip) Playing() bool       { return c.playing }
func (c *fakeClip) SetVolume(v float32) { c.volume = v }
func (c *fakeClip) SetPan(p float32)    { c.pan = p }
func (c *fakeClip) Unload()             { c.unloaded = true }

type fakeDevice struct {
	clips  []*fakeClip
	closed bool
	fail   bool
}

func (d *fakeDevice) LoadSound(path string) (Clip, error) {
	if d.fail {
		return nil, errors.New("no such file")
	}
	c := &fakeClip{}
	d.clips = append(d.clips, c)
	return c, nil
}

func (d *fakeDevice) Tone(freq float32, dur time.Duration) (Clip, error) {
	return d.LoadSound("")
}

func (d *fakeDevice) Close() { d.closed = true }

func facingZ() Listener {
	return NewListener(rl.Vector3{}, rl.Vector3{Z: -1}, rl.Vector3{Y: 1})
}

func TestSpatializeFalloff(t *testing.T) {
	l := facingZ()

	vol, pan := Spatialize(l, rl.Vector3{}, 1, 50)
	assert.InDelta(t, 1.0, vol, 1e-6)
	assert.InDelta(t, 0.5, pan, 1e-6)

	vol, _ = Spatialize(l, rl.Vector3{Z: -25}, 1, 50)
	assert.InDelta(t, 0.5, vol, 1e-5)

	vol, _ = Spatialize(l, rl.Vector3{Z: -60}, 1, 50)
	assert.Zero(t, vol)
}

func TestSpatializePan(t *testing.T) {
	l := facingZ()
	// up x forward with forward -Z gives -X as right.
	require.InDelta(t, -1.0, l.Right.X, 1e-6)

	_, pan := Spatialize(l, rl.Vector3{X: -10}, 1, 50)
	assert.InDelta(t, 1.0, pan, 1e-6)
	_, pan = Spatialize(l, rl.Vector3{X: 10}, 1, 50)
	assert.InDelta(t, 0.0, pan, 1e-6)
}

func TestSpatializeBehindIsQuieter(t *testing.T) {
	l := facingZ()
	front, _ := Spatialize(l, rl.Vector3{Z: -10}, 1, 50)
	back, _ := Spatialize(l, rl.Vector3{Z: 10}, 1, 50)
	assert.InDelta(t, 0.8, front, 1e-5)
	assert.InDelta(t, 0.8, back, 1e-5)

	side, _ := Spatialize(l, rl.Vector3{X: 10}, 1, 50)
	behindSide, _ := Spatialize(l, rl.Vector3{X: 6, Z: 8}, 1, 50)
	assert.InDelta(t, 0.8, side, 1e-5)
	// frontDot = -0.8 gives 0.7 + 0.24
	assert.InDelta(t, 0.8*0.94, behindSide, 1e-5)
}

func TestNewListenerDefaults(t *testing.T) {
	l := NewListener(rl.Vector3{}, rl.Vector3{}, rl.Vector3{})
	assert.Equal(t, rl.Vector3{Z: -1}, l.Forward)
	assert.Equal(t, rl.Vector3{X: 1}, l.Right)
}

func TestManagerPlayAtMixes(t *testing.T) {
	dev := &fakeDevice{}
	m := NewManager(dev)
	id, err := m.LoadTone(440, 100*time.Millisecond)
	require.NoError(t, err)

	m.SetListener(rl.Vector3{}, rl.Vector3{Z: -1}, rl.Vector3{Y: 1})
	require.True(t, m.PlayAt(id, rl.Vector3{Z: -25}))

	clip := dev.clips[0]
	assert.Equal(t, 1, clip.plays)
	assert.InDelta(t, 0.5, clip.volume, 1e-5)
	assert.True(t, m.IsPlaying(id))

	clip.playing = false
	m.Update()
	assert.False(t, m.IsPlaying(id))
}

func TestManagerLoopRestarts(t *testing.T) {
	dev := &fakeDevice{}
	m := NewManager(dev)
	id, err := m.Load("loop.wav")
	require.NoError(t, err)
	m.Configure(id, func(s *Source) { s.Loop = true })

	m.PlayAt(id, rl.Vector3{})
	dev.clips[0].playing = false
	m.Update()
	assert.Equal(t, 2, dev.clips[0].plays)
}

func TestManagerMuted(t *testing.T) {
	dev := &fakeDevice{}
	m := NewManager(dev)
	id, _ := m.LoadTone(440, 100*time.Millisecond)
	m.PlayAt(id, rl.Vector3{})

	m.SetMuted(true)
	assert.False(t, dev.clips[0].playing)
	assert.False(t, m.PlayAt(id, rl.Vector3{}))

	m.SetMuted(false)
	assert.True(t, m.PlayAt(id, rl.Vector3{}))
}

func TestManagerErrors(t *testing.T) {
	_, err := NewManager(nil).Load("x.wav")
	assert.Error(t, err)

	_, err = NewManager(&fakeDevice{fail: true}).Load("x.wav")
	assert.ErrorContains(t, err, "x.wav")

	assert.False(t, NewManager(&fakeDevice{}).PlayAt(42, rl.Vector3{}))
}

func TestManagerClose(t *testing.T) {
	dev := &fakeDevice{}
	m := NewManager(dev)
	m.LoadTone(440, 100*time.Millisecond)
	m.Close()
	assert.True(t, dev.clips[0].unloaded)
	assert.True(t, dev.closed)
}

func TestToneSamples(t *testing.T) {
	data := ToneSamples(440, 22050, 100*time.Millisecond)
	assert.Len(t, data, 2205*2)
	// sin(0) starts silent
	assert.Equal(t, byte(0), data[0])
	assert.Equal(t, byte(0), data[1])

	assert.Nil(t, ToneSamples(0, 22050, time.Second))
	assert.Nil(t, ToneSamples(440, 22050, 0))
}

func TestCombatSFX(t *testing.T) {
	dev := &fakeDevice{}
	m := NewManager(dev)
	sfx, err := NewCombatSFX(m, zerolog.Nop())
	require.NoError(t, err)

	target := engine.NewGameObject("Goblin")
	target.Transform.Position = rl.Vector3{X: 3}

	sfx.OnHit(target, 0.8)
	assert.Equal(t, 1, dev.clips[0].plays)
	assert.Equal(t, 0, dev.clips[1].plays)

	sfx.OnDeath(target)
	assert.Equal(t, 1, dev.clips[1].plays)
}
