package audio

import (
	"encoding/binary"
	"errors"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const toneSampleRate = 22050

// RaylibDevice plays through raylib's audio device.
type RaylibDevice struct{}

// OpenRaylibDevice initializes the audio device. It fails when no output is
// available.
func OpenRaylibDevice() (*RaylibDevice, error) {
	rl.InitAudioDevice()
	if !rl.IsAudioDeviceReady() {
		return nil, errors.New("audio device not ready")
	}
	return &RaylibDevice{}, nil
}

func (d *RaylibDevice) LoadSound(path string) (Clip, error) {
	sound := rl.LoadSound(path)
	if !rl.IsSoundValid(sound) {
		return nil, errors.New("invalid sound")
	}
	return &raylibClip{sound: sound}, nil
}

func (d *RaylibDevice) Tone(freq float32, dur time.Duration) (Clip, error) {
	data := ToneSamples(freq, toneSampleRate, dur)
	if len(data) == 0 {
		return nil, errors.New("empty tone")
	}
	wave := rl.NewWave(uint32(len(data)/2), toneSampleRate, 16, 1, data)
	sound := rl.LoadSoundFromWave(wave)
	if !rl.IsSoundValid(sound) {
		return nil, errors.New("invalid tone")
	}
	return &raylibClip{sound: sound}, nil
}

func (d *RaylibDevice) Close() {
	rl.CloseAudioDevice()
}

type raylibClip struct {
	sound rl.Sound
}

func (c *raylibClip) Play()               { rl.PlaySound(c.sound) }
func (c *raylibClip) Stop()               { rl.StopSound(c.sound) }
func (c *raylibClip) Playing() bool       { return rl.IsSoundPlaying(c.sound) }
func (c *raylibClip) SetVolume(v float32) { rl.SetSoundVolume(c.sound, v) }
func (c *raylibClip) SetPan(p float32)    { rl.SetSoundPan(c.sound, p) }
func (c *raylibClip) Unload()             { rl.UnloadSound(c.sound) }

// ToneSamples renders a sine tone as 16-bit little-endian mono PCM with a
// linear fade-out so it ends without a click.
func ToneSamples(freq float32, sampleRate int, d time.Duration) []byte {
	n := int(d.Seconds() * float64(sampleRate))
	if n <= 0 || freq <= 0 {
		return nil
	}
	out := make([]byte, n*2)
	for i := 0; i < n; i++ {
		env := 1 - float64(i)/float64(n)
		s := math.Sin(2*math.Pi*float64(freq)*float64(i)/float64(sampleRate)) * env * 0.6
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s*math.MaxInt16)))
	}
	return out
}
