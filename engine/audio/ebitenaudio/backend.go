// Package ebitenaudio backs engine/audio with ebiten's audio player. Every
// clip is converted to 16-bit stereo at the context rate.
package ebitenaudio

import (
	"bytes"
	"fmt"
	"io"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hubastard/layergrove/engine/audio"
	"github.com/hubastard/layergrove/engine/logging"
	log "github.com/sirupsen/logrus"
)

type source struct {
	buffer audio.Buffer
	player *ebaudio.Player
	volume float64
	paused bool
}

// Backend implements audio.Backend. Buffers hold converted PCM; a source
// becomes an ebiten player once a buffer is attached.
type Backend struct {
	log     log.FieldLogger
	ctx     *ebaudio.Context
	next    uint32
	buffers map[audio.Buffer][]byte
	sources map[audio.Source]*source
}

var _ audio.Backend = (*Backend)(nil)

func New(logger log.FieldLogger) *Backend {
	return &Backend{
		log:     logging.Or(logger).WithField("backend", "ebiten"),
		buffers: map[audio.Buffer][]byte{},
		sources: map[audio.Source]*source{},
	}
}

// OpenDevice accepts only the default device.
func (b *Backend) OpenDevice(name string) error {
	if name != "" {
		b.log.WithField("device", name).Warn("device selection unsupported, using default")
	}
	return nil
}

// CreateContext reuses the process context when one exists; its rate must match.
func (b *Backend) CreateContext(sampleRate int) error {
	ctx := ebaudio.CurrentContext()
	if ctx == nil {
		ctx = ebaudio.NewContext(sampleRate)
	}
	if ctx.SampleRate() != sampleRate {
		return fmt.Errorf("audio context runs at %d Hz, want %d", ctx.SampleRate(), sampleRate)
	}
	b.ctx = ctx
	return nil
}

func (b *Backend) GenBuffer() audio.Buffer {
	b.next++
	id := audio.Buffer(b.next)
	b.buffers[id] = nil
	return id
}

func (b *Backend) GenSource() audio.Source {
	b.next++
	id := audio.Source(b.next)
	b.sources[id] = &source{volume: 1}
	return id
}

func (b *Backend) UploadPCM(buf audio.Buffer, f audio.Format, pcm []byte, sampleRate int) error {
	if b.ctx == nil {
		return fmt.Errorf("no audio context")
	}
	if sampleRate != b.ctx.SampleRate() {
		return fmt.Errorf("pcm at %d Hz on a %d Hz context", sampleRate, b.ctx.SampleRate())
	}
	if _, ok := b.buffers[buf]; !ok {
		return fmt.Errorf("unknown buffer %d", buf)
	}
	data, err := audio.ToStereo16(f, pcm)
	if err != nil {
		return err
	}
	b.buffers[buf] = data
	return nil
}

func (b *Backend) Attach(s audio.Source, buf audio.Buffer) {
	src, ok := b.sources[s]
	if !ok {
		return
	}
	b.closePlayer(src)
	src.buffer = buf
	src.player = b.ctx.NewPlayerFromBytes(b.buffers[buf])
	src.player.SetVolume(src.volume)
}

// Play resumes a paused source and restarts any other.
func (b *Backend) Play(s audio.Source) {
	src := b.sources[s]
	if src == nil || src.player == nil {
		return
	}
	if !src.paused {
		if err := src.player.Rewind(); err != nil {
			b.log.WithError(err).Warn("rewind failed")
		}
	}
	src.paused = false
	src.player.Play()
}

func (b *Backend) Pause(s audio.Source) {
	src := b.sources[s]
	if src == nil || src.player == nil || !src.player.IsPlaying() {
		return
	}
	src.player.Pause()
	src.paused = true
}

func (b *Backend) SetVolume(s audio.Source, v float64) {
	src := b.sources[s]
	if src == nil {
		return
	}
	src.volume = v
	if src.player != nil {
		src.player.SetVolume(v)
	}
}

func (b *Backend) DeleteBuffer(buf audio.Buffer) {
	delete(b.buffers, buf)
}

func (b *Backend) DeleteSource(s audio.Source) {
	if src := b.sources[s]; src != nil {
		b.closePlayer(src)
	}
	delete(b.sources, s)
}

// CloseDevice stops every player. The ebiten context lives for the process.
func (b *Backend) CloseDevice() {
	for id, src := range b.sources {
		b.closePlayer(src)
		delete(b.sources, id)
	}
	clear(b.buffers)
}

func (b *Backend) closePlayer(src *source) {
	if src.player == nil {
		return
	}
	if err := src.player.Close(); err != nil {
		b.log.WithError(err).Warn("player close failed")
	}
	src.player = nil
	src.paused = false
}

// Decoder decodes RIFF WAVE files, resampled to the requested rate.
type Decoder struct{}

var _ audio.Decoder = Decoder{}

func (Decoder) Decode(r io.Reader, sampleRate int) ([]byte, audio.Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, err
	}
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, 0, err
	}
	return pcm, audio.Stereo16, nil
}
