package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/object"
	log "github.com/sirupsen/logrus"
)

// Sound is one PCM clip attached to one source.
type Sound struct {
	object.Base

	dev        *Device
	log        log.FieldLogger
	buffer     Buffer
	source     Source
	format     Format
	sampleRate int
	size       int
	volume     float64
}

func newSound(d *Device, name string) *Sound {
	s := &Sound{Base: object.New("Sound", name), dev: d, volume: 1}
	s.log = d.log.WithField("sound", s.Name())
	return s
}

func (s *Sound) Loaded() bool    { return s.source != 0 }
func (s *Sound) Format() Format  { return s.format }
func (s *Sound) SampleRate() int { return s.sampleRate }
func (s *Sound) Size() int       { return s.size }
func (s *Sound) Volume() float64 { return s.volume }

// LoadFile decodes Root/sounds/name; a name without extension gets ".wav".
// On failure the error is logged and returned and the sound is unchanged.
func (s *Sound) LoadFile(name string) error {
	if filepath.Ext(name) == "" {
		name += ".wav"
	}
	path := filepath.Join(s.dev.Root, "sounds", name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("sound %q: %w", path, core.ErrAssetNotFound)
		} else {
			err = fmt.Errorf("sound %q: %w", path, err)
		}
		s.log.WithError(err).Error("sound file missing")
		return err
	}
	defer f.Close()

	pcm, format, err := s.dev.decoder.Decode(f, s.dev.SampleRate)
	if err != nil {
		err = fmt.Errorf("decode %q: %w", path, err)
		s.log.WithError(err).Error("not a valid sound file")
		return err
	}
	return s.LoadPCM(format, pcm, s.dev.SampleRate)
}

// LoadPCM uploads pcm and attaches it to a fresh source, replacing any
// previous clip.
func (s *Sound) LoadPCM(f Format, pcm []byte, sampleRate int) error {
	if s.Deleted() {
		return fmt.Errorf("sound %s: %w", s.Name(), core.ErrDeleted)
	}
	if !f.Valid() || sampleRate <= 0 || len(pcm) == 0 || len(pcm)%f.FrameSize() != 0 {
		err := fmt.Errorf("%d bytes of %s at %d Hz: %w", len(pcm), f, sampleRate, core.ErrOutOfRange)
		s.log.WithError(err).Error("pcm rejected")
		return err
	}

	b := s.dev.backend
	buf := b.GenBuffer()
	if err := b.UploadPCM(buf, f, pcm, sampleRate); err != nil {
		b.DeleteBuffer(buf)
		s.log.WithError(err).Error("pcm upload failed")
		return fmt.Errorf("sound %s: %w", s.Name(), err)
	}
	s.release()

	s.buffer = buf
	s.source = b.GenSource()
	b.Attach(s.source, s.buffer)
	b.SetVolume(s.source, s.volume)
	s.format = f
	s.sampleRate = sampleRate
	s.size = len(pcm)
	s.log.WithFields(log.Fields{"format": f, "rate": sampleRate, "bytes": len(pcm)}).Debug("sound loaded")
	return nil
}

func (s *Sound) Play() {
	if !s.Loaded() {
		s.log.Warn("play on a sound with no data")
		return
	}
	s.dev.backend.Play(s.source)
}

func (s *Sound) Pause() {
	if !s.Loaded() {
		return
	}
	s.dev.backend.Pause(s.source)
}

// SetVolume sets the gain in [0, 1].
func (s *Sound) SetVolume(v float64) error {
	if v < 0 || v > 1 {
		err := fmt.Errorf("volume %v not in [0,1]: %w", v, core.ErrOutOfRange)
		s.log.WithError(err).Error("volume rejected")
		return err
	}
	s.volume = v
	if s.Loaded() {
		s.dev.backend.SetVolume(s.source, v)
	}
	return nil
}

// Delete releases the buffer and source.
func (s *Sound) Delete() {
	if s.Deleted() {
		return
	}
	s.release()
	s.MarkDeleted()
}

func (s *Sound) release() {
	b := s.dev.backend
	if s.source != 0 {
		b.DeleteSource(s.source)
		s.source = 0
	}
	if s.buffer != 0 {
		b.DeleteBuffer(s.buffer)
		s.buffer = 0
	}
}
