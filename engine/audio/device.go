package audio

import (
	"fmt"

	"github.com/hubastard/layergrove/engine/logging"
	log "github.com/sirupsen/logrus"
)

// DefaultSampleRate is used when Options.SampleRate is zero.
const DefaultSampleRate = 44100

// Options configures Open.
type Options struct {
	Device     string // empty selects the default device
	SampleRate int
	// Root is the asset root; sound files live under Root/sounds.
	Root string
}

// Device is an open audio device with a current context. It tracks the
// sounds created on it so Close can release them.
type Device struct {
	SampleRate int
	Root       string

	backend Backend
	decoder Decoder
	log     log.FieldLogger
	sounds  []*Sound
	closed  bool
}

// Open opens the device and makes a context current on it.
func Open(b Backend, d Decoder, opts Options, logger log.FieldLogger) (*Device, error) {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	l := logging.Or(logger).WithField("device", opts.Device)

	if err := b.OpenDevice(opts.Device); err != nil {
		l.WithError(err).Error("no audio device could be opened")
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	if err := b.CreateContext(opts.SampleRate); err != nil {
		l.WithError(err).Error("audio context could not be created")
		b.CloseDevice()
		return nil, fmt.Errorf("create audio context: %w", err)
	}
	l.WithField("rate", opts.SampleRate).Info("audio ready")
	return &Device{
		SampleRate: opts.SampleRate,
		Root:       opts.Root,
		backend:    b,
		decoder:    d,
		log:        l,
	}, nil
}

// NewSound returns an empty sound bound to d.
func (d *Device) NewSound(name string) *Sound {
	s := newSound(d, name)
	d.sounds = append(d.sounds, s)
	return s
}

// Sounds lists the sounds that are not deleted.
func (d *Device) Sounds() []*Sound {
	out := make([]*Sound, 0, len(d.sounds))
	for _, s := range d.sounds {
		if !s.Deleted() {
			out = append(out, s)
		}
	}
	return out
}

// DeleteAll deletes every sound created on d.
func (d *Device) DeleteAll() {
	for _, s := range d.sounds {
		s.Delete()
	}
	d.sounds = nil
}

// Close deletes the sounds and closes the device. It is idempotent.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.DeleteAll()
	d.backend.CloseDevice()
	d.closed = true
	d.log.Debug("audio closed")
}
