// Package audio plays short sounds through a pluggable device backend. The
// backend owns the native device and context; Sound owns one buffer and one
// source on it.
package audio

import (
	"fmt"
	"io"
)

// Buffer and Source are opaque backend handles. Zero is never live.
type (
	Buffer uint32
	Source uint32
)

// Format describes interleaved PCM samples.
type Format int

const (
	Mono8 Format = iota
	Mono16
	Stereo8
	Stereo16
)

// FormatFor maps a channel count and sample width to a Format.
func FormatFor(channels, bitsPerSample int) (Format, error) {
	switch {
	case channels == 1 && bitsPerSample == 8:
		return Mono8, nil
	case channels == 1 && bitsPerSample == 16:
		return Mono16, nil
	case channels == 2 && bitsPerSample == 8:
		return Stereo8, nil
	case channels == 2 && bitsPerSample == 16:
		return Stereo16, nil
	}
	return 0, fmt.Errorf("no pcm format for %d channels at %d bits", channels, bitsPerSample)
}

func (f Format) Valid() bool { return f >= Mono8 && f <= Stereo16 }

func (f Format) Channels() int {
	if f == Stereo8 || f == Stereo16 {
		return 2
	}
	return 1
}

func (f Format) BitsPerSample() int {
	if f == Mono16 || f == Stereo16 {
		return 16
	}
	return 8
}

// FrameSize is the byte size of one sample across all channels.
func (f Format) FrameSize() int { return f.Channels() * f.BitsPerSample() / 8 }

func (f Format) String() string {
	switch f {
	case Mono8:
		return "Mono8"
	case Mono16:
		return "Mono16"
	case Stereo8:
		return "Stereo8"
	case Stereo16:
		return "Stereo16"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Backend is the native audio API.
type Backend interface {
	OpenDevice(name string) error
	CreateContext(sampleRate int) error
	GenBuffer() Buffer
	GenSource() Source
	UploadPCM(b Buffer, f Format, pcm []byte, sampleRate int) error
	Attach(s Source, b Buffer)
	Play(s Source)
	Pause(s Source)
	SetVolume(s Source, volume float64)
	DeleteBuffer(b Buffer)
	DeleteSource(s Source)
	CloseDevice()
}

// Decoder turns an encoded sound file into PCM at sampleRate.
type Decoder interface {
	Decode(r io.Reader, sampleRate int) (pcm []byte, f Format, err error)
}
