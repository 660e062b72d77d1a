package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/hubastard/layergrove/engine/core"
)

// ToStereo16 converts PCM in f to signed 16-bit little-endian stereo. 8-bit
// input is unsigned and is re-centred on zero; mono samples are duplicated.
func ToStereo16(f Format, pcm []byte) ([]byte, error) {
	if !f.Valid() || len(pcm)%f.FrameSize() != 0 {
		return nil, fmt.Errorf("%d bytes of %s: %w", len(pcm), f, core.ErrOutOfRange)
	}
	if f == Stereo16 {
		return append([]byte(nil), pcm...), nil
	}

	frames := len(pcm) / f.FrameSize()
	out := make([]byte, frames*4)
	sample := func(i int) uint16 {
		if f.BitsPerSample() == 8 {
			return uint16(int16(pcm[i])-128) << 8
		}
		return binary.LittleEndian.Uint16(pcm[i*2:])
	}
	for i := 0; i < frames; i++ {
		var l, r uint16
		if f.Channels() == 1 {
			l = sample(i)
			r = l
		} else {
			l, r = sample(2*i), sample(2*i+1)
		}
		binary.LittleEndian.PutUint16(out[i*4:], l)
		binary.LittleEndian.PutUint16(out[i*4+2:], r)
	}
	return out, nil
}
