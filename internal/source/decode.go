package source

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// --- MP3 ---

type mp3Decoder struct {
	f   *os.File
	dec *mp3.Decoder
}

func newMP3Decoder(f *os.File) (*mp3Decoder, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}
	return &mp3Decoder{f: f, dec: dec}, nil
}

func (d *mp3Decoder) Read(p []byte) (int, error) { return d.dec.Read(p) }
func (d *mp3Decoder) Close() error               { return d.f.Close() }
func (d *mp3Decoder) SampleRate() int            { return d.dec.SampleRate() }

// go-mp3 always emits two interleaved channels.
func (d *mp3Decoder) Channels() int { return 2 }

func (d *mp3Decoder) Length() int64 {
	if n := d.dec.Length(); n > 0 {
		return n
	}
	return 0
}

// --- WAV ---

type wavDecoder struct {
	f          *os.File
	buf        []byte
	totalBytes int64
	sampleRate int
	channels   int
	bitDepth   int
}

func newWAVDecoder(f *os.File) (*wavDecoder, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file")
	}
	// Positions the file reader at the start of PCM data.
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("unsupported WAV bit depth %d", bitDepth)
	}

	srcFrameSize := int64(channels) * int64(bitDepth) / 8
	frames := dec.PCMLen() / srcFrameSize

	return &wavDecoder{
		f:          f,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   bitDepth,
		totalBytes: frames * int64(channels) * 2,
	}, nil
}

func (d *wavDecoder) Read(p []byte) (int, error) {
	if len(d.buf) > 0 {
		n := copy(p, d.buf)
		d.buf = d.buf[n:]
		return n, nil
	}

	srcBytes := d.bitDepth / 8
	want := len(p) / 2
	if want == 0 {
		want = 1
	}
	src := make([]byte, want*srcBytes)
	n, err := io.ReadFull(d.f, src)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	samples := n / srcBytes
	if samples == 0 {
		return 0, io.EOF
	}

	raw := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		var v int
		off := i * srcBytes
		switch d.bitDepth {
		case 8:
			// 8-bit WAV is unsigned.
			v = (int(src[off]) - 128) << 8
		case 16:
			v = int(int16(binary.LittleEndian.Uint16(src[off:])))
		case 24:
			s := int32(src[off]) | int32(src[off+1])<<8 | int32(src[off+2])<<16
			if s&0x800000 != 0 {
				s |= ^0xFFFFFF // sign extend
			}
			v = int(s >> 8)
		case 32:
			v = int(int32(binary.LittleEndian.Uint32(src[off:])) >> 16)
		}
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(v)))
	}

	written := copy(p, raw)
	if written < len(raw) {
		d.buf = raw[written:]
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return written, err
}

func (d *wavDecoder) Close() error    { return d.f.Close() }
func (d *wavDecoder) SampleRate() int { return d.sampleRate }
func (d *wavDecoder) Channels() int   { return d.channels }
func (d *wavDecoder) Length() int64   { return d.totalBytes }

// --- FLAC ---

type flacDecoder struct {
	f          *os.File
	stream     *flac.Stream
	buf        []byte
	totalBytes int64
	sampleRate int
	channels   int
	bps        int
}

func newFLACDecoder(f *os.File) (*flacDecoder, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	return &flacDecoder{
		f:          f,
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		bps:        int(info.BitsPerSample),
		totalBytes: int64(info.NSamples) * int64(channels) * 2,
	}, nil
}

func (d *flacDecoder) Read(p []byte) (int, error) {
	if len(d.buf) > 0 {
		n := copy(p, d.buf)
		d.buf = d.buf[n:]
		return n, nil
	}

	frame, err := d.stream.ParseNext()
	if err != nil {
		return 0, err
	}

	nSamples := int(frame.Subframes[0].NSamples)
	raw := make([]byte, nSamples*d.channels*2)
	for i := 0; i < nSamples; i++ {
		for ch := 0; ch < d.channels; ch++ {
			v := int(frame.Subframes[ch].Samples[i])
			switch {
			case d.bps > 16:
				v >>= d.bps - 16
			case d.bps < 16:
				v <<= 16 - d.bps
			}
			if v > 32767 {
				v = 32767
			} else if v < -32768 {
				v = -32768
			}
			binary.LittleEndian.PutUint16(raw[(i*d.channels+ch)*2:], uint16(int16(v)))
		}
	}

	written := copy(p, raw)
	if written < len(raw) {
		d.buf = raw[written:]
	}
	return written, nil
}

func (d *flacDecoder) Close() error    { return d.f.Close() }
func (d *flacDecoder) SampleRate() int { return d.sampleRate }
func (d *flacDecoder) Channels() int   { return d.channels }
func (d *flacDecoder) Length() int64   { return d.totalBytes }

// --- OGG Vorbis ---

type oggDecoder struct {
	f          *os.File
	reader     *oggvorbis.Reader
	buf        []byte
	totalBytes int64
	sampleRate int
	channels   int
}

func newOGGDecoder(f *os.File) (*oggDecoder, error) {
	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}

	channels := reader.Channels()
	return &oggDecoder{
		f:          f,
		reader:     reader,
		sampleRate: reader.SampleRate(),
		channels:   channels,
		totalBytes: reader.Length() * int64(channels) * 2,
	}, nil
}

func (d *oggDecoder) Read(p []byte) (int, error) {
	if len(d.buf) > 0 {
		n := copy(p, d.buf)
		d.buf = d.buf[n:]
		return n, nil
	}

	samples := make([]float32, len(p)/2)
	n, err := d.reader.Read(samples)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	raw := make([]byte, n*2)
	for i := 0; i < n; i++ {
		s := samples[i]
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(int16(s*32767)))
	}

	written := copy(p, raw)
	if written < len(raw) {
		d.buf = raw[written:]
	}
	return written, err
}

func (d *oggDecoder) Close() error    { return d.f.Close() }
func (d *oggDecoder) SampleRate() int { return d.sampleRate }
func (d *oggDecoder) Channels() int   { return d.channels }
func (d *oggDecoder) Length() int64   { return d.totalBytes }
