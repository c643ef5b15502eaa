// Package audio inspects downloaded call recordings. The provider reports a
// duration for each recording; decoding the MP3 locally gives a measured
// value to sanity-check it and catches truncated downloads.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// Info describes a decoded MP3 recording.
type Info struct {
	Duration   time.Duration
	SampleRate int
	Bytes      int // encoded size
}

// ProbeBytes decodes MP3 data and reports its playable duration. The decoder
// emits 16-bit stereo PCM, four bytes per sample frame.
func ProbeBytes(data []byte) (*Info, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("audio: decode mp3: %w", err)
	}

	n, err := io.Copy(io.Discard, dec)
	if err != nil {
		return nil, fmt.Errorf("audio: decode mp3: %w", err)
	}

	rate := dec.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("audio: decode mp3: no sample rate")
	}
	frames := n / 4
	return &Info{
		Duration:   time.Duration(frames) * time.Second / time.Duration(rate),
		SampleRate: rate,
		Bytes:      len(data),
	}, nil
}

// ProbeFile decodes the MP3 at path.
func ProbeFile(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: read %s: %w", path, err)
	}
	return ProbeBytes(data)
}
