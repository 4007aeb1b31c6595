package media

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"
)

// Canonical waveform parameters.
const (
	DefaultSampleRate = 16000
	BitDepth          = 16
	Channels          = 1

	wavFormatPCM = 1
)

// EncodeWAV wraps raw little-endian 16-bit mono PCM into a WAV container.
// A trailing odd byte is dropped.
func EncodeWAV(pcm []byte, sampleRate int) ([]byte, error) {
	samples := make([]int, len(pcm)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: Channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: BitDepth,
	}

	out := &writerseeker.WriterSeeker{}
	enc := wav.NewEncoder(out, sampleRate, BitDepth, Channels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("wav encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("wav close: %w", err)
	}

	data, err := io.ReadAll(out.Reader())
	if err != nil {
		return nil, fmt.Errorf("wav read: %w", err)
	}
	return data, nil
}

// WAVDuration returns the playing time of an in-memory WAV stream.
func WAVDuration(data []byte) (time.Duration, error) {
	return decodeDuration(wav.NewDecoder(bytes.NewReader(data)))
}

// WAVFileDuration returns the playing time of a WAV file.
func WAVFileDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return decodeDuration(wav.NewDecoder(f))
}

// decodeDuration derives the duration from the data chunk size rather than
// the RIFF size so that header bytes never count as audio.
func decodeDuration(d *wav.Decoder) (time.Duration, error) {
	if !d.IsValidFile() {
		return 0, fmt.Errorf("not a valid WAV stream")
	}
	if err := d.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("locate PCM data: %w", err)
	}
	bytesPerSec := int64(d.SampleRate) * int64(d.NumChans) * int64(d.BitDepth/8)
	if bytesPerSec == 0 {
		return 0, fmt.Errorf("WAV header declares no audio rate")
	}
	return time.Duration(int64(d.PCMSize) * int64(time.Second) / bytesPerSec), nil
}

// hasAudio reports whether path exists and holds at least one sample.
func hasAudio(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return false
	}
	d, err := WAVFileDuration(path)
	return err == nil && d > 0
}
