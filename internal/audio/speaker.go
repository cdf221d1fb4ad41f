package audio

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// SampleRate is the rate the output device is opened at. Clips recorded at
// other rates are resampled.
const SampleRate beep.SampleRate = 44100

// Speaker decodes mp3 clips and plays them on the default output device. The
// device is opened on first use and shared by every Speaker in the process.
type Speaker struct{}

func NewSpeaker() *Speaker { return &Speaker{} }

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(SampleRate, SampleRate.N(time.Second/10))
	})
	return speakerErr
}

func (*Speaker) Play(ctx context.Context, path string) error {
	stream, format, err := decode(path)
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	if err := initSpeaker(); err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(
		beep.Resample(4, format.SampleRate, SampleRate, stream),
		beep.Callback(func() { close(done) }),
	))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to open clip: %w", err)
	}

	stream, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return stream, format, nil
}
