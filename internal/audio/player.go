package audio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

const (
	speakerSampleRate   = beep.SampleRate(44100)
	speakerBufferLength = 100 * time.Millisecond
)

// Player decodes alarm sounds and plays them through the system speaker.
// Play blocks its caller until the sound finishes, so it is meant to run on
// a background goroutine; playback errors are returned, never fatal.
type Player struct {
	initOnce sync.Once
	initErr  error
	fallback []byte
}

// NewPlayer creates a Player. fallback is an optional WAV payload used when
// the configured alarm file cannot be opened or decoded.
func NewPlayer(fallback []byte) *Player {
	return &Player{fallback: fallback}
}

// Play decodes the file at path and plays it to completion. When the file
// fails to open or decode and a fallback chime is available, the chime is
// played instead and the original failure is reported to the caller.
func (player *Player) Play(path string) error {
	streamer, format, err := decodeFile(path)
	if err != nil {
		if player.fallback == nil {
			return err
		}
		fallback, fallbackFormat, fallbackErr := wav.Decode(bytes.NewReader(player.fallback))
		if fallbackErr != nil {
			return err
		}
		if playErr := player.play(fallback, fallbackFormat); playErr != nil {
			return playErr
		}
		return fmt.Errorf("alarm file unplayable, used fallback chime: %w", err)
	}
	return player.play(streamer, format)
}

func (player *Player) play(streamer beep.StreamSeekCloser, format beep.Format) error {
	defer streamer.Close()

	player.initOnce.Do(func() {
		player.initErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(speakerBufferLength))
	})
	if player.initErr != nil {
		return fmt.Errorf("init speaker: %w", player.initErr)
	}

	resampled := beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	speaker.PlayAndWait(resampled)
	return nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open alarm file: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	case ".wav":
		streamer, format, err = wav.Decode(file)
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	default:
		file.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported alarm format %q", filepath.Ext(path))
	}
	if err != nil {
		file.Close()
		return nil, beep.Format{}, fmt.Errorf("decode alarm file: %w", err)
	}
	return streamer, format, nil
}
