package ebiten

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

const sampleRate = 44100

// music is a looping background track
type music struct {
	player *audio.Player
	file   *os.File
}

// startMusic loops the mp3 at path at the given volume
func startMusic(path string, volume float64) (*music, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	stream, err := mp3.DecodeWithSampleRate(ctx.SampleRate(), f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode mp3 %q: %w", path, err)
	}
	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		f.Close()
		return nil, err
	}
	player.SetVolume(volume)
	player.Play()
	return &music{player: player, file: f}, nil
}

// Stop halts playback and releases the track
func (m *music) Stop() {
	if m.player.IsPlaying() {
		m.player.Pause()
	}
	_ = m.player.Close()
	_ = m.file.Close()
}
