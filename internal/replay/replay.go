// Package replay records the inputs of a run and plays them back.
// A run is fully determined by its game, seed, tick rate, configuration
// and the actions pressed on each tick, so a recording is only those.
package replay

import (
	"errors"
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/bruin-walk/internal/config"
	"github.com/vovakirdan/bruin-walk/internal/core"
)

// FormatVersion is bumped whenever the recording layout changes.
const FormatVersion = 1

// FileExt is the extension of exported recordings.
const FileExt = ".bwr"

// ErrVersion is returned when a recording was written by another format version.
var ErrVersion = errors.New("replay: unsupported format version")

// Recording is a complete, replayable run.
type Recording struct {
	Version  int                    `msgpack:"v"`
	RunID    string                 `msgpack:"run_id"`
	GameID   string                 `msgpack:"game"`
	Seed     int64                  `msgpack:"seed"`
	TickRate int                    `msgpack:"tick_rate"`
	Config   config.BruinWalkConfig `msgpack:"config"`
	Ticks    uint64                 `msgpack:"ticks"` // Step calls recorded
	Inputs   []Input                `msgpack:"inputs"`
	Score    int                    `msgpack:"score"` // Final score as seen live
}

// Input holds the actions of one tick. Ticks without input are omitted.
type Input struct {
	Tick    uint64        `msgpack:"t"`
	Actions []core.Action `msgpack:"a"`
}

// Runtime returns the runtime configuration the run was recorded with.
func (r Recording) Runtime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.TickRate = r.TickRate
	rt.Seed = r.Seed
	return rt
}

// Duration returns the simulated length of the run in seconds.
func (r Recording) Duration() float64 {
	return float64(r.Ticks) * r.Runtime().DeltaTime()
}

// Recorder captures inputs tick by tick.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a run that was just reset.
func NewRecorder(runID, gameID string, runtime core.RuntimeConfig, cfg config.BruinWalkConfig) *Recorder {
	return &Recorder{rec: Recording{
		Version:  FormatVersion,
		RunID:    runID,
		GameID:   gameID,
		Seed:     runtime.Seed,
		TickRate: runtime.TickRate,
		Config:   cfg,
	}}
}

// Record notes the input passed to one Step call.
func (r *Recorder) Record(in core.InputFrame) {
	if !in.Empty() {
		r.rec.Inputs = append(r.rec.Inputs, Input{Tick: r.rec.Ticks, Actions: in.List()})
	}
	r.rec.Ticks++
}

// Ticks returns the number of ticks recorded so far.
func (r *Recorder) Ticks() uint64 {
	return r.rec.Ticks
}

// Finish returns the recording with the final score attached.
func (r *Recorder) Finish(score int) Recording {
	rec := r.rec
	rec.Score = score
	rec.Inputs = append([]Input(nil), r.rec.Inputs...)
	return rec
}

// Encode serializes a recording.
func Encode(rec Recording) ([]byte, error) {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode parses a serialized recording.
func Decode(data []byte) (Recording, error) {
	var rec Recording
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return Recording{}, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Version != FormatVersion {
		return Recording{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return rec, nil
}

// WriteFile exports a recording to path.
func WriteFile(path string, rec Recording) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads an exported recording.
func ReadFile(path string) (Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: read %s: %w", path, err)
	}
	return Decode(data)
}
