// Package renamer renames a fixed batch of files one at a time and
// reports each step as an Event.
package renamer

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/blackarck/batchren/internal/naming"
)

type EventKind int

const (
	Progress EventKind = iota // Index is the 1-based position just renamed, or 0 at the end
	Renamed                   // Index and Path of the file's new location
	Finished
)

func (k EventKind) String() string {
	switch k {
	case Progress:
		return "progress"
	case Renamed:
		return "renamed"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Event struct {
	Kind  EventKind
	Index int
	Path  string
}

// Renamer owns its own copy of the batch; later changes to the caller's
// slice are not seen.
type Renamer struct {
	fs    afero.Fs
	files []string
	namer naming.Namer
	log   zerolog.Logger
}

func New(fs afero.Fs, files []string, namer naming.Namer, log zerolog.Logger) *Renamer {
	return &Renamer{
		fs:    fs,
		files: append([]string(nil), files...),
		namer: namer,
		log:   log.With().Str("component", "renamer").Logger(),
	}
}

// Len is the batch size captured at construction.
func (r *Renamer) Len() int { return len(r.files) }

// Run renames every file in order, calling emit with Progress then
// Renamed after each one, and Progress(0) then Finished at the end.
// The first rename error stops the run; Finished is not emitted and the
// error is returned.
func (r *Renamer) Run(emit func(Event)) error {
	r.log.Info().Int("files", len(r.files)).Str("mode", r.namer.Mode.String()).Msg("rename started")
	for i, oldPath := range r.files {
		seq := i + 1
		newPath := r.namer.Target(oldPath, seq)
		if err := r.fs.Rename(oldPath, newPath); err != nil {
			return fmt.Errorf("rename %d of %d: %w", seq, len(r.files), err)
		}
		r.log.Debug().Int("index", seq).Str("from", oldPath).Str("to", newPath).Msg("renamed")
		emit(Event{Kind: Progress, Index: seq})
		emit(Event{Kind: Renamed, Index: seq, Path: newPath})
	}
	emit(Event{Kind: Progress, Index: 0})
	emit(Event{Kind: Finished})
	r.log.Info().Int("files", len(r.files)).Msg("rename finished")
	return nil
}

// Job is a Run in progress on its own goroutine.
type Job struct {
	events chan Event
	done   chan struct{}
	err    error
}

// Start runs r on a new goroutine. Events are buffered for the whole run
// and the channel is closed when the goroutine ends.
func (r *Renamer) Start() *Job {
	j := &Job{
		events: make(chan Event, 2*len(r.files)+2),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(j.done)
		defer close(j.events)
		j.err = r.Run(func(ev Event) { j.events <- ev })
		if j.err != nil {
			r.log.Error().Err(j.err).Msg("rename aborted")
		}
	}()
	return j
}

func (j *Job) Events() <-chan Event { return j.events }

// Wait blocks until the goroutine has ended and returns Run's error.
func (j *Job) Wait() error {
	<-j.done
	return j.err
}
