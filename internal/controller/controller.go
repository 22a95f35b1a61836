// Package controller drives the rename window: which widgets are usable,
// what the source and destination lists show, and when a run starts.
//
// The controller only talks to widgets through View, and every
// notification from a run is handed to Post so that it is applied on the
// UI thread.
package controller

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/blackarck/batchren/internal/naming"
	"github.com/blackarck/batchren/internal/picker"
	"github.com/blackarck/batchren/internal/renamer"
)

// ErrNotReady is returned by Rename outside the Loaded state or while the
// prefix is empty.
var ErrNotReady = errors.New("controller: nothing to rename or prefix is empty")

type State int

const (
	Empty State = iota
	Loaded
	Renaming
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	case Renaming:
		return "renaming"
	}
	return "unknown"
}

// View is the set of widget operations the controller needs.
type View interface {
	SetLoadEnabled(bool)
	SetRenameEnabled(bool)
	SetPrefixEnabled(bool)
	ClearPrefix()
	SetDirectory(string)
	SetExtension(string)
	AddSource(string)
	RemoveSourceFront()
	AddDestination(string)
	ClearDestination()
	SetProgress(percent int)
}

type Options struct {
	Fs     afero.Fs
	Logger zerolog.Logger

	// Post runs fn on the UI thread. It must keep the order of calls.
	// Defaults to calling fn directly.
	Post func(fn func())

	Home  func() (string, error) // defaults to os.UserHomeDir
	Now   func() time.Time       // timestamp naming clock
	Token func() string          // random naming token
}

type Controller struct {
	view  View
	fs    afero.Fs
	log   zerolog.Logger
	post  func(func())
	home  func() (string, error)
	now   func() time.Time
	token func() string

	state   State
	pending []string
	dir     string
	prefix  string
	mode    naming.Mode

	batchSize int
	job       *renamer.Job
	forwarded chan struct{}
}

func New(view View, opts Options) *Controller {
	c := &Controller{
		view:  view,
		fs:    opts.Fs,
		log:   opts.Logger.With().Str("component", "controller").Logger(),
		post:  opts.Post,
		home:  opts.Home,
		now:   opts.Now,
		token: opts.Token,
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.post == nil {
		c.post = func(fn func()) { fn() }
	}
	if c.home == nil {
		c.home = os.UserHomeDir
	}
	c.enterEmpty()
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Mode() naming.Mode { return c.mode }

func (c *Controller) Prefix() string { return c.prefix }

// Pending returns a copy of the files not renamed yet, in order.
func (c *Controller) Pending() []string { return append([]string(nil), c.pending...) }

// CanRename mirrors the enabled state of the rename button.
func (c *Controller) CanRename() bool {
	return c.state == Loaded && c.prefix != "" && len(c.pending) > 0
}

/* -------------------- Directory -------------------- */

// StartDir is where the file chooser opens: the remembered directory or
// the user's home.
func (c *Controller) StartDir() string {
	if c.dir != "" {
		return c.dir
	}
	home, err := c.home()
	if err != nil {
		c.log.Warn().Err(err).Msg("no home directory")
		return "."
	}
	return home
}

// SetStartDir remembers dir as typed into the directory field.
func (c *Controller) SetStartDir(dir string) { c.dir = dir }

/* -------------------- Loading -------------------- */

// Load appends files to the pending queue. An empty selection only
// clears the destination list.
func (c *Controller) Load(files []string, ext string) {
	if c.state == Renaming {
		return
	}
	c.view.ClearDestination()
	if len(files) == 0 {
		return
	}

	c.view.SetExtension(ext)
	c.dir = filepath.Dir(files[0])
	c.view.SetDirectory(c.dir)
	for _, f := range files {
		c.pending = append(c.pending, f)
		c.view.AddSource(f)
	}
	c.log.Info().Int("added", len(files)).Int("pending", len(c.pending)).Str("dir", c.dir).Msg("files loaded")
	c.enterLoaded()
}

// LoadDir loads every file in dir that matches filter.
func (c *Controller) LoadDir(dir string, filter picker.Filter) error {
	files, err := picker.Collect(c.fs, dir, filter)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		c.log.Info().Str("dir", dir).Str("filter", filter.Pattern()).Msg("no matching files")
	}
	c.Load(files, filter.Pattern())
	return nil
}

/* -------------------- Naming inputs -------------------- */

// SetPrefix follows the prefix field's text.
func (c *Controller) SetPrefix(text string) {
	c.prefix = text
	if c.state == Loaded {
		c.view.SetRenameEnabled(c.CanRename())
	}
}

// SetMode selects the naming mode of the next run.
func (c *Controller) SetMode(m naming.Mode) { c.mode = m }

func (c *Controller) namer() naming.Namer {
	return naming.Namer{Prefix: c.prefix, Mode: c.mode, Now: c.now, Token: c.token}
}

// Plan predicts the names of the next run.
func (c *Controller) Plan() naming.Plan {
	return naming.BuildPlan(c.fs, c.pending, c.namer())
}

/* -------------------- Running -------------------- */

// Rename starts renaming the pending queue on a background goroutine.
// There is no way to stop a run once started.
func (c *Controller) Rename() error {
	if !c.CanRename() {
		return ErrNotReady
	}
	c.batchSize = len(c.pending)
	r := renamer.New(c.fs, c.pending, c.namer(), c.log)
	c.enterRenaming()

	job := r.Start()
	done := make(chan struct{})
	c.job, c.forwarded = job, done

	go func() {
		defer close(done)
		for ev := range job.Events() {
			ev := ev
			c.post(func() { c.handle(ev) })
		}
		if err := job.Wait(); err != nil {
			c.log.Error().Err(err).Msg("run did not finish, window stays busy")
		}
	}()
	return nil
}

// Wait blocks until the last run's notifications have all been posted
// and returns the run's error.
func (c *Controller) Wait() error {
	if c.job == nil {
		return nil
	}
	<-c.forwarded
	return c.job.Wait()
}

func (c *Controller) handle(ev renamer.Event) {
	switch ev.Kind {
	case renamer.Progress:
		c.view.SetProgress(Percent(ev.Index, c.batchSize))
	case renamer.Renamed:
		if len(c.pending) > 0 {
			c.pending = c.pending[1:]
		}
		c.view.RemoveSourceFront()
		c.view.AddDestination(ev.Path)
	case renamer.Finished:
		c.enterEmpty()
	}
}

// Percent is floor(index/total*100), 0 for an empty batch.
func Percent(index, total int) int {
	if total <= 0 || index <= 0 {
		return 0
	}
	if index >= total {
		return 100
	}
	return index * 100 / total
}

/* -------------------- States -------------------- */

func (c *Controller) enterEmpty() {
	c.state = Empty
	c.pending = nil
	c.prefix = ""
	c.view.SetLoadEnabled(true)
	c.view.SetRenameEnabled(false)
	c.view.ClearPrefix()
	c.view.SetPrefixEnabled(false)
}

func (c *Controller) enterLoaded() {
	c.state = Loaded
	c.view.SetPrefixEnabled(true)
	c.view.SetRenameEnabled(c.CanRename())
}

func (c *Controller) enterRenaming() {
	c.state = Renaming
	c.view.SetLoadEnabled(false)
	c.view.SetRenameEnabled(false)
}
