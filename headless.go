package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"

	"github.com/blackarck/batchren/internal/config"
	"github.com/blackarck/batchren/internal/controller"
)

// termView prints renamed paths to out and draws progress on bar.
type termView struct {
	out io.Writer
	bar *progressbar.ProgressBar
	log zerolog.Logger
}

func newTermView(out, barOut io.Writer, log zerolog.Logger) *termView {
	return &termView{
		out: out,
		bar: progressbar.NewOptions(100,
			progressbar.OptionSetWriter(barOut),
			progressbar.OptionSetDescription("renaming"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		),
		log: log,
	}
}

func (v *termView) SetLoadEnabled(bool)     {}
func (v *termView) SetRenameEnabled(bool)   {}
func (v *termView) SetPrefixEnabled(bool)   {}
func (v *termView) ClearPrefix()            {}
func (v *termView) ClearDestination()       {}
func (v *termView) RemoveSourceFront()      {}
func (v *termView) SetDirectory(d string)   { v.log.Debug().Str("dir", d).Msg("directory") }
func (v *termView) SetExtension(e string)   { v.log.Debug().Str("ext", e).Msg("extension") }
func (v *termView) AddSource(p string)      { v.log.Debug().Str("path", p).Msg("queued") }
func (v *termView) SetProgress(percent int) { _ = v.bar.Set(percent) }

func (v *termView) AddDestination(p string) {
	_ = v.bar.Clear()
	fmt.Fprintln(v.out, p)
}

// runHeadless renames cfg.Files in the order given and waits for the run
// to end.
func runHeadless(cfg config.Config, log zerolog.Logger, fs afero.Fs, out, barOut io.Writer) error {
	if len(cfg.Files) == 0 {
		return errors.New("no files to rename")
	}
	files := make([]string, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		info, err := fs.Stat(abs)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", f)
		}
		files = append(files, abs)
	}

	view := newTermView(out, barOut, log)
	ctl := controller.New(view, controller.Options{Fs: fs, Logger: log})
	ctl.SetMode(cfg.Mode)
	ctl.Load(files, "*"+filepath.Ext(files[0]))
	ctl.SetPrefix(cfg.Prefix)

	for _, it := range ctl.Plan().Items {
		if it.Warning != "" {
			log.Warn().Str("from", it.OldName).Str("to", it.NewName).Msg(it.Warning)
		}
	}

	if err := ctl.Rename(); err != nil {
		return err
	}
	if err := ctl.Wait(); err != nil {
		return err
	}
	_ = view.bar.Finish()
	log.Info().Int("files", len(files)).Str("mode", cfg.Mode.String()).Msg("done")
	return nil
}
