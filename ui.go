package main

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/blackarck/batchren/internal/config"
	"github.com/blackarck/batchren/internal/controller"
	"github.com/blackarck/batchren/internal/naming"
	"github.com/blackarck/batchren/internal/picker"
	"github.com/blackarck/batchren/internal/preview"
)

/* -------------------- Widgets -------------------- */

// fyneView holds the widgets the controller drives. Its methods must run
// on the fyne UI thread.
type fyneView struct {
	loadBtn   *widget.Button
	renameBtn *widget.Button
	prefix    *widget.Entry
	dir       *widget.Entry
	ext       *widget.Label
	src       binding.StringList
	dst       binding.StringList
	progress  *widget.ProgressBar
}

func newFyneView() *fyneView {
	v := &fyneView{
		loadBtn:   widget.NewButtonWithIcon("Load Files", theme.FolderOpenIcon(), nil),
		renameBtn: widget.NewButtonWithIcon("Rename", theme.ConfirmIcon(), nil),
		prefix:    widget.NewEntry(),
		dir:       widget.NewEntry(),
		ext:       widget.NewLabel(""),
		src:       binding.NewStringList(),
		dst:       binding.NewStringList(),
		progress:  widget.NewProgressBar(),
	}
	v.prefix.SetPlaceHolder("prefix, e.g. img_")
	v.dir.SetPlaceHolder("last directory")
	v.progress.Max = 100
	return v
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func (v *fyneView) SetLoadEnabled(on bool)   { setEnabled(v.loadBtn, on) }
func (v *fyneView) SetRenameEnabled(on bool) { setEnabled(v.renameBtn, on) }
func (v *fyneView) SetPrefixEnabled(on bool) { setEnabled(v.prefix, on) }
func (v *fyneView) ClearPrefix()             { v.prefix.SetText("") }
func (v *fyneView) SetDirectory(d string)    { v.dir.SetText(d) }
func (v *fyneView) SetExtension(e string)    { v.ext.SetText(e) }
func (v *fyneView) AddSource(p string)       { _ = v.src.Append(p) }
func (v *fyneView) AddDestination(p string)  { _ = v.dst.Append(p) }
func (v *fyneView) ClearDestination()        { _ = v.dst.Set([]string{}) }
func (v *fyneView) SetProgress(p int)        { v.progress.SetValue(float64(p)) }

func (v *fyneView) RemoveSourceFront() {
	items, err := v.src.Get()
	if err != nil || len(items) == 0 {
		return
	}
	_ = v.src.Set(items[1:])
}

func newPathList(data binding.StringList) *widget.List {
	return widget.NewListWithData(data,
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.Truncation = fyne.TextTruncateEllipsis
			return l
		},
		func(item binding.DataItem, o fyne.CanvasObject) {
			o.(*widget.Label).Bind(item.(binding.String))
		},
	)
}

/* -------------------- Window -------------------- */

// runWindow blocks until the window is closed. cfg picks up the
// directory, mode and filter in use at that point.
func runWindow(cfg *config.Config, log zerolog.Logger, fs afero.Fs) {
	a := app.NewWithID("com.blackarck.batchren")
	w := a.NewWindow("Batch Rename")
	w.Resize(fyne.NewSize(960, 600))

	v := newFyneView()
	ctl := controller.New(v, controller.Options{
		Fs:     fs,
		Logger: log,
		Post:   fyne.DoAndWait,
	})
	if cfg.LastDir != "" {
		v.dir.SetText(cfg.LastDir)
		ctl.SetStartDir(cfg.LastDir)
	}
	v.dir.OnChanged = ctl.SetStartDir

	/* ---- naming inputs ---- */

	warn := widget.NewLabel("")
	v.prefix.OnChanged = func(s string) {
		ctl.SetPrefix(s)
		if reason := naming.InvalidReason(s); s != "" && reason != "" {
			warn.SetText("⚠ prefix: " + reason)
		} else {
			warn.SetText("")
		}
	}

	modeSelect := widget.NewSelect(naming.Labels(), func(sel string) {
		m, err := naming.ParseMode(sel)
		if err != nil {
			return
		}
		ctl.SetMode(m)
		cfg.Mode = m
	})
	modeSelect.SetSelected(cfg.Mode.Label())

	filterSelect := widget.NewSelect(picker.Options(), func(sel string) {
		f, _ := picker.Lookup(sel)
		cfg.Filter = strings.TrimPrefix(f.Ext, ".")
	})
	filterSelect.SetSelected(cfg.FilterOrDefault().String())

	/* ---- preview ---- */

	thumb := canvas.NewImageFromImage(nil)
	thumb.FillMode = canvas.ImageFillContain
	thumb.SetMinSize(fyne.NewSize(float32(cfg.ThumbSize), float32(cfg.ThumbSize)))
	thumbCaption := widget.NewLabel("")
	thumbCaption.Truncation = fyne.TextTruncateEllipsis

	showThumb := func(data binding.StringList, id widget.ListItemID) {
		items, err := data.Get()
		if err != nil || id < 0 || id >= len(items) {
			return
		}
		path := items[id]
		img, err := preview.Thumbnail(fs, path, cfg.ThumbSize)
		if err != nil {
			if !errors.Is(err, preview.ErrNotImage) {
				log.Debug().Err(err).Str("path", path).Msg("no preview")
			}
			thumb.Image = nil
		} else {
			thumb.Image = img
		}
		thumb.Refresh()
		thumbCaption.SetText(path)
	}

	srcList := newPathList(v.src)
	srcList.OnSelected = func(id widget.ListItemID) { showThumb(v.src, id) }
	dstList := newPathList(v.dst)
	dstList.OnSelected = func(id widget.ListItemID) { showThumb(v.dst, id) }

	/* ---- actions ---- */

	v.loadBtn.OnTapped = func() {
		d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uri == nil {
				ctl.Load(nil, "")
				return
			}
			f, _ := picker.Lookup(filterSelect.Selected)
			if err := ctl.LoadDir(uri.Path(), f); err != nil {
				dialog.ShowError(err, w)
				return
			}
			if ctl.State() == controller.Empty {
				dialog.ShowInformation("No files", fmt.Sprintf("No %s files in %s.", f.Pattern(), uri.Path()), w)
			}
		}, w)
		if loc, err := storage.ListerForURI(storage.NewFileURI(ctl.StartDir())); err == nil {
			d.SetLocation(loc)
		}
		d.Resize(fyne.NewSize(800, 520))
		d.Show()
	}

	startRename := func() {
		if err := ctl.Rename(); err != nil {
			dialog.ShowError(err, w)
		}
	}
	v.renameBtn.OnTapped = func() {
		plan := ctl.Plan()
		if plan.Clean() {
			startRename()
			return
		}
		confirm := dialog.NewCustomConfirm("Confirm rename", "Proceed", "Cancel",
			container.NewVScroll(widget.NewLabel(plan.Summary())),
			func(ok bool) {
				if ok {
					startRename()
				}
			},
			w,
		)
		confirm.Resize(fyne.NewSize(700, 420))
		confirm.Show()
	}

	/* ---- layout ---- */

	bold := fyne.TextStyle{Bold: true}
	form := widget.NewForm(
		widget.NewFormItem("Directory", v.dir),
		widget.NewFormItem("Filter", filterSelect),
		widget.NewFormItem("Prefix", v.prefix),
		widget.NewFormItem("Naming", modeSelect),
	)

	lists := container.NewGridWithColumns(2,
		container.NewBorder(
			container.NewHBox(widget.NewLabelWithStyle("Files to rename", fyne.TextAlignLeading, bold), v.ext),
			nil, nil, nil, srcList),
		container.NewBorder(
			widget.NewLabelWithStyle("Renamed files", fyne.TextAlignLeading, bold),
			nil, nil, nil, dstList),
	)

	side := container.NewVBox(
		widget.NewLabelWithStyle("Preview", fyne.TextAlignLeading, bold),
		thumb,
		thumbCaption,
	)

	bottom := container.NewBorder(nil, nil,
		v.loadBtn,
		v.renameBtn,
		v.progress,
	)

	root := container.NewBorder(
		container.NewVBox(form, warn, widget.NewSeparator()),
		bottom,
		nil,
		side,
		lists,
	)
	w.SetContent(root)
	w.ShowAndRun()

	cfg.LastDir = strings.TrimSpace(v.dir.Text)
}
