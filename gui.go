//go:build gui

package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/mkarlsen/blink/internal/fonts"
	"github.com/mkarlsen/blink/internal/reader"
	"github.com/mkarlsen/blink/internal/source"
	"github.com/mkarlsen/blink/internal/tabs"
)

// createWordDisplay renders one frame with the focus rune pinned to the
// horizontal center of the window.
func createWordDisplay(f reader.Frame, fontSize float32, windowWidth float32) *fyne.Container {
	beforeText := canvas.NewText(f.Before, color.White)
	beforeText.TextSize = fontSize
	beforeText.TextStyle.Bold = true

	focusText := canvas.NewText(f.Focus, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	focusText.TextSize = fontSize
	focusText.TextStyle.Bold = true

	afterText := canvas.NewText(f.After, color.White)
	afterText.TextSize = fontSize
	afterText.TextStyle.Bold = true

	beforeSize := beforeText.MinSize()
	focusSize := focusText.MinSize()

	centerX := windowWidth / 2
	beforeX := centerX - beforeSize.Width
	focusX := centerX
	afterX := centerX + focusSize.Width

	if beforeX < 0 {
		beforeX = 0
	}

	c := &fyne.Container{
		Layout: &centerVerticalLayout{},
		Objects: []fyne.CanvasObject{
			beforeText,
			focusText,
			afterText,
		},
	}

	beforeText.Move(fyne.NewPos(beforeX, 0))
	focusText.Move(fyne.NewPos(focusX, 0))
	afterText.Move(fyne.NewPos(afterX, 0))

	return c
}

// messageDisplay centers a single line of text in the word area.
func messageDisplay(s string, col color.Color, fontSize float32, windowWidth float32) *fyne.Container {
	msg := canvas.NewText(s, col)
	msg.TextSize = fontSize
	msg.TextStyle.Bold = true

	x := windowWidth/2 - msg.MinSize().Width/2
	if x < 0 {
		x = 0
	}

	c := &fyne.Container{
		Layout:  &centerVerticalLayout{},
		Objects: []fyne.CanvasObject{msg},
	}
	msg.Move(fyne.NewPos(x, 0))
	return c
}

type centerVerticalLayout struct{}

func (l *centerVerticalLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var maxH float32
	for _, o := range objects {
		size := o.MinSize()
		if size.Height > maxH {
			maxH = size.Height
		}
	}
	return fyne.NewSize(0, maxH)
}

func (l *centerVerticalLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	var maxH float32
	for _, o := range objects {
		objSize := o.MinSize()
		if objSize.Height > maxH {
			maxH = objSize.Height
		}
	}

	y := (size.Height - maxH) / 2
	if y < 0 {
		y = 0
	}

	// X was set when the objects were positioned.
	for _, o := range objects {
		pos := o.Position()
		o.Move(fyne.NewPos(pos.X, y))
		o.Resize(o.MinSize())
	}
}

func main() {
	wpm := flag.Int("w", 0, "Default words per minute (overrides settings)")
	showVersion := flag.Bool("version", false, "Show version information")
	fresh := flag.Bool("fresh", false, "Start with a fresh tab set, discarding saved tabs")
	backend := flag.String("storage", "", `Storage backend: "fs" or "memory"`)
	debug := flag.Bool("debug", false, "Verbose logging")
	showTOC := flag.Bool("toc", false, "Show the table of contents at startup")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Blink - Tabbed Speed Reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  blink [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blink                     Reopen your saved tabs\n")
		fmt.Fprintf(os.Stderr, "  blink book.epub           Open a book in a new tab\n")
		fmt.Fprintf(os.Stderr, "  cat file.txt | blink      Read from stdin\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("blink %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	eng, err := startEngine(engineOptions{
		Storage: *backend,
		WPM:     *wpm,
		Debug:   *debug,
		Fresh:   *fresh,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mgr := eng.mgr

	if text, ok := readStdin(); ok {
		mgr.Create(tabs.Request{Name: "stdin", Text: text, Activate: true})
	}
	if flag.NArg() > 0 {
		if err := eng.openPath(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	a := app.New()
	w := a.NewWindow("blink")

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter

	controlsLabel := widget.NewLabel("SPACE: play/pause  ↑/↓: speed  ←/→: sentence  TAB: next tab  O: open  W: close tab  T: TOC  R: restart  +/-: font  F: fullscreen  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	wordContainer := container.NewMax()

	// The TOC panel follows the active tab.
	var tocEntries []source.TOCEntry
	tocVisible := false

	tocList := widget.NewList(
		func() int { return len(tocEntries) },
		func() fyne.CanvasObject {
			return widget.NewLabel("Title")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			entry := tocEntries[id]
			label := obj.(*widget.Label)
			indent := ""
			for i := 0; i < entry.Level; i++ {
				indent += "  "
			}
			label.SetText(indent + entry.Title)
		},
	)

	readingContent := container.NewBorder(
		statusLabel,
		controlsLabel,
		nil, nil,
		wordContainer,
	)

	tocContainer := container.NewBorder(
		widget.NewLabel("Table of Contents"),
		widget.NewLabel("Click to jump • T to close"),
		nil, nil,
		tocList,
	)

	tocPanel := container.NewHSplit(tocContainer, readingContent)
	tocPanel.Offset = 0.33
	tocContainer.Hide()

	mainContainer := container.NewMax(tocPanel)

	var updateDisplay func()
	updateDisplay = func() {
		canvasWidth := w.Canvas().Size().Width
		if canvasWidth <= 0 {
			canvasWidth = 800
		}

		t := mgr.Active()
		if t == nil || t.Session == nil {
			d := mgr.Defaults()
			wordContainer.Objects = []fyne.CanvasObject{
				messageDisplay("blink", color.RGBA{R: 255, G: 0, B: 0, A: 255}, 64, canvasWidth),
			}
			wordContainer.Refresh()
			statusLabel.SetText(fmt.Sprintf("New tabs: %d WPM | %s %.0f | Press O to open a file",
				d.WPM, d.Font.Name, d.Font.Size))
			return
		}

		s := t.Session
		if s.AtEnd() && s.State() == reader.Idle {
			wordContainer.Objects = []fyne.CanvasObject{
				messageDisplay("Reading complete!", color.RGBA{G: 200, A: 255}, float32(t.Font.Size), canvasWidth),
			}
		} else {
			wordContainer.Objects = []fyne.CanvasObject{
				createWordDisplay(s.Frame(), float32(t.Font.Size), canvasWidth),
			}
		}
		wordContainer.Refresh()

		state := ""
		switch s.State() {
		case reader.Paused:
			state = " [PAUSED]"
		case reader.Idle:
			state = " [STOPPED]"
		}
		current, total := s.Progress()
		statusLabel.SetText(fmt.Sprintf("%s | Word %d/%d | %d WPM | %s %.0f%s",
			t.Name, current, total, s.WPM(), t.Font.Name, t.Font.Size, state))
	}

	refreshTOC := func() {
		tocEntries = nil
		if t := mgr.Active(); t != nil && t.FilePath != "" {
			if entries, err := source.TOC(t.FilePath); err == nil {
				tocEntries = entries
			}
		}
		if len(tocEntries) == 0 && tocVisible {
			tocVisible = false
			tocContainer.Hide()
			tocPanel.Refresh()
		}
		tocList.Refresh()
	}

	tocList.OnSelected = func(id widget.ListItemID) {
		if id < len(tocEntries) {
			if s := mgr.ActiveSession(); s != nil {
				s.Seek(tocEntries[id].WordIndex)
			}
			tocVisible = false
			tocContainer.Hide()
			tocPanel.Refresh()
			updateDisplay()
		}
		tocList.UnselectAll()
	}

	// Second word-display reaction after the built-in one: glyph metrics
	// change with the font, so the frame has to be rebuilt.
	mgr.OnFontChange(func(fc tabs.FontChange) {
		if fc.Tab.ID == mgr.ActiveID() {
			updateDisplay()
		}
	})

	done := make(chan bool)
	var closeOnce sync.Once
	var shutdownOnce sync.Once

	quit := func() {
		closeOnce.Do(func() { close(done) })
		shutdownOnce.Do(eng.shutdown)
	}

	// All engine access runs on the UI thread; the tickers only schedule
	// work there.
	ticker := time.NewTicker(framePeriod)
	saver := time.NewTicker(savePeriod)
	last := time.Now()

	go func() {
		for {
			select {
			case <-done:
				return
			case <-saver.C:
				fyne.Do(func() { mgr.Save() })
			case now := <-ticker.C:
				fyne.Do(func() {
					delta := now.Sub(last)
					last = now
					s := mgr.ActiveSession()
					if s == nil || s.State() != reader.Playing {
						return
					}
					if s.Tick(delta) {
						updateDisplay()
					}
				})
			}
		}
	}()

	openFile := func() {
		d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			path := rc.URI().Path()
			rc.Close()

			ch := mgr.OpenFile(context.Background(), path)
			go func() {
				res, ok := <-ch
				if !ok {
					return
				}
				fyne.Do(func() {
					if res.Err != nil {
						dialog.ShowError(res.Err, w)
						return
					}
					mgr.Create(tabs.Request{Words: res.Words, FilePath: res.Path, Activate: true})
					refreshTOC()
					updateDisplay()
				})
			}()
		}, w)
		d.SetFilter(fynestorage.NewExtensionFileFilter(supportedExtensions()))
		d.Show()
	}

	pauseActive := func() {
		if s := mgr.ActiveSession(); s != nil {
			s.Pause()
		}
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeySpace:
			if s := mgr.ActiveSession(); s != nil {
				if s.State() == reader.Idle && s.AtEnd() {
					s.Restart()
				}
				s.TogglePlay()
				updateDisplay()
			}

		case fyne.KeyUp:
			if s := mgr.ActiveSession(); s != nil {
				s.SpeedUp()
				updateDisplay()
			}

		case fyne.KeyDown:
			if s := mgr.ActiveSession(); s != nil {
				s.SpeedDown()
				updateDisplay()
			}

		case fyne.KeyLeft:
			if s := mgr.ActiveSession(); s != nil {
				s.PrevSentence()
				updateDisplay()
			}

		case fyne.KeyRight:
			if s := mgr.ActiveSession(); s != nil {
				s.NextSentence()
				updateDisplay()
			}

		case fyne.KeyEscape:
			if s := mgr.ActiveSession(); s != nil {
				s.Stop()
				updateDisplay()
			}

		case fyne.KeyTab:
			if next, ok := mgr.Order().After(mgr.ActiveID()); ok && next != mgr.ActiveID() {
				pauseActive()
				mgr.Select(next)
				refreshTOC()
				updateDisplay()
			}

		case fyne.KeyF:
			w.SetFullScreen(!w.FullScreen())

		case fyne.KeyQ:
			quit()
			a.Quit()
		}
	})

	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 't', 'T':
			if len(tocEntries) == 0 {
				return
			}
			tocVisible = !tocVisible
			if tocVisible {
				pauseActive()
				tocContainer.Show()
			} else {
				tocContainer.Hide()
			}
			tocPanel.Refresh()
			updateDisplay()

		case 'r', 'R':
			if s := mgr.ActiveSession(); s != nil {
				s.Restart()
				updateDisplay()
			}

		case 'o', 'O':
			pauseActive()
			openFile()

		case 'w', 'W':
			mgr.Close(mgr.ActiveID())
			refreshTOC()
			updateDisplay()

		case '+', '=':
			if t := mgr.Active(); t != nil {
				mgr.SetFont(t.ID, fonts.Settings{Name: t.Font.Name, Size: t.Font.Size + fonts.SizeStep})
			}

		case '-':
			if t := mgr.Active(); t != nil {
				mgr.SetFont(t.ID, fonts.Settings{Name: t.Font.Name, Size: t.Font.Size - fonts.SizeStep})
			}
		}
	})

	w.Resize(fyne.NewSize(800, 600))
	w.SetContent(mainContainer)

	// Redraw on resize so the focus column stays centered.
	go func() {
		lastWidth := float32(800)
		for {
			select {
			case <-done:
				return
			default:
				time.Sleep(100 * time.Millisecond)
				currentWidth := w.Canvas().Size().Width
				if currentWidth > 0 && currentWidth != lastWidth {
					lastWidth = currentWidth
					fyne.Do(func() {
						pauseActive()
						updateDisplay()
					})
				}
			}
		}
	}()

	w.SetOnClosed(quit)

	// First paint after the window is up.
	go func() {
		time.Sleep(100 * time.Millisecond)
		fyne.Do(func() {
			refreshTOC()
			if *showTOC && len(tocEntries) > 0 {
				tocVisible = true
				tocContainer.Show()
				tocPanel.Refresh()
			}
			updateDisplay()
		})
	}()

	w.ShowAndRun()
}
