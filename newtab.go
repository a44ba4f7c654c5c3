//go:build !gui

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarlsen/blink/internal/source"
)

// newTabAction tells the app what to do with the new-tab view's outcome.
type newTabAction int

const (
	newTabNone newTabAction = iota
	newTabClose
	newTabText // payload: raw text to segment
	newTabFile // payload: path to load
	newTabCancelLoad
)

type newTabMode int

const (
	modeChoose newTabMode = iota
	modePaste
	modePick
	modeLoading
)

// newTabView collects reading material: pasted text, the clipboard, or
// a file picked from disk.
type newTabView struct {
	mode   newTabMode
	input  textarea.Model
	picker filepicker.Model
	spin   spinner.Model

	loading bool
	path    string
	cancel  context.CancelFunc
	err     string

	width, height int
}

func newNewTabView(width, height int) *newTabView {
	ta := textarea.New()
	ta.Placeholder = "Paste or type the text to read…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	fp := filepicker.New()
	fp.AllowedTypes = supportedExtensions()
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	n := &newTabView{
		mode:   modeChoose,
		input:  ta,
		picker: fp,
		spin:   sp,
	}
	n.setSize(width, height)
	return n
}

func (n *newTabView) setSize(width, height int) {
	n.width, n.height = width, height
	w := width - 8
	if w < 20 {
		w = 20
	}
	h := height - 10
	if h < 3 {
		h = 3
	}
	n.input.SetWidth(w)
	n.input.SetHeight(h)
	n.picker.Height = h
}

func (n *newTabView) handleKey(msg tea.KeyMsg) (newTabAction, string, tea.Cmd) {
	switch n.mode {
	case modeChoose:
		switch msg.String() {
		case "esc", "q":
			return newTabClose, "", nil
		case "p":
			n.err = ""
			n.mode = modePaste
			return newTabNone, "", n.input.Focus()
		case "f":
			n.err = ""
			n.mode = modePick
			return newTabNone, "", n.picker.Init()
		case "v":
			clip, err := clipboard.ReadAll()
			if err != nil || strings.TrimSpace(clip) == "" {
				n.err = "Clipboard is empty"
				return newTabNone, "", nil
			}
			return newTabText, clip, nil
		}
		return newTabNone, "", nil

	case modePaste:
		switch msg.String() {
		case "esc":
			n.input.Blur()
			n.mode = modeChoose
			return newTabNone, "", nil
		case "ctrl+s":
			if strings.TrimSpace(n.input.Value()) == "" {
				n.err = "Nothing to read yet"
				return newTabNone, "", nil
			}
			return newTabText, n.input.Value(), nil
		}
		var cmd tea.Cmd
		n.input, cmd = n.input.Update(msg)
		return newTabNone, "", cmd

	case modePick:
		if msg.String() == "esc" {
			n.mode = modeChoose
			return newTabNone, "", nil
		}
		var cmd tea.Cmd
		n.picker, cmd = n.picker.Update(msg)
		if ok, path := n.picker.DidSelectFile(msg); ok {
			return newTabFile, path, cmd
		}
		if ok, path := n.picker.DidSelectDisabledFile(msg); ok {
			n.err = fmt.Sprintf("%s is not a supported format", filepath.Base(path))
		}
		return newTabNone, "", cmd

	case modeLoading:
		if msg.String() == "esc" {
			n.cancelLoad()
			return newTabCancelLoad, "", nil
		}
	}
	return newTabNone, "", nil
}

func (n *newTabView) startLoading(path string, cancel context.CancelFunc) {
	n.mode = modeLoading
	n.loading = true
	n.path = path
	n.cancel = cancel
	n.err = ""
}

func (n *newTabView) cancelLoad() {
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.loading = false
	n.mode = modeChoose
}

func (n *newTabView) loadFailed(err error) {
	n.loading = false
	n.cancel = nil
	n.mode = modeChoose

	var perr *source.ParseError
	if errors.As(err, &perr) {
		n.err = fmt.Sprintf("%s: %s", filepath.Base(perr.Path), perr.Reason)
	} else {
		n.err = err.Error()
	}
}

// forward passes non-key messages to whichever component is live: the
// picker reads directories, the textarea blinks its cursor, the spinner
// spins.
func (n *newTabView) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch n.mode {
	case modePaste:
		n.input, cmd = n.input.Update(msg)
	case modePick:
		n.picker, cmd = n.picker.Update(msg)
	case modeLoading:
		n.spin, cmd = n.spin.Update(msg)
	}
	return cmd
}

func (n *newTabView) view() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("New tab"))
	b.WriteString("\n\n")

	switch n.mode {
	case modeChoose:
		b.WriteString("  p  paste or type text\n")
		b.WriteString("  f  open a file (" + strings.Join(supportedExtensions(), " ") + ")\n")
		b.WriteString("  v  read the clipboard\n")
		b.WriteString("\n")
		b.WriteString("  " + controlsStyle.Render("esc: back"))

	case modePaste:
		b.WriteString(n.input.View())
		b.WriteString("\n\n")
		b.WriteString("  " + controlsStyle.Render("ctrl+s: start reading  esc: back"))

	case modePick:
		b.WriteString(n.picker.View())
		b.WriteString("\n")
		b.WriteString("  " + controlsStyle.Render("enter: open  esc: back"))

	case modeLoading:
		b.WriteString(fmt.Sprintf("  %s Loading %s…", n.spin.View(), filepath.Base(n.path)))
		b.WriteString("\n\n")
		b.WriteString("  " + controlsStyle.Render("esc: cancel"))
	}

	if n.err != "" {
		b.WriteString("\n\n  " + errorStyle.Render(n.err))
	}
	return b.String()
}
