//go:build !gui

package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/mkarlsen/blink/internal/fonts"
	"github.com/mkarlsen/blink/internal/reader"
	"github.com/mkarlsen/blink/internal/source"
	"github.com/mkarlsen/blink/internal/tabs"
)

type viewID int

const (
	viewReader viewID = iota
	viewNewTab
	viewTOC
)

type appModel struct {
	eng  *engine
	keys keyMap
	help help.Model
	bar  progress.Model

	view   viewID
	width  int
	height int

	// The frame loop runs only while the active session plays. lastFrame
	// is the wall clock of the last processed frame.
	ticking   bool
	lastFrame time.Time

	newTab *newTabView
	toc    *tocView

	notice   string
	quitting bool
}

// tocView is the table-of-contents overlay state.
type tocView struct {
	entries []source.TOCEntry
	cursor  int
}

func newApp(eng *engine) appModel {
	m := appModel{
		eng:    eng,
		keys:   defaultKeyMap(),
		help:   help.New(),
		bar:    progress.New(progress.WithDefaultGradient()),
		width:  80,
		height: 24,
	}
	m.bar.Width = 60

	// Terminal cells do not scale, so the display reaction here only
	// records the change; the GUI build registers a geometry rebuild.
	eng.mgr.OnFontChange(func(fc tabs.FontChange) {
		eng.log.Debug("font applied", "tab", fc.Tab.Name, "font", fc.Font.Name, "size", fc.Font.Size)
	})
	return m
}

type frameMsg time.Time

type saveMsg time.Time

type loadDoneMsg tabs.LoadResult

type loadDroppedMsg struct{}

type tocMsg struct {
	entries []source.TOCEntry
	err     error
}

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func saveTick() tea.Cmd {
	return tea.Tick(savePeriod, func(t time.Time) tea.Msg {
		return saveMsg(t)
	})
}

// awaitLoad blocks on an async file load. A closed channel means the
// load was canceled and its result dropped.
func awaitLoad(ch <-chan tabs.LoadResult) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return loadDroppedMsg{}
		}
		return loadDoneMsg(res)
	}
}

func fetchTOC(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := source.TOC(path)
		return tocMsg{entries: entries, err: err}
	}
}

func (m appModel) Init() tea.Cmd {
	// Restored sessions never come back playing, so the frame loop
	// starts with the first play command.
	return saveTick()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.bar.Width = msg.Width - 8
		if m.bar.Width > 60 {
			m.bar.Width = 60
		}
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
		if m.newTab != nil {
			m.newTab.setSize(msg.Width, msg.Height)
		}
		return m, nil

	case saveMsg:
		m.eng.mgr.Save()
		return m, saveTick()

	case frameMsg:
		return m.updateFrame(time.Time(msg))

	case loadDoneMsg:
		return m.finishLoad(tabs.LoadResult(msg))

	case loadDroppedMsg:
		return m, nil

	case tocMsg:
		if msg.err != nil || len(msg.entries) == 0 {
			m.notice = "No table of contents here"
			return m, nil
		}
		m.toc = &tocView{entries: msg.entries}
		m.view = viewTOC
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewNewTab:
			return m.updateNewTab(msg)
		case viewTOC:
			return m.updateTOC(msg)
		default:
			return m.updateReader(msg)
		}
	}

	// Everything else belongs to the open new-tab components: directory
	// listings for the picker, cursor blinks, spinner frames.
	if m.newTab != nil {
		return m, m.newTab.forward(msg)
	}
	return m, nil
}

func (m appModel) updateFrame(now time.Time) (tea.Model, tea.Cmd) {
	s := m.eng.mgr.ActiveSession()
	if s == nil || s.State() != reader.Playing {
		m.ticking = false
		return m, nil
	}
	s.Tick(now.Sub(m.lastFrame))
	m.lastFrame = now
	if s.State() != reader.Playing {
		// Ran off the end.
		m.ticking = false
		return m, nil
	}
	return m, frameTick()
}

// resumeTicking (re)starts the frame loop after a command that may have
// put the active session into Playing.
func (m *appModel) resumeTicking() tea.Cmd {
	s := m.eng.mgr.ActiveSession()
	if s == nil || s.State() != reader.Playing {
		return nil
	}
	m.lastFrame = time.Now()
	if m.ticking {
		return nil
	}
	m.ticking = true
	return frameTick()
}

func (m appModel) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	t := m.eng.mgr.Active()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(true)
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(false)
		return m, nil

	case key.Matches(msg, m.keys.NewTab):
		m.pauseActive()
		m.newTab = newNewTabView(m.width, m.height)
		m.view = viewNewTab
		return m, nil

	case key.Matches(msg, m.keys.CloseTab):
		m.eng.mgr.Close(m.eng.mgr.ActiveID())
		return m, nil

	case key.Matches(msg, m.keys.TOC):
		if t == nil || t.FilePath == "" {
			m.notice = "No table of contents here"
			return m, nil
		}
		m.pauseActive()
		return m, fetchTOC(t.FilePath)
	}

	if t == nil || t.Session == nil {
		return m.updateHomeKeys(msg)
	}
	s := t.Session

	switch {
	case key.Matches(msg, m.keys.PlayPause):
		if s.State() == reader.Idle && s.AtEnd() {
			s.Restart()
		}
		s.TogglePlay()
		return m, m.resumeTicking()

	case key.Matches(msg, m.keys.Stop):
		s.Stop()
	case key.Matches(msg, m.keys.Restart):
		s.Restart()
	case key.Matches(msg, m.keys.SkipBack):
		s.SkipBackward()
	case key.Matches(msg, m.keys.SkipForward):
		s.SkipForward()
	case key.Matches(msg, m.keys.PrevSentence):
		s.PrevSentence()
	case key.Matches(msg, m.keys.NextSentence):
		s.NextSentence()
	case key.Matches(msg, m.keys.SpeedUp):
		s.SpeedUp()
	case key.Matches(msg, m.keys.SpeedDown):
		s.SpeedDown()

	case key.Matches(msg, m.keys.FontBigger):
		m.eng.mgr.SetFont(t.ID, fonts.Settings{Name: t.Font.Name, Size: t.Font.Size + fonts.SizeStep})
	case key.Matches(msg, m.keys.FontSmaller):
		m.eng.mgr.SetFont(t.ID, fonts.Settings{Name: t.Font.Name, Size: t.Font.Size - fonts.SizeStep})
	case key.Matches(msg, m.keys.CycleFont):
		m.eng.mgr.SetFont(t.ID, fonts.Settings{Name: nextFont(m.eng.catalog, t.Font.Name), Size: t.Font.Size})
	}
	return m, nil
}

// updateHomeKeys edits the defaults new tabs start with.
func (m appModel) updateHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mgr := m.eng.mgr
	d := mgr.Defaults()

	switch {
	case key.Matches(msg, m.keys.SpeedUp):
		d.WPM += reader.WPMStep
		mgr.SetDefaults(d)
	case key.Matches(msg, m.keys.SpeedDown):
		d.WPM -= reader.WPMStep
		mgr.SetDefaults(d)
	case key.Matches(msg, m.keys.FontBigger):
		d.Font.Size += fonts.SizeStep
		mgr.SetDefaults(d)
	case key.Matches(msg, m.keys.FontSmaller):
		d.Font.Size -= fonts.SizeStep
		mgr.SetDefaults(d)
	case key.Matches(msg, m.keys.CycleFont):
		d.Font.Name = nextFont(m.eng.catalog, d.Font.Name)
		mgr.SetDefaults(d)
	case key.Matches(msg, m.keys.ApplyDefaults):
		mgr.ApplyDefaultsToAll()
		m.notice = "Defaults applied to all tabs"
	}
	return m, nil
}

func (m appModel) updateTOC(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.toc.cursor > 0 {
			m.toc.cursor--
		}
	case "down", "j":
		if m.toc.cursor < len(m.toc.entries)-1 {
			m.toc.cursor++
		}
	case "enter":
		if s := m.eng.mgr.ActiveSession(); s != nil {
			s.Seek(m.toc.entries[m.toc.cursor].WordIndex)
		}
		m.toc = nil
		m.view = viewReader
	case "esc", "t", "q":
		m.toc = nil
		m.view = viewReader
	}
	return m, nil
}

func (m appModel) updateNewTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, payload, cmd := m.newTab.handleKey(msg)
	switch action {
	case newTabClose:
		m.newTab = nil
		m.view = viewReader
		return m, nil

	case newTabText:
		m.eng.mgr.Create(tabs.Request{Name: "Pasted text", Text: payload, Activate: true})
		m.newTab = nil
		m.view = viewReader
		return m, nil

	case newTabFile:
		ctx, cancel := context.WithCancel(context.Background())
		ch := m.eng.mgr.OpenFile(ctx, payload)
		m.newTab.startLoading(payload, cancel)
		return m, tea.Batch(awaitLoad(ch), m.newTab.spin.Tick)

	case newTabCancelLoad:
		// handleKey already canceled the context; the dropped result
		// unblocks awaitLoad.
		return m, nil
	}
	return m, cmd
}

func (m appModel) finishLoad(res tabs.LoadResult) (tea.Model, tea.Cmd) {
	if m.newTab == nil || !m.newTab.loading {
		// Canceled; a result that raced the cancel is dropped too.
		return m, nil
	}
	if res.Err != nil {
		m.newTab.loadFailed(res.Err)
		return m, nil
	}
	m.eng.mgr.Create(tabs.Request{
		Words:    res.Words,
		FilePath: res.Path,
		Activate: true,
	})
	m.newTab = nil
	m.view = viewReader
	return m, nil
}

func (m *appModel) switchTab(forward bool) {
	mgr := m.eng.mgr
	var id tabs.ID
	var ok bool
	if forward {
		id, ok = mgr.Order().After(mgr.ActiveID())
	} else {
		id, ok = mgr.Order().Before(mgr.ActiveID())
	}
	if !ok || id == mgr.ActiveID() {
		return
	}
	m.pauseActive()
	mgr.Select(id)
}

// pauseActive pauses the active session, if it is playing. Overlays and
// tab switches never leave a session playing behind them.
func (m *appModel) pauseActive() {
	if s := m.eng.mgr.ActiveSession(); s != nil {
		s.Pause()
	}
}

func nextFont(catalog *fonts.Catalog, current string) string {
	names := catalog.Names()
	idx := lo.IndexOf(names, current)
	return names[(idx+1)%len(names)]
}
