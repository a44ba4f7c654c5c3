package tabs

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/mkarlsen/blink/internal/fonts"
	"github.com/mkarlsen/blink/internal/reader"
	"github.com/mkarlsen/blink/internal/source"
	"github.com/mkarlsen/blink/internal/store"
	"github.com/mkarlsen/blink/internal/text"
)

// FontChange is the payload of a font-change notification.
type FontChange struct {
	Tab  *Tab
	Font fonts.Settings
}

// Manager is the only owner of the live tab set. Every tab enters
// through Create and leaves through Close; Select is the only way the
// active designation moves, which keeps it unique by construction.
type Manager struct {
	store   store.Store
	catalog *fonts.Catalog
	log     *slog.Logger

	tabs     map[ID]*Tab
	order    Order
	active   ID // 0 means none
	nextID   ID
	defaults Defaults

	// Font-change reactions, run synchronously in registration order.
	// The first, installed at construction, applies the settings to the
	// tab; front-ends append their geometry recompute.
	onFontChange   []func(FontChange)
	inFontDispatch bool
}

// NewManager builds an empty manager. Tabs arrive via Restore or Create.
func NewManager(st store.Store, catalog *fonts.Catalog, defaults Defaults, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{
		store:    st,
		catalog:  catalog,
		log:      log,
		tabs:     make(map[ID]*Tab),
		defaults: defaults,
	}
	m.onFontChange = []func(FontChange){
		func(fc FontChange) { fc.Tab.Font = fc.Font },
	}
	return m
}

// OnFontChange registers a reaction to font-change notifications. It
// runs after the built-in one that stores the settings on the tab.
func (m *Manager) OnFontChange(fn func(FontChange)) {
	m.onFontChange = append(m.onFontChange, fn)
}

// Create is the single entry point for new tabs. It segments raw text
// when needed, builds the session, registers the word cache, appends to
// the order, and optionally activates, as one step. A cache write
// failure loses only persistence for this tab, never the tab itself.
func (m *Manager) Create(req Request) *Tab {
	m.nextID++
	t := &Tab{
		ID:       m.nextID,
		Name:     req.displayName(),
		FilePath: req.FilePath,
		Home:     req.Home,
	}

	font := m.defaults.Font
	if req.Font != nil {
		font = *req.Font
	}
	font.Name = m.catalog.Resolve(font.Name)
	font.Size = fonts.ClampSize(font.Size)
	t.Font = font

	if !req.Home {
		words := req.Words
		if words == nil && req.Text != "" {
			words = source.FromText(req.Text)
		}

		wpm := req.WPM
		if wpm == 0 {
			wpm = m.defaults.WPM
		}
		t.Session = reader.NewSession(words, wpm)
		if req.Position > 0 {
			t.Session.Seek(req.Position)
		}

		t.CacheID = req.CacheID
		if t.CacheID == "" && len(words) > 0 {
			id := m.store.NewCacheID()
			if err := m.store.WriteWordCache(id, words); err != nil {
				m.log.Warn("word cache write failed", "tab", t.Name, "error", err)
			} else {
				t.CacheID = id
			}
		}
	}

	m.tabs[t.ID] = t
	m.order.add(t.ID)
	if req.Activate || m.active == 0 {
		m.Select(t.ID)
	}

	m.log.Debug("tab created", "id", t.ID, "name", t.Name, "words", t.wordCount())
	return t
}

// Select makes id the active tab and cascades a font-change for its
// settings plus a word-change on its session, so the display matches the
// newly active content without any other code path touching it.
func (m *Manager) Select(id ID) {
	t, ok := m.tabs[id]
	if !ok || id == m.active {
		return
	}
	m.active = id
	m.notifyFontChange(t, t.Font)
	if t.Session != nil {
		t.Session.Refresh()
	}
}

// Close removes a tab, deletes its word cache, and if it was active
// hands the designation to an adjacent tab (next, else previous). The
// homepage tab stays.
func (m *Manager) Close(id ID) {
	t, ok := m.tabs[id]
	if !ok || t.Home {
		return
	}

	adjacent, hasAdjacent := m.order.Adjacent(id)
	m.order.remove(id)
	delete(m.tabs, id)

	if t.CacheID != "" {
		if err := m.store.DeleteWordCache(t.CacheID); err != nil {
			m.log.Warn("word cache delete failed", "cache_id", t.CacheID, "error", err)
		}
	}

	if m.active == id {
		m.active = 0
		if hasAdjacent {
			m.Select(adjacent)
		}
	}
	m.log.Debug("tab closed", "id", id, "name", t.Name)
}

// SetFont validates a font change against the catalog and dispatches the
// notification: settings apply to the tab, then registered reactions
// (display geometry) run. Dispatch never re-enters itself.
func (m *Manager) SetFont(id ID, font fonts.Settings) {
	t, ok := m.tabs[id]
	if !ok {
		return
	}
	font.Name = m.catalog.Resolve(font.Name)
	font.Size = fonts.ClampSize(font.Size)
	m.notifyFontChange(t, font)
}

func (m *Manager) notifyFontChange(t *Tab, font fonts.Settings) {
	if m.inFontDispatch {
		return
	}
	m.inFontDispatch = true
	for _, fn := range m.onFontChange {
		fn(FontChange{Tab: t, Font: font})
	}
	m.inFontDispatch = false
}

// Get returns a tab by id.
func (m *Manager) Get(id ID) (*Tab, bool) {
	t, ok := m.tabs[id]
	return t, ok
}

// Active returns the active tab, or nil when there is none.
func (m *Manager) Active() *Tab {
	if m.active == 0 {
		return nil
	}
	return m.tabs[m.active]
}

func (m *Manager) ActiveID() ID { return m.active }

// ActiveSession returns the active tab's session, nil for the homepage
// or when no tab is active.
func (m *Manager) ActiveSession() *reader.Session {
	if t := m.Active(); t != nil {
		return t.Session
	}
	return nil
}

// Tabs returns the live tabs in display order.
func (m *Manager) Tabs() []*Tab {
	return lo.Map(m.order.IDs(), func(id ID, _ int) *Tab { return m.tabs[id] })
}

func (m *Manager) Order() *Order { return &m.order }
func (m *Manager) Len() int      { return m.order.Len() }

// Defaults returns the settings new tabs start with.
func (m *Manager) Defaults() Defaults { return m.defaults }

// SetDefaults changes the settings new tabs start with.
func (m *Manager) SetDefaults(d Defaults) {
	d.WPM = reader.ClampWPM(d.WPM)
	d.Font.Name = m.catalog.Resolve(d.Font.Name)
	d.Font.Size = fonts.ClampSize(d.Font.Size)
	m.defaults = d
}

// ApplyDefaultsToAll pushes the default font and speed onto every live
// tab.
func (m *Manager) ApplyDefaultsToAll() {
	for _, id := range m.order.IDs() {
		m.SetFont(id, m.defaults.Font)
		if t := m.tabs[id]; t.Session != nil {
			t.Session.SetWPM(m.defaults.WPM)
		}
	}
}

// LoadResult carries an async load outcome back to the front-end loop,
// which feeds it into Create.
type LoadResult struct {
	Path  string
	Words []text.Word
	Err   error
}

// OpenFile loads and segments path off the calling goroutine. A ctx
// canceled before the load finishes drops the result entirely: no cache
// write, no session, no tab. This is the sole cancellation point. The
// channel is closed once the load settles, so a receiver always wakes
// up even when the result was dropped.
func (m *Manager) OpenFile(ctx context.Context, path string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		defer close(ch)
		words, err := source.Load(path)
		select {
		case <-ctx.Done():
			return
		default:
		}
		ch <- LoadResult{Path: path, Words: words, Err: err}
	}()
	return ch
}

// Restore rebuilds tabs from persisted metadata, funneling every record
// through Create. A failed metadata load restores nothing; an unreadable
// word cache skips its tab; afterwards, cache entries no tab references
// are deleted and a homepage tab is guaranteed to exist.
func (m *Manager) Restore() {
	records, err := m.store.LoadTabs()
	if err != nil {
		m.log.Warn("tab metadata load failed", "error", err)
		records = nil
	}

	for _, rec := range records {
		if rec.Home {
			m.Create(Request{Name: rec.Name, Home: true, Activate: rec.Active})
			continue
		}

		var words []text.Word
		if rec.CacheID != "" {
			words, err = m.store.ReadWordCache(rec.CacheID)
			if err != nil {
				m.log.Warn("word cache unreadable, skipping tab",
					"tab", rec.Name, "cache_id", rec.CacheID, "error", err)
				continue
			}
		}

		m.Create(Request{
			Name:     rec.Name,
			Words:    words,
			FilePath: rec.FilePath,
			Font:     &fonts.Settings{Name: rec.FontName, Size: rec.FontSize},
			WPM:      rec.WPM,
			Position: rec.CursorIndex,
			CacheID:  rec.CacheID,
			Activate: rec.Active,
		})
	}

	if m.Len() == 0 {
		m.Create(Request{Home: true, Activate: true})
	}

	m.sweepOrphans()
}

// sweepOrphans deletes cache entries that no live tab references.
func (m *Manager) sweepOrphans() {
	ids, err := m.store.CacheIDs()
	if err != nil {
		m.log.Warn("cache listing failed", "error", err)
		return
	}

	live := make(map[string]bool, len(m.tabs))
	for _, t := range m.tabs {
		if t.CacheID != "" {
			live[t.CacheID] = true
		}
	}

	for _, id := range lo.Filter(ids, func(id string, _ int) bool { return !live[id] }) {
		if err := m.store.DeleteWordCache(id); err != nil {
			m.log.Warn("orphan cache delete failed", "cache_id", id, "error", err)
			continue
		}
		m.log.Info("deleted orphaned word cache", "cache_id", id)
	}
}

// Records snapshots every live tab as persistence metadata, in display
// order.
func (m *Manager) Records() []store.TabRecord {
	return lo.Map(m.order.IDs(), func(id ID, _ int) store.TabRecord {
		t := m.tabs[id]
		rec := store.TabRecord{
			ID:       uint64(t.ID),
			Name:     t.Name,
			FilePath: t.FilePath,
			FontName: t.Font.Name,
			FontSize: t.Font.Size,
			CacheID:  t.CacheID,
			Active:   t.ID == m.active,
			Home:     t.Home,
		}
		if t.Session != nil {
			rec.WPM = t.Session.WPM()
			rec.CursorIndex = t.Session.Position()
		}
		return rec
	})
}

// Save persists the current snapshot. Failures are logged and skipped.
func (m *Manager) Save() {
	if err := m.store.SaveTabs(m.Records()); err != nil {
		m.log.Warn("tab save failed", "error", err)
	}
}

func (t *Tab) wordCount() int {
	if t.Session == nil {
		return 0
	}
	return t.Session.Len()
}
