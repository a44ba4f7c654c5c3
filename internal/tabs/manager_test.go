package tabs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkarlsen/blink/internal/fonts"
	"github.com/mkarlsen/blink/internal/reader"
	"github.com/mkarlsen/blink/internal/store"
	"github.com/mkarlsen/blink/internal/text"
)

func newManager(t *testing.T) (*Manager, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	catalog := fonts.Discover(t.TempDir())
	defaults := Defaults{WPM: reader.DefaultWPM, Font: fonts.DefaultSettings()}
	return NewManager(st, catalog, defaults, nil), st
}

func cacheCount(t *testing.T, st store.Store) int {
	t.Helper()
	ids, err := st.CacheIDs()
	if err != nil {
		t.Fatalf("CacheIDs: %v", err)
	}
	return len(ids)
}

func TestCreateActivatesFirstTab(t *testing.T) {
	m, _ := newManager(t)

	first := m.Create(Request{Text: "one two three"})
	if m.ActiveID() != first.ID {
		t.Errorf("first tab not active: active = %d", m.ActiveID())
	}

	second := m.Create(Request{Text: "four five"})
	if m.ActiveID() != first.ID {
		t.Errorf("creating a background tab moved focus to %d", m.ActiveID())
	}

	third := m.Create(Request{Text: "six", Activate: true})
	if m.ActiveID() != third.ID {
		t.Errorf("Activate request ignored: active = %d", m.ActiveID())
	}
	_ = second
}

func TestCreateWritesCache(t *testing.T) {
	m, st := newManager(t)

	tab := m.Create(Request{Text: "alpha beta"})
	if tab.CacheID == "" {
		t.Fatal("tab has no cache id")
	}
	words, err := st.ReadWordCache(tab.CacheID)
	if err != nil {
		t.Fatalf("ReadWordCache: %v", err)
	}
	if len(words) != 2 || words[0].Text != "alpha" {
		t.Errorf("cached words = %v", words)
	}
}

func TestCreateEmptyTabHasNoCache(t *testing.T) {
	m, st := newManager(t)

	tab := m.Create(Request{Name: "blank"})
	if tab.CacheID != "" {
		t.Errorf("empty tab got cache id %q", tab.CacheID)
	}
	if cacheCount(t, st) != 0 {
		t.Error("empty tab wrote a cache entry")
	}
	if tab.HasWords() {
		t.Error("empty tab claims words")
	}
}

func TestCreateUsesDefaults(t *testing.T) {
	m, _ := newManager(t)
	m.SetDefaults(Defaults{WPM: 500, Font: fonts.Settings{Name: "Nope", Size: 30}})

	tab := m.Create(Request{Text: "a b c"})
	if tab.Session.WPM() != 500 {
		t.Errorf("wpm = %d, want 500", tab.Session.WPM())
	}
	// Unknown default font resolves to the catalog fallback.
	if tab.Font.Name != fonts.DefaultName {
		t.Errorf("font = %q, want %q", tab.Font.Name, fonts.DefaultName)
	}
	if tab.Font.Size != 30 {
		t.Errorf("size = %v, want 30", tab.Font.Size)
	}
}

func TestCloseSelectsAdjacent(t *testing.T) {
	m, _ := newManager(t)
	a := m.Create(Request{Name: "a", Text: "x"})
	b := m.Create(Request{Name: "b", Text: "x"})
	c := m.Create(Request{Name: "c", Text: "x"})

	m.Select(b.ID)
	m.Close(b.ID)
	if m.ActiveID() != c.ID {
		t.Errorf("closing middle tab activated %d, want next %d", m.ActiveID(), c.ID)
	}

	m.Close(c.ID)
	if m.ActiveID() != a.ID {
		t.Errorf("closing last tab activated %d, want previous %d", m.ActiveID(), a.ID)
	}

	m.Close(a.ID)
	if m.ActiveID() != 0 {
		t.Errorf("closing the only tab left %d active", m.ActiveID())
	}
	if m.Len() != 0 {
		t.Errorf("%d tabs left", m.Len())
	}
}

func TestCloseDeletesCache(t *testing.T) {
	m, st := newManager(t)
	tab := m.Create(Request{Text: "one two"})
	if cacheCount(t, st) != 1 {
		t.Fatal("cache not written")
	}

	m.Close(tab.ID)
	if cacheCount(t, st) != 0 {
		t.Error("cache survived the close")
	}
}

func TestCloseKeepsBackgroundActive(t *testing.T) {
	m, _ := newManager(t)
	a := m.Create(Request{Name: "a", Text: "x"})
	b := m.Create(Request{Name: "b", Text: "x"})

	m.Close(b.ID)
	if m.ActiveID() != a.ID {
		t.Errorf("closing a background tab moved focus to %d", m.ActiveID())
	}
}

func TestHomeTabNotClosable(t *testing.T) {
	m, _ := newManager(t)
	home := m.Create(Request{Home: true})

	m.Close(home.ID)
	if m.Len() != 1 {
		t.Error("homepage tab was closed")
	}
	if home.Session != nil {
		t.Error("homepage tab has a session")
	}
}

func TestSelectCascadesFontChange(t *testing.T) {
	m, _ := newManager(t)
	a := m.Create(Request{Name: "a", Text: "x"})
	b := m.Create(Request{Name: "b", Text: "y"})

	var got []ID
	m.OnFontChange(func(fc FontChange) { got = append(got, fc.Tab.ID) })

	m.Select(b.ID)
	if len(got) != 1 || got[0] != b.ID {
		t.Errorf("font cascade for %v, want [%d]", got, b.ID)
	}

	// Selecting the already-active tab must not re-fire.
	m.Select(b.ID)
	if len(got) != 1 {
		t.Errorf("re-select fired %d extra notifications", len(got)-1)
	}
	_ = a
}

func TestSetFontReactionsInOrder(t *testing.T) {
	m, _ := newManager(t)
	tab := m.Create(Request{Text: "words here"})

	var seen fonts.Settings
	m.OnFontChange(func(fc FontChange) {
		// The built-in reaction ran first, so the tab already carries
		// the new settings when ours fires.
		seen = fc.Tab.Font
	})

	m.SetFont(tab.ID, fonts.Settings{Name: fonts.DefaultName, Size: 64})
	if tab.Font.Size != 64 {
		t.Errorf("font size = %v, want 64", tab.Font.Size)
	}
	if seen.Size != 64 {
		t.Errorf("reaction saw size %v, want 64", seen.Size)
	}
}

func TestSetFontClamps(t *testing.T) {
	m, _ := newManager(t)
	tab := m.Create(Request{Text: "w"})

	m.SetFont(tab.ID, fonts.Settings{Name: "Ghost", Size: 999})
	if tab.Font.Name != fonts.DefaultName {
		t.Errorf("unknown font kept: %q", tab.Font.Name)
	}
	if tab.Font.Size != fonts.MaxSize {
		t.Errorf("size = %v, want clamp to %v", tab.Font.Size, fonts.MaxSize)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	m, st := newManager(t)
	m.Create(Request{Home: true})
	tab := m.Create(Request{Name: "book", Text: "one two three four", WPM: 450, Activate: true})
	tab.Session.Seek(2)
	m.Save()

	m2 := NewManager(st, fonts.Discover(t.TempDir()),
		Defaults{WPM: reader.DefaultWPM, Font: fonts.DefaultSettings()}, nil)
	m2.Restore()

	if m2.Len() != 2 {
		t.Fatalf("restored %d tabs, want 2", m2.Len())
	}
	active := m2.Active()
	if active == nil || active.Name != "book" {
		t.Fatalf("active tab = %+v, want book", active)
	}
	if active.Session.WPM() != 450 {
		t.Errorf("wpm = %d, want 450", active.Session.WPM())
	}
	if active.Session.Position() != 2 {
		t.Errorf("position = %d, want 2", active.Session.Position())
	}
	words := active.Session.Words()
	if len(words) != 4 || words[3].Text != "four" {
		t.Errorf("restored words = %v", words)
	}
}

func TestRestoreEmptyStoreCreatesHome(t *testing.T) {
	m, _ := newManager(t)
	m.Restore()

	if m.Len() != 1 {
		t.Fatalf("restored %d tabs, want just the homepage", m.Len())
	}
	if tab := m.Active(); tab == nil || !tab.Home {
		t.Errorf("active tab = %+v, want homepage", tab)
	}
}

func TestRestoreClampsPosition(t *testing.T) {
	_, st := newManager(t)
	id := st.NewCacheID()
	st.WriteWordCache(id, []text.Word{{Text: "a"}, {Text: "b"}, {Text: "c"}})
	st.SaveTabs([]store.TabRecord{
		{ID: 1, Name: "short", WPM: 300, CursorIndex: 999, CacheID: id, Active: true},
	})

	m := NewManager(st, fonts.Discover(t.TempDir()),
		Defaults{WPM: reader.DefaultWPM, Font: fonts.DefaultSettings()}, nil)
	m.Restore()

	if pos := m.ActiveSession().Position(); pos != 2 {
		t.Errorf("position = %d, want clamp to 2", pos)
	}
}

func TestRestoreSkipsUnreadableCache(t *testing.T) {
	_, st := newManager(t)
	good := st.NewCacheID()
	st.WriteWordCache(good, []text.Word{{Text: "ok"}})
	st.SaveTabs([]store.TabRecord{
		{ID: 1, Name: "gone", WPM: 300, CacheID: "missing-cache"},
		{ID: 2, Name: "kept", WPM: 300, CacheID: good, Active: true},
	})

	m := NewManager(st, fonts.Discover(t.TempDir()),
		Defaults{WPM: reader.DefaultWPM, Font: fonts.DefaultSettings()}, nil)
	m.Restore()

	if m.Len() != 1 {
		t.Fatalf("restored %d tabs, want 1", m.Len())
	}
	if m.Active().Name != "kept" {
		t.Errorf("restored tab = %q", m.Active().Name)
	}
}

func TestRestoreSweepsOrphanedCaches(t *testing.T) {
	_, st := newManager(t)
	live := st.NewCacheID()
	orphan := st.NewCacheID()
	st.WriteWordCache(live, []text.Word{{Text: "keep"}})
	st.WriteWordCache(orphan, []text.Word{{Text: "drop"}})
	st.SaveTabs([]store.TabRecord{
		{ID: 1, Name: "keep", WPM: 300, CacheID: live, Active: true},
	})

	m := NewManager(st, fonts.Discover(t.TempDir()),
		Defaults{WPM: reader.DefaultWPM, Font: fonts.DefaultSettings()}, nil)
	m.Restore()

	ids, err := st.CacheIDs()
	if err != nil {
		t.Fatalf("CacheIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != live {
		t.Errorf("caches after sweep = %v, want [%s]", ids, live)
	}
	if _, err := st.ReadWordCache(live); err != nil {
		t.Errorf("live cache swept: %v", err)
	}
}

func TestRecordsSnapshot(t *testing.T) {
	m, _ := newManager(t)
	m.Create(Request{Home: true})
	tab := m.Create(Request{Name: "doc", Text: "a b c", WPM: 350, Activate: true})
	tab.Session.SkipForward()

	records := m.Records()
	if len(records) != 2 {
		t.Fatalf("%d records, want 2", len(records))
	}
	if !records[0].Home || records[0].Active {
		t.Errorf("home record = %+v", records[0])
	}
	doc := records[1]
	if doc.Name != "doc" || !doc.Active || doc.WPM != 350 || doc.CursorIndex != 2 {
		t.Errorf("doc record = %+v", doc)
	}
	if doc.CacheID == "" {
		t.Error("doc record lost its cache id")
	}
}

func TestOpenFileDeliversWords(t *testing.T) {
	m, _ := newManager(t)
	path := filepath.Join(t.TempDir(), "doc.txt")
	os.WriteFile(path, []byte("hello there world"), 0644)

	res := <-m.OpenFile(context.Background(), path)
	if res.Err != nil {
		t.Fatalf("load failed: %v", res.Err)
	}
	if len(res.Words) != 3 {
		t.Errorf("loaded %d words, want 3", len(res.Words))
	}

	tab := m.Create(Request{Words: res.Words, FilePath: res.Path, Activate: true})
	if tab.Name != "doc.txt" {
		t.Errorf("tab name = %q", tab.Name)
	}
}

func TestOpenFileReportsParseError(t *testing.T) {
	m, _ := newManager(t)
	path := filepath.Join(t.TempDir(), "image.png")
	os.WriteFile(path, []byte{1, 2, 3}, 0644)

	res := <-m.OpenFile(context.Background(), path)
	if res.Err == nil {
		t.Fatal("unsupported file loaded without error")
	}
	if res.Words != nil {
		t.Errorf("failed load produced words: %v", res.Words)
	}
}

func TestOpenFileCancelDropsResult(t *testing.T) {
	m, st := newManager(t)
	path := filepath.Join(t.TempDir(), "doc.txt")
	os.WriteFile(path, []byte("some words"), 0644)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := m.OpenFile(ctx, path)
	select {
	case res := <-ch:
		t.Fatalf("canceled load delivered %+v", res)
	case <-time.After(100 * time.Millisecond):
	}
	if m.Len() != 0 {
		t.Error("canceled load created a tab")
	}
	if cacheCount(t, st) != 0 {
		t.Error("canceled load wrote a cache entry")
	}
}

func TestApplyDefaultsToAll(t *testing.T) {
	m, _ := newManager(t)
	a := m.Create(Request{Text: "x y"})
	b := m.Create(Request{Text: "z"})

	m.SetDefaults(Defaults{WPM: 600, Font: fonts.Settings{Name: fonts.DefaultName, Size: 72}})
	m.ApplyDefaultsToAll()

	for _, tab := range []*Tab{a, b} {
		if tab.Session.WPM() != 600 {
			t.Errorf("tab %d wpm = %d, want 600", tab.ID, tab.Session.WPM())
		}
		if tab.Font.Size != 72 {
			t.Errorf("tab %d size = %v, want 72", tab.ID, tab.Font.Size)
		}
	}
}
