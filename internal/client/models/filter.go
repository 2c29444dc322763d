package models

import "strings"

// Tab selects which report kinds the home listing shows.
type Tab string

const (
	TabAll   Tab = "all"
	TabLost  Tab = "lost"
	TabFound Tab = "found"
	TabDone  Tab = "done"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAll, TabLost, TabFound, TabDone}

// ParseTab maps s to a Tab. Unknown values select TabAll.
func ParseTab(s string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TabLost, TabFound, TabDone:
		return t
	default:
		return TabAll
	}
}

func (t Tab) Label() string {
	switch t {
	case TabLost:
		return "Dicari"
	case TabFound:
		return "Ditemukan"
	case TabDone:
		return "Selesai"
	default:
		return "Semua"
	}
}

// Matches reports whether an item of kind k belongs on the tab.
func (t Tab) Matches(k ReportKind) bool {
	switch t {
	case TabLost:
		return k == KindLost
	case TabFound:
		return k == KindFound
	case TabDone:
		return k == KindDone
	default:
		return true
	}
}

// Filter is the home listing's tab and search box.
type Filter struct {
	Tab   Tab
	Query string
}

// Match reports whether it passes the tab and has Query in its title or
// location, ignoring case.
func (f Filter) Match(it Item) bool {
	if !f.Tab.Matches(it.Kind) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(it.Title), q) ||
		strings.Contains(strings.ToLower(it.Location), q)
}

// Apply returns the matching items in their original order.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
