// Package hyperlink implements the process-wide OSC 8 hyperlink table
// (spec.md §3 "Hyperlinks"): a HyperlinkID -> {UserID, URI} mapping with
// reference counting by cells, grounded on the teacher's terminal/links.go
// `links` type (a slice-backed url->id table) generalized to add the
// user id and reference counting spec.md requires so ids can be evicted
// when no cell references remain.
package hyperlink

import "github.com/christianparpart/libterminal/cell"

// Link is one hyperlink's payload: the OSC 8 `id=` parameter (may be
// empty, in which case cells sharing a URI do not automatically share an
// id) and the target URI.
type Link struct {
	UserID string
	URI    string
}

type entry struct {
	link   Link
	refs   int
}

// Storage is the process-wide hyperlink table. Not safe for concurrent
// use without external synchronization; the terminal mutex (spec.md §5)
// guards it the same way it guards the grids.
type Storage struct {
	entries map[cell.HyperlinkID]*entry
	byKey   map[string]cell.HyperlinkID // "userID\x00uri" -> id, only when userID != ""
	nextID  cell.HyperlinkID
}

// New returns an empty hyperlink table.
func New() *Storage {
	return &Storage{
		entries: make(map[cell.HyperlinkID]*entry),
		byKey:   make(map[string]cell.HyperlinkID),
	}
}

// Open registers (or reuses, when UserID is non-empty and already known)
// a hyperlink and returns its id. The id carries no reference of its
// own: callers must Retain it into whatever slot ends up storing it
// (the cursor's active hyperlink, a cell, a trivial line), the same as
// any other owning slot in the grid.
func (s *Storage) Open(l Link) cell.HyperlinkID {
	if l.UserID != "" {
		key := l.UserID + "\x00" + l.URI
		if id, ok := s.byKey[key]; ok {
			return id
		}
		s.nextID++
		id := s.nextID
		s.entries[id] = &entry{link: l}
		s.byKey[key] = id
		return id
	}
	s.nextID++
	id := s.nextID
	s.entries[id] = &entry{link: l}
	return id
}

// Retain increments the reference count for id, called whenever a cell
// starts referencing an already-open hyperlink (e.g. copying a row during
// scroll or reflow).
func (s *Storage) Retain(id cell.HyperlinkID) {
	if id == 0 {
		return
	}
	if e, ok := s.entries[id]; ok {
		e.refs++
	}
}

// Release decrements the reference count for id, called whenever a cell
// stops referencing it (overwrite, erase, scroll eviction). The entry is
// evicted once the count reaches zero.
func (s *Storage) Release(id cell.HyperlinkID) {
	if id == 0 {
		return
	}
	e, ok := s.entries[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(s.entries, id)
		if e.link.UserID != "" {
			delete(s.byKey, e.link.UserID+"\x00"+e.link.URI)
		}
	}
}

// Lookup returns the link registered under id.
func (s *Storage) Lookup(id cell.HyperlinkID) (Link, bool) {
	if id == 0 {
		return Link{}, false
	}
	e, ok := s.entries[id]
	if !ok {
		return Link{}, false
	}
	return e.link, true
}

// Len reports the number of stored hyperlink entries: every link opened
// and not yet evicted, including one opened but not yet retained by any
// owner. Exposed for tests asserting eviction behavior.
func (s *Storage) Len() int { return len(s.entries) }
