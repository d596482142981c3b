package sms

import (
	"sync"
	"time"
)

// HistoryEntry records one admin test send.
type HistoryEntry struct {
	To      string    `json:"to"`
	Message string    `json:"message"`
	Success bool      `json:"success"`
	Error   string    `json:"error,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}

// History is a fixed-capacity ring of recent test sends. Oldest entries are
// overwritten once the ring is full.
type History struct {
	mu      sync.Mutex
	entries []HistoryEntry
	next    int
	full    bool
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 10
	}
	return &History{entries: make([]HistoryEntry, capacity)}
}

func (h *History) Add(entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.next] = entry
	h.next = (h.next + 1) % len(h.entries)
	if h.next == 0 {
		h.full = true
	}
}

// Recent returns entries newest first.
func (h *History) Recent() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	size := h.next
	if h.full {
		size = len(h.entries)
	}

	out := make([]HistoryEntry, 0, size)
	for i := 1; i <= size; i++ {
		idx := (h.next - i + len(h.entries)) % len(h.entries)
		out = append(out, h.entries[idx])
	}
	return out
}
