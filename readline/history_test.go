package readline

import "testing"

func TestHistorySkipsConsecutiveDuplicates(t *testing.T) {
	h := NewHistory()
	h.Push("a")
	h.Push("a")
	h.Push("b")
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	h := NewHistory()
	for i := 0; i < historyCap+10; i++ {
		h.Push(string(rune('a' + i%26)))
	}
	if h.Len() != historyCap {
		t.Fatalf("len = %d, want %d", h.Len(), historyCap)
	}
}

func TestHistorySearchPreviousWalksBackward(t *testing.T) {
	h := NewHistory()
	h.Push("one")
	h.Push("two")
	h.Push("three")
	cursor := -1
	entry, ok := h.SearchPrevious(&cursor)
	if !ok || entry != "three" {
		t.Fatalf("got %q, %v", entry, ok)
	}
	entry, ok = h.SearchPrevious(&cursor)
	if !ok || entry != "two" {
		t.Fatalf("got %q, %v", entry, ok)
	}
}
