package style

import (
	"testing"

	"voice_server/core/domain"
)

func TestStoreReplaceByContactKey(t *testing.T) {
	s := NewStore()
	first := &domain.StyleRecord{ContactEmail: "Ana@Example.com", StyleConfidence: 50}
	second := &domain.StyleRecord{ContactEmail: "ana@example.com", StyleConfidence: 80}

	s.Put(first)
	s.Put(second)

	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1: same contact must replace", s.Len())
	}
	got := s.Get("ana@example.com")
	if got == nil || got.StyleConfidence != 80 {
		t.Errorf("got %+v, want the later record", got)
	}
}

func TestStoreNameFallbackKey(t *testing.T) {
	s := NewStore()
	s.Put(&domain.StyleRecord{ContactName: "Dana Reyes"})
	if s.Get("dana reyes") == nil {
		t.Error("record without email must be keyed by lowercase name")
	}
}

func TestStoreIgnoresUnkeyed(t *testing.T) {
	s := NewStore()
	s.Put(nil)
	s.Put(&domain.StyleRecord{})
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Put(&domain.StyleRecord{ContactEmail: "a@b.c"})
	s.Clear()
	if s.Len() != 0 || s.Get("a@b.c") != nil {
		t.Error("clear must drop all records")
	}
}
