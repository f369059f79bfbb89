package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "verse record id", content: "GEN:1:1:KJV"},
		{name: "empty string", content: ""},
		{name: "long content", content: "This is a much longer piece of content that should still hash consistently"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("GEN:1:1:KJV")
	id2 := IDFromContent("GEN:1:1:ASV")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestNewVerseRecord(t *testing.T) {
	text := "In the beginning God created the heaven and the earth."
	record := NewVerseRecord("GEN", "KJV", 1, 1, &text)

	if record.ID != "GEN:1:1:KJV" {
		t.Errorf("ID = %q, want %q", record.ID, "GEN:1:1:KJV")
	}
	if record.VerseID != "GEN:1:1" {
		t.Errorf("VerseID = %q, want %q", record.VerseID, "GEN:1:1")
	}
	if record.Collection != "GEN" || record.Book != "GEN" {
		t.Errorf("Collection/Book = %q/%q, want GEN/GEN", record.Collection, record.Book)
	}
	if record.Version != "KJV" || record.Chapter != 1 || record.Verse != 1 {
		t.Errorf("unexpected coordinates: %+v", record)
	}
	if record.TextOrEmpty() != text {
		t.Errorf("TextOrEmpty() = %q, want %q", record.TextOrEmpty(), text)
	}
}

func TestNewVerseRecord_Deterministic(t *testing.T) {
	a := NewVerseRecord("PSA", "World English Bible", 119, 105, nil)
	b := NewVerseRecord("PSA", "World English Bible", 119, 105, nil)

	if a.ID != b.ID {
		t.Errorf("expected identical IDs, got %q and %q", a.ID, b.ID)
	}
	if a.ID != "PSA:119:105:World English Bible" {
		t.Errorf("ID = %q", a.ID)
	}
}

func TestVerseRecord_TextOrEmpty_Absent(t *testing.T) {
	record := NewVerseRecord("GEN", "KJV", 1, 1, nil)
	if record.Text != nil {
		t.Fatal("expected absent text to stay nil")
	}
	if record.TextOrEmpty() != "" {
		t.Errorf("TextOrEmpty() = %q, want empty", record.TextOrEmpty())
	}
}

func TestCheckpointKey(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"KJV", "kjv"},
		{"World English Bible", "world_english_bible"},
		{"  ASV ", "asv"},
		{"bbe", "bbe"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := CheckpointKey(tt.version); got != tt.want {
				t.Errorf("CheckpointKey(%q) = %q, want %q", tt.version, got, tt.want)
			}
		})
	}
}

func TestBook_VerseCount(t *testing.T) {
	book := Book{
		Name: "Obadiah",
		Chapters: []Chapter{
			{Number: 1, Verses: make([]Verse, 21)},
		},
	}
	if got := book.VerseCount(); got != 21 {
		t.Errorf("VerseCount() = %d, want 21", got)
	}

	empty := Book{Name: "Empty"}
	if got := empty.VerseCount(); got != 0 {
		t.Errorf("VerseCount() = %d, want 0", got)
	}
}
