package main

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"chronicle-globe/internal/content"
	"chronicle-globe/internal/view"
)

func testEras() []content.Era {
	return []content.Era{
		{ID: "e1", Name: "First", Topics: []content.Topic{{ID: "t1", Title: "One"}, {ID: "t2", Title: "Two"}}},
		{ID: "e2", Name: "Second", Topics: []content.Topic{{ID: "t3", Title: "Three"}}},
	}
}

func TestPanelRows(t *testing.T) {
	p := NewPanel()
	p.SetStories([]content.Story{{ID: "s", Title: "Tour", Topics: []string{"t1"}}})
	p.SetTimeline(testEras())

	want := []timelineRow{
		{Kind: rowStory, ID: "s", Label: "Tour"},
		{Kind: rowEra, ID: "e1", Label: "First"},
		{Kind: rowTopic, ID: "t1", Label: "One"},
		{Kind: rowTopic, ID: "t2", Label: "Two"},
		{Kind: rowEra, ID: "e2", Label: "Second"},
		{Kind: rowTopic, ID: "t3", Label: "Three"},
	}
	if len(p.rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(p.rows))
	}
	for i := range want {
		if p.rows[i] != want[i] {
			t.Errorf("Row %d: expected %+v, got %+v", i, want[i], p.rows[i])
		}
	}
}

func TestPanelCursorClamps(t *testing.T) {
	p := NewPanel()
	p.SetTimeline(testEras())

	p.MoveCursor(-3)
	if row, _ := p.Selected(); row.ID != "e1" {
		t.Errorf("Expected first row, got %q", row.ID)
	}
	p.MoveCursor(100)
	if row, _ := p.Selected(); row.ID != "t3" {
		t.Errorf("Expected last row, got %q", row.ID)
	}

	empty := NewPanel()
	empty.MoveCursor(1)
	if _, ok := empty.Selected(); ok {
		t.Error("Empty panel should have no selection")
	}
}

func TestShowTopicMovesCursor(t *testing.T) {
	p := NewPanel()
	p.SetTimeline(testEras())
	p.ShowTopic(content.Topic{ID: "t3", Title: "Three"})

	if row, _ := p.Selected(); row.ID != "t3" {
		t.Errorf("Expected cursor on t3, got %q", row.ID)
	}
	if !p.TopicOpen() {
		t.Error("Expected topic open")
	}
	p.ClearTopic()
	if p.TopicOpen() {
		t.Error("Expected topic closed")
	}
}

func TestPanelLinesFitBox(t *testing.T) {
	p := NewPanel()
	p.SetTimeline(testEras())
	p.ShowTopic(content.Topic{
		ID:        "t1",
		Title:     "A rather long title that will not fit in the panel",
		DateRange: "1000-2000",
		Content:   "<p>" + strings.Repeat("word ", 200) + "</p><p>Supercalifragilisticexpialidocious-and-then-some</p>",
	})

	lines := p.Lines(20, 12)
	if len(lines) != 12 {
		t.Fatalf("Expected 12 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if w := runewidth.StringWidth(l.Text); w > 20 {
			t.Errorf("Line %d is %d cells wide: %q", i, w, l.Text)
		}
	}
	if lines[0].Style != styleHeading {
		t.Error("Expected title heading first")
	}
	if !strings.Contains(lines[len(lines)-1].Text, "Scroll") {
		t.Errorf("Expected scroll hint, got %q", lines[len(lines)-1].Text)
	}
}

func TestPanelScrollClamps(t *testing.T) {
	p := NewPanel()
	p.ShowTopic(content.Topic{ID: "t", Title: "T", Content: "one two three"})
	p.Scroll(50)
	lines := p.Lines(40, 10)
	if !strings.Contains(lines[2].Text, "one two three") {
		t.Errorf("Expected content visible after over-scroll, got %q", lines[2].Text)
	}
	p.Scroll(-100)
	if p.scroll != 0 {
		t.Errorf("Expected scroll clamped to 0, got %d", p.scroll)
	}
}

func TestPanelStoryBar(t *testing.T) {
	p := NewPanel()
	p.SetTimeline(testEras())
	p.SetStory(view.StoryStatus{Active: true, Title: "Tour", Progress: "Step 1 of 3", Total: 3, CanNext: true})
	p.SetTimelineEnabled(false)

	lines := p.Lines(40, 15)
	bar := lines[len(lines)-2].Text
	if !strings.Contains(bar, "Step 1 of 3") || !strings.Contains(bar, "Next") {
		t.Errorf("Unexpected story bar %q", bar)
	}
	if strings.Contains(bar, "Prev") {
		t.Errorf("Prev should be disabled at step 1: %q", bar)
	}
	if !strings.Contains(lines[0].Text, "story in progress") {
		t.Errorf("Expected disabled timeline title, got %q", lines[0].Text)
	}
	for _, l := range lines[2:5] {
		if l.Style != styleDim {
			t.Errorf("Expected dimmed rows while disabled, got %v for %q", l.Style, l.Text)
		}
	}
}

func TestPanelEmptyStoryStep(t *testing.T) {
	p := NewPanel()
	p.SetTimeline(testEras())
	p.SetStory(view.StoryStatus{Active: true, Title: "Tour", Progress: "Step 2 of 3"})
	p.ClearTopic()

	lines := p.Lines(40, 12)
	if !strings.Contains(lines[0].Text, "Nothing to show") {
		t.Errorf("Expected empty step message, got %q", lines[0].Text)
	}
}

func TestPanelError(t *testing.T) {
	p := NewPanel()
	p.ShowError("Could not load content: boom")
	lines := p.Lines(30, 10)
	if lines[0].Style != styleError {
		t.Error("Expected error heading")
	}
	found := false
	for _, l := range lines {
		if strings.Contains(l.Text, "boom") {
			found = true
		}
	}
	if !found {
		t.Error("Expected error message in panel")
	}
}

func TestPanelTimelineFollowsCursor(t *testing.T) {
	p := NewPanel()
	p.SetTimeline(testEras())
	p.MoveCursor(5)

	// two header lines leave room for three rows
	lines := p.Lines(30, 5)
	last := lines[len(lines)-1]
	if last.Style != styleCursor || !strings.Contains(last.Text, "Three") {
		t.Errorf("Expected cursor row visible at bottom, got %+v", last)
	}
}
