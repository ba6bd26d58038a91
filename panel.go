package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"chronicle-globe/internal/content"
	"chronicle-globe/internal/view"
)

type lineStyle uint8

const (
	styleText lineStyle = iota
	styleHeading
	styleAccent
	styleDim
	styleSeparator
	styleError
	styleCursor
)

type panelLine struct {
	Text  string
	Style lineStyle
}

type rowKind uint8

const (
	rowStory rowKind = iota
	rowEra
	rowTopic
)

type timelineRow struct {
	Kind  rowKind
	ID    string
	Label string
}

// Panel is the right-hand column: the timeline selector, the topic info
// view and the story bar. It implements view.Panel and only keeps what it
// needs to draw.
type Panel struct {
	rows            []timelineRow
	stories         []content.Story
	eras            []content.Era
	cursor          int
	timelineEnabled bool

	topic     content.Topic
	topicOpen bool
	scroll    int

	story  view.StoryStatus
	errMsg string
}

var _ view.Panel = (*Panel)(nil)

func NewPanel() *Panel {
	return &Panel{timelineEnabled: true}
}

func (p *Panel) SetTimeline(eras []content.Era) {
	p.eras = eras
	p.rebuildRows()
}

// SetStories lists predefined tours above the eras.
func (p *Panel) SetStories(stories []content.Story) {
	p.stories = stories
	p.rebuildRows()
}

func (p *Panel) rebuildRows() {
	p.rows = p.rows[:0]
	for _, s := range p.stories {
		p.rows = append(p.rows, timelineRow{Kind: rowStory, ID: s.ID, Label: s.Title})
	}
	for _, era := range p.eras {
		p.rows = append(p.rows, timelineRow{Kind: rowEra, ID: era.ID, Label: era.Name})
		for _, t := range era.Topics {
			p.rows = append(p.rows, timelineRow{Kind: rowTopic, ID: t.ID, Label: t.Title})
		}
	}
	if p.cursor >= len(p.rows) {
		p.cursor = 0
	}
}

func (p *Panel) SetTimelineEnabled(enabled bool) { p.timelineEnabled = enabled }

func (p *Panel) TimelineEnabled() bool { return p.timelineEnabled }

func (p *Panel) ShowTopic(t content.Topic) {
	p.topic = t
	p.topicOpen = true
	p.scroll = 0
	for i, row := range p.rows {
		if row.Kind == rowTopic && row.ID == t.ID {
			p.cursor = i
			break
		}
	}
}

func (p *Panel) ClearTopic() {
	p.topic = content.Topic{}
	p.topicOpen = false
	p.scroll = 0
}

func (p *Panel) SetStory(s view.StoryStatus) { p.story = s }

func (p *Panel) ShowError(msg string) { p.errMsg = msg }

func (p *Panel) TopicOpen() bool { return p.topicOpen }

// MoveCursor moves the timeline cursor, clamped to the list.
func (p *Panel) MoveCursor(delta int) {
	if len(p.rows) == 0 {
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.rows) {
		p.cursor = len(p.rows) - 1
	}
}

// Selected is the row under the cursor.
func (p *Panel) Selected() (timelineRow, bool) {
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return timelineRow{}, false
	}
	return p.rows[p.cursor], true
}

// Scroll moves the topic text; Lines clamps it to the content.
func (p *Panel) Scroll(delta int) {
	p.scroll += delta
	if p.scroll < 0 {
		p.scroll = 0
	}
}

// Lines lays the panel out into at most height lines of at most width cells.
func (p *Panel) Lines(width, height int) []panelLine {
	if width <= 0 || height <= 0 {
		return nil
	}

	var footer []panelLine
	if p.story.Active {
		footer = p.storyBar(width)
	}
	bodyHeight := height - len(footer)
	if bodyHeight < 0 {
		bodyHeight = 0
	}

	var body []panelLine
	switch {
	case p.errMsg != "":
		body = p.errorLines(width)
	case p.topicOpen:
		body = p.topicLines(width, bodyHeight)
	case p.story.Active:
		body = []panelLine{{Text: fit("Nothing to show for this step", width), Style: styleDim}}
	default:
		body = p.timelineLines(width, bodyHeight)
	}
	if len(body) > bodyHeight {
		body = body[:bodyHeight]
	}
	for len(body) < bodyHeight {
		body = append(body, panelLine{})
	}
	return append(body, footer...)
}

func (p *Panel) errorLines(width int) []panelLine {
	lines := []panelLine{
		{Text: fit("CONTENT UNAVAILABLE", width), Style: styleError},
		{Text: strings.Repeat("─", width), Style: styleSeparator},
	}
	for _, l := range wrap(p.errMsg, width) {
		lines = append(lines, panelLine{Text: l, Style: styleError})
	}
	lines = append(lines, panelLine{}, panelLine{Text: fit("Press q to quit", width), Style: styleDim})
	return lines
}

func (p *Panel) topicLines(width, height int) []panelLine {
	lines := []panelLine{{Text: fit(p.topic.Title, width), Style: styleHeading}}
	if p.topic.DateRange != "" {
		lines = append(lines, panelLine{Text: fit(p.topic.DateRange, width), Style: styleAccent})
	}
	lines = append(lines, panelLine{Text: strings.Repeat("─", width), Style: styleSeparator})

	text := wrap(p.topic.PlainContent(), width)
	room := height - len(lines) - 1
	if room < 1 {
		room = 1
	}
	maxScroll := len(text) - room
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}
	end := p.scroll + room
	if end > len(text) {
		end = len(text)
	}
	for _, l := range text[p.scroll:end] {
		lines = append(lines, panelLine{Text: l})
	}
	for len(lines) < height-1 {
		lines = append(lines, panelLine{})
	}
	hint := "Esc:Back"
	if maxScroll > 0 {
		hint += " ↑↓:Scroll"
	}
	return append(lines, panelLine{Text: fit(hint, width), Style: styleDim})
}

func (p *Panel) timelineLines(width, height int) []panelLine {
	title := "TIMELINE"
	if !p.timelineEnabled {
		title += " (story in progress)"
	}
	lines := []panelLine{
		{Text: fit(title, width), Style: styleHeading},
		{Text: strings.Repeat("─", width), Style: styleSeparator},
	}
	if len(p.rows) == 0 {
		return append(lines, panelLine{Text: fit("No eras to show", width), Style: styleDim})
	}

	room := height - len(lines)
	if room < 1 {
		return lines
	}
	start := 0
	if p.cursor >= room {
		start = p.cursor - room + 1
	}
	end := start + room
	if end > len(p.rows) {
		end = len(p.rows)
	}
	for i := start; i < end; i++ {
		row := p.rows[i]
		var label string
		style := styleText
		switch row.Kind {
		case rowStory:
			label = "▶ " + row.Label
			style = styleAccent
		case rowEra:
			label = row.Label
			style = styleHeading
		default:
			label = "  " + row.Label
		}
		prefix := "  "
		if i == p.cursor {
			prefix = "> "
			style = styleCursor
		}
		if !p.timelineEnabled {
			style = styleDim
		}
		lines = append(lines, panelLine{Text: fit(prefix+label, width), Style: style})
	}
	return lines
}

func (p *Panel) storyBar(width int) []panelLine {
	prev, next := "       ", "       "
	if p.story.CanPrevious {
		prev = "◀ p:Prev"
	}
	if p.story.CanNext {
		next = "n:Next ▶"
	}
	return []panelLine{
		{Text: strings.Repeat("─", width), Style: styleSeparator},
		{Text: fit(p.story.Title, width), Style: styleHeading},
		{Text: fit(prev+"  "+p.story.Progress+"  "+next, width), Style: styleAccent},
		{Text: fit("x:End story", width), Style: styleDim},
	}
}

// wrap word-wraps text and hard-truncates words longer than width.
func wrap(text string, width int) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, l := range strings.Split(wordwrap.String(text, width), "\n") {
		out = append(out, fit(l, width))
	}
	return out
}

func fit(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
