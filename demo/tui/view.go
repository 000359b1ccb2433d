package tui

import (
	"fmt"
	"strings"

	"scenescribe/session"
	"scenescribe/timescale"
	"scenescribe/types"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("SceneScribe :: " + m.projectName))
	b.WriteString("\n")
	b.WriteString(m.renderTransport())
	b.WriteString("\n\n")
	b.WriteString(m.renderTimeline())
	b.WriteString("\n\n")
	b.WriteString(m.renderTranscript())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTransport() string {
	state := "paused"
	if m.sync.Playing() {
		state = "playing"
	}
	line := fmt.Sprintf("%s  %s / %s  [%s]",
		m.videoName,
		timescale.FormatTimestamp(m.playheadMs()),
		timescale.FormatTimestamp(m.sess.DurationMs()),
		state)
	if m.sess.CanEncode() {
		line += "  " + SceneStyle.Render("ready to encode")
	}
	if active, ok := m.sync.ActiveScene(); ok {
		line += "  " + InfoStyle.Render("now: "+truncate(active.Description, 30))
	}
	return line
}

// renderTimeline draws the visible pixel window as one cell per 10px, with
// scene blocks, gaps, and the playhead.
func (m Model) renderTimeline() string {
	cols := m.viewportPx() / pxPerCell
	elements := m.sess.Elements()
	playheadPx := timescale.MsToPixels(m.playheadMs())

	var b strings.Builder
	for col := 0; col < cols; col++ {
		px := m.scrollLeft + col*pxPerCell
		cell := InfoStyle.Render("·")

		for i, el := range elements {
			if px >= el.Position && px < el.Position+el.Width {
				switch {
				case i == m.cursor:
					cell = SelectedStyle.Render("█")
				case el.IsTalking():
					cell = TalkingStyle.Render("▓")
				case m.sess.Selected(el.StartTime):
					cell = SelectedStyle.Render("▒")
				default:
					cell = SceneStyle.Render("█")
				}
				break
			}
		}

		if playheadPx >= px && playheadPx < px+pxPerCell {
			cell = PlayheadStyle.Render("|")
		}
		b.WriteString(cell)
	}

	ruler := fmt.Sprintf("%s%s", timescale.FormatTimestamp(timescale.PixelsToMs(m.scrollLeft)),
		strings.Repeat(" ", max(0, cols-24))+
			timescale.FormatTimestamp(timescale.PixelsToMs(m.scrollLeft+m.viewportPx())))
	return b.String() + "\n" + InfoStyle.Render(ruler)
}

// renderTranscript lists the scenes with pacing and state markers.
func (m Model) renderTranscript() string {
	elements := m.sess.Elements()
	if len(elements) == 0 {
		return InfoStyle.Render("no scenes yet, press 'a' to analyze the video")
	}

	var b strings.Builder
	for i, el := range elements {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}

		span := fmt.Sprintf("%s - %s", timescale.FormatTimestamp(el.StartTime), timescale.FormatTimestamp(el.EndTime))
		text := el.Text
		if m.editing && i == m.cursor {
			text = m.textBuffer + "▏"
		}

		line := fmt.Sprintf("%s%2d  %s  %s", marker, el.ID, span, truncate(text, 48))
		if el.IsTalking() {
			b.WriteString(TalkingStyle.Render(line))
			b.WriteString("\n")
			continue
		}

		var flags []string
		if el.IsEdited {
			flags = append(flags, "edited")
		}
		if el.AudioFile != "" {
			flags = append(flags, "audio")
		}
		if m.sess.Selected(el.StartTime) {
			flags = append(flags, "selected")
		}
		if len(flags) > 0 {
			line += "  [" + strings.Join(flags, ",") + "]"
		}

		if i == m.cursor {
			b.WriteString(SelectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("  ")
		b.WriteString(renderPace(el.Scene()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPace colors the words-per-minute readout by its band.
func renderPace(s types.Scene) string {
	wpm := session.WPM(s)
	label := fmt.Sprintf("%.0f wpm", wpm)
	switch session.PaceOf(wpm) {
	case session.PaceTooSlow:
		return PaceSlowStyle.Render(label + " (slow)")
	case session.PaceTooFast:
		return PaceFastStyle.Render(label + " (fast)")
	default:
		return PaceGoodStyle.Render(label)
	}
}

func (m Model) renderFooter() string {
	if m.err != nil {
		return ErrorStyle.Render("error: "+m.err.Error()) + "\n" + m.helpLine()
	}
	if m.editing {
		return InfoStyle.Render("editing: enter to commit, esc to cancel")
	}
	var b strings.Builder
	if m.busy || m.status != "" {
		status := m.status
		if m.busy && m.progress > 0 && m.progress < 100 {
			status = fmt.Sprintf("%s (%d%%)", status, m.progress)
		}
		b.WriteString(InfoStyle.Render(status))
		b.WriteString("\n")
	}
	if m.outputs.Video != "" {
		b.WriteString(BoxStyle.Render(fmt.Sprintf("video: %s\nsrt: %s\nmp3: %s",
			m.outputs.Video, m.outputs.SRT, m.outputs.MP3)))
		b.WriteString("\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) helpLine() string {
	return InfoStyle.Render("space play  ←/→ seek  j/k cursor  H/L move  [/] resize  + insert  e edit  d delete  x select  a analyze  r reanalyze  g audio  E encode  s save  q quit")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit-1] + "…"
}
