package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"scenescribe/config"
	"scenescribe/playback"
	"scenescribe/session"
	"scenescribe/timeline"
	"scenescribe/timescale"
	"scenescribe/types"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case FrameMsg:
		return m.handleFrame()
	case AnalysisProgressMsg:
		m.progress, m.status = msg.Progress, msg.Message
		return m, nil
	case AnalysisCompleteMsg:
		return m.handleAnalysisComplete(msg)
	case ReanalysisCompleteMsg:
		return m.handleReanalysisComplete(msg)
	case AudioRegeneratedMsg:
		return m.handleAudioRegenerated(msg)
	case EncodeCompleteMsg:
		return m.handleEncodeComplete(msg)
	case ExportsArchivedMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.status = fmt.Sprintf("archived %d exports", msg.Archived)
		}
		return m, nil
	case ProjectSavedMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.status = "project saved"
		}
		return m, nil
	case ProjectLoadedMsg:
		return m.handleProjectLoaded(msg)
	}
	return m, nil
}

// handleFrame advances the transport one frame while playing and keeps the
// viewport following the playhead.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if m.sync.Playing() {
		atEnd := m.clock.Advance(config.FrameInterval)
		m.sync.Tick()
		if atEnd {
			m.sync.SetPlaying(false)
		}

		playheadPx := timescale.MsToPixels(m.playheadMs())
		if target, ok := playback.ScrollTarget(playheadPx, m.scrollLeft, m.viewportPx()); ok {
			m.scrollLeft = playback.ScrollStep(m.scrollLeft, target)
		}
	}
	return m, frameTick()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.sync.PauseAll()
		return m, tea.Quit
	case " ":
		m.sync.SetPlaying(!m.sync.Playing())
		return m, nil
	case "left":
		m.seekBy(-1.0)
		return m, nil
	case "right":
		m.seekBy(1.0)
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.sess.Elements())-1 {
			m.cursor++
		}
		return m, nil
	case "H":
		m.nudge(-pxPerCell)
		return m, nil
	case "L":
		m.nudge(pxPerCell)
		return m, nil
	case "[":
		m.resizeEdge(timeline.ResizeLeft, -pxPerCell)
		return m, nil
	case "{":
		m.resizeEdge(timeline.ResizeLeft, pxPerCell)
		return m, nil
	case "]":
		m.resizeEdge(timeline.ResizeRight, pxPerCell)
		return m, nil
	case "}":
		m.resizeEdge(timeline.ResizeRight, -pxPerCell)
		return m, nil
	case "+":
		m.sess.Apply(session.InsertAt{CurrentTimeMs: m.playheadMs()})
		m.afterMutation()
		return m, nil
	case "e":
		if el, ok := m.cursorElement(); ok && !el.IsTalking() {
			m.editing = true
			m.textBuffer = el.Text
		}
		return m, nil
	case "d":
		if el, ok := m.cursorElement(); ok {
			m.sess.Apply(session.Remove{StartTime: el.StartTime})
			m.afterMutation()
		}
		return m, nil
	case "x":
		if el, ok := m.cursorElement(); ok {
			m.sess.Select(el.StartTime)
		}
		return m, nil
	case "a":
		if m.busy || m.videoPath == "" {
			return m, nil
		}
		m.busy, m.err = true, nil
		m.status = "analyzing video"
		return m, analyzeVideo(m.client, m.videoPath, m.progressFunc())
	case "r":
		ranges := m.sess.SelectedRanges()
		if m.busy || len(ranges) == 0 {
			return m, nil
		}
		m.busy, m.err = true, nil
		m.status = "reanalyzing selected scenes"
		return m, reanalyzeScenes(m.client, m.videoName, m.sess.Scenes(), ranges)
	case "g":
		ranges := m.sess.SelectedRanges()
		if m.busy || len(ranges) == 0 {
			return m, nil
		}
		m.busy, m.err = true, nil
		m.status = "regenerating narration"
		return m, regenerateAudio(m.client, m.videoName, ranges, m.progressFunc())
	case "E":
		if m.busy || !m.sess.CanEncode() {
			return m, nil
		}
		m.busy, m.err = true, nil
		m.status = "encoding"
		return m, encodeVideo(m.client, m.sess.Scenes(), m.videoName)
	case "s":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, saveProject(m.projects, m.project())
	case "o":
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, loadProject(m.projects, m.projectName)
	}
	return m, nil
}

// handleEditKey collects inline text input for the scene under the cursor.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if el, ok := m.cursorElement(); ok {
			m.sess.Apply(session.UpdateText{StartTime: el.StartTime, Text: m.textBuffer})
			m.afterMutation()
		}
		m.editing = false
		m.textBuffer = ""
	case tea.KeyEsc:
		m.editing = false
		m.textBuffer = ""
	case tea.KeyBackspace:
		if len(m.textBuffer) > 0 {
			m.textBuffer = m.textBuffer[:len(m.textBuffer)-1]
		}
	case tea.KeySpace:
		m.textBuffer += " "
	case tea.KeyRunes:
		m.textBuffer += string(msg.Runes)
	}
	return m, nil
}

// nudge moves the scene under the cursor by deltaPx through a full
// drag gesture, so the neighbor constraints apply at commit.
func (m *Model) nudge(deltaPx int) {
	el, ok := m.cursorElement()
	if !ok {
		return
	}
	container, ok := timeline.ContainerFor(m.sess.Containers(), el.ID)
	if !ok || !m.gesture.BeginDrag(el, container) {
		return
	}
	m.gesture.Drag(deltaPx)
	if commit, ok := m.gesture.EndDrag(); ok {
		m.sess.CommitInteraction(commit)
		m.afterMutation()
	}
}

// resizeEdge grows or shrinks one edge of the scene under the cursor.
func (m *Model) resizeEdge(dir timeline.ResizeDirection, deltaPx int) {
	el, ok := m.cursorElement()
	if !ok {
		return
	}
	container, ok := timeline.ContainerFor(m.sess.Containers(), el.ID)
	if !ok || !m.gesture.BeginResize(el, container, dir) {
		return
	}
	if commit, ok := m.gesture.Resize(deltaPx); ok {
		m.sess.CommitInteraction(commit)
	}
	m.gesture.EndResize()
	m.afterMutation()
}

func (m *Model) seekBy(deltaSec float64) {
	m.sync.SeekTo(m.clock.CurrentTime() + deltaSec)
}

// progressFunc bridges streaming callbacks into program messages.
func (m Model) progressFunc() func(int, string) {
	send := m.Send
	return func(progress int, message string) {
		if send != nil {
			send(AnalysisProgressMsg{Progress: progress, Message: message})
		}
	}
}

func (m Model) handleAnalysisComplete(msg AnalysisCompleteMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	scenes, err := types.ScenesFromAnalysis(msg.Data)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.sess.Apply(session.ReplaceAll{Scenes: scenes})
	m.afterMutation()
	m.progress, m.status = 100, fmt.Sprintf("analysis complete: %d scenes", len(scenes))
	return m, nil
}

func (m Model) handleReanalysisComplete(msg ReanalysisCompleteMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	m.sess.Apply(session.MergeReanalysis{Replacements: msg.Scenes})
	m.afterMutation()
	m.status = "reanalysis merged"
	return m, nil
}

func (m Model) handleAudioRegenerated(msg AudioRegeneratedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	m.sess.Apply(session.SpliceAudio{Splices: msg.Splices})
	m.afterMutation()
	m.status = fmt.Sprintf("narration updated for %d scenes", len(msg.Splices))
	return m, nil
}

func (m Model) handleEncodeComplete(msg EncodeCompleteMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	m.outputs = *msg.URLs
	m.status = "encode finished"
	if m.archiver != nil {
		m.busy = true
		m.status = "archiving exports"
		return m, archiveExports(m.client, m.archiver, m.projectName, m.outputs)
	}
	return m, nil
}

func (m Model) handleProjectLoaded(msg ProjectLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.err = msg.Err
		return m, nil
	}
	m.videoName = msg.Project.VideoName
	m.outputs = msg.Project.OutputURLs
	m.sess.Apply(session.ReplaceAll{Scenes: msg.Project.Scenes})
	m.afterMutation()
	m.status = "project loaded"
	return m, nil
}
