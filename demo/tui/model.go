package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"scenescribe/backend"
	"scenescribe/common"
	"scenescribe/playback"
	"scenescribe/session"
	"scenescribe/store"
	"scenescribe/timeline"
	"scenescribe/timescale"
	"scenescribe/types"
)

// pxPerCell is the timeline zoom: one terminal cell covers 10px (100ms).
const pxPerCell = 10

// Config wires the editor to its collaborators.
type Config struct {
	ProjectName string
	VideoName   string
	VideoPath   string
	DurationMs  int
	Scenes      []types.Scene
	BackendURL  string
	Projects    store.ProjectStore
	// Archiver copies finished exports to S3 when non-nil.
	Archiver *common.Archiver
}

// Model is the timeline editor state.
type Model struct {
	// Send lets streaming commands push progress into the running program.
	// Wired up by main before the program starts.
	Send func(tea.Msg)

	sess     *session.Session
	sync     *playback.Synchronizer
	clock    *transportClock
	gesture  *timeline.Controller
	client   *backend.Client
	projects store.ProjectStore
	archiver *common.Archiver

	projectName string
	videoName   string
	videoPath   string

	cursor     int // index into the element list
	editing    bool
	textBuffer string
	attached   map[int]bool // narration keyed by scene start

	scrollLeft    int
	width, height int

	busy     bool
	progress int
	status   string
	err      error
	outputs  types.OutputURLs
}

// NewModel creates the editor model.
func NewModel(cfg Config) Model {
	sess := session.New(cfg.Scenes, cfg.DurationMs, session.DefaultPolicy())
	clock := newTransportClock(timescale.MsToSeconds(cfg.DurationMs))
	sync := playback.NewSynchronizer(clock, sess.Scenes)

	m := Model{
		sess:        sess,
		sync:        sync,
		clock:       clock,
		gesture:     timeline.NewController(),
		client:      backend.NewClient(cfg.BackendURL),
		projects:    cfg.Projects,
		archiver:    cfg.Archiver,
		projectName: cfg.ProjectName,
		videoName:   cfg.VideoName,
		videoPath:   cfg.VideoPath,
		attached:    map[int]bool{},
		width:       80,
		height:      24,
	}
	m.resyncAudio()
	m.gesture.Refresh(sess.Containers())
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

// resyncAudio reattaches narration clips after the scene set changed. Scenes
// whose audio disappeared are detached; new audio gets a fresh clip.
func (m *Model) resyncAudio() {
	scenes := m.sess.Scenes()
	wanted := map[int]float64{}
	for _, s := range scenes {
		if s.AudioFile != "" && !s.IsTalking() {
			wanted[s.StartTime] = timescale.MsToSeconds(s.DurationMs())
		}
	}
	for start := range m.attached {
		if _, ok := wanted[start]; !ok {
			m.sync.Detach(start)
			delete(m.attached, start)
		}
	}
	for start, dur := range wanted {
		if !m.attached[start] {
			m.sync.Attach(start, newNarrationClip(dur))
			m.attached[start] = true
		}
	}
}

// afterMutation refreshes every projection that derives from the scene set.
func (m *Model) afterMutation() {
	m.gesture.Refresh(m.sess.Containers())
	m.resyncAudio()
	if n := len(m.sess.Elements()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
}

// cursorElement returns the element under the cursor.
func (m Model) cursorElement() (timeline.Element, bool) {
	elements := m.sess.Elements()
	if m.cursor < 0 || m.cursor >= len(elements) {
		return timeline.Element{}, false
	}
	return elements[m.cursor], true
}

// playheadMs is the transport position in milliseconds.
func (m Model) playheadMs() int {
	return timescale.SecondsToMs(m.clock.CurrentTime())
}

// viewportPx is the visible timeline extent in pixels.
func (m Model) viewportPx() int {
	cols := m.width - 2
	if cols < 10 {
		cols = 10
	}
	return cols * pxPerCell
}

// project snapshots the current state for persistence.
func (m Model) project() *types.Project {
	return &types.Project{
		Name:       m.projectName,
		VideoName:  m.videoName,
		Scenes:     m.sess.Scenes(),
		OutputURLs: m.outputs,
	}
}
