// Package app is the Bubble Tea shell around the studio orchestrator. It
// owns no session data: every frame is rendered from a snapshot of the
// orchestrator's Session.
package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"charm.land/bubbles/v2/filepicker"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/sketchlab/internal/config"
	"github.com/zhubert/sketchlab/internal/download"
	"github.com/zhubert/sketchlab/internal/generation"
	"github.com/zhubert/sketchlab/internal/imageref"
	"github.com/zhubert/sketchlab/internal/logger"
	"github.com/zhubert/sketchlab/internal/studio"
	"github.com/zhubert/sketchlab/internal/ui"
)

// overlay is a full-screen panel drawn over the active view.
type overlay int

const (
	overlayNone overlay = iota
	overlayPicker
	overlayLogs
	overlayInspector
)

// Model is the main application model
type Model struct {
	config  *config.Config
	version string

	client       *generation.Client
	generator    studio.Generator // overrides client when set
	orchestrator *studio.Orchestrator
	saver        *download.Saver

	header    *ui.Header
	footer    *ui.Footer
	modal     *ui.Modal
	gallery   *ui.Gallery
	spinner   ui.Spinner
	logViewer *ui.LogViewer
	inspector *ui.Inspector

	overlay   overlay
	picker    filepicker.Model
	pickerDir string

	// Selected sketch, submitted on enter
	sketch  *generation.Upload
	summary *ui.SketchSummary

	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time
	log    *slog.Logger

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithGenerator makes the model submit to gen instead of the HTTP client.
func WithGenerator(gen studio.Generator) Option {
	return func(m *Model) { m.generator = gen }
}

// WithClock overrides the time source used for results and the spinner.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// New creates a new app model
func New(cfg *config.Config, version string, opts ...Option) *Model {
	m := &Model{
		config:  cfg,
		version: version,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		modal:   ui.NewModal(),
		gallery: ui.NewGallery(),
		now:     time.Now,
		log:     logger.ComponentLogger("App"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())

	ui.SetDarkMode(cfg.GetDarkMode())

	m.client = newClient(cfg)
	refs := imageref.NewStore()
	m.orchestrator = studio.NewOrchestrator(m.activeGenerator(), refs,
		studio.WithClock(m.now),
		studio.WithDarkMode(cfg.GetDarkMode()))
	m.saver = download.NewSaver(cfg.GetDownloadDir(), refs, m.client)

	if wd, err := os.Getwd(); err == nil {
		m.pickerDir = wd
	}

	m.header.SetEndpoint(m.client.Endpoint())
	m.log.Info("app created", "version", version, "endpoint", m.client.Endpoint(), "downloads", m.saver.Dir())
	return m
}

func newClient(cfg *config.Config) *generation.Client {
	return generation.NewClient(cfg.GetEndpointURL(), generation.WithTimeout(cfg.GetRequestTimeout()))
}

func (m *Model) activeGenerator() studio.Generator {
	if m.generator != nil {
		return m.generator
	}
	return m.client
}

// Session returns the orchestrator's session.
func (m *Model) Session() *studio.Session {
	return m.orchestrator.Session()
}

// Close cancels any in-flight request. Late outcomes are discarded.
func (m *Model) Close() {
	m.orchestrator.Close()
	m.cancel()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if !m.config.HasSeenWelcome() {
		return func() tea.Msg { return StartupModalMsg{} }
	}
	return nil
}
