// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the interactive tutoring view.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tutor-tui/internal/actions"
	"github.com/jeranaias/tutor-tui/internal/catalog"
	"github.com/jeranaias/tutor-tui/internal/history"
	"github.com/jeranaias/tutor-tui/internal/model"
	"github.com/jeranaias/tutor-tui/internal/session"
	"github.com/jeranaias/tutor-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the tutoring view.
type Model struct {
	// Core state
	session *session.Session
	actions *actions.Controller
	catalog *catalog.Catalog

	// Model catalog, loaded once at startup
	models   []model.Descriptor
	modelIdx int

	// Optional local archive; nil disables persistence
	store   *history.Store
	storeID int64

	// Blocking-call budget for portal requests
	timeout time.Duration

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// Status line error, cleared on the next successful operation
	statusErr string

	quitting bool
}

// Options configures a chat model.
type Options struct {
	Session *session.Session
	Actions *actions.Controller
	Catalog *catalog.Catalog
	// Store enables the local history archive when non-nil.
	Store *history.Store
	// Timeout bounds each blocking portal call. Zero means a minute.
	Timeout time.Duration
}

// New creates the tutoring view.
func New(opts Options) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question..."
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(styles.Indigo)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	return Model{
		session: opts.Session,
		actions: opts.Actions,
		catalog: opts.Catalog,
		store:   opts.Store,
		timeout: timeout,
		input:   input,
		spinner: sp,
		keyMap:  DefaultKeyMap(),
	}
}

// Init opens the session and loads the model catalog.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.openCmd(m.session.StartOpen()),
	}
	if m.catalog != nil {
		cmds = append(cmds, m.loadModelsCmd())
	}
	return tea.Batch(cmds...)
}

// CurrentModelName returns the display name of the active model, or empty
// when the catalog has not loaded yet.
func (m Model) CurrentModelName() string {
	id := m.session.ModelID()
	for _, d := range m.models {
		if d.ID == id {
			return d.Name
		}
	}
	return ""
}

// nextActiveModel returns the next active descriptor after the current one,
// wrapping around. The bool is false when no other active model exists.
func (m Model) nextActiveModel() (model.Descriptor, bool) {
	active := catalog.Active(m.models)
	if len(active) < 2 {
		return model.Descriptor{}, false
	}
	cur := m.session.ModelID()
	for i, d := range active {
		if d.ID == cur {
			return active[(i+1)%len(active)], true
		}
	}
	return active[0], true
}
