package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bandsite/internal/pages"
	"github.com/desertthunder/bandsite/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	AlbumListView ViewState = iota
	AlbumDetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	engine    *pages.Engine
	width     int
	height    int
	albumList list.Model
	albums    []services.Album
	trackList list.Model
	selected  *pages.AlbumDetailData
	err       error
	help      help.Model
	keys      keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.quit},
	}
}

// albumItem wraps [services.Album] to implement list.Item.
type albumItem struct {
	album services.Album
}

func (i albumItem) FilterValue() string { return i.album.Metadata.Title }
func (i albumItem) Title() string       { return i.album.Metadata.Title }
func (i albumItem) Description() string {
	desc := i.album.Metadata.ReleaseDate
	if i.album.Metadata.RecordLabel != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.album.Metadata.RecordLabel)
	}
	return desc
}

// trackItem wraps a track listing entry to implement list.Item.
type trackItem struct {
	title  string
	detail string
}

func (i trackItem) FilterValue() string { return i.title }
func (i trackItem) Title() string       { return i.title }
func (i trackItem) Description() string { return i.detail }

type albumsFetchedMsg struct {
	albums []services.Album
	err    error
}

type detailFetchedMsg struct {
	detail *pages.AlbumDetailData
	err    error
}

// NewModel creates a new TUI model with the provided page engine.
func NewModel(ctx context.Context, engine *pages.Engine) *Model {
	return &Model{
		ctx:    ctx,
		view:   AlbumListView,
		engine: engine,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init initializes the TUI by fetching the discography.
func (m *Model) Init() tea.Cmd {
	return m.fetchAlbums()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.albumList.Width() == 0 {
			m.albumList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.trackList.Width() == 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case AlbumListView:
			return m.handleAlbumListKeys(msg)
		case AlbumDetailView:
			return m.handleDetailKeys(msg)
		}

	case albumsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.albums = msg.albums
		items := make([]list.Item, len(msg.albums))
		for i, album := range msg.albums {
			items[i] = albumItem{album: album}
		}
		m.albumList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.albumList.Title = "Discography"
		m.albumList.SetSize(m.width-4, m.height-8)
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = AlbumListView
			return m, nil
		}
		m.selected = msg.detail
		items := detailItems(msg.detail)
		m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.trackList.Title = fmt.Sprintf("Tracks on '%s'", msg.detail.Album.Metadata.Title)
		m.trackList.SetSize(m.width-4, m.height-8)
		m.view = AlbumDetailView
		return m, nil
	}

	return m.updateLists(msg)
}

// detailItems merges the album's own track listing with the streaming
// matches, preferring the richer streaming records when present.
func detailItems(detail *pages.AlbumDetailData) []list.Item {
	if len(detail.Tracks) > 0 {
		items := make([]list.Item, len(detail.Tracks))
		for i, track := range detail.Tracks {
			items[i] = trackItem{title: track.Title, detail: fmt.Sprintf("%s • %s", track.Artist, track.Duration)}
		}
		return items
	}

	items := make([]list.Item, len(detail.Album.Metadata.TrackListing))
	for i, entry := range detail.Album.Metadata.TrackListing {
		items[i] = trackItem{title: entry.Title, detail: entry.Length}
	}
	return items
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case AlbumListView:
		return m.renderAlbumList()
	case AlbumDetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleAlbumListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.albumList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(albumItem); ok {
				return m, m.fetchDetail(item.album.Slug)
			}
		}
	}

	var cmd tea.Cmd
	m.albumList, cmd = m.albumList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = AlbumListView
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case AlbumListView:
		m.albumList, cmd = m.albumList.Update(msg)
	case AlbumDetailView:
		m.trackList, cmd = m.trackList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchAlbums() tea.Cmd {
	return func() tea.Msg {
		data, err := m.engine.Music(m.ctx)
		if err != nil {
			return albumsFetchedMsg{err: err}
		}
		return albumsFetchedMsg{albums: data.Albums}
	}
}

func (m *Model) fetchDetail(slug string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.engine.AlbumDetail(m.ctx, slug)
		return detailFetchedMsg{detail: detail, err: err}
	}
}

func (m *Model) renderAlbumList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.albumList.View(), helpView)
}

func (m *Model) renderDetail() string {
	meta := m.selected.Album.Metadata
	header := styles.title.Render(fmt.Sprintf("%s (%s)", meta.Title, meta.ReleaseDate))

	var footer string
	if meta.Producer != "" {
		footer = styles.help.Render(fmt.Sprintf("Produced by %s", meta.Producer))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", header, m.trackList.View(), footer, helpView)
}
