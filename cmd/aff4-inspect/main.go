// Command aff4-inspect is a read-only terminal browser for a single AFF4
// image stream: it loads the stream's attributes from a resolver, lists
// the bevies actually present in its volume, and renders both as a
// scrollable dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/aff4image/pkg/aff4"
	"github.com/dd0wney/aff4image/pkg/aff4resolver"
	"github.com/dd0wney/aff4image/pkg/aff4volume"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Quit key.Binding
	Up   key.Binding
	Down key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}

func (k keyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Up, k.Down, k.Quit} }
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Up, k.Down}, {k.Quit}} }

type model struct {
	stream     *aff4.Stream
	bevyTable  table.Model
	help       help.Model
	keys       keyMap
	width      int
	message    string
	messageErr bool
}

func initialModel(stream *aff4.Stream, bevies []aff4.BevyInfo) model {
	columns := []table.Column{
		{Title: "Bevy", Width: 8},
		{Title: "Chunks", Width: 10},
		{Title: "Data bytes", Width: 14},
		{Title: "Index bytes", Width: 14},
	}

	rows := make([]table.Row, 0, len(bevies))
	for _, b := range bevies {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", b.Number),
			fmt.Sprintf("%d", b.ChunkCount),
			fmt.Sprintf("%d", b.DataSize),
			fmt.Sprintf("%d", b.IndexSize),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	m := model{
		stream:    stream,
		bevyTable: t,
		help:      help.New(),
		keys:      keys,
	}
	if len(bevies) == 0 {
		m.message = "no bevies flushed yet for this stream"
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.bevyTable, cmd = m.bevyTable.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var s string

	s += titleStyle.Render(fmt.Sprintf("AFF4 Inspect — %s", m.stream.URN()))
	s += "\n\n"

	st := m.stream.Stats()
	statsContent := fmt.Sprintf(
		"Size:              %d\nChunk size:        %d\nChunks per segment: %d\nCompression:       %s\nBevy number:       %d\nDirty:             %v",
		st.Size, st.ChunkSize, st.ChunksPerSegment, st.Compression, st.BevyNumber, st.Dirty,
	)
	s += contentStyle.Render(statsBoxStyle.Render(statsContent))
	s += "\n\n"

	s += headerStyle.Render("Bevies")
	s += "\n\n"
	s += contentStyle.Render(m.bevyTable.View())

	if m.message != "" {
		s += "\n\n"
		if m.messageErr {
			s += errorStyle.Render("✗ " + m.message)
		} else {
			s += helpStyle.Render(m.message)
		}
	}

	s += "\n\n"
	s += helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))

	return s
}

func main() {
	volumePath := flag.String("volume", "", "Path to the zip volume containing the stream")
	urn := flag.String("urn", "", "URN of the stream to inspect")
	databaseURL := flag.String("db", "", "Postgres connection string for the attribute resolver (omit to use an in-memory resolver)")
	flag.Parse()

	if *volumePath == "" || *urn == "" {
		fmt.Fprintln(os.Stderr, "usage: aff4-inspect -volume <path> -urn <urn> [-db <postgres-url>]")
		os.Exit(2)
	}

	ctx := context.Background()

	volume, err := aff4volume.OpenZipVolume(*volumePath)
	if err != nil {
		log.Fatalf("open volume: %v", err)
	}
	defer volume.Close()

	resolver, closeResolver, err := openResolver(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("open resolver: %v", err)
	}
	defer closeResolver()

	stream, err := aff4.OpenImage(ctx, *urn, volume, resolver)
	if err != nil {
		log.Fatalf("open stream %s: %v", *urn, err)
	}

	bevies, err := stream.Bevies()
	if err != nil {
		log.Fatalf("list bevies: %v", err)
	}

	p := tea.NewProgram(initialModel(stream, bevies), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}
}

func openResolver(ctx context.Context, databaseURL string) (aff4resolver.Resolver, func(), error) {
	if databaseURL == "" {
		return aff4resolver.NewMemResolver(), func() {}, nil
	}
	pg, err := aff4resolver.NewPGResolver(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pg, func() { pg.Close() }, nil
}
