// Package tui implements the interactive merge screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sheetdiff/sheetdiff/internal/core/diff"
	"github.com/sheetdiff/sheetdiff/internal/core/merge"
	"github.com/sheetdiff/sheetdiff/internal/core/styles"
)

// MergeOptions configures the interactive merge screen.
type MergeOptions struct {
	OldName   string
	NewName   string
	Entries   []diff.Entry
	Groups    []merge.Group
	Decisions merge.Decisions // initial decisions, usually empty
	Inline    diff.InlineMode
}

// RunMerge runs the merge TUI and returns the collected decisions.
// The bool reports whether the user accepted the merge; on cancel the
// decisions must be discarded.
func RunMerge(opts MergeOptions) (merge.Decisions, bool, error) {
	if opts.Decisions == nil {
		opts.Decisions = merge.Decisions{}
	}

	m := newMergeModel(opts)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, false, fmt.Errorf("run merge ui: %w", err)
	}

	fm := final.(mergeModel)
	return fm.decisions, fm.accepted, nil
}

type mergeKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Choose1  key.Binding
	Choose2  key.Binding
	Choose3  key.Binding
	Preview  key.Binding
	Accept   key.Binding
	Cancel   key.Binding
	Help     key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
}

func (k mergeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Choose1, k.Preview, k.Accept, k.Cancel, k.Help}
}

func (k mergeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.ScrollUp, k.ScrollDn},
		{k.Choose1, k.Choose2, k.Choose3, k.Preview},
		{k.Accept, k.Cancel, k.Help},
	}
}

func defaultMergeKeyMap() mergeKeyMap {
	return mergeKeyMap{
		Next:     key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next group")),
		Prev:     key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "prev group")),
		Choose1:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "toggle decision")),
		Choose2:  key.NewBinding(key.WithKeys("2")),
		Choose3:  key.NewBinding(key.WithKeys("3")),
		Preview:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
		Accept:   key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "write merge")),
		Cancel:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "cancel")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		ScrollUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
	}
}

type mergeModel struct {
	opts      MergeOptions
	decisions merge.Decisions

	cursor   int // index into opts.Groups
	preview  bool
	accepted bool

	viewport viewport.Model
	help     help.Model
	keys     mergeKeyMap
	width    int
	height   int
	ready    bool
}

func newMergeModel(opts MergeOptions) mergeModel {
	return mergeModel{
		opts:      opts,
		decisions: opts.Decisions,
		help:      help.New(),
		keys:      defaultMergeKeyMap(),
	}
}

// Init implements tea.Model.
func (m mergeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m mergeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.content())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Accept):
			m.accepted = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if m.cursor < len(m.opts.Groups)-1 {
				m.cursor++
			}
			m.viewport.SetContent(m.content())
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if m.cursor > 0 {
				m.cursor--
			}
			m.viewport.SetContent(m.content())
			return m, nil

		case key.Matches(msg, m.keys.Choose1):
			m.toggle(0)
			return m, nil
		case key.Matches(msg, m.keys.Choose2):
			m.toggle(1)
			return m, nil
		case key.Matches(msg, m.keys.Choose3):
			m.toggle(2)
			return m, nil

		case key.Matches(msg, m.keys.Preview):
			m.preview = !m.preview
			m.viewport.SetContent(m.content())
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// toggle flips the nth valid decision for the group under the cursor.
func (m *mergeModel) toggle(n int) {
	if m.cursor >= len(m.opts.Groups) {
		return
	}
	g := m.opts.Groups[m.cursor]
	valid := merge.ValidDecisions(g.Kind)
	if n >= len(valid) {
		return
	}
	m.decisions.Toggle(g.ID, valid[n])
	m.viewport.SetContent(m.content())
}

// View implements tea.Model.
func (m mergeModel) View() string {
	if !m.ready {
		return "loading..."
	}

	title := fmt.Sprintf("merge: %s → %s", m.opts.OldName, m.opts.NewName)
	status := fmt.Sprintf("%d groups, %d decided", len(m.opts.Groups), len(m.decisions))
	header := styles.Header.Render(title) + "  " + styles.Muted.Render(status)

	return header + "\n\n" + m.viewport.View() + "\n" + m.help.View(m.keys)
}

func (m mergeModel) content() string {
	if m.preview {
		return m.previewContent()
	}
	return m.groupContent()
}

// groupContent renders the diff with group decision lines interleaved.
func (m mergeModel) groupContent() string {
	groupAt := make(map[int]int, len(m.opts.Entries)) // entry index -> group index
	for gi, g := range m.opts.Groups {
		for _, idx := range g.Members {
			groupAt[idx] = gi
		}
	}

	var b strings.Builder
	lastGroup := -1
	for i, e := range m.opts.Entries {
		if gi, ok := groupAt[i]; ok && gi != lastGroup {
			b.WriteString(m.groupHeader(gi))
			lastGroup = gi
		}
		if e.Kind == diff.KindUnchanged {
			lastGroup = -1
		}
		b.WriteString(m.entryLine(e))
	}

	return b.String()
}

func (m mergeModel) groupHeader(gi int) string {
	g := m.opts.Groups[gi]

	var parts []string
	for n, d := range merge.ValidDecisions(g.Kind) {
		label := fmt.Sprintf("[%d] %s", n+1, d)
		if m.decisions[g.ID] == d {
			label = styles.Accent.Render("●" + label[3:])
		} else {
			label = styles.Muted.Render(label)
		}
		parts = append(parts, label)
	}

	marker := "  "
	name := fmt.Sprintf("group %d (%s)", g.ID+1, g.Kind)
	if gi == m.cursor {
		marker = styles.Accent.Render("▶ ")
		name = styles.Header.Render(name)
	} else {
		name = styles.Muted.Render(name)
	}

	return fmt.Sprintf("%s%s  %s\n", marker, name, strings.Join(parts, " "))
}

func (m mergeModel) entryLine(e diff.Entry) string {
	switch e.Kind {
	case diff.KindRemoved:
		return "    " + styles.Removed.Render("- "+e.Left) + "\n"
	case diff.KindAdded:
		return "    " + styles.Added.Render("+ "+e.Right) + "\n"
	case diff.KindModified:
		oldSegs, newSegs := diff.Inline(e.Left, e.Right, m.opts.Inline)
		var b strings.Builder
		b.WriteString("    " + styles.Removed.Render("- "))
		for _, s := range oldSegs {
			if s.Changed {
				b.WriteString(styles.RemovedInline.Render(s.Text))
			} else {
				b.WriteString(styles.Removed.Render(s.Text))
			}
		}
		b.WriteString("\n    " + styles.Added.Render("+ "))
		for _, s := range newSegs {
			if s.Changed {
				b.WriteString(styles.AddedInline.Render(s.Text))
			} else {
				b.WriteString(styles.Added.Render(s.Text))
			}
		}
		b.WriteString("\n")
		return b.String()
	default:
		return "      " + e.Left + "\n"
	}
}

// previewContent renders the merged document as it stands.
func (m mergeModel) previewContent() string {
	lines := merge.Reconcile(m.opts.Entries, m.opts.Groups, m.decisions)

	var b strings.Builder
	b.WriteString(styles.Header.Render("preview") + "\n\n")
	for i, line := range lines {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("%4d ", i+1)))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

var _ tea.Model = mergeModel{}
