// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/cybrota/avlbench/bench"
)

const exploreHelpMarkdown = `# Commands

| command | effect |
|---|---|
| ` + "`insert K...`" + ` | insert keys (duplicates allowed) |
| ` + "`delete K...`" + ` | delete one occurrence of each key |
| ` + "`search K...`" + ` | report whether each key is present |
| ` + "`clear`" + ` | start over with an empty tree |
| ` + "`validate`" + ` | check ordering, heights and balance |
| ` + "`view text\\|outline`" + ` | switch the tree drawing |
| ` + "`copy`" + ` | copy the tree as Graphviz DOT |
| ` + "`help`" + ` | toggle this panel |
| ` + "`quit`" + ` | leave |

Keys are 64-bit signed integers.
`

// Styles holds all the styling for the explorer
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	Stats          lipgloss.Style
	HelpKey        lipgloss.Style
	HelpDesc       lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

func NewStyles() *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Padding(0, 1).
			Bold(true),
		Stats: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
	}
}

// historyItem is one executed command in the history list.
type historyItem struct {
	command string
	result  string
}

func (i historyItem) FilterValue() string { return i.command }
func (i historyItem) Title() string       { return i.command }
func (i historyItem) Description() string { return i.result }

// exploreModel is the Bubble Tea state of the explore command.
type exploreModel struct {
	session *explorer
	ready   bool

	input        textinput.Model
	treeViewport viewport.Model
	helpViewport viewport.Model
	history      list.Model

	showHelp bool
	status   string
	failed   bool

	styles          *Styles
	glamourRenderer *glamour.TermRenderer

	width  int
	height int
}

func newExploreModel(session *explorer) exploreModel {
	ti := textinput.New()
	ti.Placeholder = "insert 5 3 8"
	ti.Prompt = "avl> "
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	history := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	history.SetShowTitle(false)
	history.SetShowHelp(false)
	history.SetFilteringEnabled(false)
	history.SetShowStatusBar(false)

	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)

	m := exploreModel{
		session:         session,
		input:           ti,
		treeViewport:    viewport.New(0, 0),
		helpViewport:    viewport.New(0, 0),
		history:         history,
		status:          "type help for commands",
		styles:          NewStyles(),
		glamourRenderer: glamourRenderer,
	}
	m.refreshTree()
	m.refreshHelp()
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f1":
			m.showHelp = !m.showHelp
			m.updateLayout()
			return m, nil
		case "pgup", "pgdown", "ctrl+up", "ctrl+down":
			var cmd tea.Cmd
			m.treeViewport, cmd = m.treeViewport.Update(msg)
			return m, cmd
		case "up", "down":
			// Recall earlier commands into the input
			var cmd tea.Cmd
			m.history, cmd = m.history.Update(msg)
			if item, ok := m.history.SelectedItem().(historyItem); ok {
				m.input.SetValue(item.command)
				m.input.CursorEnd()
			}
			return m, cmd
		case "enter":
			return m.runLine(m.input.Value())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m exploreModel) runLine(line string) (tea.Model, tea.Cmd) {
	line = strings.TrimSpace(line)
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}

	out := m.session.execute(line)
	if out.Quit {
		return m, tea.Quit
	}
	if out.ShowHelp {
		m.showHelp = !m.showHelp
		m.updateLayout()
	}

	m.failed = out.Err != nil
	switch {
	case out.Err != nil:
		m.status = out.Err.Error()
	case out.Status != "":
		m.status = out.Status
	}
	if out.Changed {
		m.refreshTree()
	}

	items := append([]list.Item{historyItem{command: line, result: m.status}}, m.history.Items()...)
	m.history.SetItems(items)
	m.history.ResetSelected()
	return m, nil
}

func (m *exploreModel) refreshTree() {
	m.treeViewport.SetContent(m.session.view(true))
}

func (m *exploreModel) refreshHelp() {
	if m.glamourRenderer != nil {
		if rendered, err := m.glamourRenderer.Render(exploreHelpMarkdown); err == nil {
			m.helpViewport.SetContent(rendered)
			return
		}
	}
	m.helpViewport.SetContent(exploreHelpMarkdown)
}

// updateLayout updates component dimensions
func (m *exploreModel) updateLayout() {
	inputHeight := 3
	bodyHeight := max(m.height-inputHeight-8, 3)
	leftWidth := m.width * 6 / 10
	if !m.showHelp {
		leftWidth = m.width * 7 / 10
	}
	rightWidth := max(m.width-leftWidth-4, 10)

	m.input.Width = max(m.width-8, 10)
	m.treeViewport.Width = max(leftWidth-2, 10)
	m.treeViewport.Height = bodyHeight
	m.helpViewport.Width = rightWidth - 2
	m.helpViewport.Height = bodyHeight
	m.history.SetSize(rightWidth-2, bodyHeight-1)
}

func (m exploreModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Terminal too small. Please resize your terminal."
	}

	leftWidth := m.treeViewport.Width + 2
	rightWidth := m.helpViewport.Width + 2

	treeBox := m.styles.BorderFocused.
		Width(leftWidth).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.Title.Render(" 🌳 Tree "),
			m.styles.Stats.Render(m.session.stats()),
			m.treeViewport.View(),
		))

	var side string
	if m.showHelp {
		side = m.styles.BorderBlurred.
			Width(rightWidth).
			Render(lipgloss.JoinVertical(
				lipgloss.Left,
				m.styles.Title.Render(" 📖 Help "),
				m.helpViewport.View(),
			))
	} else {
		side = m.styles.BorderBlurred.
			Width(rightWidth).
			Render(lipgloss.JoinVertical(
				lipgloss.Left,
				m.styles.Title.Render(" 📋 History "),
				m.history.View(),
			))
	}

	statusStyle := m.styles.SuccessMessage
	if m.failed {
		statusStyle = m.styles.ErrorMessage
	}
	inputBox := m.styles.BorderFocused.
		Width(m.width - 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			m.input.View(),
			statusStyle.Render(m.status),
		))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, treeBox, side),
		inputBox,
		m.renderKeyHelp(),
	)
}

// renderKeyHelp renders the key binding footer
func (m exploreModel) renderKeyHelp() string {
	keys := []string{"enter", "up/down", "pgup/pgdown", "f1", "esc"}
	descs := []string{"run command", "recall command", "scroll tree", "toggle help", "quit"}

	entries := make([]string, len(keys))
	for i, key := range keys {
		entries[i] = fmt.Sprintf("%s %s", m.styles.HelpKey.Render(key), m.styles.HelpDesc.Render(descs[i]))
	}
	return lipgloss.NewStyle().
		Padding(0, 0, 0, 2).
		Render(strings.Join(entries, " • "))
}

// runExplore starts the explorer with keys already inserted.
func runExplore(variant bench.Variant, keys []int64) error {
	session := newExplorer(variant, clipboard.WriteAll)
	if err := insertAll(session.tree, keys); err != nil {
		return err
	}

	program := tea.NewProgram(
		newExploreModel(session),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}
