package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"zeelore/pkg/lore"
)

// BrowserUI is the BubbleTea model that runs the entity browser.
// https://github.com/charmbracelet/bubbletea
type BrowserUI struct {
	world    *lore.World
	filter   textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	kindIdx  int
	selected int
	matches  []lore.Entity

	// detail holds the pretty rendering of the selected entity; empty
	// means list mode
	detail string
	status string
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // green
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewBrowserUI(world *lore.World) *BrowserUI {
	filter := textinput.New()
	filter.Placeholder = "Filter by name..."
	filter.Focus()

	ui := &BrowserUI{
		world:  world,
		filter: filter,
	}
	ui.refresh()
	return ui
}

func (ui *BrowserUI) Init() tea.Cmd {
	return textinput.Blink
}

func (ui *BrowserUI) refresh() {
	ui.matches = entities(ui.world, kinds[ui.kindIdx], ui.filter.Value())
	if ui.selected >= len(ui.matches) {
		ui.selected = 0
	}
}

func (ui *BrowserUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.height = msg.Height
		contentHeight := msg.Height - 4 // title, filter, status
		if !ui.ready {
			ui.viewport = viewport.New(msg.Width, contentHeight)
			ui.ready = true
		} else {
			ui.viewport.Width = msg.Width
			ui.viewport.Height = contentHeight
		}
		return ui, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if ui.detail != "" {
				ui.detail = ""
				return ui, nil
			}
			return ui, tea.Quit
		case "tab":
			ui.kindIdx = (ui.kindIdx + 1) % len(kinds)
			ui.selected = 0
			ui.detail = ""
			ui.refresh()
			return ui, nil
		case "up":
			if ui.detail == "" && ui.selected > 0 {
				ui.selected--
			}
		case "down":
			if ui.detail == "" && ui.selected < len(ui.matches)-1 {
				ui.selected++
			}
		case "enter":
			if e, ok := ui.selection(); ok {
				ui.detail = e.Pretty()
			}
			return ui, nil
		case "ctrl+w":
			if e, ok := ui.selection(); ok {
				if err := clipboard.WriteAll(e.WikiPage()); err != nil {
					ui.status = fmt.Sprintf("clipboard: %v", err)
				} else {
					ui.status = fmt.Sprintf("copied wiki page for %s", e.Name())
				}
			}
			return ui, nil
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	before := ui.filter.Value()
	ui.filter, cmd = ui.filter.Update(msg)
	cmds = append(cmds, cmd)
	if ui.filter.Value() != before {
		ui.selected = 0
		ui.detail = ""
		ui.refresh()
	}

	ui.viewport, cmd = ui.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return ui, tea.Batch(cmds...)
}

func (ui *BrowserUI) View() string {
	if !ui.ready {
		return "Loading..."
	}

	title := titleStyle.Render("zeelore") + "  " + ui.kindTabs()

	if ui.detail != "" {
		ui.viewport.SetContent(wordwrap.String(ui.detail, ui.width))
	} else {
		ui.viewport.SetContent(ui.listView())
	}

	status := ui.status
	if status == "" {
		status = fmt.Sprintf("%d matches | tab: kind | enter: detail | ctrl+w: copy wiki | esc: back/quit",
			len(ui.matches))
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		title,
		ui.filter.View(),
		ui.viewport.View(),
		statusStyle.Render(status))
}

func (ui *BrowserUI) kindTabs() string {
	parts := make([]string, len(kinds))
	for i, kind := range kinds {
		if i == ui.kindIdx {
			parts[i] = kindStyle.Render("[" + kind + "]")
		} else {
			parts[i] = kind
		}
	}
	return strings.Join(parts, " ")
}

func (ui *BrowserUI) listView() string {
	var b strings.Builder
	for i, e := range ui.matches {
		line := e.Bare()
		if i == ui.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (ui *BrowserUI) selection() (lore.Entity, bool) {
	if ui.selected < 0 || ui.selected >= len(ui.matches) {
		return nil, false
	}
	return ui.matches[ui.selected], true
}
