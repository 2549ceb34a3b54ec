package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/crms/internal/education"
)

// topicItem adapts an education topic to list.DefaultItem.
type topicItem struct{ t education.Topic }

func (i topicItem) Title() string       { return i.t.Title }
func (i topicItem) Description() string { return i.t.Description }
func (i topicItem) FilterValue() string { return i.t.Title }

// Custom delegate: bold title line, muted description underneath
type topicDelegate struct{}

func (d topicDelegate) Height() int                               { return 2 }
func (d topicDelegate) Spacing() int                              { return 1 }
func (d topicDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d topicDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(topicItem)
	prefix := "  "
	title := it.Title()
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
		title = accentStyle.Bold(true).Render(title)
	}
	fmt.Fprintf(w, "%s%s\n  %s", prefix, title, mutedStyle.Render(it.Description()))
}

type learnState struct {
	list    list.Model
	page    viewport.Model
	reading bool
	current string // id of the open topic
}

func newLearnState(width, height int) learnState {
	topics := education.Topics()
	items := make([]list.Item, 0, len(topics))
	for _, t := range topics {
		items = append(items, topicItem{t: t})
	}
	l := list.New(items, topicDelegate{}, width, height-4)
	l.Title = "Learn the Creighton Model"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("topic", "topics")

	openBind := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	backBind := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{openBind, backBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{openBind, backBind} }

	return learnState{list: l, page: viewport.New(width, height-6)}
}

func (s *learnState) resize(width, height int) {
	s.list.SetSize(width-4, height-6)
	s.page.Width = width - 4
	s.page.Height = height - 8
}

func (a App) updateLearn(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := &a.learn
	var cmd tea.Cmd

	if s.reading {
		if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "esc" || km.String() == "q") {
			s.reading = false
			return a, nil
		}
		s.page, cmd = s.page.Update(msg)
		return a, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok && s.list.FilterState() != list.Filtering {
		switch km.String() {
		case "esc", "q":
			return a.goTo(viewDashboard), nil
		case "enter":
			it, ok := s.list.SelectedItem().(topicItem)
			if !ok {
				return a, nil
			}
			a.openTopic(it.t)
			return a, nil
		}
	}
	s.list, cmd = s.list.Update(msg)
	return a, cmd
}

func (a *App) openTopic(t education.Topic) {
	out, err := education.Render(t.Markdown(), a.learn.page.Width, a.style)
	if err != nil {
		a.log.Sugar().Warnw("render topic", "topic", t.ID, "err", err)
		out = t.Markdown()
	}
	a.learn.page.SetContent(out)
	a.learn.page.GotoTop()
	a.learn.current = t.ID
	a.learn.reading = true
}

func (a App) viewLearn() string {
	if a.learn.reading {
		return a.learn.page.View() + "\n" + helpLine("↑/↓", "scroll", "esc", "topics")
	}
	return a.learn.list.View()
}
