package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todo-api/domain/dto"
	"todo-api/domain/models"
)

type appState int

const (
	stateList appState = iota
	stateAdd
	stateAddSub
	stateConfirm
	stateStats
)

const requestTimeout = 10 * time.Second

// listPageSize is how many tasks one fetch pulls in.
const listPageSize = 100

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	statStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
)

type extraKeyMap struct {
	Add     key.Binding
	SubAdd  key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Filter  key.Binding
	Stats   key.Binding
	Refresh key.Binding
	Save    key.Binding
	Cancel  key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		SubAdd: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sub-task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "status filter"),
		),
		Stats: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "stats"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// statusFilters cycles "" (all) -> pending -> in_progress -> completed.
var statusFilters = []string{"", models.StatusPending, models.StatusInProgress, models.StatusCompleted}

type model struct {
	state       appState
	list        list.Model
	input       textinput.Model
	client      *APIClient
	keys        extraKeyMap
	filterIndex int
	stats       *dto.TaskStatsResponse
	loading     bool
	err         error
	width       int
	height      int
}

type tasksLoadedMsg []dto.TaskResponse
type taskSavedMsg dto.TaskResponse
type taskDeletedMsg string
type statsLoadedMsg dto.TaskStatsResponse
type errMsg struct{ error }

func newModel(client *APIClient) model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 60

	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "tasks"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.SubAdd, keys.Toggle, keys.Delete, keys.Filter, keys.Stats}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.SubAdd, keys.Toggle, keys.Delete, keys.Filter, keys.Stats, keys.Refresh}
	}

	return model{
		state:   stateList,
		list:    l,
		input:   ti,
		client:  client,
		keys:    keys,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadTasks
}

func (m model) loadTasks() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	tasks, _, err := m.client.ListTasks(ctx, 1, listPageSize, statusFilters[m.filterIndex])
	if err != nil {
		return errMsg{err}
	}
	return tasksLoadedMsg(tasks)
}

func (m model) loadStats() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	stats, err := m.client.GetStats(ctx)
	if err != nil {
		return errMsg{err}
	}
	return statsLoadedMsg(stats)
}

func (m model) createTask(title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		task, err := m.client.CreateTask(ctx, dto.CreateTaskRequest{Title: title})
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg(task)
	}
}

// addSubtask sends the whole recomputed subtask array; there is no
// dedicated subtask endpoint.
func (m model) addSubtask(task dto.TaskResponse, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		subtasks := make([]dto.SubTaskRequest, 0, len(task.Subtasks)+1)
		for _, st := range task.Subtasks {
			subtasks = append(subtasks, dto.SubTaskRequest{ID: st.ID, Title: st.Title, Completed: st.Completed})
		}
		subtasks = append(subtasks, dto.SubTaskRequest{Title: title})

		updated, err := m.client.UpdateTask(ctx, task.ID.String(), dto.UpdateTaskRequest{Subtasks: &subtasks})
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg(updated)
	}
}

func (m model) toggleTask(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		task, err := m.client.ToggleTask(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return taskSavedMsg(task)
	}
}

func (m model) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := m.client.DeleteTask(ctx, id); err != nil {
			return errMsg{err}
		}
		return taskDeletedMsg(id)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tasksLoadedMsg:
		items := make([]list.Item, len(msg))
		for i, task := range msg {
			items[i] = taskItem{task: task}
		}
		m.list.SetItems(items)
		m.loading = false
		m.err = nil
		return m, nil

	case taskSavedMsg:
		// Patch local state from the returned record: one round trip to
		// server truth, no full refetch.
		m.patchTask(dto.TaskResponse(msg))
		m.err = nil
		return m, nil

	case taskDeletedMsg:
		m.removeTask(string(msg))
		m.err = nil
		return m, nil

	case statsLoadedMsg:
		stats := dto.TaskStatsResponse(msg)
		m.stats = &stats
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.error
		m.loading = false
		return m, nil
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAdd, stateAddSub:
		return m.updateAdd(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateStats:
		return m.updateStats(msg)
	}

	return m, nil
}

func (m model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			m.state = stateAdd
			m.input.Reset()
			cmd := m.input.Focus()
			return m, cmd
		case key.Matches(keyMsg, m.keys.SubAdd):
			if _, ok := m.list.SelectedItem().(taskItem); ok {
				m.state = stateAddSub
				m.input.Reset()
				cmd := m.input.Focus()
				return m, cmd
			}
		case key.Matches(keyMsg, m.keys.Toggle):
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				return m, m.toggleTask(item.task.ID.String())
			}
		case key.Matches(keyMsg, m.keys.Delete):
			if m.list.SelectedItem() != nil {
				m.state = stateConfirm
				return m, nil
			}
		case key.Matches(keyMsg, m.keys.Filter):
			m.filterIndex = (m.filterIndex + 1) % len(statusFilters)
			m.loading = true
			return m, m.loadTasks
		case key.Matches(keyMsg, m.keys.Stats):
			m.state = stateStats
			return m, m.loadStats
		case key.Matches(keyMsg, m.keys.Refresh):
			m.loading = true
			return m, m.loadTasks
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Save):
			title := m.input.Value()
			state := m.state
			m.state = stateList
			if title == "" {
				return m, nil
			}
			if state == stateAddSub {
				if item, ok := m.list.SelectedItem().(taskItem); ok {
					return m, m.addSubtask(item.task, title)
				}
				return m, nil
			}
			return m, m.createTask(title)
		case key.Matches(keyMsg, m.keys.Cancel):
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "y":
			m.state = stateList
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				return m, m.deleteTask(item.task.ID.String())
			}
			return m, nil
		case keyMsg.String() == "n", key.Matches(keyMsg, m.keys.Cancel):
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m model) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Cancel) || key.Matches(keyMsg, m.keys.Stats) || keyMsg.String() == "q" {
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

// patchTask replaces the matching item in place, or prepends a new one.
func (m *model) patchTask(task dto.TaskResponse) {
	items := m.list.Items()
	for i, it := range items {
		if item, ok := it.(taskItem); ok && item.task.ID == task.ID {
			m.list.SetItem(i, taskItem{task: task})
			return
		}
	}
	m.list.InsertItem(0, taskItem{task: task})
}

func (m *model) removeTask(id string) {
	for i, it := range m.list.Items() {
		if item, ok := it.(taskItem); ok && item.task.ID.String() == id {
			m.list.RemoveItem(i)
			return
		}
	}
}

func (m model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case stateAdd:
		return appStyle.Render(
			titleStyle.Render("New Task") + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateAddSub:
		return appStyle.Render(
			titleStyle.Render("New Sub-task") + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateConfirm:
		item, _ := m.list.SelectedItem().(taskItem)
		return appStyle.Render(
			confirmStyle.Render("Delete Task?") + "\n\n" +
				"  " + item.task.Title + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	case stateStats:
		return appStyle.Render(m.statsView() + errView)
	}

	title := "tasks"
	if filter := statusFilters[m.filterIndex]; filter != "" {
		title = "tasks · " + statusLabel(filter)
	}
	if m.loading {
		title += " (loading...)"
	}
	m.list.Title = title

	return appStyle.Render(m.list.View() + errView)
}

func (m model) statsView() string {
	header := titleStyle.Render("Statistics") + "\n\n"
	if m.stats == nil {
		return header + statusStyle.Render("loading...")
	}

	s := m.stats
	body := fmt.Sprintf(
		"%s %d\n%s %d pending · %d in progress · %d completed\n%s %d low · %d medium · %d high\n%s %d\n%s %.0f%%",
		statStyle.Render("Total:"), s.Total,
		statStyle.Render("Status:"),
		s.ByStatus[models.StatusPending], s.ByStatus[models.StatusInProgress], s.ByStatus[models.StatusCompleted],
		statStyle.Render("Priority:"),
		s.ByPriority["low"], s.ByPriority["medium"], s.ByPriority["high"],
		statStyle.Render("Overdue:"), s.Overdue,
		statStyle.Render("Done:"), s.CompletionRate*100,
	)

	return header + body + "\n\n" + statusStyle.Render("esc: back")
}
