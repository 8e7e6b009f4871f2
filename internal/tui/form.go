package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

// Form field indexes. fieldPriority has no text input; it is cycled
// with the arrow keys instead.
const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldDue
	fieldPriority
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Description",
	"Category",
	"Due (YYYY-MM-DD)",
	"Priority",
}

var (
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(18)
	labelFocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Width(18)
	priorityChip    = lipgloss.NewStyle().Padding(0, 1)
	prioritySelChip = lipgloss.NewStyle().Padding(0, 1).Reverse(true)
)

// form is the create/edit sub-screen.
type form struct {
	heading  string
	inputs   [fieldPriority]textinput.Model
	focus    int
	priority int // index into task.Priorities
	err      error
}

func newForm(f task.Fields, heading string) form {
	var fm form
	fm.heading = heading

	for i := range fm.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		fm.inputs[i] = in
	}
	fm.inputs[fieldTitle].SetValue(f.Title)
	fm.inputs[fieldTitle].Placeholder = "What needs doing?"
	fm.inputs[fieldDescription].SetValue(f.Description)
	fm.inputs[fieldDescription].CharLimit = 2000
	fm.inputs[fieldCategory].SetValue(f.Category)
	fm.inputs[fieldCategory].Placeholder = task.DefaultCategory
	if f.Due != nil {
		fm.inputs[fieldDue].SetValue(f.Due.String())
	}
	fm.inputs[fieldDue].Placeholder = "none"

	fm.priority = task.PriorityMedium.Rank()
	if f.Priority.Valid() {
		fm.priority = f.Priority.Rank()
	}
	return fm
}

// focusCmd focuses the first input and starts the cursor blink.
func (f *form) focusCmd() tea.Cmd {
	f.inputs[fieldTitle].Focus()
	return textinput.Blink
}

func (f form) update(msg tea.KeyMsg) (form, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, nil
	}

	if f.focus == fieldPriority {
		switch msg.String() {
		case "left", "h":
			f.priority = (f.priority + len(task.Priorities) - 1) % len(task.Priorities)
		case "right", "l", " ":
			f.priority = (f.priority + 1) % len(task.Priorities)
		}
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *form) setFocus(idx int) {
	if f.focus < fieldPriority {
		f.inputs[f.focus].Blur()
	}
	f.focus = idx
	if idx < fieldPriority {
		f.inputs[idx].Focus()
	}
}

// fields converts the form contents into task fields, validating the
// due date. Priority always holds a valid level.
func (f *form) fields() (task.Fields, error) {
	out := task.Fields{
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Category:    strings.TrimSpace(f.inputs[fieldCategory].Value()),
		Priority:    task.Priorities[f.priority],
	}
	if due := strings.TrimSpace(f.inputs[fieldDue].Value()); due != "" {
		d, err := date.Parse(due)
		if err != nil {
			return task.Fields{}, err
		}
		out.Due = &d
	}
	return out, nil
}

func (f form) view(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.heading))
	b.WriteString("\n\n")

	for i := 0; i < fieldPriority; i++ {
		label := labelStyle
		if f.focus == i {
			label = labelFocusStyle
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	label := labelStyle
	if f.focus == fieldPriority {
		label = labelFocusStyle
	}
	b.WriteString(label.Render(fieldLabels[fieldPriority]))
	for i, p := range task.Priorities {
		chip := priorityChip
		if i == f.priority {
			chip = prioritySelChip
		}
		b.WriteString(chip.Render(string(p)))
	}
	b.WriteString("\n\n")

	if f.err != nil {
		b.WriteString(errStyle.Render(f.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab next field · enter save · esc cancel"))
	return b.String()
}
