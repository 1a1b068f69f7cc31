package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/billmal071/booksearch/internal/books"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// BookItem wraps a Book for the list component
type BookItem struct {
	Book *books.Book
}

func (b BookItem) Title() string { return b.Book.Title }

func (b BookItem) Description() string {
	if !b.Book.HasAuthors() {
		return DimStyle.Render("Unknown author")
	}
	return DimStyle.Render(strings.Join(b.Book.AuthorList(), ", "))
}

func (b BookItem) FilterValue() string { return b.Book.Title }

// BookDelegate handles rendering of book items
type BookDelegate struct{}

func (d BookDelegate) Height() int                             { return 2 }
func (d BookDelegate) Spacing() int                            { return 1 }
func (d BookDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d BookDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	book, ok := item.(BookItem)
	if !ok {
		return
	}

	// Truncate title if too long
	title := truncate(book.Book.Title, 60)

	var str string
	if index == m.Index() {
		str = SelectedStyle.Render(fmt.Sprintf("  ➤ %d. %s", index+1, title))
	} else {
		str = NormalStyle.Render(fmt.Sprintf("    %d. %s", index+1, title))
	}
	str += "\n" + fmt.Sprintf("      %s", book.Description())

	fmt.Fprint(w, str)
}

// SelectorModel is the Bubble Tea model for browsing search results
type SelectorModel struct {
	list     list.Model
	selected *books.Book
	quitting bool
}

// NewSelector creates a new book selector TUI
func NewSelector(results []*books.Book, title string) SelectorModel {
	items := make([]list.Item, len(results))
	for i, book := range results {
		items[i] = BookItem{Book: book}
	}

	l := list.New(items, BookDelegate{}, 70, 4+len(results)*3)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle

	return SelectorModel{list: l}
}

func (m SelectorModel) Init() tea.Cmd {
	return nil
}

func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Keys belong to the filter input while it is open
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(BookItem); ok {
				m.selected = item.Book
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m SelectorModel) View() string {
	if m.selected != nil {
		return SuccessStyle.Render(fmt.Sprintf("\n  ✓ Selected: %s\n", m.selected.Title))
	}

	if m.quitting {
		return DimStyle.Render("\n  Cancelled.\n")
	}

	help := HelpStyle.Render("  ↑/↓: navigate • enter: select • /: filter • q/esc: quit")

	return "\n" + m.list.View() + "\n" + help
}

// Selected returns the selected book
func (m SelectorModel) Selected() *books.Book {
	return m.selected
}

// RunSelector displays the results and returns the book picked, or nil
func RunSelector(results []*books.Book, title string) (*books.Book, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no books to select from")
	}

	p := tea.NewProgram(NewSelector(results, title))

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(SelectorModel).Selected(), nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
