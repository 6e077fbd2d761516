package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/codepad/internal/client/notify"
)

// palette holds the terminal styles of one theme.
type palette struct {
	dark bool

	title  lipgloss.Style
	dim    lipgloss.Style
	accent lipgloss.Style
	folder lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	notify notify.Styles
}

func paletteFor(dark bool) palette {
	if dark {
		return palette{
			dark:   true,
			title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
			accent: lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true),
			folder: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
			ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			err:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			notify: notify.DefaultStyles(),
		}
	}
	return palette{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("90")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
		folder: lipgloss.NewStyle().Foreground(lipgloss.Color("24")),
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		notify: notify.Styles{
			notify.LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
			notify.LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			notify.LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
		},
	}
}
