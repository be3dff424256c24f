package console

import "github.com/charmbracelet/lipgloss"

const width = 70

type Theme struct {
	Title   lipgloss.Style
	Phase   lipgloss.Style
	Heading lipgloss.Style
	Code    lipgloss.Style
	Asm     lipgloss.Style
	OK      lipgloss.Style
	Fail    lipgloss.Style
	Bit1    lipgloss.Style
	Bit0    lipgloss.Style
	Faint   lipgloss.Style
	Bold    lipgloss.Style
	Banner  lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Phase:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Asm:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		OK:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Bit1:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Bit0:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Faint:   lipgloss.NewStyle().Faint(true),
		Bold:    lipgloss.NewStyle().Bold(true),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13")).
			Padding(1, 4).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("13")),
	}
}

// PlainTheme renders the same layout without colour or emphasis.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{
		Title:   s,
		Phase:   s,
		Heading: s,
		Code:    s,
		Asm:     s,
		OK:      s,
		Fail:    s,
		Bit1:    s,
		Bit0:    s,
		Faint:   s,
		Bold:    s,
		Banner:  s.Padding(1, 4).BorderStyle(lipgloss.DoubleBorder()),
	}
}
