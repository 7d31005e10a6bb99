package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Reverse(true)
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
