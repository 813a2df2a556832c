package main

import "github.com/charmbracelet/lipgloss"

var (
	cyan    = lipgloss.Color("#00F0FF")
	pink    = lipgloss.Color("#FF2E97")
	gray    = lipgloss.Color("#8A8F98")
	dimGray = lipgloss.Color("#3D4250")
	green   = lipgloss.Color("#39FF14")
	red     = lipgloss.Color("#FF3131")
)

var styles = struct {
	title   lipgloss.Style
	name    lipgloss.Style
	path    lipgloss.Style
	dimmed  lipgloss.Style
	premium lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	box     lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(cyan),
	name: lipgloss.NewStyle().
		Bold(true),
	path: lipgloss.NewStyle().
		Foreground(gray),
	dimmed: lipgloss.NewStyle().
		Foreground(dimGray),
	premium: lipgloss.NewStyle().
		Foreground(pink).
		Bold(true),
	success: lipgloss.NewStyle().
		Foreground(green),
	err: lipgloss.NewStyle().
		Foreground(red),
	box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cyan).
		Padding(0, 1),
}
