package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Bold(true)
	reasonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// stdoutIsTerminal gates styled output; piped output stays plain.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func renderPass(styled bool) string {
	if !styled {
		return "PASS"
	}
	return passStyle.Render("PASS")
}

func renderFail(styled bool) string {
	if !styled {
		return "FAIL"
	}
	return failStyle.Render("FAIL")
}

func renderName(styled bool, name string) string {
	if !styled {
		return name
	}
	return nameStyle.Render(name)
}

func renderReason(styled bool, reason string) string {
	if !styled {
		return reason
	}
	return reasonStyle.Render(reason)
}
