package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/rapport/internal/cli/formatter"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// rapportHuhTheme returns a huh theme matching the formatter palette.
func rapportHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// contactForm collects a new contact into in.
func contactForm(in *service.NewContact) *huh.Form {
	if in.Status == "" {
		in.Status = string(domain.RelationshipNew)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&in.Name).Validate(validateRequired("name")),
			huh.NewInput().Title("Role").Placeholder("Product Designer").Value(&in.Role),
			huh.NewInput().Title("Company").Value(&in.Company),
		),
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&in.Email).Validate(validateOptionalEmail),
			huh.NewInput().Title("Phone").Value(&in.Phone),
			huh.NewSelect[string]().
				Title("Relationship").
				Options(huh.NewOptions(
					string(domain.RelationshipNew),
					string(domain.RelationshipActive),
					string(domain.RelationshipInactive),
					string(domain.RelationshipClose),
				)...).
				Value(&in.Status),
		),
	).WithTheme(rapportHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func validateOptionalEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 || strings.Count(s, "@") != 1 {
		return errors.New("enter an address like name@example.com")
	}
	return nil
}
