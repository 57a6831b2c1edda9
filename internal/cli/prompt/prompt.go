// Package prompt provides interactive terminal prompts for CLI commands.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user aborts a prompt (Ctrl+C).
var ErrAborted = errors.New("aborted")

// IsAborted returns true if the error indicates the user aborted.
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

// wrapError converts promptui interrupt/abort errors to ErrAborted for
// consistent handling.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// Confirm prompts the user for yes/no confirmation.
func Confirm(label string, defaultYes bool) (bool, error) {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, defaultStr),
		IsConfirm: true,
	}

	result, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, ErrAborted
		}
		// promptui signals "n" via ErrAbort
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if result == "" {
			return defaultYes, nil
		}
		return false, err
	}

	result = strings.ToLower(result)
	return result == "y" || result == "yes", nil
}

// InputWithValidation prompts for input validated by the given function.
func InputWithValidation(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	result, err := p.Run()
	return result, wrapError(err)
}

// SelectOption represents an item in a selection list.
type SelectOption struct {
	Label string
	Value string
}

// Select prompts the user to select one option and returns its value.
func Select(label string, options []SelectOption) (string, error) {
	p := promptui.Select{
		Label: label,
		Items: options,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "> {{ .Label | cyan }}",
			Inactive: "  {{ .Label | white }}",
			Selected: "* {{ .Label | green }}",
		},
		Size: 10,
	}

	i, _, err := p.Run()
	if err != nil {
		return "", wrapError(err)
	}
	return options[i].Value, nil
}

// MultiSelect lets the user toggle options and returns the selected
// values. promptui has no native multi-select, so this loops a single
// select with a "Done" entry.
func MultiSelect(label string, options []SelectOption) ([]string, error) {
	selected := make(map[string]bool)

	for {
		items := make([]string, 0, len(options)+1)
		for _, opt := range options {
			prefix := "[ ]"
			if selected[opt.Value] {
				prefix = "[x]"
			}
			items = append(items, prefix+" "+opt.Label)
		}
		items = append(items, "Done")

		p := promptui.Select{
			Label: label,
			Items: items,
			Size:  len(items),
		}

		i, _, err := p.Run()
		if err != nil {
			return nil, wrapError(err)
		}
		if i == len(options) {
			break
		}

		value := options[i].Value
		if selected[value] {
			delete(selected, value)
		} else {
			selected[value] = true
		}
	}

	var result []string
	for _, opt := range options {
		if selected[opt.Value] {
			result = append(result, opt.Value)
		}
	}
	return result, nil
}
