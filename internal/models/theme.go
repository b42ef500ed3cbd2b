package models

import (
	"fmt"
	"strings"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeDark
)

func ParseTheme(s string) (Theme, error) {
	theme := Theme(strings.ToLower(strings.TrimSpace(s)))
	if theme != ThemeLight && theme != ThemeDark {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return theme, nil
}

func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
