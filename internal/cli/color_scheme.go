package cli

import (
	"image/color"

	"github.com/charmbracelet/fang"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"

	"github.com/macropower/vlist/api/v1beta1/configs"
	"github.com/macropower/vlist/pkg/config"
	"github.com/macropower/vlist/pkg/ui/theme"
)

// ColorSchemeFunc colours help and error output with the configured theme,
// falling back to the default theme if the configuration cannot be loaded.
func ColorSchemeFunc(c lipgloss.LightDarkFunc) fang.ColorScheme {
	cfg, err := config.LoadConfig(configs.GetPath())
	if err != nil {
		return ThemeColorScheme(theme.Default, c)
	}

	return ThemeColorScheme(theme.New(cfg.UI.Theme), c)
}

func ThemeColorScheme(t *theme.Theme, c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           t.TextStyle.GetForeground(),
		Title:          t.LogoStyle.GetBackground(),
		Codeblock:      c(charmtone.Salt, lipgloss.Color("#2F2E36")),
		Program:        t.MatchStyle.GetForeground(),
		Command:        t.MatchStyle.GetForeground(),
		DimmedArgument: t.SubtleStyle.GetForeground(),
		Comment:        t.SubtleStyle.GetForeground(),
		Flag:           t.PromptStyle.GetForeground(),
		Argument:       t.TextStyle.GetForeground(),
		Description:    t.TextStyle.GetForeground(),
		FlagDefault:    t.LineNumberStyle.GetForeground(),
		QuotedString:   t.TextStyle.GetForeground(),
		ErrorHeader: [2]color.Color{
			t.StatusBarErrorStyle.GetForeground(),
			t.StatusBarErrorStyle.GetBackground(),
		},
	}
}
