package main

import (
	"fmt"
	"image/color"

	"github.com/NaveLIL/erez-chrome/chrome"
	"github.com/NaveLIL/erez-chrome/config"
	"github.com/NaveLIL/erez-chrome/models"
	"github.com/NaveLIL/erez-chrome/shadow"
	"github.com/NaveLIL/erez-chrome/utils"
)

// chromeOptions maps the chrome section of cfg onto chrome.Options.
func chromeOptions(cfg *config.Config) (chrome.Options, error) {
	opts := chrome.DefaultOptions()
	c := &cfg.Chrome

	radius, err := c.ParsedCornerRadius()
	if err != nil {
		return opts, err
	}
	theme, err := parseTheme(&c.Theme)
	if err != nil {
		return opts, err
	}

	opts.CaptionHeight = c.CaptionHeight
	opts.Border = c.Border
	opts.CornerRadius = radius
	opts.AdjustWhenMaximized = c.AdjustWhenMaximized
	opts.DoubleBuffered = c.DoubleBuffered
	opts.ButtonSize = models.Size{Width: c.ButtonWidth}
	opts.Theme = theme
	return opts, nil
}

// shadowOptions maps the shadow section of cfg. The active tint follows the
// chrome border colour.
func shadowOptions(cfg *config.Config) (shadow.Options, error) {
	opts := shadow.DefaultOptions()
	opts.Thickness = cfg.Shadow.Thickness

	active, err := utils.ParseHexColor(cfg.Chrome.Theme.BorderColor)
	if err != nil {
		return opts, fmt.Errorf("border_color: %w", err)
	}
	inactive, err := utils.ParseHexColor(cfg.Shadow.InactiveColor)
	if err != nil {
		return opts, fmt.Errorf("inactive_color: %w", err)
	}
	opts.Color = active
	opts.InactiveColor = inactive
	return opts, nil
}

func parseTheme(t *config.ThemeConfig) (chrome.Theme, error) {
	theme := chrome.DefaultTheme()
	fields := []struct {
		name  string
		value string
		dst   *color.NRGBA
	}{
		{"caption_color", t.CaptionColor, &theme.Caption},
		{"border_color", t.BorderColor, &theme.Border},
		{"inactive_border_color", t.InactiveBorderColor, &theme.InactiveBorder},
		{"text_color", t.TextColor, &theme.Text},
		{"inactive_text_color", t.InactiveTextColor, &theme.InactiveText},
		{"glyph_color", t.GlyphColor, &theme.Glyph},
		{"disabled_glyph_color", t.DisabledGlyphColor, &theme.DisabledGlyph},
		{"hover_color", t.HoverColor, &theme.Hover},
		{"pressed_color", t.PressedColor, &theme.Pressed},
		{"close_hover_color", t.CloseHoverColor, &theme.CloseHover},
		{"close_pressed_color", t.ClosePressedColor, &theme.ClosePressed},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		c, err := utils.ParseHexColor(f.value)
		if err != nil {
			return theme, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return theme, nil
}
