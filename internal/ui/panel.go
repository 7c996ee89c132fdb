// Package ui draws the showroom side panel: model list, paint swatches and
// the current model's details.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"showroom/internal/catalog"
	"showroom/internal/configurator"
	"showroom/internal/material"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Intent is what the user clicked this frame. Empty fields mean no change.
type Intent struct {
	Model string
	Color string
}

const (
	panelWidth  = 300
	padding     = 16
	rowHeight   = 32
	swatchSize  = 44
	swatchGap   = 10
	headingSize = 20
)

type Panel struct {
	models  []catalog.Summary
	palette catalog.Palette
}

// NewPanel sorts models by display name for the picker.
func NewPanel(models []catalog.Summary, palette catalog.Palette) *Panel {
	sorted := append([]catalog.Summary(nil), models...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DisplayName < sorted[j].DisplayName })
	return &Panel{models: sorted, palette: palette}
}

// Bounds is the screen area the panel covers.
func (p *Panel) Bounds() rl.Rectangle {
	return rl.Rectangle{X: 0, Y: 0, Width: panelWidth, Height: float32(rl.GetScreenHeight())}
}

// Contains reports whether pos is over the panel.
func (p *Panel) Contains(pos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pos, p.Bounds())
}

// Draw renders the panel for s and returns the user's clicks.
func (p *Panel) Draw(s configurator.State) Intent {
	var intent Intent
	rl.DrawRectangleRec(p.Bounds(), colorBgPanel)

	y := float32(padding)
	rl.DrawText("MODEL", padding, int32(y), headingSize, colorTextPrimary)
	y += headingSize + 8
	for _, m := range p.models {
		label := fmt.Sprintf("%s  %s", m.DisplayName, m.Year)
		if m.ID == s.ModelID {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: padding, Y: y, Width: panelWidth - 2*padding, Height: rowHeight}, label) && wantsModel(s, m.ID) {
			intent.Model = m.ID
		}
		y += rowHeight + 6
	}

	y += padding
	rl.DrawText("PAINT", padding, int32(y), headingSize, colorTextPrimary)
	y += headingSize + 8
	for i, r := range swatchRects(len(p.palette), padding, y) {
		opt := p.palette[i]
		_, c, err := material.ParseHex(opt.Hex)
		if err != nil {
			continue
		}
		rl.DrawRectangleRec(r, c)
		if opt == s.Color {
			rl.DrawRectangleLinesEx(rl.Rectangle{X: r.X - 3, Y: r.Y - 3, Width: r.Width + 6, Height: r.Height + 6}, 2, colorAccent)
		} else {
			rl.DrawRectangleLinesEx(r, 1, colorBorder)
		}
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(rl.GetMousePosition(), r) && opt != s.Color {
			intent.Color = opt.Hex
		}
	}
	y += swatchRows(len(p.palette))*(swatchSize+swatchGap) + 4
	rl.DrawText(s.Color.Name, padding, int32(y), 16, colorTextSecondary)
	y += 16 + padding

	status, isErr := StatusLine(s)
	statusColor := colorTextMuted
	if isErr {
		statusColor = colorError
	}
	rl.DrawText(status, padding, int32(y), 14, statusColor)
	y += 14 + padding

	if m, ok := p.model(s.ModelID); ok {
		for _, line := range SpecLines(m) {
			rl.DrawText(line, padding, int32(y), 14, colorTextSecondary)
			y += 20
		}
	}
	return intent
}

func (p *Panel) model(id string) (catalog.Summary, bool) {
	for _, m := range p.models {
		if m.ID == id {
			return m, true
		}
	}
	return catalog.Summary{}, false
}

// wantsModel reports whether clicking id should select it. Clicking the
// current model retries it after a failed load.
func wantsModel(s configurator.State, id string) bool {
	return id != s.ModelID || s.Status == configurator.Failed
}

// StatusLine describes the load state and reports whether it is an error.
func StatusLine(s configurator.State) (string, bool) {
	switch s.Status {
	case configurator.Loading:
		if s.DisplayedModelID != "" {
			return fmt.Sprintf("Loading %s... (showing %s)", s.ModelID, s.DisplayedModelID), false
		}
		return fmt.Sprintf("Loading %s...", s.ModelID), false
	case configurator.Failed:
		msg := fmt.Sprintf("Could not load %s", s.ModelID)
		if s.Err != nil {
			msg += ": " + s.Err.Error()
		}
		return msg, true
	case configurator.Ready:
		return fmt.Sprintf("%s ready", s.ModelID), false
	default:
		return "Select a model", false
	}
}

// SpecLines formats a model's specs in catalog order.
func SpecLines(m catalog.Summary) []string {
	lines := make([]string, 0, len(m.SpecKeys)+1)
	if m.Description != "" {
		lines = append(lines, m.Description)
	}
	for _, k := range m.SpecKeys {
		lines = append(lines, fmt.Sprintf("%-8s %s", strings.ToUpper(k), m.Specs[k]))
	}
	return lines
}

func swatchesPerRow() int {
	return (panelWidth - 2*padding + swatchGap) / (swatchSize + swatchGap)
}

func swatchRows(n int) float32 {
	per := swatchesPerRow()
	return float32((n + per - 1) / per)
}

// swatchRects lays out n swatches in rows starting at (x, y).
func swatchRects(n int, x, y float32) []rl.Rectangle {
	per := swatchesPerRow()
	rects := make([]rl.Rectangle, n)
	for i := range rects {
		col, row := i%per, i/per
		rects[i] = rl.Rectangle{
			X:      x + float32(col*(swatchSize+swatchGap)),
			Y:      y + float32(row*(swatchSize+swatchGap)),
			Width:  swatchSize,
			Height: swatchSize,
		}
	}
	return rects
}
