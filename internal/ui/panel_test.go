package ui

import (
	"errors"
	"testing"

	"showroom/internal/catalog"
	"showroom/internal/configurator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLine(t *testing.T) {
	cases := []struct {
		state configurator.State
		want  string
		isErr bool
	}{
		{configurator.State{ModelID: "F40"}, "Select a model", false},
		{configurator.State{ModelID: "F40", Status: configurator.Loading}, "Loading F40...", false},
		{configurator.State{ModelID: "F50", Status: configurator.Loading, DisplayedModelID: "F40"}, "Loading F50... (showing F40)", false},
		{configurator.State{ModelID: "F50", Status: configurator.Ready}, "F50 ready", false},
		{configurator.State{ModelID: "SF90", Status: configurator.Failed, Err: errors.New("404")}, "Could not load SF90: 404", true},
	}
	for _, c := range cases {
		got, isErr := StatusLine(c.state)
		assert.Equal(t, c.want, got)
		assert.Equal(t, c.isErr, isErr)
	}
}

func TestWantsModel(t *testing.T) {
	cases := []struct {
		state configurator.State
		id    string
		want  bool
	}{
		{configurator.State{ModelID: "F40", Status: configurator.Ready}, "F50", true},
		{configurator.State{ModelID: "F40", Status: configurator.Ready}, "F40", false},
		{configurator.State{ModelID: "F40", Status: configurator.Loading}, "F40", false},
		{configurator.State{ModelID: "F40", Status: configurator.Failed, Err: errors.New("503")}, "F40", true},
		{configurator.State{ModelID: "F40", Status: configurator.Failed}, "SF90", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, wantsModel(c.state, c.id), "%s %s -> %s", c.state.ModelID, c.state.Status, c.id)
	}
}

func TestSpecLinesFollowCatalogOrder(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	d, err := cat.Get("F40")
	require.NoError(t, err)

	lines := SpecLines(catalog.Summary{Description: d.Description, Specs: d.Specs, SpecKeys: d.SpecKeys})
	require.Len(t, lines, len(d.SpecKeys)+1)
	assert.Contains(t, lines[1], "ENGINE")
	assert.Contains(t, lines[2], "478 CV")
}

func TestNewPanelSortsModels(t *testing.T) {
	p := NewPanel([]catalog.Summary{
		{ID: "SF90", DisplayName: "Ferrari SF90 Stradale"},
		{ID: "F40", DisplayName: "Ferrari F40"},
		{ID: "F50", DisplayName: "Ferrari F50"},
	}, nil)

	ids := []string{}
	for _, m := range p.models {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"F40", "F50", "SF90"}, ids)
}

func TestSwatchLayout(t *testing.T) {
	rects := swatchRects(6, padding, 100)
	require.Len(t, rects, 6)

	per := swatchesPerRow()
	assert.Equal(t, 5, per)
	assert.Equal(t, float32(padding), rects[0].X)
	assert.Equal(t, float32(100), rects[0].Y)
	assert.Equal(t, rects[0].X, rects[per].X)
	assert.Greater(t, rects[per].Y, rects[0].Y)
	assert.Equal(t, float32(2), swatchRows(6))
	for _, r := range rects {
		assert.LessOrEqual(t, r.X+r.Width, float32(panelWidth))
	}
}
