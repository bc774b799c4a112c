package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate("plain text", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain text", out)

	out, err = RenderTemplate(`{{upper .Name}} <{{default "none" .Missing}}>`, map[string]any{"Name": "nova"})
	require.NoError(t, err)
	assert.Equal(t, "NOVA <none>", out)

	_, err = RenderTemplate("{{.Broken", nil)
	assert.Error(t, err)
}

func TestRenderTemplate_DoesNotEscapeHTML(t *testing.T) {
	out, err := RenderTemplate("{{.}}", "a < b & c")
	require.NoError(t, err)
	assert.Equal(t, "a < b & c", out)
}

func TestTemplateSet(t *testing.T) {
	ts, err := NewTemplateSet(map[string]string{
		"greet": `Hello {{title .}}`,
		"list":  `{{join ", " .}}`,
		"pct":   `{{percent .}}`,
	})
	require.NoError(t, err)

	assert.True(t, ts.Has("greet"))
	assert.False(t, ts.Has("missing"))

	out, err := ts.Render("greet", "wORLD")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", out)

	out, err = ts.Render("list", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a, b", out)

	out, err = ts.Render("pct", 0.925)
	require.NoError(t, err)
	assert.Equal(t, "92.5%", out)

	_, err = ts.Render("missing", nil)
	assert.Error(t, err)
}

func TestNewTemplateSet_ParseError(t *testing.T) {
	_, err := NewTemplateSet(map[string]string{"bad": "{{"})
	assert.ErrorContains(t, err, `"bad"`)

	assert.Panics(t, func() { MustTemplateSet(map[string]string{"bad": "{{"}) })
}
