package transform

import (
	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/internal/util"
)

// toneSources are rendered with a toneData value after layout.
var toneSources = map[string]string{
	string(core.ResponseToneProfessional): `{{.Content}}`,
	string(core.ResponseToneExecutive): `**Executive Summary**

{{.Content}}{{if .Urgent}}

_Priority: immediate attention recommended._{{end}}`,
	string(core.ResponseToneTechnical): `{{.Content}}{{if .Precise}}

_Technical scope: {{join ", " .Domains}}._{{end}}`,
	string(core.ResponseToneCreative): `✨ {{.Content}}`,
	string(core.ResponseToneConsulting): `{{.Content}}

**Recommended next step**: align these insights with your {{join ", " .Domains}} priorities.`,
	string(core.ResponseToneAcademic): `{{.Content}}{{if .Formal}}

_Prepared for {{.Level}}-level review._{{end}}`,
	string(core.ResponseToneConsciousness): `🌀 {{.Content}}

_Resonating at consciousness depth {{printf "%.2f" .Depth}}._`,
}

var tones = util.MustTemplateSet(toneSources)

// toneData is the template input for tone rendering.
type toneData struct {
	Content string
	Level   core.ProfessionalLevel
	Domains []string
	Depth   float64
	Urgent  bool
	Formal  bool
	Precise bool
}
