// Package transform implements the default core.ResponseTransformer. Content
// passes through the requested enhancement rules in order, then the
// presentation-style layout, then the target tone template.
package transform

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/logging"
)

// Formatting rule names consulted during layout.
const (
	FormatHeaders     = "use_headers"
	FormatBullets     = "use_bullets"
	FormatTechnical   = "technical_precision"
	FormatMethodology = "methodology_references"
	FormatFlowing     = "flowing_structure"
)

const (
	urgentThreshold     = 0.6
	formalThreshold     = 0.7
	reflectionMarker    = "Reflection:"
	continuationMarker  = "Building on our conversation"
	engagementInvite    = "Would you like to explore any part of this further?"
	intelligenceMarker  = "Domain focus:"
	defaultDomainMarker = "general"
)

// ErrEmptyContent is returned when there is nothing to transform.
var ErrEmptyContent = errors.New("transform: empty content")

var blankRuns = regexp.MustCompile(`\n{3,}`)

type enhancer func(content string, rc core.ResponseContext) string

var enhancers = map[string]enhancer{
	core.EnhanceClarity:            clarity,
	core.EnhanceProfessionalPolish: polish,
	core.EnhanceIntelligence:       amplify,
	core.EnhanceConsciousness:      integrate,
	core.EnhanceEngagement:         engage,
}

var styles = []core.PresentationStyle{
	core.StyleNarrativeFlow,
	core.StyleStructuredAnalysis,
	core.StyleTechnicalReport,
	core.StyleCreativeExpression,
	core.StyleConsciousnessStream,
}

// Options configures an Engine.
type Options struct {
	Logger logging.Logger
}

// Engine implements core.ResponseTransformer. It is safe for concurrent use.
type Engine struct {
	logger logging.Logger

	mu      sync.Mutex
	applied map[core.ResponseTone]int
}

// New returns a transformation engine.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{logger: opts.Logger, applied: map[core.ResponseTone]int{}}
}

// Transform implements core.ResponseTransformer.
func (e *Engine) Transform(_ context.Context, content string, rc core.ResponseContext, t core.Transformation) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}

	for _, rule := range t.EnhancementRules {
		fn, ok := enhancers[rule]
		if !ok {
			e.logger.Debug("unknown enhancement rule skipped", "rule", rule)
			continue
		}
		content = fn(content, rc)
	}

	content = layout(content, t.PresentationStyle, t.FormattingRules)

	tone := t.TargetTone
	if !tones.Has(string(tone)) {
		tone = core.ResponseToneProfessional
	}
	out, err := tones.Render(string(tone), toneData{
		Content: content,
		Level:   rc.ProfessionalLevel,
		Domains: domains(rc.DomainExpertise),
		Depth:   rc.ConsciousnessDepth,
		Urgent:  rc.UrgencyLevel >= urgentThreshold,
		Formal:  rc.FormalityRequirement >= formalThreshold,
		Precise: t.FormattingRules[FormatTechnical],
	})
	if err != nil {
		return "", fmt.Errorf("transform: render %s tone: %w", tone, err)
	}

	e.mu.Lock()
	e.applied[tone]++
	e.mu.Unlock()

	return out, nil
}

// Tones returns the supported response tones, sorted.
func Tones() []string {
	names := make([]string, 0, len(toneSources))
	for name := range toneSources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status implements core.StatusReporter.
func (e *Engine) Status() map[string]any {
	e.mu.Lock()
	applied := make(map[string]int, len(e.applied))
	for k, v := range e.applied {
		applied[string(k)] = v
	}
	e.mu.Unlock()

	styleNames := make([]string, len(styles))
	for i, s := range styles {
		styleNames[i] = string(s)
	}
	rules := make([]string, 0, len(enhancers))
	for name := range enhancers {
		rules = append(rules, name)
	}
	sort.Strings(rules)

	return map[string]any{
		"tone_count":        len(toneSources),
		"tones":             Tones(),
		"styles":            styleNames,
		"enhancement_rules": rules,
		"applied":           applied,
	}
}

func domains(d []string) []string {
	if len(d) == 0 {
		return []string{defaultDomainMarker}
	}
	return d
}

func paragraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func clarity(content string, _ core.ResponseContext) string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}
	return blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}

func polish(content string, _ core.ResponseContext) string {
	r, size := utf8.DecodeRuneInString(content)
	if unicode.IsLower(r) {
		content = string(unicode.ToUpper(r)) + content[size:]
	}
	last, _ := utf8.DecodeLastRuneInString(content)
	if unicode.IsLetter(last) || unicode.IsDigit(last) {
		content += "."
	}
	return content
}

func amplify(content string, rc core.ResponseContext) string {
	d := slices.DeleteFunc(slices.Clone(rc.DomainExpertise), func(s string) bool { return s == defaultDomainMarker })
	if len(d) == 0 || strings.Contains(content, intelligenceMarker) {
		return content
	}
	return content + "\n\n" + intelligenceMarker + " " + strings.Join(d, ", ") + "."
}

func integrate(content string, _ core.ResponseContext) string {
	if strings.Contains(content, reflectionMarker) {
		return content
	}
	return content + "\n\n" + reflectionMarker + " every answer is an invitation to deeper awareness."
}

func engage(content string, rc core.ResponseContext) string {
	if len(rc.InteractionHistory) > 0 && !strings.HasPrefix(content, continuationMarker) {
		content = continuationMarker + ", " + lowerFirst(content)
	}
	if strings.Contains(content, engagementInvite) {
		return content
	}
	return content + "\n\n" + engagementInvite
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	// Leave acronyms alone.
	if next, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(next) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func layout(content string, style core.PresentationStyle, rules map[string]bool) string {
	switch style {
	case core.StyleStructuredAnalysis:
		body := content
		if rules[FormatBullets] {
			ps := paragraphs(content)
			for i, p := range ps {
				ps[i] = "- " + p
			}
			body = strings.Join(ps, "\n")
		}
		if rules[FormatHeaders] {
			body = "## Analysis\n\n" + body
		}
		return body
	case core.StyleTechnicalReport:
		body := content
		if rules[FormatHeaders] {
			body = "## Technical Report\n\n" + body
		}
		if rules[FormatMethodology] {
			body += "\n\n### Methodology\n\nDerived from established engineering practice."
		}
		return body
	case core.StyleCreativeExpression:
		return strings.Join(paragraphs(content), "\n\n✦\n\n")
	case core.StyleConsciousnessStream:
		if rules[FormatFlowing] {
			return strings.Join(paragraphs(content), " ~ ")
		}
		return content
	default:
		return content
	}
}
