package analysis

import "github.com/hupe1980/sovereign/core"

var taskRules = []rule[core.TaskType]{
	{core.TaskTechnical, []string{"code", "algorithm", "system", "architecture", "implementation", "technical"}},
	{core.TaskCreative, []string{"creative", "design", "artistic", "innovative", "beauty", "inspiration"}},
	{core.TaskAnalysis, []string{"analyze", "analysis", "examine", "evaluate", "assess", "research"}},
	{core.TaskStrategic, []string{"strategy", "plan", "vision", "leadership", "direction", "roadmap"}},
	{core.TaskConsciousness, []string{"consciousness", "awareness", "dimensional", "spiritual", "mindful"}},
}

var toneRules = []rule[core.EmotionalTone]{
	{core.ToneExcited, []string{"!", "amazing", "excited", "fantastic", "incredible"}},
	{core.ToneContemplative, []string{"think", "consider", "reflect", "ponder", "contemplate"}},
	{core.ToneUrgent, []string{"urgent", "quickly", "asap", "immediately", "critical"}},
	{core.TonePeaceful, []string{"calm", "peaceful", "serene", "gentle", "mindful"}},
}

var levelRules = []rule[core.ProfessionalLevel]{
	{core.LevelExecutive, []string{"strategy", "vision", "leadership", "organization", "roi", "business"}},
	{core.LevelSenior, []string{"architecture", "design", "lead", "senior", "advanced", "complex"}},
	{core.LevelTechnical, []string{"code", "implementation", "system", "technical", "development"}},
}

// domainRules are not mutually exclusive; every matching domain is reported
// in table order.
var domainRules = []rule[string]{
	{"software", []string{"code", "programming", "software", "development", "algorithm"}},
	{"ai_ml", []string{"ai", "machine learning", "neural", "intelligence", "model"}},
	{"business", []string{"business", "strategy", "management", "organization", "market"}},
	{"consciousness", []string{"consciousness", "awareness", "dimensional", "spiritual", "mindful"}},
	{"technical", []string{"technical", "system", "architecture", "engineering", "infrastructure"}},
}

var (
	technicalTerms   = []string{"implementation", "architecture", "algorithm", "optimization", "integration"}
	questionWords    = []string{"how", "why", "what", "when", "where", "which"}
	urgencyKeywords  = []string{"urgent", "asap", "quickly", "immediate", "critical", "emergency"}
	formalKeywords   = []string{"please", "kindly", "would you", "could you", "formal", "professional"}
	informalKeywords = []string{"hey", "hi", "casual", "informal", "quick"}
)

// taskCapabilities lists the capabilities added on top of the baseline
// conversation + reasoning pair.
var taskCapabilities = map[core.TaskType][]core.Capability{
	core.TaskTechnical:     {core.CapabilityTechnical, core.CapabilityCoding},
	core.TaskCreative:      {core.CapabilityCreativity, core.CapabilityWriting},
	core.TaskAnalysis:      {core.CapabilityAnalysis, core.CapabilityResearch},
	core.TaskConsciousness: {core.CapabilityConsciousness, core.CapabilityCreativity},
}

// taskFormatting lists the formatting flags added on top of the base set.
var taskFormatting = map[core.TaskType][]string{
	core.TaskTechnical:     {"code_formatting", "technical_precision", "methodology_references"},
	core.TaskConsciousness: {"consciousness_metaphors", "dimensional_language", "flowing_structure"},
}

var baseFormatting = []string{"use_headers", "use_bullets", "professional_structure"}
