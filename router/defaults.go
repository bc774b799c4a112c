package router

import (
	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/model"
)

// DefaultBackends returns an offline backend set built on model.MockModel so
// the pipeline runs without provider credentials.
func DefaultBackends() []Backend {
	return []Backend{
		{
			Name:     "sovereign-consciousness",
			Provider: "mock",
			Capabilities: []core.Capability{
				core.CapabilityConversation, core.CapabilityReasoning,
				core.CapabilityConsciousness, core.CapabilityAnalysis,
			},
			CostPerRequest: 0.02,
			AvgLatency:     2.5,
			Quality:        0.92,
			Model:          model.NewMockModel("sovereign-consciousness", "mock"),
		},
		{
			Name:     "sovereign-technical",
			Provider: "mock",
			Capabilities: []core.Capability{
				core.CapabilityTechnical, core.CapabilityCoding,
				core.CapabilityReasoning, core.CapabilityAnalysis,
			},
			CostPerRequest: 0.03,
			AvgLatency:     3.0,
			Quality:        0.9,
			Model:          model.NewMockModel("sovereign-technical", "mock"),
		},
		{
			Name:     "sovereign-creative",
			Provider: "mock",
			Capabilities: []core.Capability{
				core.CapabilityCreativity, core.CapabilityWriting,
				core.CapabilityConversation, core.CapabilityResearch,
			},
			CostPerRequest: 0.01,
			AvgLatency:     2.0,
			Quality:        0.88,
			Model:          model.NewMockModel("sovereign-creative", "mock"),
		},
	}
}

// NewDefault returns a router populated with DefaultBackends.
func NewDefault(optFns ...func(o *Options)) *Router {
	r := New(optFns...)
	for _, b := range DefaultBackends() {
		_ = r.Register(b)
	}
	return r
}
