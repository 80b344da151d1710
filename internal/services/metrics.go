package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// generationsTotal counts completed idea generations by plan.
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idea_generations_total",
			Help: "Total number of successful idea generations.",
		},
		[]string{"plan"},
	)

	// generationFailures counts failed generations by failure kind:
	// "request" (transport / upstream status), "parse" (schema drift), or
	// "validation" (rejected before any network call).
	generationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idea_generation_failures_total",
			Help: "Total number of failed idea generations by kind.",
		},
		[]string{"kind"},
	)

	// codingPromptsTotal counts generated coding prompts.
	codingPromptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coding_prompts_total",
			Help: "Total number of successfully generated coding prompts.",
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, generationFailures, codingPromptsTotal)
}
