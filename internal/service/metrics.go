package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nars_cycles_total",
		Help: "Total cognitive cycles run",
	})

	attentionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nars_attention_total",
		Help: "Cycles by attention mode",
	}, []string{"mode"})

	inputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nars_inputs_total",
		Help: "Input sentences admitted into the experience buffer by punctuation",
	}, []string{"punctuation"})

	inputsRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nars_inputs_rejected_total",
		Help: "Input sentences rejected because the input queue was full",
	})

	derivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nars_derivations_total",
		Help: "Derived tasks by inference rule",
	}, []string{"rule"})

	answersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nars_answers_total",
		Help: "Input questions and quests answered, by verdict",
	}, []string{"verdict"})

	experienceBufferSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nars_experience_buffer_tasks",
		Help: "Tasks held in the experience buffer",
	})

	conceptCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nars_memory_concepts",
		Help: "Concepts held in memory",
	})

	outputsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nars_outputs_dropped_total",
		Help: "Output events dropped because the outbox was full",
	})

	journalErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nars_journal_errors_total",
		Help: "Output events that failed to persist",
	})
)
