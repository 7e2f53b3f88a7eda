// Package metrics holds the domain counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Domain groups counters for waste logging, image analysis and the assistant.
// A nil *Domain is valid and records nothing.
type Domain struct {
	entriesCreated   prometheus.Counter
	imagesAnalyzed   *prometheus.CounterVec
	assistantReplies *prometheus.CounterVec
}

// NewDomain creates the counters and registers them with reg.
func NewDomain(reg prometheus.Registerer) (*Domain, error) {
	d := &Domain{
		entriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waste_entries_created_total",
			Help: "Total number of food waste entries logged.",
		}),
		imagesAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "food_images_analyzed_total",
			Help: "Total number of food images run through recognition.",
		}, []string{"provider", "outcome"}),
		assistantReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assistant_replies_total",
			Help: "Total number of assistant replies by answer source.",
		}, []string{"source"}),
	}
	for _, c := range []prometheus.Collector{d.entriesCreated, d.imagesAnalyzed, d.assistantReplies} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Domain) EntryCreated() {
	if d == nil {
		return
	}
	d.entriesCreated.Inc()
}

// ImageAnalyzed records one recognition attempt. outcome is "recognized", "unknown" or "error".
func (d *Domain) ImageAnalyzed(provider, outcome string) {
	if d == nil {
		return
	}
	d.imagesAnalyzed.WithLabelValues(provider, outcome).Inc()
}

func (d *Domain) AssistantReplied(source string) {
	if d == nil {
		return
	}
	d.assistantReplies.WithLabelValues(source).Inc()
}
