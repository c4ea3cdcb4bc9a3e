// metrics/domain.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	recordsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vendorgrid_records_generated_total",
		Help: "Records produced by successful generate runs.",
	})

	generateRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorgrid_generate_runs_total",
		Help: "Generate runs by outcome.",
	}, []string{"outcome"})

	rejectedEntries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorgrid_rejected_entries_total",
		Help: "Pasted entries that failed validation, by kind.",
	}, []string{"kind"})

	exportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorgrid_exports_total",
		Help: "Files downloaded, by format.",
	}, []string{"format"})

	bannersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vendorgrid_banners_total",
		Help: "Banners shown, by kind.",
	}, []string{"kind"})
)

// domainCollectors is registered by RegisterDefault.
var domainCollectors = []prometheus.Collector{
	recordsGenerated, generateRuns, rejectedEntries, exportsTotal, bannersTotal,
}

// Domain records vendorgrid's own counters. The zero value is ready to use.
type Domain struct{}

// RunFinished counts one generate run and the records it produced.
func (Domain) RunFinished(outcome string, records int) {
	generateRuns.WithLabelValues(outcome).Inc()
	if records > 0 {
		recordsGenerated.Add(float64(records))
	}
}

// EntriesRejected counts n invalid entries of kind.
func (Domain) EntriesRejected(kind string, n int) {
	if n > 0 {
		rejectedEntries.WithLabelValues(kind).Add(float64(n))
	}
}

// FileExported counts one download.
func (Domain) FileExported(format string) {
	exportsTotal.WithLabelValues(format).Inc()
}

// BannerShown counts one banner.
func (Domain) BannerShown(kind string) {
	bannersTotal.WithLabelValues(kind).Inc()
}
