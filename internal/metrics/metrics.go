package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"qnalinks/internal/db"
)

var (
	slugLookupDesc = prometheus.NewDesc(
		"qnalinks_slug_lookups_total",
		"Total public slug lookup count by outcome",
		[]string{"slug", "outcome"},
		nil,
	)
	usersDesc = prometheus.NewDesc(
		"qnalinks_users_total",
		"Number of registered users",
		nil, nil,
	)
	linksDesc = prometheus.NewDesc(
		"qnalinks_question_links_total",
		"Number of question links",
		nil, nil,
	)
	questionsDesc = prometheus.NewDesc(
		"qnalinks_questions_total",
		"Number of submitted questions",
		nil, nil,
	)
)

// Collector is a custom Prometheus collector that reads entity counts and
// slug lookup totals from the database on each scrape.
type Collector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- slugLookupDesc
	ch <- usersDesc
	ch <- linksDesc
	ch <- questionsDesc
}

// Collect queries the database and emits current values.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	stats, err := c.db.GetStats(ctx)
	if err != nil {
		slog.Error("failed to collect entity count metrics", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(usersDesc, prometheus.GaugeValue, float64(stats.Users))
		ch <- prometheus.MustNewConstMetric(linksDesc, prometheus.GaugeValue, float64(stats.Links))
		ch <- prometheus.MustNewConstMetric(questionsDesc, prometheus.GaugeValue, float64(stats.Questions))
	}

	lookups, err := c.db.GetAllSlugLookups(ctx)
	if err != nil {
		slog.Error("failed to collect slug lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			slugLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Slug,
			l.Outcome,
		)
	}
}

// Recorder provides async slug lookup recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&Collector{db: database})
	})
}

// RecordSlugLookup asynchronously records a public slug lookup outcome
// (hit, miss, expired).
func RecordSlugLookup(slug, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementSlugLookup(context.Background(), slug, outcome); err != nil {
			slog.Error("failed to record slug lookup", "slug", slug, "outcome", outcome, "error", err)
		}
	}()
}
