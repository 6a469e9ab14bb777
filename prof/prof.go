package prof

import (
	"sort"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
)

// Entry represents a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start under the given label. Intended as
// a deferred call: defer prof.Track(time.Now(), "commit").
func Track(start time.Time, label string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: label, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Summary aggregates the samples recorded under one label.
type Summary struct {
	Label    string
	Count    int
	MeanUS   float64
	MedianUS float64
	P95US    float64
}

// Summarize groups entries by label and reports mean, median and 95th
// percentile in microseconds. Labels are returned in sorted order.
func Summarize(entries []Entry) []Summary {
	byLabel := make(map[string][]float64)
	for _, e := range entries {
		byLabel[e.Label] = append(byLabel[e.Label], float64(e.Dur.Nanoseconds())/1e3)
	}
	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	out := make([]Summary, 0, len(labels))
	for _, label := range labels {
		samples := byLabel[label]
		mean, _ := stats.Mean(samples)
		median, _ := stats.Median(samples)
		p95, _ := stats.Percentile(samples, 95)
		out = append(out, Summary{
			Label:    label,
			Count:    len(samples),
			MeanUS:   mean,
			MedianUS: median,
			P95US:    p95,
		})
	}
	return out
}
