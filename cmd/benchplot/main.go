package main

// benchplot renders one or more sigmacli bench reports into a single HTML
// page: a grouped bar chart of mean move timings and a stacked view of
// the transcript size per preset.

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"SIS-Sigma/prof"
)

type proofSize struct {
	CommitmentBits uint64 `json:"CommitmentBits"`
	ChallengeBits  uint64 `json:"ChallengeBits"`
	ResponseBits   uint64 `json:"ResponseBits"`
	TotalBits      uint64 `json:"TotalBits"`
}

type report struct {
	Preset    string         `json:"preset"`
	N         int            `json:"n"`
	M         int            `json:"m"`
	QBits     int            `json:"q_bits"`
	Rounds    int            `json:"rounds"`
	Accepted  int            `json:"accepted"`
	Timings   []prof.Summary `json:"timings"`
	ProofSize proofSize      `json:"proof_size"`
}

var moveOrder = []string{"commit", "respond", "verify"}

func loadReport(path string) (report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return report{}, err
	}
	var r report
	if err := json.Unmarshal(b, &r); err != nil {
		return report{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func meanByMove(r report) []opts.BarData {
	byLabel := make(map[string]float64, len(r.Timings))
	for _, s := range r.Timings {
		byLabel[s.Label] = s.MeanUS
	}
	out := make([]opts.BarData, len(moveOrder))
	for i, label := range moveOrder {
		out[i] = opts.BarData{Value: byLabel[label]}
	}
	return out
}

func newTimingChart(reports []report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Move timings",
			Subtitle: "mean microseconds per protocol move",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(moveOrder)
	for _, r := range reports {
		name := fmt.Sprintf("%s (%dx%d, %d-bit q)", r.Preset, r.N, r.M, r.QBits)
		bar.AddSeries(name, meanByMove(r))
	}
	bar.SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	return bar
}

func newSizeChart(reports []report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Transcript size",
			Subtitle: "bits per move (u, c, z)",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	labels := make([]string, len(reports))
	commit := make([]opts.BarData, len(reports))
	challenge := make([]opts.BarData, len(reports))
	response := make([]opts.BarData, len(reports))
	for i, r := range reports {
		labels[i] = r.Preset
		commit[i] = opts.BarData{Value: r.ProofSize.CommitmentBits}
		challenge[i] = opts.BarData{Value: r.ProofSize.ChallengeBits}
		response[i] = opts.BarData{Value: r.ProofSize.ResponseBits}
	}
	bar.SetXAxis(labels).
		AddSeries("commitment u", commit).
		AddSeries("challenge c", challenge).
		AddSeries("response z", response)
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "transcript"}))
	return bar
}

func main() {
	out := flag.String("out", "sigma_bench.html", "output HTML path")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: benchplot [-out page.html] report.json [report.json ...]")
		os.Exit(2)
	}
	reports := make([]report, 0, flag.NArg())
	for _, path := range flag.Args() {
		r, err := loadReport(path)
		if err != nil {
			log.Fatalf("load report: %v", err)
		}
		reports = append(reports, r)
	}

	page := components.NewPage().SetPageTitle("Sigma protocol benchmarks")
	page.AddCharts(newTimingChart(reports), newSizeChart(reports))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create html: %v", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render html: %v", err)
	}
	fmt.Println("Chart page:", *out)
}
