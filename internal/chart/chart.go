// Package chart renders the report charts as PNG files.
package chart

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/naka-gawa/github-issue-report/internal/domain"
)

// Palette is assigned to slices in input order.
var Palette = []drawing.Color{
	drawing.ColorFromHex("FF6B6B"),
	drawing.ColorFromHex("4ECDC4"),
	drawing.ColorFromHex("45B7D1"),
	drawing.ColorFromHex("FFA07A"),
	drawing.ColorFromHex("98D8C8"),
	drawing.ColorFromHex("F7DC6F"),
}

// MaxBars caps the number of contributors drawn in the bar chart.
const MaxBars = 10

// Set holds the paths of rendered charts. An empty path means the chart is absent.
type Set struct {
	Status       string
	Category     string
	Contributors string
}

// Paths returns the paths of the charts that exist.
func (s Set) Paths() []string {
	var paths []string
	for _, p := range []string{s.Status, s.Category, s.Contributors} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// Remove deletes every chart file. Errors are ignored.
func (s Set) Remove() {
	for _, p := range s.Paths() {
		_ = os.Remove(p)
	}
}

// Slice is one labelled value of a pie chart.
type Slice struct {
	Label string
	Value int
}

// Renderer draws charts into a directory.
type Renderer struct {
	logger *log.Logger
}

// NewRenderer creates a new Renderer instance.
func NewRenderer(logger *log.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderAll draws the status pie, the category pie and the contributor bar chart into dir,
// one after another. Charts whose data is empty are skipped.
// On error every chart written so far is removed.
func (r *Renderer) RenderAll(ctx context.Context, summary *domain.Summary, contributors []*domain.ContributorStats, dir string) (Set, error) {
	var set Set
	jobs := []func() error{
		func() (err error) {
			set.Status, err = r.Pie(filepath.Join(dir, "status_chart.png"), []Slice{
				{Label: "Open", Value: summary.Open},
				{Label: "Closed", Value: summary.Closed},
			})
			return err
		},
		func() (err error) {
			set.Category, err = r.Pie(filepath.Join(dir, "type_chart.png"), []Slice{
				{Label: "Bugs", Value: summary.Bugs},
				{Label: "Enhancements", Value: summary.Enhancements},
				{Label: "Other", Value: summary.Other},
			})
			return err
		},
		func() (err error) {
			set.Contributors, err = r.Bar(filepath.Join(dir, "contributor_chart.png"), contributors)
			return err
		},
	}

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			set.Remove()
			return Set{}, err
		}
		if err := job(); err != nil {
			set.Remove()
			return Set{}, err
		}
	}
	return set, nil
}

// Pie renders a pie chart to path and returns path.
// It returns an empty path and writes nothing when the values sum to zero.
func (r *Renderer) Pie(path string, slices []Slice) (string, error) {
	total := 0
	for _, s := range slices {
		total += s.Value
	}
	if total <= 0 {
		r.logger.Printf("Skipping %s: no data.\n", filepath.Base(path))
		return "", nil
	}

	values := make([]gochart.Value, 0, len(slices))
	for i, s := range slices {
		style := gochart.Style{StrokeWidth: 0.5, StrokeColor: drawing.ColorWhite}
		if i < len(Palette) {
			style.FillColor = Palette[i]
		}
		values = append(values, gochart.Value{Label: s.Label, Value: float64(s.Value), Style: style})
	}

	pie := gochart.PieChart{
		Width:  400,
		Height: 200,
		Values: values,
	}
	if err := writePNG(path, pie.Render); err != nil {
		return "", err
	}
	r.logger.Printf("Rendered %s.\n", filepath.Base(path))
	return path, nil
}

// Bar renders the issue totals of the first MaxBars contributors.
// It returns an empty path when there are no contributors.
func (r *Renderer) Bar(path string, contributors []*domain.ContributorStats) (string, error) {
	if len(contributors) == 0 {
		r.logger.Printf("Skipping %s: no contributors.\n", filepath.Base(path))
		return "", nil
	}
	if len(contributors) > MaxBars {
		contributors = contributors[:MaxBars]
	}

	bars := make([]gochart.Value, 0, len(contributors))
	maxTotal := 0
	for _, c := range contributors {
		bars = append(bars, gochart.Value{
			Label: c.Login,
			Value: float64(c.Total),
			Style: gochart.Style{FillColor: Palette[1], StrokeColor: Palette[1]},
		})
		if c.Total > maxTotal {
			maxTotal = c.Total
		}
	}

	bc := gochart.BarChart{
		Width:    480,
		Height:   300,
		BarWidth: 24,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 40},
		},
		XAxis: gochart.Style{
			FontSize:            8,
			TextRotationDegrees: 45,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(maxTotal) * 1.2},
		},
		Bars: bars,
	}
	if err := writePNG(path, bc.Render); err != nil {
		return "", err
	}
	r.logger.Printf("Rendered %s.\n", filepath.Base(path))
	return path, nil
}

func writePNG(path string, render func(gochart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	if err := render(gochart.PNG, f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to render chart %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write chart file %s: %w", path, err)
	}
	return nil
}
