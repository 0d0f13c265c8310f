// Package report renders sweep and clustering results as HTML charts.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hupe1980/kmeans"
)

var palette = []string{
	"#d62728", "#2ca02c", "#1f77b4", "#17becf", "#e377c2",
	"#bcbd22", "#9467bd", "#ff7f0e", "#8c564b", "#f7b6d2",
}

// Elbow renders the dispersion of every sweep entry against k as a line
// chart. A detected elbow is named in the subtitle.
func Elbow(w io.Writer, scores kmeans.SweepResult) error {
	if len(scores) == 0 {
		return fmt.Errorf("report: no sweep entries")
	}

	subtitle := "no elbow detected"
	if k, ok := scores.Elbow(); ok {
		subtitle = fmt.Sprintf("elbow at k=%d", k)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Elbow Method", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{Name: "k"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "WCSS"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Type:  "png",
					Title: "elbow_method",
				},
			},
		}),
	)

	xs := make([]string, len(scores))
	items := make([]opts.LineData, len(scores))
	for i, e := range scores {
		xs[i] = strconv.Itoa(e.K)
		items[i] = opts.LineData{Name: xs[i], Value: e.Dispersion}
	}

	line.SetXAxis(xs).AddSeries("WCSS", items).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: true, Position: "top"}),
	)
	return line.Render(w)
}

// Scatter renders the members of every group and the centroids. Points are
// projected onto their first two coordinates; one-dimensional points are
// drawn on y=0.
func Scatter(w io.Writer, data kmeans.Dataset, res *kmeans.Result, axes ...string) error {
	if res == nil || len(res.Groups) == 0 {
		return fmt.Errorf("report: empty result")
	}

	xName, yName := "x", "y"
	if len(axes) > 0 {
		xName = axes[0]
	}
	if len(axes) > 1 {
		yName = axes[1]
	}

	es := charts.NewScatter()
	es.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("K-Means Clustering (K=%d)", res.K)}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{a}: {b}"}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside", XAxisIndex: 0},
			opts.DataZoom{Type: "inside", YAxisIndex: 0},
		),
	)

	for j, members := range res.Groups {
		items := make([]opts.ScatterData, 0, len(members))
		for _, idx := range members {
			if idx < 0 || idx >= len(data) {
				return fmt.Errorf("report: group %d holds index %d outside the dataset", j, idx)
			}
			items = append(items, opts.ScatterData{Name: strconv.Itoa(idx), Value: project(data[idx])})
		}
		es.AddSeries(fmt.Sprintf("Cluster %d", j+1), items,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette[j%len(palette)]}))
	}

	centroids := make([]opts.ScatterData, len(res.Centroids))
	for j, c := range res.Centroids {
		centroids[j] = opts.ScatterData{Name: strconv.Itoa(j + 1), Value: project(c), Symbol: "diamond", SymbolSize: 18}
	}
	es.AddSeries("Centroids", centroids, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))

	return es.Render(w)
}

func project(p kmeans.Point) []float64 {
	switch len(p) {
	case 0:
		return []float64{0, 0}
	case 1:
		return []float64{p[0], 0}
	default:
		return []float64{p[0], p[1]}
	}
}
