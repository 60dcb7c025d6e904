// Package chart draws the close price of a stock as a PNG time series.
package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/date"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no historical data available")

// Direction of a series over its whole range.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// color of the line, the fill is a lighter version of it.
func (d Direction) color() drawing.Color {
	if d == Down {
		return chart.ColorRed
	}
	return chart.ColorGreen
}

// Trend is Up when the last value is greater than or equal to the first one.
func Trend(h *date.History[float64]) Direction {
	if h.Len() == 0 {
		return Up
	}
	_, first := h.First()
	_, last := h.Latest()
	if last < first {
		return Down
	}
	return Up
}

// Series returns the history of field in observations, in date order.
// Observations without the field are skipped.
func Series(observations []stockgrid.Observation, field string) *date.History[float64] {
	h := new(date.History[float64])
	for _, o := range observations {
		if v, ok := o.Get(field); ok {
			h.Append(o.Date, v.InexactFloat64())
		}
	}
	return h
}

// Resample keeps the last value of each period of h, dated at the start of
// the period. Daily returns h.
func Resample(h *date.History[float64], period date.Period) *date.History[float64] {
	if period == date.Daily {
		return h
	}
	out := new(date.History[float64])
	for day, v := range h.Values() {
		out.Append(day.StartOf(period), v)
	}
	return out
}

// Options of a chart.
type Options struct {
	Title  string
	Width  int // defaults to 800
	Height int // defaults to 400
}

// Render draws h as a filled line, green for an Up trend and red otherwise.
func Render(w io.Writer, h *date.History[float64], opts Options) error {
	if h.Len() == 0 {
		return ErrNoData
	}
	var xs []time.Time
	var ys []float64
	for day, v := range h.Values() {
		xs = append(xs, day.Time())
		ys = append(ys, v)
	}
	if len(xs) == 1 {
		// a time axis needs two distinct values
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	col := Trend(h).color()
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      chart.YAxis{Name: "Stock Price"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Close",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: col,
					StrokeWidth: 2,
					FillColor:   col.WithAlpha(64),
				},
			},
		},
	}
	if ch.Width == 0 {
		ch.Width = 800
	}
	if ch.Height == 0 {
		ch.Height = 400
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
