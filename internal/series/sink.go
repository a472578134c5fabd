// Package series holds the append-only time series and annotations drawn on
// the roast charts.
package series

import (
	"sync"

	"roast_monitor/internal/models"
)

// Sink is an append-only container of named series and annotations.
// A single writer appends; any number of readers take snapshots.
type Sink struct {
	mu          sync.RWMutex
	series      map[string][]models.Point
	annotations map[string][]models.Annotation
	title       string
	subtitle    string

	// OnOutOfOrder, if set, is called when a point's x is lower than the
	// previous x of its series. The point is appended regardless.
	OnOutOfOrder func(seriesKey string, prevX, x float64)
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{
		series:      make(map[string][]models.Point),
		annotations: make(map[string][]models.Annotation),
	}
}

// AppendPoint appends (x, y) to seriesKey and reports whether x was in order.
// The point is visible to readers once AppendPoint returns.
func (s *Sink) AppendPoint(seriesKey string, x, y float64) bool {
	s.mu.Lock()
	pts := s.series[seriesKey]
	inOrder := len(pts) == 0 || x >= pts[len(pts)-1].X
	var prevX float64
	if !inOrder {
		prevX = pts[len(pts)-1].X
	}
	s.series[seriesKey] = append(pts, models.Point{X: x, Y: y})
	s.mu.Unlock()

	if !inOrder && s.OnOutOfOrder != nil {
		s.OnOutOfOrder(seriesKey, prevX, x)
	}
	return inOrder
}

// AppendAnnotation appends a to seriesKey.
func (s *Sink) AppendAnnotation(seriesKey string, a models.Annotation) {
	a.SeriesKey = seriesKey
	s.mu.Lock()
	s.annotations[seriesKey] = append(s.annotations[seriesKey], a)
	s.mu.Unlock()
}

// SetTitle sets the chart title and subtitle.
func (s *Sink) SetTitle(title, subtitle string) {
	s.mu.Lock()
	s.title, s.subtitle = title, subtitle
	s.mu.Unlock()
}

// Clear drops every series, annotation and the title.
func (s *Sink) Clear() {
	s.mu.Lock()
	s.series = make(map[string][]models.Point)
	s.annotations = make(map[string][]models.Annotation)
	s.title, s.subtitle = "", ""
	s.mu.Unlock()
}

// Points returns a copy of one series.
func (s *Sink) Points(seriesKey string) []models.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Point(nil), s.series[seriesKey]...)
}

// Annotations returns a copy of the annotations on one series.
func (s *Sink) Annotations(seriesKey string) []models.Annotation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Annotation(nil), s.annotations[seriesKey]...)
}

// Len returns the number of points in seriesKey.
func (s *Sink) Len(seriesKey string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series[seriesKey])
}

// Snapshot returns a deep copy of the sink.
func (s *Sink) Snapshot() models.ChartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := models.ChartSnapshot{
		Title:       s.title,
		Subtitle:    s.subtitle,
		Series:      make(map[string][]models.Point, len(s.series)),
		Annotations: make(map[string][]models.Annotation, len(s.annotations)),
	}
	for k, pts := range s.series {
		out.Series[k] = append([]models.Point(nil), pts...)
	}
	for k, as := range s.annotations {
		out.Annotations[k] = append([]models.Annotation(nil), as...)
	}
	return out
}
