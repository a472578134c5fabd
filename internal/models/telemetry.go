package models

// Series keys written by the synchronizer.
const (
	SeriesEnvironmentTemp = "environment_temp"
	SeriesBeanTemp        = "bean_temp"
	SeriesEvents          = "events"
	SeriesDeltaBeanTemp   = "delta_bean_temp"
	SeriesMainFan         = "main_fan"
	SeriesHeater          = "heater"
)

// Point is a single (x, y) sample in a series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MilestoneKind names a roast milestone.
type MilestoneKind string

const (
	MilestoneCharge       MilestoneKind = "charge"
	MilestoneTurningPoint MilestoneKind = "turning_point"
	MilestoneDryEnd       MilestoneKind = "dry_end"
	MilestoneFirstCrack   MilestoneKind = "first_crack"
	MilestoneSecondCrack  MilestoneKind = "second_crack"
	MilestoneDrop         MilestoneKind = "drop"
)

// Annotation is a labelled marker on a series.
type Annotation struct {
	SeriesKey string        `json:"series_key"`
	X         float64       `json:"x"`
	Label     string        `json:"label"`  // e.g. "C (205)"
	Detail    string        `json:"detail"` // e.g. "Charge"
	Kind      MilestoneKind `json:"milestone_kind"`
	RoastID   string        `json:"roast_id,omitempty"`
}

// ChartSnapshot is a copy of everything the sink holds.
type ChartSnapshot struct {
	Title       string                  `json:"title,omitempty"`
	Subtitle    string                  `json:"subtitle,omitempty"`
	Series      map[string][]Point      `json:"series"`
	Annotations map[string][]Annotation `json:"annotations"`
}
