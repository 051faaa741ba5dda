package grid

// Rows is the number of weekdays in a contribution column.
const Rows = 7

// Day is one entry of a contribution calendar.
type Day struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Cell is a day placed on the week-major grid with its normalized mass.
type Cell struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Count int     `json:"count"`
	Level int     `json:"level"`
	Mass  float64 `json:"mass"`
}

// AnomalyCell is a Cell after anomaly classification.
type AnomalyCell struct {
	Cell
	IsAnomaly        bool    `json:"is_anomaly"`
	AnomalyIntensity float64 `json:"anomaly_intensity"`
}

// WarpedCell carries the pixel origin of a cell and where the field moved it.
type WarpedCell struct {
	AnomalyCell
	OriginalX float64 `json:"original_x"`
	OriginalY float64 `json:"original_y"`
	WarpedX   float64 `json:"warped_x"`
	WarpedY   float64 `json:"warped_y"`
}

// Displacement returns the offset between the warped and original position.
func (w WarpedCell) Displacement() (dx, dy float64) {
	return w.WarpedX - w.OriginalX, w.WarpedY - w.OriginalY
}

// Point is a position in grid or pixel space, depending on the caller.
type Point struct {
	X, Y float64
}

// Position maps a day index to its grid column and row.
func Position(i int) (col, row int) {
	return i / Rows, i % Rows
}
