package grid

// DefaultAnomalyPercent is the share of the busiest days flagged as anomalies.
const DefaultAnomalyPercent = 10.0

// DetectAnomalies flags cells whose count reaches the (100-percent)th
// percentile. Ties at the threshold are anomalies; a zero threshold flags
// nothing so an empty calendar never lights up.
func DetectAnomalies(cells []Cell, percent float64) []AnomalyCell {
	threshold := Percentile(counts(cells), 100-percent)

	out := make([]AnomalyCell, len(cells))
	for i, c := range cells {
		anomaly := threshold > 0 && float64(c.Count) >= threshold
		out[i] = AnomalyCell{Cell: c, IsAnomaly: anomaly}
		if anomaly {
			out[i].AnomalyIntensity = c.Mass
		}
	}
	return out
}

// Plain wraps cells with no anomaly information.
func Plain(cells []Cell) []AnomalyCell {
	out := make([]AnomalyCell, len(cells))
	for i, c := range cells {
		out[i] = AnomalyCell{Cell: c}
	}
	return out
}

// Anomalies returns the indices of flagged cells in input order.
func Anomalies(cells []AnomalyCell) []int {
	var idx []int
	for i, c := range cells {
		if c.IsAnomaly {
			idx = append(idx, i)
		}
	}
	return idx
}
