package lloyd

// Dispersion returns the within-group sum of squared distances of every
// member point to its group's centroid.
func Dispersion(data [][]float64, groups [][]int, centroids [][]float64) (float64, error) {
	if len(groups) != len(centroids) {
		return 0, invalidParameter("%d groups but %d centroids", len(groups), len(centroids))
	}

	var total float64
	for j, members := range groups {
		for _, idx := range members {
			if idx < 0 || idx >= len(data) {
				return 0, invalidParameter("group %d holds index %d outside [0, %d)", j, idx, len(data))
			}
			d, err := groupDistance(data[idx], centroids[j])
			if err != nil {
				return 0, err
			}
			total += d
		}
	}
	return total, nil
}
