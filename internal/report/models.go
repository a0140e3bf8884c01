package report

type (
	// Sequence is one input stream, unique by path and geometry.
	Sequence struct {
		ID       int64
		Path     string
		Width    int
		Height   int
		Format   string
		BitDepth int
	}

	// Run is one comparison of two sequences with one metric.
	Run struct {
		ID          int64
		ReferenceID int64
		DistortedID int64
		Metric      string
		Plane       int
	}

	Measurement struct {
		Frame int
		Value float64
	}

	// Summary aggregates the measurements of a run. Infinite values are
	// left out of the aggregates.
	Summary struct {
		RunID         int64
		ReferencePath string
		DistortedPath string
		Metric        string
		Plane         int
		Frames        int
		Mean          float64
		Min           float64
		Max           float64
	}
)
