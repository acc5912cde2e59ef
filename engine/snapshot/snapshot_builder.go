package snapshot

import "image/color"

// SnapshotterOption is a functional option for configuring a Snapshotter.
type SnapshotterOption func(*snapshotter)

// WithSize sets the output edge length in pixels. Values < 1 are ignored.
//
// Parameters:
//   - size: the output width and height
//
// Returns:
//   - SnapshotterOption: option function to apply
func WithSize(size int) SnapshotterOption {
	return func(s *snapshotter) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithSupersample sets the per-axis supersampling factor. 1 disables supersampling; values < 1 are ignored.
//
// Parameters:
//   - factor: the supersampling factor
//
// Returns:
//   - SnapshotterOption: option function to apply
func WithSupersample(factor int) SnapshotterOption {
	return func(s *snapshotter) {
		if factor > 0 {
			s.supersample = factor
		}
	}
}

// WithBackground sets the color of pixels no triangle covers.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SnapshotterOption: option function to apply
func WithBackground(c color.NRGBA) SnapshotterOption {
	return func(s *snapshotter) {
		s.background = c
	}
}

// WithWorkers sets how many row bands are rasterized in parallel (minimum 1).
//
// Parameters:
//   - n: the number of workers
//
// Returns:
//   - SnapshotterOption: option function to apply
func WithWorkers(n int) SnapshotterOption {
	return func(s *snapshotter) {
		s.workers = max(n, 1)
	}
}
