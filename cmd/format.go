package cmd

import "fmt"

// formatSize renders a byte count with a binary unit suffix. A nil size
// (record stored without one) renders as a dash.
func formatSize(size *int64) string {
	if size == nil {
		return "-"
	}
	n := float64(*size)
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", *size)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KiB", n/1024)
	case n < 1024*1024*1024:
		return fmt.Sprintf("%.1f MiB", n/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GiB", n/(1024*1024*1024))
	}
}
