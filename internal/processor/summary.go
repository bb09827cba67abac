package processor

import "fmt"

// Summarize folds a result sequence into a Summary. The fold only sums
// counts and byte totals per outcome, so it is order-independent no matter
// how the workers interleaved.
func Summarize(results []FileResult) Summary {
	var s Summary
	for _, res := range results {
		switch res.Outcome {
		case OutcomeSuccess:
			s.Success++
			s.TotalOriginal += res.OriginalSize
			s.TotalOutput += res.OutputSize
		case OutcomeSkippedExists:
			s.SkippedExists++
		case OutcomeSkippedGrew:
			s.SkippedGrew++
		case OutcomeSkippedFiltered:
			s.SkippedFiltered++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}

// FormatSize renders a byte count in human-readable units.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	case n < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/(1024*1024*1024))
	}
}
