package cli

import (
	"fmt"

	"clientctl/internal/grid"
)

// FormatError formats an error message for CLI output
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}

// FormatTotalRows is the filtered row indicator shown under the grid.
func FormatTotalRows(visible int) string {
	return fmt.Sprintf("Total Rows: %d", visible)
}

// FormatPageInfo describes the current page with one-based numbers.
func FormatPageInfo(info grid.PageInfo) string {
	if info.Filtered == 0 {
		if info.Total > 0 {
			return fmt.Sprintf("Page 1 of 1 (no matching rows, %d total)", info.Total)
		}
		return "Page 1 of 1 (no rows)"
	}
	msg := fmt.Sprintf("Page %d of %d (rows %d-%d of %d", info.Page+1, info.Pages, info.Start+1, info.End, info.Filtered)
	if info.Filtered != info.Total {
		msg += fmt.Sprintf(", filtered from %d", info.Total)
	}
	return msg + ")"
}
