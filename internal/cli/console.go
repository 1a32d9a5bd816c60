// Package cli holds the console helpers every command shares:
// confirmation prompts, throughput formatting and report timestamps.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Confirm asks the user to approve an action. It returns immediately
// without prompting when assumeYes is set or when stdin is not a
// terminal, so scripted runs never block on input.
func Confirm(prompt string, defaultYes, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	if defaultYes {
		fmt.Printf("%s [Y/n]: ", prompt)
	} else {
		fmt.Printf("%s [y/N]: ", prompt)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return defaultYes
	}
	return answer == "y" || answer == "yes"
}

// FormatRate renders a bytes-per-second figure with a readable unit.
func FormatRate(bytesPerSec float64) string {
	switch {
	case bytesPerSec >= 1<<30:
		return fmt.Sprintf("%.1f GB/s", bytesPerSec/(1<<30))
	case bytesPerSec >= 1<<20:
		return fmt.Sprintf("%.1f MB/s", bytesPerSec/(1<<20))
	case bytesPerSec >= 1<<10:
		return fmt.Sprintf("%.1f KB/s", bytesPerSec/(1<<10))
	default:
		return fmt.Sprintf("%.0f B/s", bytesPerSec)
	}
}

// Rate divides bytes by elapsed, guarding the zero-duration case that
// shows up when tiny runs finish inside the clock resolution.
func Rate(bytes int64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(bytes) / secs
}

// Timestamp renders the compact prefix used for generated report and
// listing filenames.
func Timestamp(t time.Time) string {
	return t.Format("20060102_150405")
}
