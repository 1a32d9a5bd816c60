package system

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IsCriticalSystemPath reports whether path is a system root that
// destructive tooling must never touch. The match is against the cleaned
// absolute path, not its children, so /home is guarded while
// /home/user/scratch is fair game.
func IsCriticalSystemPath(path string) bool {
	critical := []string{
		"/", "/etc", "/bin", "/sbin", "/usr", "/System", "/Library", "/Applications",
		"/home", "/Users", "/var", "/opt", "/private", "/root",
	}
	winCritical := []string{
		"C:/", "C:/Windows", "C:/Program Files", "C:/Program Files (x86)", "C:/ProgramData",
	}

	clean := filepath.ToSlash(filepath.Clean(path))
	for _, guard := range critical {
		if strings.EqualFold(clean, guard) {
			return true
		}
	}
	if len(clean) == 3 && clean[1] == ':' && clean[2] == '/' {
		return true // drive root like C:/
	}
	for _, guard := range winCritical {
		if strings.EqualFold(clean, guard) {
			return true
		}
	}
	return false
}

// CheckRootSafety resolves root and rejects critical system paths unless
// unsafe mode was requested explicitly.
func CheckRootSafety(root string, unsafe bool) error {
	if unsafe {
		fmt.Println("⚠️  UNSAFE mode enabled: system directory guard rails disabled")
		return nil
	}

	absPath, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve target directory: %w", err)
	}

	if IsCriticalSystemPath(absPath) {
		return fmt.Errorf("refusing to operate on critical system path %s (use -unsafe to override)", absPath)
	}

	return nil
}
