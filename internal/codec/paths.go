package codec

import (
	"fmt"
	"path/filepath"
	"time"
)

// GeneratePath creates a timestamped animation filename in dir.
func GeneratePath(dir string, format Format) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("animation_%s.%s", timestamp, format))
}
