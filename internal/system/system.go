package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var animationExtensions = []string{".json", ".yaml", ".yml"}

// FindLatestAnimation returns the most recently modified animation file in dir.
func FindLatestAnimation(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !isAnimationFile(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no animation files found in %s", dir)
	}

	return latestFile, nil
}

func isAnimationFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range animationExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Stats is a snapshot of process and host memory use.
type Stats struct {
	ProcessRSS  uint64
	HostUsedPct float64
	HostTotal   uint64
}

// ReadStats samples memory use of the current process and the host.
func ReadStats() (Stats, error) {
	var s Stats

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return s, err
	}
	s.ProcessRSS = info.RSS

	vm, err := mem.VirtualMemory()
	if err != nil {
		return s, err
	}
	s.HostUsedPct = vm.UsedPercent
	s.HostTotal = vm.Total

	return s, nil
}

// Report formats a performance summary for a finished export.
func Report(build string, frames int, elapsed time.Duration, s Stats) string {
	fps := 0.0
	if elapsed > 0 {
		fps = float64(frames) / elapsed.Seconds()
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Frames: %d\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Process RSS: %.1f MiB\n"+
			"Host Memory: %.1f%% of %.1f GiB\n"+
			"----------------------------\n",
		build, frames, elapsed.Seconds(), fps,
		float64(s.ProcessRSS)/(1<<20),
		s.HostUsedPct, float64(s.HostTotal)/(1<<30),
	)
}
