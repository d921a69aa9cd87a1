package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// InitResourceLimits raises the open-file limit: the streaming record source
// opens the archive once per fetched record, and long hindcasts mean many
// short-lived handles.
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not read the open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Could not raise the open-file limit: %v", err)
	}
}

// FindLatestArchive returns the most recently modified .ww3a file in dir.
func FindLatestArchive(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(strings.ToLower(f.Name()), ".ww3a") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no hindcast archives found in %s", dir)
	}
	return latestFile, nil
}

// GetBestH264Encoder probes ffmpeg for hardware H.264 encoders, preferring
// VideoToolbox, then NVENC, then software x264.
func GetBestH264Encoder() string {
	encoders := []string{"h264_videotoolbox", "h264_nvenc"}

	for _, enc := range encoders {
		cmd := exec.Command("ffmpeg", "-encoders")
		out, err := cmd.CombinedOutput()
		if err == nil && strings.Contains(string(out), enc) {
			return enc
		}
	}
	return "libx264"
}

// MemoryReport returns a one-line summary of process RSS and system memory
// pressure for the performance report.
func MemoryReport() string {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return "memory: unavailable"
	}
	mi, err := proc.MemoryInfo()
	if err != nil || mi == nil {
		return "memory: unavailable"
	}

	line := fmt.Sprintf("RSS: %.1f MiB", float64(mi.RSS)/(1<<20))
	if vm, err := mem.VirtualMemory(); err == nil {
		line += fmt.Sprintf(" | System: %.1f%% of %.1f GiB used", vm.UsedPercent, float64(vm.Total)/(1<<30))
	}
	return line
}
