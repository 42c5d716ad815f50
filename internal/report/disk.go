package report

import (
	"github.com/shirou/gopsutil/v4/disk"
)

// MountUsage is the usage snapshot of one mounted filesystem.
type MountUsage struct {
	Mountpoint  string
	Device      string
	Fstype      string
	Total       uint64
	Used        uint64
	Free        uint64
	UsedPercent float64
}

// pseudoFstypes are filesystem types excluded from the disk overview.
var pseudoFstypes = map[string]bool{
	"tmpfs":         true,
	"devtmpfs":      true,
	"squashfs":      true,
	"overlay":       true,
	"efivarfs":      true,
	"fuse.snapfuse": true,
}

// DiskOverview returns usage for every real mounted filesystem.
func DiskOverview() ([]MountUsage, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, err
	}

	var out []MountUsage
	for _, p := range parts {
		if pseudoFstypes[p.Fstype] {
			continue
		}
		u, err := disk.Usage(p.Mountpoint)
		if err != nil || u.Total == 0 {
			continue
		}
		out = append(out, MountUsage{
			Mountpoint:  p.Mountpoint,
			Device:      p.Device,
			Fstype:      p.Fstype,
			Total:       u.Total,
			Used:        u.Used,
			Free:        u.Free,
			UsedPercent: u.UsedPercent,
		})
	}
	return out, nil
}
