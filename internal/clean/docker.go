package clean

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// DockerPrune removes stopped containers, dangling images, unused volumes
// and build cache via the engine API. Each prune call failing is a per-item
// error; the remaining prunes still run.
func DockerPrune(ctx context.Context, dryRun bool) (Summary, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return Summary{Errors: 1}, err
	}
	defer cli.Close()

	if dryRun {
		// The engine has no prune preview; report what the survey measured.
		return Summary{}, nil
	}

	var s Summary
	none := filters.NewArgs()

	if rep, err := cli.ContainersPrune(ctx, none); err != nil {
		log.Warn("container prune failed", "err", err)
		s.Errors++
	} else {
		s.Freed += int64(rep.SpaceReclaimed)
		s.Deleted += len(rep.ContainersDeleted)
	}

	dangling := filters.NewArgs(filters.Arg("dangling", "true"))
	if rep, err := cli.ImagesPrune(ctx, dangling); err != nil {
		log.Warn("image prune failed", "err", err)
		s.Errors++
	} else {
		s.Freed += int64(rep.SpaceReclaimed)
		s.Deleted += len(rep.ImagesDeleted)
	}

	if rep, err := cli.VolumesPrune(ctx, none); err != nil {
		log.Warn("volume prune failed", "err", err)
		s.Errors++
	} else {
		s.Freed += int64(rep.SpaceReclaimed)
		s.Deleted += len(rep.VolumesDeleted)
	}

	if rep, err := cli.BuildCachePrune(ctx, types.BuildCachePruneOptions{}); err != nil {
		log.Warn("build cache prune failed", "err", err)
		s.Errors++
	} else {
		s.Freed += int64(rep.SpaceReclaimed)
		s.Deleted += len(rep.CachesDeleted)
	}

	return s, nil
}
