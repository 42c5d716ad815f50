package report

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
)

// newDockerClient connects to the local engine via the standard environment
// (DOCKER_HOST etc.), negotiating the API version with whatever daemon
// answers, Docker or Podman's compatibility socket.
func newDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
}

// DockerUsage surveys container-engine disk consumption: image layers,
// container writable layers, volumes and build cache. A missing or
// unreachable daemon marks the category unavailable, not empty.
func DockerUsage(ctx context.Context) Category {
	c := Category{Name: "docker", Description: "Container engine resources"}

	cli, err := newDockerClient()
	if err != nil {
		c.Err = err
		return c
	}
	defer cli.Close()

	du, err := cli.DiskUsage(ctx, types.DiskUsageOptions{})
	if err != nil {
		c.Err = err
		return c
	}

	if du.LayersSize > 0 {
		c.Items = append(c.Items, Item{
			Path:        "images",
			Size:        du.LayersSize,
			Category:    c.Name,
			Description: "Image layers",
		})
	}

	var containersSize int64
	for _, ct := range du.Containers {
		containersSize += ct.SizeRw
	}
	if containersSize > 0 {
		c.Items = append(c.Items, Item{
			Path:        "containers",
			Size:        containersSize,
			Category:    c.Name,
			Description: "Container writable layers",
		})
	}

	var volumesSize int64
	for _, v := range du.Volumes {
		if v.UsageData != nil && v.UsageData.Size > 0 {
			volumesSize += v.UsageData.Size
		}
	}
	if volumesSize > 0 {
		c.Items = append(c.Items, Item{
			Path:        "volumes",
			Size:        volumesSize,
			Category:    c.Name,
			Description: "Volumes",
		})
	}

	var buildCacheSize int64
	for _, b := range du.BuildCache {
		if !b.InUse {
			buildCacheSize += b.Size
		}
	}
	if buildCacheSize > 0 {
		c.Items = append(c.Items, Item{
			Path:        "build-cache",
			Size:        buildCacheSize,
			Category:    c.Name,
			Description: "Build cache",
		})
	}

	log.Debug("docker usage", "layers", du.LayersSize,
		"containers", containersSize, "volumes", volumesSize, "buildcache", buildCacheSize)
	return total(c)
}
