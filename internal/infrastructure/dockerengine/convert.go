package dockerengine

import (
	"strconv"
	"strings"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
)

// summaryToDomain converts a /containers/json entry to the domain model,
// stripping the container engine's leading "/" from names.
//
// Params:
//   - s: the decoded summary entry.
//
// Returns:
//   - *container.Container: the converted container, with port bindings
//     taken only from the summary's published ports (entries without a
//     public port are skipped; summaries never carry ExposedPorts, so
//     callers needing them inspect).
func summaryToDomain(s containerSummaryDTO) *container.Container {
	c := container.New(s.ID)
	c.Image = s.Image
	c.Command = s.Command
	c.Created = time.Unix(s.Created, 0).UTC()
	c.State = s.State

	for _, name := range s.Names {
		c.Names = append(c.Names, strings.TrimPrefix(name, "/"))
	}

	for _, p := range s.Ports {
		if p.PublicPort == 0 {
			continue
		}
		key := strconv.Itoa(p.PrivatePort) + "/" + p.Type
		hostIP := p.IP
		if hostIP == "" {
			hostIP = "0.0.0.0"
		}
		c.PortBindings[key] = append(c.PortBindings[key], container.PortBinding{
			HostIP:   hostIP,
			HostPort: p.PublicPort,
		})
	}

	return c
}

// inspectToDomain converts a /containers/{id}/json response to the domain
// model, including the full port-binding/exposed-port extraction: a
// missing HostIp defaults to "0.0.0.0", and exposed-but-unpublished ports
// are retained as ExposedPorts entries with no PortBindings counterpart.
//
// Params:
//   - dto: the decoded inspect response.
//
// Returns:
//   - *container.Container: the fully converted container.
func inspectToDomain(dto inspectDTO) *container.Container {
	c := container.New(dto.ID)
	c.Names = []string{strings.TrimPrefix(dto.Name, "/")}
	c.Image = dto.Config.Image
	if len(dto.Config.Cmd) > 0 {
		c.Command = strings.Join(dto.Config.Cmd, " ")
	}
	if created, err := time.Parse(time.RFC3339Nano, dto.Created); err == nil {
		c.Created = created
	}
	c.State = dto.State.Status
	c.NetworkMode = dto.HostConfig.NetworkMode
	c.PID = dto.State.Pid
	if dto.State.Health != nil {
		c.Health = dto.State.Health.Status
	}

	for key := range dto.Config.ExposedPorts {
		c.ExposedPorts[key] = struct{}{}
	}

	for key, bindings := range dto.HostConfig.PortBindings {
		for _, b := range bindings {
			hostPort, err := strconv.Atoi(b.HostPort)
			if err != nil {
				continue
			}
			hostIP := b.HostIP
			if hostIP == "" {
				hostIP = "0.0.0.0"
			}
			c.PortBindings[key] = append(c.PortBindings[key], container.PortBinding{
				HostIP:   hostIP,
				HostPort: hostPort,
			})
		}
	}

	return c
}

// statsToDomain computes CPU%/mem% from a single stats sample's current
// and previous CPU snapshots, following the standard
// (cpuDelta/systemDelta) × onlineCPUs × 100 formula. Any zero or missing
// factor yields a nil percentage rather than a misleading zero.
//
// Params:
//   - dto: the decoded stats response.
//
// Returns:
//   - container.Stats: the derived usage snapshot.
func statsToDomain(dto statsDTO) container.Stats {
	stats := container.Stats{
		MemUsageBytes: dto.MemoryStats.Usage,
		MemLimitBytes: dto.MemoryStats.Limit,
	}

	cpuDelta := float64(dto.CPUStats.CPUUsage.TotalUsage) - float64(dto.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(dto.CPUStats.SystemCPUUsage) - float64(dto.PreCPUStats.SystemCPUUsage)
	onlineCPUs := dto.CPUStats.OnlineCPUs

	if cpuDelta > 0 && systemDelta > 0 && onlineCPUs > 0 {
		pct := (cpuDelta / systemDelta) * float64(onlineCPUs) * 100
		stats.CPUPercent = &pct
	}

	if dto.MemoryStats.Limit > 0 {
		pct := float64(dto.MemoryStats.Usage) / float64(dto.MemoryStats.Limit) * 100
		stats.MemPercent = &pct
	}

	return stats
}
