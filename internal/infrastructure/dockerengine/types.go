package dockerengine

import "time"

// containerSummaryDTO is the per-entry shape of GET /containers/json.
type containerSummaryDTO struct {
	ID      string            `json:"Id"`
	Names   []string          `json:"Names"`
	Image   string            `json:"Image"`
	Command string            `json:"Command"`
	Created int64             `json:"Created"` // unix seconds
	State   string            `json:"State"`
	Status  string            `json:"Status"`
	Labels  map[string]string `json:"Labels"`
	Ports   []portDTO         `json:"Ports"`
}

// portDTO is a single entry of a container summary's Ports array.
type portDTO struct {
	IP          string `json:"IP"`
	PrivatePort int    `json:"PrivatePort"`
	PublicPort  int    `json:"PublicPort"`
	Type        string `json:"Type"`
}

// inspectDTO is the shape of GET /containers/{id}/json.
type inspectDTO struct {
	ID      string `json:"Id"`
	Name    string `json:"Name"`
	Created string `json:"Created"` // RFC3339
	State   struct {
		Status string `json:"Status"`
		Pid    int    `json:"Pid"`
		Health *struct {
			Status        string `json:"Status"`
			FailingStreak int    `json:"FailingStreak"`
		} `json:"Health"`
	} `json:"State"`
	Config struct {
		Image        string                 `json:"Image"`
		Cmd          []string               `json:"Cmd"`
		ExposedPorts map[string]struct{}    `json:"ExposedPorts"`
		Labels       map[string]string      `json:"Labels"`
	} `json:"Config"`
	HostConfig struct {
		NetworkMode  string                              `json:"NetworkMode"`
		PortBindings map[string][]portBindingDTO `json:"PortBindings"`
	} `json:"HostConfig"`
}

// portBindingDTO is a single published binding within HostConfig.PortBindings.
type portBindingDTO struct {
	HostIP   string `json:"HostIp"`
	HostPort string `json:"HostPort"`
}

// topDTO is the shape of GET /containers/{id}/top, used to recover the
// container's process list when stats/inspect alone are insufficient.
type topDTO struct {
	Titles    []string   `json:"Titles"`
	Processes [][]string `json:"Processes"`
}

// statsDTO is the shape of one non-streaming GET /containers/{id}/stats
// sample; only the fields the CPU%/mem% computation needs are modeled.
type statsDTO struct {
	Read        time.Time `json:"read"`
	CPUStats    cpuStatsDTO `json:"cpu_stats"`
	PreCPUStats cpuStatsDTO `json:"precpu_stats"`
	MemoryStats struct {
		Usage uint64 `json:"usage"`
		Limit uint64 `json:"limit"`
	} `json:"memory_stats"`
}

// cpuStatsDTO is the CPU portion of a stats sample, present twice per
// response (current and previous) so callers can compute a delta.
type cpuStatsDTO struct {
	CPUUsage struct {
		TotalUsage uint64 `json:"total_usage"`
	} `json:"cpu_usage"`
	SystemCPUUsage uint64 `json:"system_cpu_usage"`
	OnlineCPUs     int    `json:"online_cpus"`
}

// versionDTO is the shape of GET /version.
type versionDTO struct {
	Version    string `json:"Version"`
	APIVersion string `json:"ApiVersion"`
}

// infoDTO is the shape of GET /info.
type infoDTO struct {
	ServerVersion string `json:"ServerVersion"`
	Containers    int    `json:"Containers"`
}
