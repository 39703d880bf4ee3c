package platformapi

import (
	"strconv"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/collect"
	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
)

// appIDTargetLen matches container.Container.ShortID's display convention,
// applied here so platform and container owners are trimmed consistently.
const appIDTargetLen = 12

func convertSystemInfo(r systemInfoResult) collect.SystemInfo {
	return collect.SystemInfo{
		Hostname: r.Hostname,
		Platform: r.Platform,
		Uptime:   time.Duration(r.Uptime) * time.Second,
	}
}

func convertApps(apps []appDTO) []collect.Application {
	out := make([]collect.Application, 0, len(apps))
	for _, a := range apps {
		out = append(out, collect.Application{
			ID:    a.ID,
			Name:  a.Name,
			State: a.State,
		})
	}
	return out
}

func convertVMs(vms []vmDTO) []collect.VM {
	out := make([]collect.VM, 0, len(vms))
	for _, v := range vms {
		out = append(out, collect.VM{
			ID:    v.ID,
			Name:  v.Name,
			State: v.State,
		})
	}
	return out
}

// convertAppPorts flattens every app's reported port mappings into
// platform-sourced port.Records. A missing host_ip is normalized to the
// IPv4 wildcard via port.NormalizeHostIP, since "*" alone carries no
// address-family information.
func convertAppPorts(apps []appDTO) []port.Record {
	var out []port.Record
	for _, a := range apps {
		id := a.ID
		if len(id) > appIDTargetLen {
			id = id[:appIDTargetLen]
		}
		for _, p := range a.Ports {
			proto := port.ProtocolTCP
			if p.Protocol == string(port.ProtocolUDP) {
				proto = port.ProtocolUDP
			}
			hostIP := p.HostIP
			if hostIP == "" {
				hostIP = "*"
			}
			out = append(out, port.Record{
				Source:      port.SourcePlatform,
				Protocol:    proto,
				HostIP:      port.NormalizeHostIP(hostIP, proto),
				HostPort:    p.HostPort,
				Target:      targetString(p.ContainerPort),
				Owner:       a.Name,
				ContainerID: id,
				AppID:       id,
			})
		}
	}
	return out
}

func targetString(containerPort int) string {
	if containerPort == 0 {
		return ""
	}
	return strconv.Itoa(containerPort)
}
