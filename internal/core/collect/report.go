//go:build linux

package collect

import (
	"github.com/mostafa-wahied/portracker-core/internal/domain/collect"
	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/selector"
)

// assembleReport builds the final Report from the reconciled port list,
// the kernel-derived system info, the selected host collector's identity,
// and the platform phase's outcome.
func assembleReport(host selector.Collector, sysInfo collect.SystemInfo, reconciled []port.Record, platform platformOutcome) *collect.Report {
	report := &collect.Report{
		Platform:     host.PlatformID(),
		PlatformName: host.PlatformName(),
		SystemInfo:   sysInfo,
		Ports:        reconciled,
	}

	if !platform.ran {
		return report
	}

	if platform.err != nil {
		report.Error = "platform source unreachable: degraded to system+container data"
		return report
	}

	report.EnhancedFeaturesEnabled = true
	report.Applications = platform.result.Applications
	report.VMs = platform.result.VMs
	report.Ports = append(report.Ports, platform.result.Ports...)

	if platform.result.SystemInfo.Hostname != "" {
		report.SystemInfo.Hostname = platform.result.SystemInfo.Hostname
	}
	if platform.result.SystemInfo.Platform != "" {
		report.SystemInfo.Platform = platform.result.SystemInfo.Platform
	}
	if platform.result.SystemInfo.Uptime != 0 {
		report.SystemInfo.Uptime = platform.result.SystemInfo.Uptime
	}

	return report
}
