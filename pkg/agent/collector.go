/*
 * Copyright 2025 FleetWatch Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package agent

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gopsnet "github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/fleetwatch/fleetwatch/pkg/logger"
	"github.com/fleetwatch/fleetwatch/pkg/models"
)

const bytesPerMB = 1024 * 1024

// Collector reads process, connection, and interface telemetry from the
// local host. Per-process read failures are skipped, not fatal: processes
// exit between enumeration and inspection all the time.
type Collector struct {
	logger logger.Logger
}

// NewCollector builds a host telemetry collector.
func NewCollector(log logger.Logger) *Collector {
	return &Collector{logger: log.WithComponent("collector")}
}

// HostInfo reads the identifying facts reported during pairing.
func (c *Collector) HostInfo(ctx context.Context, agentVersion string) (*models.HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.HostInfo{
		Hostname:     info.Hostname,
		OSType:       info.OS,
		OSVersion:    info.PlatformVersion,
		AgentVersion: agentVersion,
	}

	if ifaces, err := gopsnet.InterfacesWithContext(ctx); err == nil {
		for _, iface := range ifaces {
			if iface.HardwareAddr == "" || len(iface.Addrs) == 0 {
				continue
			}

			result.MACAddress = iface.HardwareAddr
			result.IPAddress = iface.Addrs[0].Addr

			break
		}
	}

	return result, nil
}

// Processes enumerates running processes as telemetry reports.
func (c *Collector) Processes(ctx context.Context) ([]models.ProcessReport, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]models.ProcessReport, 0, len(procs))

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}

		report := models.ProcessReport{
			PID:  p.Pid,
			Name: name,
		}

		if path, err := p.ExeWithContext(ctx); err == nil {
			report.Path = path
		}

		if cmdline, err := p.CmdlineWithContext(ctx); err == nil {
			report.CommandLine = cmdline
		}

		if username, err := p.UsernameWithContext(ctx); err == nil {
			report.UserName = username
		}

		if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
			report.CPUPercent = &cpu
		}

		if memInfo, err := p.MemoryInfoWithContext(ctx); err == nil && memInfo != nil {
			memMB := float64(memInfo.RSS) / bytesPerMB
			report.MemoryMB = &memMB
		}

		if createMS, err := p.CreateTimeWithContext(ctx); err == nil && createMS > 0 {
			started := time.UnixMilli(createMS).UTC()
			report.StartedAt = &started
		}

		reports = append(reports, report)
	}

	return reports, nil
}

// Connections snapshots inet sockets with a known owning process. Sockets
// without a PID cannot be attributed and are dropped here rather than at the
// server.
func (c *Collector) Connections(ctx context.Context) ([]models.ConnectionReport, error) {
	conns, err := gopsnet.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return nil, err
	}

	reports := make([]models.ConnectionReport, 0, len(conns))

	for _, conn := range conns {
		if conn.Pid == 0 || conn.Raddr.IP == "" {
			continue
		}

		reports = append(reports, models.ConnectionReport{
			ProcessPID: conn.Pid,
			LocalIP:    conn.Laddr.IP,
			LocalPort:  int32(conn.Laddr.Port),
			RemoteIP:   conn.Raddr.IP,
			RemotePort: int32(conn.Raddr.Port),
			Protocol:   socketProtocol(conn.Type),
			State:      conn.Status,
		})
	}

	return reports, nil
}

// NetworkStats reads aggregate interface counters for one sample.
func (c *Collector) NetworkStats(ctx context.Context) (*models.NetworkStatsReport, error) {
	counters, err := gopsnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	if len(counters) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	total := counters[0]

	bytesIn := int64(total.BytesRecv)
	bytesOut := int64(total.BytesSent)
	packetsIn := int64(total.PacketsRecv)
	packetsOut := int64(total.PacketsSent)

	return &models.NetworkStatsReport{
		Timestamp:  &now,
		BytesIn:    &bytesIn,
		BytesOut:   &bytesOut,
		PacketsIn:  &packetsIn,
		PacketsOut: &packetsOut,
	}, nil
}

// SystemStats reads the coarse host stats attached to heartbeats.
func (c *Collector) SystemStats(ctx context.Context) map[string]interface{} {
	stats := make(map[string]interface{})

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats["memory_used_percent"] = vm.UsedPercent
		stats["memory_total_bytes"] = vm.Total
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		stats["uptime_seconds"] = info.Uptime
		stats["procs"] = info.Procs
	}

	return stats
}

func socketProtocol(socketType uint32) string {
	switch socketType {
	case 1: // SOCK_STREAM
		return "tcp"
	case 2: // SOCK_DGRAM
		return "udp"
	default:
		return "unknown"
	}
}
