package task

import (
	"time"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// PlatformStatsJob 平台统计快照任务，周期性输出平台整体数据
type PlatformStatsJob struct {
	machine *ledger.Machine
	config  *config.Config
}

// NewPlatformStatsJob 创建平台统计快照任务
func NewPlatformStatsJob(machine *ledger.Machine, cfg *config.Config) *PlatformStatsJob {
	return &PlatformStatsJob{
		machine: machine,
		config:  cfg,
	}
}

// GetName 获取任务名称
func (j *PlatformStatsJob) GetName() string {
	return "platform_stats_snapshot"
}

// GetSchedule 获取调度配置
func (j *PlatformStatsJob) GetSchedule() gocron.JobDefinition {
	// 统计快照频率低于巡检
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * 10 * time.Second)
}

// Execute 执行任务
func (j *PlatformStatsJob) Execute() {
	stats := j.machine.PlatformStats()
	logger.Info("Platform stats: campaigns=%v active=%v successful=%v failed=%v raised=%v contributions=%v vault=%d",
		stats["total_campaigns"], stats["active_campaigns"], stats["successful_campaigns"],
		stats["failed_campaigns"], stats["total_raised"], stats["total_contributions"],
		j.machine.VaultBalance())
}
