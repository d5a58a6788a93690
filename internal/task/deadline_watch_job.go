package task

import (
	"time"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// DeadlineWatchJob 截止时间巡检任务。状态转移是惰性的（由退款/提取触发），
// 这里只巡检并记录已过截止时间仍为进行中的活动，供运营关注。
type DeadlineWatchJob struct {
	machine *ledger.Machine
	config  *config.Config
}

// NewDeadlineWatchJob 创建截止时间巡检任务
func NewDeadlineWatchJob(machine *ledger.Machine, cfg *config.Config) *DeadlineWatchJob {
	return &DeadlineWatchJob{
		machine: machine,
		config:  cfg,
	}
}

// GetName 获取任务名称
func (j *DeadlineWatchJob) GetName() string {
	return "deadline_watcher"
}

// GetSchedule 获取调度配置
func (j *DeadlineWatchJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *DeadlineWatchJob) Execute() {
	now := time.Now().UTC()

	expiredCount := 0
	for _, c := range j.machine.Campaigns() {
		if c.Status != ledger.CampaignStatusActive || now.Before(c.Deadline) {
			continue
		}
		expiredCount++
		// 仍为进行中且已过截止时间的活动必然未达标
		if c.RaisedAmount > 0 {
			logger.Info("Campaign %d past deadline, goal unmet: raised=%d goal=%d, awaiting refund claims or organizer withdrawal",
				c.Id, c.RaisedAmount, c.GoalAmount)
		} else {
			logger.Debug("Campaign %d past deadline with no contributions", c.Id)
		}
	}

	if expiredCount > 0 {
		logger.Info("Deadline watch: %d active campaigns past deadline", expiredCount)
	}
}
