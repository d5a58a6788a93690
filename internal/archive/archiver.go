package archive

import (
	"context"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Archiver 领域事件归档器。实现 ledger.EventSink，把事件先放入队列，
// 再由协程池写入数据库，不阻塞命令提交路径。
type Archiver struct {
	db     *gorm.DB
	pool   *ants.Pool
	queue  chan ledger.Event
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New 创建归档器
func New(db *gorm.DB, cfg config.ArchiveConfig) (*Archiver, error) {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Archiver{
		db:     db,
		pool:   pool,
		queue:  make(chan ledger.Event, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}, nil
}

// Append 实现 ledger.EventSink。队列满时丢弃并告警，不能反压命令路径。
func (a *Archiver) Append(event ledger.Event) {
	select {
	case a.queue <- event:
	default:
		logger.Warn("Archive queue full, dropping event: type=%s campaign=%d", event.Type, event.CampaignId)
	}
}

// Start 启动归档循环
func (a *Archiver) Start() {
	logger.Info("Starting event archiver")
	go a.loop()
}

// Stop 停止归档，排空队列中剩余事件
func (a *Archiver) Stop() {
	logger.Info("Stopping event archiver")
	a.cancel()
	<-a.done
	a.pool.Release()
}

// loop 归档循环
func (a *Archiver) loop() {
	defer close(a.done)
	for {
		select {
		case <-a.ctx.Done():
			// 排空剩余事件
			for {
				select {
				case event := <-a.queue:
					a.archive(event)
				default:
					return
				}
			}
		case event := <-a.queue:
			e := event
			if err := a.pool.Submit(func() { a.archive(e) }); err != nil {
				logger.Error("Failed to submit archive task: %v", err)
			}
		}
	}
}

// archive 归档一条事件及其派生记录
func (a *Archiver) archive(event ledger.Event) {
	row, err := toEventModel(event)
	if err != nil {
		logger.Error("Failed to encode event: type=%s campaign=%d: %v", event.Type, event.CampaignId, err)
		return
	}
	if err := a.db.Create(&row).Error; err != nil {
		logger.Error("Failed to archive event %s: %v", row.EventId, err)
		return
	}

	if err := a.processDerived(event, row.EventId); err != nil {
		logger.Error("Failed to archive derived record for event %s: %v", row.EventId, err)
	}
}

// processDerived 按事件类型写入派生业务记录
func (a *Archiver) processDerived(event ledger.Event, eventId string) error {
	switch event.Type {
	case ledger.EventContributionMade:
		return a.db.Create(toContributeRecord(event, eventId)).Error
	case ledger.EventRefundClaimed:
		return a.db.Create(toRefundRecord(event, eventId)).Error
	case ledger.EventFundsWithdrawn:
		return a.db.Create(toSettlementRecord(event, eventId)).Error
	default:
		return nil
	}
}
