package ledger

import (
	"strings"
	"sync"
	"time"
)

// TransferPort 外部转账端口。转账只在全部记账状态提交之后调用，
// 失败不会回滚记账（见 TransferError）。
type TransferPort interface {
	Transfer(to string, amount int64) error
}

// Machine 活动记账状态机。持有唯一的串行化点：
// 变更命令持写锁逐条执行，只读查询持读锁并发执行。
// 状态机自身不读取系统时钟，当前时间由 now 在命令入口取一次。
type Machine struct {
	mu      sync.RWMutex
	store   *Store
	port    TransferPort
	sink    EventSink
	now     func() time.Time
	minGoal int64
}

// NewMachine 创建状态机。now 为空时使用 time.Now。
func NewMachine(store *Store, port TransferPort, sink EventSink, minGoal int64, now func() time.Time) *Machine {
	if sink == nil {
		sink = NopSink{}
	}
	if now == nil {
		now = time.Now
	}
	return &Machine{
		store:   store,
		port:    port,
		sink:    sink,
		now:     now,
		minGoal: minGoal,
	}
}

// CreateCampaign 创建活动，返回新活动ID
func (m *Machine) CreateCampaign(organizer string, input CreateCampaignInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()

	if isZeroAddress(organizer) {
		return 0, ErrInvalidAddress
	}
	normalized, err := normalizeCreateCampaignInput(input, m.minGoal)
	if err != nil {
		return 0, err
	}

	id := m.store.nextId
	m.store.nextId++

	campaign := &Campaign{
		Id:          id,
		Organizer:   organizer,
		Title:       normalized.Title,
		Description: normalized.Description,
		ImageURL:    normalized.ImageURL,
		GoalAmount:  normalized.GoalAmount,
		Deadline:    now.Add(time.Duration(normalized.DurationDays) * 24 * time.Hour),
		CreatedAt:   now,
		Status:      CampaignStatusActive,
	}
	m.store.campaigns[id] = campaign
	m.store.order = append(m.store.order, id)
	m.store.byOrganizer[organizer] = append(m.store.byOrganizer[organizer], id)

	m.emit(Event{
		Type:       EventCampaignCreated,
		CampaignId: id,
		Actor:      organizer,
		Amount:     normalized.GoalAmount,
		CreatedAt:  now,
		Data: map[string]interface{}{
			"title":    normalized.Title,
			"deadline": campaign.Deadline,
		},
	})
	return id, nil
}

// Contribute 向活动出资。出资的价值转移与本次调用是同一个原子单元，
// 由调用方保证；这里只做记账。
func (m *Machine) Contribute(campaignId int64, contributor string, amount int64, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()

	c, err := m.store.campaign(campaignId)
	if err != nil {
		return err
	}
	if c.Status != CampaignStatusActive {
		return ErrCampaignNotActive
	}
	if !now.Before(c.Deadline) {
		return ErrDeadlinePassed
	}
	if amount <= 0 {
		return ErrZeroAmount
	}
	if contributor == c.Organizer {
		return ErrSelfContribution
	}

	// isNew 必须在余额变更之前判定
	isNew := m.store.addPledge(campaignId, contributor, amount)
	c.RaisedAmount += amount
	m.store.vaultBalance += amount
	if isNew {
		c.ContributorCount++
		m.store.indexContributor(contributor, campaignId)
	}
	m.store.contributions[campaignId] = append(m.store.contributions[campaignId], Contribution{
		Contributor: contributor,
		Amount:      amount,
		Message:     message,
		CreatedAt:   now,
	})

	m.emit(Event{
		Type:       EventContributionMade,
		CampaignId: campaignId,
		Actor:      contributor,
		Amount:     amount,
		CreatedAt:  now,
		Data:       map[string]interface{}{"message": message},
	})

	// 达标转移只发生在越过目标的那一笔出资上，且仅一次
	if c.RaisedAmount >= c.GoalAmount {
		c.Status = CampaignStatusSuccessful
		m.emit(Event{
			Type:       EventCampaignSuccessful,
			CampaignId: campaignId,
			Actor:      contributor,
			Amount:     c.RaisedAmount,
			CreatedAt:  now,
		})
	}
	return nil
}

// WithdrawFunds 发起人提取资金。达标后可随时提取；未达标但已过截止时间
// 且有出资时也可提取。记账先提交，外部转账最后执行。
func (m *Machine) WithdrawFunds(campaignId int64, caller string) (organizerAmount, platformFee int64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()

	c, err := m.store.campaign(campaignId)
	if err != nil {
		return 0, 0, err
	}
	if caller != c.Organizer {
		return 0, 0, ErrUnauthorized
	}
	if c.FundsWithdrawn {
		return 0, 0, ErrAlreadyWithdrawn
	}
	// 一旦有出资人退款，提取永久关闭（提取与退款互斥）
	if c.RefundsStarted {
		return 0, 0, ErrRefundsStarted
	}
	switch {
	case c.Status == CampaignStatusSuccessful:
	case c.Status == CampaignStatusActive && !now.Before(c.Deadline) && c.RaisedAmount > 0:
		c.Status = CampaignStatusWithdrawn
	default:
		return 0, 0, ErrNotWithdrawable
	}

	c.FundsWithdrawn = true
	platformFee = c.RaisedAmount * m.store.feeBps / FeeDenominator
	organizerAmount = c.RaisedAmount - platformFee
	m.store.vaultBalance -= c.RaisedAmount

	m.emit(Event{
		Type:       EventFundsWithdrawn,
		CampaignId: campaignId,
		Actor:      caller,
		Amount:     organizerAmount,
		CreatedAt:  now,
		Data: map[string]interface{}{
			"platform_fee":  platformFee,
			"fee_recipient": m.store.feeRecipient,
		},
	})

	// 记账已提交，以下转账失败不回滚
	if platformFee > 0 {
		if terr := m.port.Transfer(m.store.feeRecipient, platformFee); terr != nil {
			return organizerAmount, platformFee, &TransferError{
				CampaignId: campaignId, To: m.store.feeRecipient, Amount: platformFee, Err: terr,
			}
		}
	}
	if terr := m.port.Transfer(c.Organizer, organizerAmount); terr != nil {
		return organizerAmount, platformFee, &TransferError{
			CampaignId: campaignId, To: c.Organizer, Amount: organizerAmount, Err: terr,
		}
	}
	return organizerAmount, platformFee, nil
}

// ClaimRefund 出资人认领退款。逐人认领，没有整体结算步骤；
// 第一笔退款把仍为进行中的活动置为失败。
func (m *Machine) ClaimRefund(campaignId int64, caller string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()

	c, err := m.store.campaign(campaignId)
	if err != nil {
		return 0, err
	}
	if now.Before(c.Deadline) {
		return 0, ErrStillActive
	}
	if c.Status == CampaignStatusSuccessful || c.RaisedAmount >= c.GoalAmount {
		return 0, ErrCampaignSucceeded
	}
	if c.FundsWithdrawn {
		return 0, ErrAlreadyWithdrawn
	}
	amount := m.store.pledgeBalance(campaignId, caller)
	if amount == 0 {
		return 0, ErrNoContribution
	}

	if c.Status == CampaignStatusActive {
		c.Status = CampaignStatusFailed
	}
	c.RefundsStarted = true
	m.store.clearPledge(campaignId, caller)
	c.RaisedAmount -= amount
	c.ContributorCount--
	m.store.vaultBalance -= amount

	m.emit(Event{
		Type:       EventRefundClaimed,
		CampaignId: campaignId,
		Actor:      caller,
		Amount:     amount,
		CreatedAt:  now,
	})

	if terr := m.port.Transfer(caller, amount); terr != nil {
		return amount, &TransferError{CampaignId: campaignId, To: caller, Amount: amount, Err: terr}
	}
	return amount, nil
}

// CancelCampaign 发起人取消尚无出资的活动
func (m *Machine) CancelCampaign(campaignId int64, caller string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()

	c, err := m.store.campaign(campaignId)
	if err != nil {
		return err
	}
	if caller != c.Organizer {
		return ErrUnauthorized
	}
	if c.Status != CampaignStatusActive {
		return ErrCampaignNotActive
	}
	if c.RaisedAmount > 0 {
		return ErrHasContributions
	}

	c.Status = CampaignStatusCancelled
	m.emit(Event{
		Type:       EventCampaignCancelled,
		CampaignId: campaignId,
		Actor:      caller,
		CreatedAt:  now,
	})
	return nil
}

// SetPlatformFee 管理员调整平台费率
func (m *Machine) SetPlatformFee(caller string, newBps int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()

	if caller != m.store.owner {
		return ErrUnauthorized
	}
	if newBps < 0 || newBps > MaxFeeBps {
		return ErrFeeTooHigh
	}

	old := m.store.feeBps
	m.store.feeBps = newBps
	m.emit(Event{
		Type:      EventPlatformFeeUpdated,
		Actor:     caller,
		CreatedAt: now,
		Data: map[string]interface{}{
			"old_fee_bps": old,
			"new_fee_bps": newBps,
		},
	})
	return nil
}

// SetFeeRecipient 管理员调整平台费接收地址
func (m *Machine) SetFeeRecipient(caller, recipient string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.store.owner {
		return ErrUnauthorized
	}
	if isZeroAddress(recipient) {
		return ErrInvalidAddress
	}
	m.store.feeRecipient = recipient
	return nil
}

// EmergencyWithdraw 把账本持有的全部余额转给管理员。
// 绕过所有单活动记账，活动内的 raised/余额记录会与实际可转出价值脱节，
// 只用于滞留资金的应急处置。
func (m *Machine) EmergencyWithdraw(caller string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.store.owner {
		return 0, ErrUnauthorized
	}
	amount := m.store.vaultBalance
	if amount == 0 {
		return 0, ErrNoBalance
	}
	m.store.vaultBalance = 0

	if terr := m.port.Transfer(m.store.owner, amount); terr != nil {
		return amount, &TransferError{To: m.store.owner, Amount: amount, Err: terr}
	}
	return amount, nil
}

// emit 在写锁内追加事件，保证提交顺序
func (m *Machine) emit(event Event) {
	m.sink.Append(event)
}

// 以下为只读查询，持读锁并发执行

// GetCampaign 获取活动
func (m *Machine) GetCampaign(id int64) (Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.GetCampaign(id)
}

// Campaigns 按创建顺序获取全部活动
func (m *Machine) Campaigns() []Campaign {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Campaigns()
}

// CampaignCount 活动总数
func (m *Machine) CampaignCount() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.CampaignCount()
}

// Contributions 分页获取活动出资记录
func (m *Machine) Contributions(campaignId int64, page, pageSize int) ([]Contribution, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Contributions(campaignId, page, pageSize)
}

// PledgeBalance 当前待退余额
func (m *Machine) PledgeBalance(campaignId int64, contributor string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.pledgeBalance(campaignId, contributor)
}

// CampaignsByOrganizer 发起人名下的活动ID列表
func (m *Machine) CampaignsByOrganizer(organizer string) []int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.CampaignsByOrganizer(organizer)
}

// CampaignsByContributor 出资人参与过的活动ID列表
func (m *Machine) CampaignsByContributor(contributor string) []int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.CampaignsByContributor(contributor)
}

// CampaignStats 获取活动统计信息
func (m *Machine) CampaignStats(id int64) (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.CampaignStats(id, m.now().UTC())
}

// PlatformStats 获取平台统计信息
func (m *Machine) PlatformStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.PlatformStats()
}

// FeeBps 当前平台费率（基点）
func (m *Machine) FeeBps() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.feeBps
}

// FeeRecipient 平台费接收地址
func (m *Machine) FeeRecipient() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.feeRecipient
}

// VaultBalance 账本当前持有的全部可转出余额
func (m *Machine) VaultBalance() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.vaultBalance
}

// isZeroAddress 空地址或全零地址
func isZeroAddress(addr string) bool {
	addr = strings.TrimPrefix(strings.TrimSpace(addr), "0x")
	if addr == "" {
		return true
	}
	for _, r := range addr {
		if r != '0' {
			return false
		}
	}
	return true
}
