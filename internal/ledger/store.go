package ledger

import "time"

// Store 账本状态容器。保存全部活动、出资日志、待退余额与派生索引，
// 自身不做任何加锁，所有访问都经由 Machine 的串行化点。
type Store struct {
	nextId        int64
	campaigns     map[int64]*Campaign
	order         []int64
	contributions map[int64][]Contribution
	pledges       map[int64]map[string]int64
	byOrganizer   map[string][]int64
	byContributor map[string][]int64

	// 平台配置与资金池
	owner        string
	feeBps       int64
	feeRecipient string
	vaultBalance int64
}

// NewStore 创建账本
func NewStore(owner string, feeBps int64, feeRecipient string) *Store {
	return &Store{
		nextId:        1,
		campaigns:     make(map[int64]*Campaign),
		contributions: make(map[int64][]Contribution),
		pledges:       make(map[int64]map[string]int64),
		byOrganizer:   make(map[string][]int64),
		byContributor: make(map[string][]int64),
		owner:         owner,
		feeBps:        feeBps,
		feeRecipient:  feeRecipient,
	}
}

// campaign 返回内部指针，仅供命令逻辑使用
func (s *Store) campaign(id int64) (*Campaign, error) {
	c, ok := s.campaigns[id]
	if !ok {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

// pledgeBalance 当前待退余额
func (s *Store) pledgeBalance(campaignId int64, contributor string) int64 {
	balances, ok := s.pledges[campaignId]
	if !ok {
		return 0
	}
	return balances[contributor]
}

// addPledge 增加待退余额，返回出资前余额是否为零
func (s *Store) addPledge(campaignId int64, contributor string, amount int64) bool {
	balances, ok := s.pledges[campaignId]
	if !ok {
		balances = make(map[string]int64)
		s.pledges[campaignId] = balances
	}
	isNew := balances[contributor] == 0
	balances[contributor] += amount
	return isNew
}

// clearPledge 清零待退余额，返回被清零的金额
func (s *Store) clearPledge(campaignId int64, contributor string) int64 {
	balances, ok := s.pledges[campaignId]
	if !ok {
		return 0
	}
	amount := balances[contributor]
	delete(balances, contributor)
	return amount
}

// indexContributor 记录出资人索引，同一活动至多出现一次
func (s *Store) indexContributor(contributor string, campaignId int64) {
	for _, id := range s.byContributor[contributor] {
		if id == campaignId {
			return
		}
	}
	s.byContributor[contributor] = append(s.byContributor[contributor], campaignId)
}

// GetCampaign 获取活动副本
func (s *Store) GetCampaign(id int64) (Campaign, error) {
	c, err := s.campaign(id)
	if err != nil {
		return Campaign{}, err
	}
	return *c, nil
}

// Campaigns 按创建顺序返回全部活动副本
func (s *Store) Campaigns() []Campaign {
	result := make([]Campaign, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.campaigns[id])
	}
	return result
}

// CampaignCount 活动总数
func (s *Store) CampaignCount() int64 {
	return int64(len(s.campaigns))
}

// Contributions 分页获取活动出资记录
func (s *Store) Contributions(campaignId int64, page, pageSize int) ([]Contribution, int64, error) {
	if _, err := s.campaign(campaignId); err != nil {
		return nil, 0, err
	}
	records := s.contributions[campaignId]
	total := int64(len(records))

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []Contribution{}, total, nil
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}

	out := make([]Contribution, end-start)
	copy(out, records[start:end])
	return out, total, nil
}

// CampaignsByOrganizer 发起人名下的活动ID列表
func (s *Store) CampaignsByOrganizer(organizer string) []int64 {
	ids := s.byOrganizer[organizer]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

// CampaignsByContributor 出资人参与过的活动ID列表
func (s *Store) CampaignsByContributor(contributor string) []int64 {
	ids := s.byContributor[contributor]
	out := make([]int64, len(ids))
	copy(out, ids)
	return out
}

// CampaignStats 获取活动统计信息
func (s *Store) CampaignStats(id int64, now time.Time) (map[string]interface{}, error) {
	c, err := s.campaign(id)
	if err != nil {
		return nil, err
	}

	// 计算完成百分比
	completionPercentage := float64(0)
	if c.GoalAmount > 0 {
		completionPercentage = float64(c.RaisedAmount) / float64(c.GoalAmount) * 100
	}

	// 计算剩余时间
	remainingTime := time.Duration(0)
	if c.Status == CampaignStatusActive && now.Before(c.Deadline) {
		remainingTime = c.Deadline.Sub(now)
	}

	return map[string]interface{}{
		"campaign_id":           c.Id,
		"raised_amount":         c.RaisedAmount,
		"goal_amount":           c.GoalAmount,
		"completion_percentage": completionPercentage,
		"contributor_count":     c.ContributorCount,
		"contribution_count":    int64(len(s.contributions[id])),
		"remaining_time":        remainingTime.String(),
		"goal_reached":          c.RaisedAmount >= c.GoalAmount,
		"deadline_passed":       !now.Before(c.Deadline),
		"status":                string(c.Status),
	}, nil
}

// PlatformStats 获取平台统计信息，按需对全部活动做 O(n) 聚合
func (s *Store) PlatformStats() map[string]interface{} {
	var totalRaised, totalContributions int64
	statusCounts := map[CampaignStatus]int64{}
	for id, c := range s.campaigns {
		totalRaised += c.RaisedAmount
		totalContributions += int64(len(s.contributions[id]))
		statusCounts[c.Status]++
	}

	return map[string]interface{}{
		"total_campaigns":      int64(len(s.campaigns)),
		"active_campaigns":     statusCounts[CampaignStatusActive],
		"successful_campaigns": statusCounts[CampaignStatusSuccessful],
		"failed_campaigns":     statusCounts[CampaignStatusFailed],
		"withdrawn_campaigns":  statusCounts[CampaignStatusWithdrawn],
		"cancelled_campaigns":  statusCounts[CampaignStatusCancelled],
		"total_raised":         totalRaised,
		"total_contributions":  totalContributions,
	}
}

// Owner 平台管理员地址
func (s *Store) Owner() string {
	return s.owner
}

// FeeBps 当前平台费率（基点）
func (s *Store) FeeBps() int64 {
	return s.feeBps
}

// FeeRecipient 平台费接收地址
func (s *Store) FeeRecipient() string {
	return s.feeRecipient
}

// VaultBalance 账本当前持有的全部可转出余额
func (s *Store) VaultBalance() int64 {
	return s.vaultBalance
}
