package ledger

import (
	"testing"
	"time"
)

func TestContributionPagination(t *testing.T) {
	m, _, _, _ := newTestMachine(250)
	id := mustCreate(t, m, 100000, 7)

	for i := int64(1); i <= 25; i++ {
		if err := m.Contribute(id, contributorA, i, ""); err != nil {
			t.Fatalf("contribute %d: %v", i, err)
		}
	}

	records, total, err := m.Contributions(id, 2, 10)
	if err != nil {
		t.Fatalf("contributions: %v", err)
	}
	if total != 25 {
		t.Fatalf("expected total 25, got %d", total)
	}
	if len(records) != 10 {
		t.Fatalf("expected page of 10, got %d", len(records))
	}
	if records[0].Amount != 11 || records[9].Amount != 20 {
		t.Fatalf("expected second page amounts 11..20, got %d..%d", records[0].Amount, records[9].Amount)
	}

	records, _, err = m.Contributions(id, 3, 10)
	if err != nil {
		t.Fatalf("contributions: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected last page of 5, got %d", len(records))
	}

	records, _, err = m.Contributions(id, 9, 10)
	if err != nil {
		t.Fatalf("contributions: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty page past the end, got %d", len(records))
	}

	if _, _, err := m.Contributions(99, 1, 10); err == nil {
		t.Fatalf("expected error for unknown campaign")
	}
}

func TestIndices(t *testing.T) {
	m, _, _, _ := newTestMachine(250)
	id1 := mustCreate(t, m, 1000, 7)
	id2 := mustCreate(t, m, 1000, 7)

	if err := m.Contribute(id1, contributorA, 10, ""); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if err := m.Contribute(id2, contributorA, 10, ""); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if err := m.Contribute(id2, contributorB, 10, ""); err != nil {
		t.Fatalf("contribute: %v", err)
	}

	if got := m.CampaignsByOrganizer(testOrganizer); len(got) != 2 || got[0] != id1 || got[1] != id2 {
		t.Fatalf("unexpected organizer index: %v", got)
	}
	if got := m.CampaignsByOrganizer(contributorA); len(got) != 0 {
		t.Fatalf("expected empty index for non-organizer, got %v", got)
	}
	if got := m.CampaignsByContributor(contributorA); len(got) != 2 {
		t.Fatalf("expected contributor A in both campaigns, got %v", got)
	}
	if got := m.CampaignsByContributor(contributorB); len(got) != 1 || got[0] != id2 {
		t.Fatalf("unexpected contributor B index: %v", got)
	}
}

func TestCampaignStats(t *testing.T) {
	m, _, _, clock := newTestMachine(250)
	id := mustCreate(t, m, 1000, 10)

	if err := m.Contribute(id, contributorA, 250, ""); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	clock.advance(4 * 24 * time.Hour)

	stats, err := m.CampaignStats(id)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats["raised_amount"] != int64(250) || stats["goal_amount"] != int64(1000) {
		t.Fatalf("unexpected amounts: %v", stats)
	}
	if stats["completion_percentage"] != float64(25) {
		t.Fatalf("expected 25%%, got %v", stats["completion_percentage"])
	}
	if stats["contributor_count"] != int64(1) || stats["contribution_count"] != int64(1) {
		t.Fatalf("unexpected counts: %v", stats)
	}
	if stats["goal_reached"] != false || stats["deadline_passed"] != false {
		t.Fatalf("unexpected flags: %v", stats)
	}
	if stats["remaining_time"] != (6 * 24 * time.Hour).String() {
		t.Fatalf("expected 6 days remaining, got %v", stats["remaining_time"])
	}

	clock.advance(7 * 24 * time.Hour)
	stats, _ = m.CampaignStats(id)
	if stats["deadline_passed"] != true {
		t.Fatalf("expected deadline passed: %v", stats)
	}
	if stats["remaining_time"] != time.Duration(0).String() {
		t.Fatalf("expected zero remaining time, got %v", stats["remaining_time"])
	}

	if _, err := m.CampaignStats(99); err == nil {
		t.Fatalf("expected error for unknown campaign")
	}
}

func TestPlatformStats(t *testing.T) {
	m, _, _, _ := newTestMachine(250)

	id1 := mustCreate(t, m, 100, 7)
	id2 := mustCreate(t, m, 1000, 7)
	id3 := mustCreate(t, m, 1000, 7)

	if err := m.Contribute(id1, contributorA, 100, ""); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if err := m.Contribute(id2, contributorA, 40, ""); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if err := m.Contribute(id2, contributorB, 30, ""); err != nil {
		t.Fatalf("contribute: %v", err)
	}
	if err := m.CancelCampaign(id3, testOrganizer); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	stats := m.PlatformStats()
	if stats["total_campaigns"] != int64(3) {
		t.Fatalf("expected 3 campaigns, got %v", stats["total_campaigns"])
	}
	if stats["successful_campaigns"] != int64(1) || stats["active_campaigns"] != int64(1) || stats["cancelled_campaigns"] != int64(1) {
		t.Fatalf("unexpected status breakdown: %v", stats)
	}
	if stats["total_raised"] != int64(170) {
		t.Fatalf("expected total raised 170, got %v", stats["total_raised"])
	}
	if stats["total_contributions"] != int64(3) {
		t.Fatalf("expected 3 log entries platform-wide, got %v", stats["total_contributions"])
	}

	if m.CampaignCount() != 3 {
		t.Fatalf("expected campaign count 3, got %d", m.CampaignCount())
	}
	if got := m.Campaigns(); len(got) != 3 || got[0].Id != id1 || got[2].Id != id3 {
		t.Fatalf("expected campaigns in creation order, got %v", got)
	}
}
