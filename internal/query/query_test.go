// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package query

import (
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/agentboard/internal/models"
)

func ptr(f float64) *float64 { return &f }

func names(items []models.Agent) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Username
	}
	return out
}

func sampleRoster() []models.Agent {
	return []models.Agent{
		{Username: "alice", Score: 50, City: "Lisbon", Likes: models.Int64(3), Followers: models.Int64(100), Rank: 1},
		{Username: "bob", Score: 30, City: "Berlin", Likes: models.Int64(9), Rank: 2},
		{Username: "carol", Score: 50, City: "lisbon", Reposts: models.Int64(4), Rank: 3},
		{Username: "dave", Score: 10, Followers: models.Int64(100), Rank: 4},
		{Username: "erin", Score: 20, City: "Oslo", Enriched: true, Detail: &models.Profile{Bio: "Loves Lisbon trams"}, Rank: 5},
	}
}

func TestRun_Filters(t *testing.T) {
	tests := []struct {
		name   string
		filter models.Filter
		want   []string
	}{
		{
			name:   "no filters sorts by score desc, ties keep order",
			filter: models.Filter{Limit: 10},
			want:   []string{"alice", "carol", "bob", "erin", "dave"},
		},
		{
			name:   "search matches username case-insensitively",
			filter: models.Filter{Search: "AL", Limit: 10},
			want:   []string{"alice"},
		},
		{
			name:   "search matches city and enriched bio",
			filter: models.Filter{Search: "lisbon", Limit: 10},
			want:   []string{"alice", "carol", "erin"},
		},
		{
			name:   "min equals max",
			filter: models.Filter{MinScore: ptr(50), MaxScore: ptr(50), Limit: 10},
			want:   []string{"alice", "carol"},
		},
		{
			name:   "score range inclusive",
			filter: models.Filter{MinScore: ptr(20), MaxScore: ptr(30), Limit: 10},
			want:   []string{"bob", "erin"},
		},
		{
			name:   "city exact and case-insensitive",
			filter: models.Filter{City: "LISBON", Limit: 10},
			want:   []string{"alice", "carol"},
		},
		{
			name:   "city is not a substring match",
			filter: models.Filter{City: "Lis", Limit: 10},
			want:   []string{},
		},
		{
			name:   "filters combine with AND",
			filter: models.Filter{City: "lisbon", MaxScore: ptr(40), Limit: 10},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Run(sampleRoster(), tt.filter)
			if got := names(page.Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("items = %v, want %v", got, tt.want)
			}
			if page.TotalCount != len(tt.want) {
				t.Errorf("TotalCount = %d, want %d", page.TotalCount, len(tt.want))
			}
		})
	}
}

func TestRun_BioSearchIgnoresRosterOnlyRecords(t *testing.T) {
	roster := []models.Agent{
		{Username: "x", Detail: &models.Profile{Bio: "secret"}}, // not enriched
	}
	if page := Run(roster, models.Filter{Search: "secret", Limit: 5}); page.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", page.TotalCount)
	}
}

func TestRun_SortKeys(t *testing.T) {
	tests := []struct {
		key  models.SortKey
		want []string
	}{
		{models.SortScore, []string{"alice", "carol", "bob", "erin", "dave"}},
		{models.SortScoreAsc, []string{"dave", "erin", "bob", "alice", "carol"}},
		{models.SortFollowers, []string{"alice", "dave", "bob", "carol", "erin"}},
		{models.SortLikes, []string{"bob", "alice", "carol", "dave", "erin"}},
		{models.SortReposts, []string{"carol", "alice", "bob", "dave", "erin"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			page := Run(sampleRoster(), models.Filter{Sort: tt.key, Limit: 10})
			if got := names(page.Items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRun_ScoreAscending(t *testing.T) {
	roster := []models.Agent{
		{Username: "a", Score: 30},
		{Username: "b", Score: 10},
		{Username: "c", Score: 20},
	}

	page := Run(roster, models.Filter{Sort: models.SortScoreAsc, Limit: 10})

	scores := make([]float64, len(page.Items))
	for i := range page.Items {
		scores[i] = page.Items[i].Score
	}
	if !reflect.DeepEqual(scores, []float64{10, 20, 30}) {
		t.Errorf("scores = %v, want [10 20 30]", scores)
	}
	if page.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", page.TotalCount)
	}
}

func TestRun_Pagination(t *testing.T) {
	roster := []models.Agent{
		{Username: "a1", Score: 5},
		{Username: "a2", Score: 4},
		{Username: "a3", Score: 3},
		{Username: "a4", Score: 2},
		{Username: "a5", Score: 1},
	}

	tests := []struct {
		name      string
		page      int
		limit     int
		wantItems []string
		wantPage  int
		wantPages int
	}{
		{"second page", 2, 2, []string{"a3", "a4"}, 2, 3},
		{"last partial page", 3, 2, []string{"a5"}, 3, 3},
		{"page zero clamps to one", 0, 2, []string{"a1", "a2"}, 1, 3},
		{"negative page clamps to one", -4, 2, []string{"a1", "a2"}, 1, 3},
		{"past the end", 9, 2, []string{}, 9, 3},
		{"one page holds all", 1, 100, []string{"a1", "a2", "a3", "a4", "a5"}, 1, 1},
		{"huge page does not overflow", 1<<62 + 1, 2, []string{}, 1<<62 + 1, 3},
		{"huge page with product wrapping to zero", 1<<62 + 1, 4, []string{}, 1<<62 + 1, 2},
		{"max int page", math.MaxInt, 2, []string{}, math.MaxInt, 3},
		{"max int limit", 1, math.MaxInt, []string{"a1", "a2", "a3", "a4", "a5"}, 1, 1},
		{"max int limit past the end", 2, math.MaxInt, []string{}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Run(roster, models.Filter{Page: tt.page, Limit: tt.limit})
			if got := names(page.Items); !reflect.DeepEqual(got, tt.wantItems) {
				t.Errorf("items = %v, want %v", got, tt.wantItems)
			}
			if page.TotalCount != 5 {
				t.Errorf("TotalCount = %d, want 5", page.TotalCount)
			}
			if page.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", page.Page, tt.wantPage)
			}
			if page.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", page.TotalPages, tt.wantPages)
			}
			if page.Items == nil {
				t.Error("Items must be non-nil")
			}
		})
	}
}

func TestRun_LimitZeroReturnsFullSet(t *testing.T) {
	roster := sampleRoster()

	page := Run(roster, models.Filter{Search: "nobody", Sort: models.SortScoreAsc, Page: 7, Limit: 0})

	if got := names(page.Items); !reflect.DeepEqual(got, names(roster)) {
		t.Errorf("items = %v, want full roster in upstream order", got)
	}
	if page.TotalCount != len(roster) || page.Limit != 0 || page.Page != 1 || page.TotalPages != 1 {
		t.Errorf("page meta = %+v", page)
	}

	empty := Run(nil, models.Filter{})
	if empty.TotalCount != 0 || empty.TotalPages != 0 || empty.Items == nil {
		t.Errorf("empty full set = %+v", empty)
	}
}

func TestRun_Idempotent(t *testing.T) {
	roster := sampleRoster()
	f := models.Filter{Search: "a", Sort: models.SortLikes, Page: 1, Limit: 3}

	first := Run(roster, f)
	second := Run(roster, f)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Run not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestRun_DoesNotMutateOrAliasInput(t *testing.T) {
	roster := sampleRoster()
	original := sampleRoster()

	page := Run(roster, models.Filter{Sort: models.SortScoreAsc, Limit: 10})
	if !reflect.DeepEqual(roster, original) {
		t.Fatal("input roster was reordered or modified")
	}

	page.Items[0].Username = "changed"
	*page.Items[3].Likes = 1000 // alice
	if !reflect.DeepEqual(roster, original) {
		t.Error("output items alias the input roster")
	}

	full := Run(roster, models.Filter{})
	full.Items[4].Detail.Bio = "changed"
	if roster[4].Detail.Bio != "Loves Lisbon trams" {
		t.Error("full-set items alias the input roster")
	}
}

func TestRun_NegativeLimitClampsToOne(t *testing.T) {
	roster := []models.Agent{{Username: "a1", Score: 2}, {Username: "a2", Score: 1}}

	page := Run(roster, models.Filter{Page: 2, Limit: -3})

	if got := names(page.Items); !reflect.DeepEqual(got, []string{"a2"}) {
		t.Errorf("items = %v, want [a2]", got)
	}
	if page.Limit != 1 || page.TotalPages != 2 {
		t.Errorf("Limit/TotalPages = %d/%d, want 1/2", page.Limit, page.TotalPages)
	}
}
