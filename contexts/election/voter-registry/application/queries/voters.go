package queries

import (
	"context"
	"sort"

	"campusvote/contexts/election/voter-registry/domain/entities"
	"campusvote/contexts/election/voter-registry/ports"
)

type GroupBy string

const (
	GroupByNone        GroupBy = "none"
	GroupByYear        GroupBy = "year"
	GroupByYearSection GroupBy = "year-section"
)

// RegistryUseCase serves voter reads: filtered listings and dashboard
// groupings. Groups are derived on every query and never persisted.
type RegistryUseCase struct {
	Voters ports.VoterRepository
}

func (uc RegistryUseCase) ListVoters(ctx context.Context, filter ports.VoterFilter) ([]entities.Voter, error) {
	return uc.Voters.List(ctx, filter)
}

func (uc RegistryUseCase) GetVoter(ctx context.Context, voterID string) (entities.Voter, error) {
	return uc.Voters.Get(ctx, voterID)
}

// GroupVoters aggregates the filtered voter set. year-section groups by
// the (year, section, department) triple; year groups by year alone and
// reports the distinct sorted sections observed in each group.
func (uc RegistryUseCase) GroupVoters(
	ctx context.Context,
	filter ports.VoterFilter,
	groupBy GroupBy,
) ([]entities.VoterGroup, error) {
	voters, err := uc.Voters.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	switch groupBy {
	case GroupByYearSection:
		return groupByYearSection(voters), nil
	case GroupByYear:
		return groupByYear(voters), nil
	default:
		group := entities.VoterGroup{Voters: voters, TotalCount: len(voters)}
		for _, voter := range voters {
			if voter.HasVoted {
				group.VotedCount++
			}
		}
		return []entities.VoterGroup{group}, nil
	}
}

func groupByYearSection(voters []entities.Voter) []entities.VoterGroup {
	type key struct{ year, section, department string }
	byKey := make(map[key]*entities.VoterGroup)
	order := make([]key, 0)
	for _, voter := range voters {
		k := key{voter.Year, voter.Section, voter.Department}
		group, ok := byKey[k]
		if !ok {
			group = &entities.VoterGroup{
				Year:       voter.Year,
				Section:    voter.Section,
				Department: voter.Department,
			}
			byKey[k] = group
			order = append(order, k)
		}
		group.Voters = append(group.Voters, voter)
		group.TotalCount++
		if voter.HasVoted {
			group.VotedCount++
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		if order[i].section != order[j].section {
			return order[i].section < order[j].section
		}
		return order[i].department < order[j].department
	})
	groups := make([]entities.VoterGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, *byKey[k])
	}
	return groups
}

func groupByYear(voters []entities.Voter) []entities.VoterGroup {
	byYear := make(map[string]*entities.VoterGroup)
	sections := make(map[string]map[string]bool)
	years := make([]string, 0)
	for _, voter := range voters {
		group, ok := byYear[voter.Year]
		if !ok {
			group = &entities.VoterGroup{Year: voter.Year}
			byYear[voter.Year] = group
			sections[voter.Year] = make(map[string]bool)
			years = append(years, voter.Year)
		}
		group.Voters = append(group.Voters, voter)
		group.TotalCount++
		if voter.HasVoted {
			group.VotedCount++
		}
		if voter.Section != "" {
			sections[voter.Year][voter.Section] = true
		}
	}

	sort.Strings(years)
	groups := make([]entities.VoterGroup, 0, len(years))
	for _, year := range years {
		group := byYear[year]
		for section := range sections[year] {
			group.Sections = append(group.Sections, section)
		}
		sort.Strings(group.Sections)
		groups = append(groups, *group)
	}
	return groups
}
