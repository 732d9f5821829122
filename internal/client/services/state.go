// Package services contains the sync engine: the data-access facade the
// rest of the application talks to, the queue-drain processor, the full-sync
// orchestrator and the connectivity monitor that schedules them.
package services

import (
	"sort"
	"sync"

	"github.com/mkazhan/teamkeeper/internal/client/models"
)

// TeamView is a team with its members attached, the shape read paths serve.
type TeamView struct {
	models.Team
	Members []models.Member `json:"members"`
}

// State is the in-memory cache of the mirror store that drives the UI.
// All mutation goes through the facade; readers get copies.
type State struct {
	mu      sync.RWMutex
	teams   map[string]models.Team
	members map[string]models.Member
}

func NewState() *State {
	return &State{
		teams:   map[string]models.Team{},
		members: map[string]models.Member{},
	}
}

// Replace swaps the whole cached dataset.
func (s *State) Replace(teams []models.Team, members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = make(map[string]models.Team, len(teams))
	for _, t := range teams {
		s.teams[t.ID] = t
	}
	s.members = make(map[string]models.Member, len(members))
	for _, m := range members {
		s.members[m.ID] = m
	}
}

func (s *State) PutTeam(t models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = t
}

// DeleteTeam removes the team and its members from the cache.
func (s *State) DeleteTeam(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, id)
	for mid, m := range s.members {
		if m.TeamID == id {
			delete(s.members, mid)
		}
	}
}

func (s *State) PutMember(m models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[m.ID] = m
}

func (s *State) DeleteMember(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
}

// Team returns one team with members, if present.
func (s *State) Team(id string) (TeamView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return TeamView{}, false
	}
	return TeamView{Team: t, Members: s.membersOfLocked(id)}, true
}

// Member returns one member, if present.
func (s *State) Member(id string) (models.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	return m, ok
}

// Teams returns every cached team with members, teams ordered by creation
// time and members by join date.
func (s *State) Teams() []TeamView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]TeamView, 0, len(s.teams))
	for id, t := range s.teams {
		result = append(result, TeamView{Team: t, Members: s.membersOfLocked(id)})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *State) membersOfLocked(teamID string) []models.Member {
	members := []models.Member{}
	for _, m := range s.members {
		if m.TeamID == teamID {
			members = append(members, m)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if !members[i].JoinedAt.Equal(members[j].JoinedAt) {
			return members[i].JoinedAt.Before(members[j].JoinedAt)
		}
		return members[i].ID < members[j].ID
	})
	return members
}
