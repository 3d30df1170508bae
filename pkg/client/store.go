package client

import (
	"context"
	"sync"
)

// Store is an in-memory mirror of server-side lists with optimistic
// mutation: local state changes immediately, the API call follows, and
// the previous snapshot is restored when the call fails. Last write
// wins; there is no cross-client conflict resolution.
type Store struct {
	client *Client

	mu            sync.Mutex
	projects      []Project
	statusOptions []StatusOption
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Refresh reloads both cached lists from the server.
func (s *Store) Refresh(ctx context.Context) error {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		return err
	}
	options, err := s.client.ListStatusOptions(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.projects = projects
	s.statusOptions = options
	s.mu.Unlock()
	return nil
}

// Projects returns a copy of the cached project list.
func (s *Store) Projects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// StatusOptions returns a copy of the cached status option list.
func (s *Store) StatusOptions() []StatusOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StatusOption, len(s.statusOptions))
	copy(out, s.statusOptions)
	return out
}

// ToggleFavorite flips a project's favorite flag locally, then
// confirms with the server, rolling back on failure.
func (s *Store) ToggleFavorite(ctx context.Context, projectID string) error {
	s.mu.Lock()
	snapshot := make([]Project, len(s.projects))
	copy(snapshot, s.projects)
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i].IsFavorited = !s.projects[i].IsFavorited
		}
	}
	s.mu.Unlock()

	favorited, err := s.client.ToggleProjectFavorite(ctx, projectID)
	if err != nil {
		s.mu.Lock()
		s.projects = snapshot
		s.mu.Unlock()
		return err
	}

	// Reconcile with the authoritative answer in case another client
	// toggled between our snapshot and the call.
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i].IsFavorited = favorited
		}
	}
	s.mu.Unlock()
	return nil
}

// UpdateProject applies new fields locally, then confirms with the
// server, rolling back on failure.
func (s *Store) UpdateProject(ctx context.Context, projectID, name, description string) error {
	s.mu.Lock()
	snapshot := make([]Project, len(s.projects))
	copy(snapshot, s.projects)
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i].Name = name
			s.projects[i].Description = description
		}
	}
	s.mu.Unlock()

	updated, err := s.client.UpdateProject(ctx, projectID, name, description)
	if err != nil {
		s.mu.Lock()
		s.projects = snapshot
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			s.projects[i] = *updated
		}
	}
	s.mu.Unlock()
	return nil
}

// DeleteStatusOption removes the option locally, then confirms with
// the server, restoring the list on failure.
func (s *Store) DeleteStatusOption(ctx context.Context, optionID string) error {
	s.mu.Lock()
	snapshot := make([]StatusOption, len(s.statusOptions))
	copy(snapshot, s.statusOptions)
	filtered := s.statusOptions[:0]
	for _, opt := range s.statusOptions {
		if opt.ID != optionID {
			filtered = append(filtered, opt)
		}
	}
	s.statusOptions = filtered
	s.mu.Unlock()

	if err := s.client.DeleteStatusOption(ctx, optionID); err != nil {
		s.mu.Lock()
		s.statusOptions = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// CreateStatusOption inserts the option locally with a placeholder ID,
// then replaces it with the server row, removing it on failure.
func (s *Store) CreateStatusOption(ctx context.Context, option StatusOption) error {
	const placeholderID = "pending"
	option.ID = placeholderID

	s.mu.Lock()
	s.statusOptions = append(s.statusOptions, option)
	s.mu.Unlock()

	created, err := s.client.CreateStatusOption(ctx, option)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.statusOptions {
		if s.statusOptions[i].ID == placeholderID {
			if err != nil {
				s.statusOptions = append(s.statusOptions[:i], s.statusOptions[i+1:]...)
			} else {
				s.statusOptions[i] = *created
			}
			break
		}
	}
	return err
}
