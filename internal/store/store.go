// Package store keeps the planner collections in memory as the authoritative
// read path, persisting whole-collection snapshots to the blob store on every
// replace.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"tally/internal/kv"
	"tally/internal/model"
)

// Blob names, one per collection.
const (
	blobTasks    = "tasks"
	blobMeetings = "meetings"
	blobClients  = "clients"
)

// Store is a snapshot store over a kv.Store. Reads return copies; writes
// replace the full collection and persist it before returning.
type Store struct {
	kv kv.Store

	mu       sync.RWMutex
	tasks    []model.Task
	meetings []model.Meeting
	clients  []model.Client
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load reads all collections from the blob store. Missing blobs load as
// empty collections.
func (s *Store) Load(ctx context.Context) error {
	var (
		tasks    []model.Task
		meetings []model.Meeting
		clients  []model.Client
	)
	if err := s.loadBlob(ctx, blobTasks, &tasks); err != nil {
		return err
	}
	if err := s.loadBlob(ctx, blobMeetings, &meetings); err != nil {
		return err
	}
	if err := s.loadBlob(ctx, blobClients, &clients); err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.meetings = meetings
	s.clients = clients
	s.mu.Unlock()
	return nil
}

func (s *Store) loadBlob(ctx context.Context, name string, out any) error {
	data, err := s.kv.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Tasks returns a copy of the current task collection.
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Meetings returns a copy of the current meeting collection.
func (s *Store) Meetings() []model.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.meetings)
}

// Clients returns a copy of the current client collection.
func (s *Store) Clients() []model.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.clients)
}

// ReplaceTasks swaps in a new task collection and persists it.
func (s *Store) ReplaceTasks(ctx context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, blobTasks, tasks); err != nil {
		return err
	}
	s.tasks = slices.Clone(tasks)
	return nil
}

// ReplaceMeetings swaps in a new meeting collection and persists it.
func (s *Store) ReplaceMeetings(ctx context.Context, meetings []model.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, blobMeetings, meetings); err != nil {
		return err
	}
	s.meetings = slices.Clone(meetings)
	return nil
}

// ReplaceClients swaps in a new client collection and persists it.
func (s *Store) ReplaceClients(ctx context.Context, clients []model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, blobClients, clients); err != nil {
		return err
	}
	s.clients = slices.Clone(clients)
	return nil
}

func (s *Store) persist(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, name, data); err != nil {
		return fmt.Errorf("persist %s: %w", name, err)
	}
	return nil
}
