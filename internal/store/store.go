// Package store holds the in-memory task collection. All state is volatile:
// it is reseeded on process start and on reset, never persisted.
package store

import (
	"errors"
	"sync"

	"taskbench/internal/task"
)

var (
	ErrNotFound = errors.New("task not found")
	ErrNoFields = errors.New("no updatable fields provided")
)

// seedTasks returns the fixed three-task seed state. IDs 1-3; a fresh or
// reset store always hands out id 4 next.
func seedTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Set up the project", Description: "Initialize the repository and tooling", Completed: false},
		{ID: 2, Title: "Write the API docs", Description: "Document every endpoint with examples", Completed: false},
		{ID: 3, Title: "Review the onboarding guide", Description: "No description", Completed: true},
	}
}

const seedNextID = 4

// Store is an insertion-ordered task collection with a monotonically
// increasing id counter. IDs are never reused, even after delete or reset
// within the same generation of seed state.
type Store struct {
	mu     sync.RWMutex
	tasks  []task.Task
	nextID int
	gen    uint64
}

func New() *Store {
	s := &Store{}
	s.seedLocked()
	return s
}

func (s *Store) seedLocked() {
	s.tasks = seedTasks()
	s.nextID = seedNextID
}

// List returns all tasks in insertion order. The slice is a copy.
func (s *Store) List() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Head returns up to the first n tasks in insertion order.
func (s *Store) Head(n int) []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.tasks) {
		n = len(s.tasks)
	}
	out := make([]task.Task, n)
	copy(out, s.tasks[:n])
	return out
}

func (s *Store) Get(id int) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, ErrNotFound
}

// Create validates the payload, assigns the next id and appends the task.
// The first violated constraint is returned as a *task.ValidationError.
func (s *Store) Create(p task.Payload) (task.Task, error) {
	if p.Title == nil {
		return task.Task{}, &task.ValidationError{Field: "title", Msg: "is required"}
	}
	title, err := task.CleanTitle(*p.Title)
	if err != nil {
		return task.Task{}, err
	}
	desc := task.DefaultDescription
	if p.Description != nil {
		desc = task.CleanDescription(*p.Description)
	}
	completed := false
	if p.Completed != nil {
		completed = *p.Completed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := task.Task{ID: s.nextID, Title: title, Description: desc, Completed: completed}
	s.nextID++
	s.tasks = append(s.tasks, t)
	s.gen++
	return t, nil
}

// Update mutates only the provided fields of an existing task. Every
// provided field is validated before any field is written, so a failed
// update leaves the task untouched.
func (s *Store) Update(id int, p task.Payload) (task.Task, error) {
	if p.Empty() {
		return task.Task{}, ErrNoFields
	}
	var title string
	if p.Title != nil {
		var err error
		title, err = task.CleanTitle(*p.Title)
		if err != nil {
			return task.Task{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		if p.Title != nil {
			s.tasks[i].Title = title
		}
		if p.Description != nil {
			s.tasks[i].Description = task.CleanDescription(*p.Description)
		}
		if p.Completed != nil {
			s.tasks[i].Completed = *p.Completed
		}
		s.gen++
		return s.tasks[i], nil
	}
	return task.Task{}, ErrNotFound
}

// Delete removes the task with the given id and returns it. Its id is never
// handed out again.
func (s *Store) Delete(id int) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.gen++
			return t, nil
		}
	}
	return task.Task{}, ErrNotFound
}

// Reset discards all tasks and restores the seed state atomically.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seedLocked()
	s.gen++
}

// Generation increments on every mutation. Consumers caching derived data
// (the exporter) key on it for invalidation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}
