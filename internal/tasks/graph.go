// Package tasks is a minimal named-task graph: tasks are registered once by
// name and can have followers that run only after the task succeeds.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrDuplicateTask is returned when a name is registered twice
	ErrDuplicateTask = errors.New("task already registered")

	// ErrTaskNotFound is returned for unknown task names
	ErrTaskNotFound = errors.New("task not found")
)

// Action is the work performed by a task
type Action func(ctx context.Context) error

type task struct {
	name      string
	action    Action
	followers []string
}

// Graph holds registered tasks. It is safe for concurrent use.
type Graph struct {
	mu    sync.Mutex
	tasks map[string]*task
	order []string
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		tasks: make(map[string]*task),
	}
}

// Register adds a task. A nil action registers a task that does nothing.
func (g *Graph) Register(name string, action Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.tasks[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTask, name)
	}

	g.tasks[name] = &task{name: name, action: action}
	g.order = append(g.order, name)

	return nil
}

// Has reports whether name is registered
func (g *Graph) Has(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.tasks[name]
	return ok
}

// Names returns registered task names in registration order
func (g *Graph) Names() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, len(g.order))
	copy(names, g.order)

	return names
}

// RunAfter schedules follower to run each time name completes successfully
func (g *Graph) RunAfter(name, follower string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.tasks[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}

	if _, ok := g.tasks[follower]; !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, follower)
	}

	for _, f := range t.followers {
		if f == follower {
			return nil
		}
	}

	t.followers = append(t.followers, follower)

	return nil
}

// Followers returns the tasks scheduled after name
func (g *Graph) Followers(name string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	t, ok := g.tasks[name]
	if !ok {
		return nil
	}

	followers := make([]string, len(t.followers))
	copy(followers, t.followers)

	return followers
}

// Run executes name and then, if it succeeded, its followers in the order
// they were added. Each task runs at most once per call.
func (g *Graph) Run(ctx context.Context, name string) error {
	return g.run(ctx, name, make(map[string]bool))
}

func (g *Graph) run(ctx context.Context, name string, done map[string]bool) error {
	if done[name] {
		return nil
	}

	g.mu.Lock()
	t, ok := g.tasks[name]
	var (
		action    Action
		followers []string
	)
	if ok {
		action = t.action
		followers = append(followers, t.followers...)
	}
	g.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	done[name] = true

	if action != nil {
		if err := action(ctx); err != nil {
			return fmt.Errorf("task %s failed: %w", name, err)
		}
	}

	for _, f := range followers {
		if err := g.run(ctx, f, done); err != nil {
			return err
		}
	}

	return nil
}
