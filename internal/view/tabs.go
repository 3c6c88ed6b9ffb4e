package view

import (
	"context"
	"fmt"
)

// Tabs maps a small set of named views onto refresh actions, one per list
// controller sharing a screen. Switching tabs triggers that tab's refresh;
// tabs keep their own filter and page state while inactive.
type Tabs struct {
	order   []string
	actions map[string]func(context.Context)
	active  string
}

// NewTabs creates an empty tab router.
func NewTabs() *Tabs {
	return &Tabs{actions: make(map[string]func(context.Context))}
}

// Register adds a named tab with its refresh action. The first registered
// tab becomes the active one.
func (t *Tabs) Register(name string, refresh func(context.Context)) {
	if _, exists := t.actions[name]; !exists {
		t.order = append(t.order, name)
	}
	t.actions[name] = refresh
	if t.active == "" {
		t.active = name
	}
}

// Activate switches to the named tab and runs its refresh action.
func (t *Tabs) Activate(ctx context.Context, name string) error {
	refresh, ok := t.actions[name]
	if !ok {
		return fmt.Errorf("unknown tab %q", name)
	}
	t.active = name
	refresh(ctx)
	return nil
}

// Active returns the currently active tab name.
func (t *Tabs) Active() string {
	return t.active
}

// Names returns the tab names in registration order.
func (t *Tabs) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
