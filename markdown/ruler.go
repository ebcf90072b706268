package markdown

import (
	"context"
	"fmt"
)

// RuleFunc is one stage of the core chain. Rules mutate state.Tokens in
// place and run strictly one after another.
type RuleFunc func(ctx context.Context, md *Markdown, state *State) error

type rule struct {
	name string
	fn   RuleFunc
}

// Ruler keeps the named, ordered core rules.
type Ruler struct {
	rules []rule
}

func (r *Ruler) index(name string) int {
	for i, rl := range r.rules {
		if rl.name == name {
			return i
		}
	}

	return -1
}

func (r *Ruler) Push(name string, fn RuleFunc) {
	r.rules = append(r.rules, rule{name: name, fn: fn})
}

// Before inserts a rule directly in front of the rule named anchor.
func (r *Ruler) Before(anchor, name string, fn RuleFunc) error {
	i := r.index(anchor)
	if i < 0 {
		return fmt.Errorf("no rule named '%s'", anchor)
	}

	r.insert(i, rule{name: name, fn: fn})

	return nil
}

// After inserts a rule directly behind the rule named anchor.
func (r *Ruler) After(anchor, name string, fn RuleFunc) error {
	i := r.index(anchor)
	if i < 0 {
		return fmt.Errorf("no rule named '%s'", anchor)
	}

	r.insert(i+1, rule{name: name, fn: fn})

	return nil
}

func (r *Ruler) insert(pos int, rl rule) {
	r.rules = append(r.rules, rule{})
	copy(r.rules[pos+1:], r.rules[pos:])
	r.rules[pos] = rl
}

// Names returns the rule names in execution order.
func (r *Ruler) Names() []string {
	names := make([]string, len(r.rules))
	for i, rl := range r.rules {
		names[i] = rl.name
	}

	return names
}

func (r *Ruler) run(ctx context.Context, md *Markdown, state *State) error {
	for _, rl := range r.rules {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := rl.fn(ctx, md, state); err != nil {
			return fmt.Errorf("rule %s: %w", rl.name, err)
		}
	}

	return nil
}
