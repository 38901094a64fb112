package services

import (
	"fmt"
	"strings"

	"conguide/internal/domain"
)

// RuleSet is a compiled list of session rules. The first matching rule wins.
type RuleSet struct {
	rules    []domain.Rule
	matchers []func(*domain.Session) bool
}

// CompileRules validates rules and builds a matcher for each.
// Fields: title, track, type, room. Ops: equals, starts_with, ends_with, contains.
func CompileRules(rules []domain.Rule) (*RuleSet, error) {
	rs := &RuleSet{rules: rules}
	for i, r := range rules {
		field, err := ruleField(r.Field)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		test, err := ruleOp(r.Op)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		value := r.Value
		rs.matchers = append(rs.matchers, func(s *domain.Session) bool {
			return test(field(s), value)
		})
	}
	return rs, nil
}

// Match returns the first rule s matches.
func (rs *RuleSet) Match(s *domain.Session) (domain.Rule, bool) {
	if rs == nil {
		return domain.Rule{}, false
	}
	for i, m := range rs.matchers {
		if m(s) {
			return rs.rules[i], true
		}
	}
	return domain.Rule{}, false
}

// Matches reports whether any rule matches s.
func (rs *RuleSet) Matches(s *domain.Session) bool {
	_, ok := rs.Match(s)
	return ok
}

func ruleField(name string) (func(*domain.Session) string, error) {
	switch name {
	case "title":
		return func(s *domain.Session) string { return s.Title }, nil
	case "track":
		return func(s *domain.Session) string { return s.Track }, nil
	case "type":
		return func(s *domain.Session) string { return s.Type }, nil
	case "room":
		return func(s *domain.Session) string {
			if s.Room == nil {
				return ""
			}
			return s.Room.Name
		}, nil
	}
	return nil, fmt.Errorf("unknown field %q", name)
}

func ruleOp(name string) (func(field, value string) bool, error) {
	switch name {
	case "equals":
		return func(f, v string) bool { return f == v }, nil
	case "starts_with":
		return strings.HasPrefix, nil
	case "ends_with":
		return strings.HasSuffix, nil
	case "contains":
		return strings.Contains, nil
	}
	return nil, fmt.Errorf("unknown op %q", name)
}
