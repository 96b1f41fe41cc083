package gate

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fittrack/fittrack/internal/core/domain"
)

//go:embed routes.yaml
var defaultRoutes []byte

var ErrInvalidRule = errors.New("invalid route rule")

type route struct {
	rule     domain.RouteRule
	segments []string
	wildcard bool
	literals int
}

// Table is the static route configuration consulted on every navigation.
type Table struct {
	routes []route
}

type tableFile struct {
	Routes []domain.RouteRule `yaml:"routes"`
}

// NewTable validates rules and builds a table. A rule without an access kind
// is protected.
func NewTable(rules []domain.RouteRule) (*Table, error) {
	t := &Table{routes: make([]route, 0, len(rules))}
	seen := make(map[string]struct{}, len(rules))

	for i, rule := range rules {
		if rule.Access == "" {
			rule.Access = domain.AccessProtected
		}
		switch rule.Access {
		case domain.AccessProtected, domain.AccessPublicOnly, domain.AccessOpen:
		default:
			return nil, fmt.Errorf("%w: rule %d: unknown access %q", ErrInvalidRule, i, rule.Access)
		}
		for _, r := range rule.Roles {
			if !r.Valid() {
				return nil, fmt.Errorf("%w: rule %d: unknown role %q", ErrInvalidRule, i, r)
			}
		}
		if _, dup := seen[rule.Pattern]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern %q", ErrInvalidRule, rule.Pattern)
		}
		seen[rule.Pattern] = struct{}{}

		rt, err := compile(rule)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidRule, i, err)
		}
		t.routes = append(t.routes, rt)
	}
	return t, nil
}

// LoadTable reads a YAML route table of the form `routes: [{path, access, roles, redirect}]`.
func LoadTable(r io.Reader) (*Table, error) {
	var f tableFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode route table: %w", err)
	}
	return NewTable(f.Routes)
}

// LoadTableFile reads a YAML route table from disk.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open route table: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}

// DefaultTable returns the product's built-in route table.
func DefaultTable() *Table {
	t, err := LoadTable(bytes.NewReader(defaultRoutes))
	if err != nil {
		panic(fmt.Sprintf("gate: built-in route table: %v", err))
	}
	return t
}

// Rules returns the rules in declaration order.
func (t *Table) Rules() []domain.RouteRule {
	out := make([]domain.RouteRule, len(t.routes))
	for i, rt := range t.routes {
		out[i] = rt.rule
	}
	return out
}

// Match finds the most specific rule for path. Non-wildcard patterns beat
// wildcards, then more literal segments win, then declaration order.
func (t *Table) Match(path string) (domain.RouteRule, bool) {
	segs := split(path)

	best := -1
	for i, rt := range t.routes {
		if !rt.matches(segs) {
			continue
		}
		if best < 0 || rt.beats(t.routes[best]) {
			best = i
		}
	}
	if best < 0 {
		return domain.RouteRule{}, false
	}
	return t.routes[best].rule, true
}

// Navigate resolves path against the table and decides for s. Paths with no
// rule fall through to NotFound without consulting the session.
func (t *Table) Navigate(s domain.Session, path string) Decision {
	rule, ok := t.Match(path)
	if !ok {
		return Decision{Outcome: NotFound}
	}
	return Decide(s, rule)
}

func compile(rule domain.RouteRule) (route, error) {
	if !strings.HasPrefix(rule.Pattern, "/") {
		return route{}, fmt.Errorf("pattern %q must start with /", rule.Pattern)
	}
	rt := route{rule: rule, segments: split(rule.Pattern)}
	for i, s := range rt.segments {
		switch {
		case s == "*":
			if i != len(rt.segments)-1 {
				return route{}, fmt.Errorf("pattern %q: * must be the last segment", rule.Pattern)
			}
			rt.wildcard = true
			rt.segments = rt.segments[:i]
		case strings.HasPrefix(s, ":"):
			if len(s) == 1 {
				return route{}, fmt.Errorf("pattern %q: unnamed parameter", rule.Pattern)
			}
		default:
			rt.literals++
		}
	}
	return rt, nil
}

func (rt route) matches(segs []string) bool {
	if rt.wildcard {
		// the wildcard stands for at least one segment
		if len(segs) <= len(rt.segments) {
			return false
		}
	} else if len(segs) != len(rt.segments) {
		return false
	}
	for i, s := range rt.segments {
		if strings.HasPrefix(s, ":") {
			continue
		}
		if s != segs[i] {
			return false
		}
	}
	return true
}

func (rt route) beats(other route) bool {
	if rt.wildcard != other.wildcard {
		return !rt.wildcard
	}
	return rt.literals > other.literals
}

// split turns "/coach/plans/?x=1" into ["coach", "plans"].
func split(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
