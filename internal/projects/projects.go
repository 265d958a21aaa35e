// Package projects holds the project catalog and the view-only state of the
// projects page: layout mode plus the selected group and stage filters.
// Each value is one storage key with no draft step.
package projects

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/iiroan/folio/internal/kv"
)

const (
	KeyViewMode = "projectsViewMode"
	KeyGroups   = "projectsSelectedGroups"
	KeyStages   = "projectsSelectedStages"
)

// ViewMode is the projects page layout.
type ViewMode string

const (
	Grid    ViewMode = "grid"
	List    ViewMode = "list"
	Masonry ViewMode = "masonry"
)

// ParseViewMode accepts only the known layouts.
func ParseViewMode(s string) (ViewMode, bool) {
	switch m := ViewMode(strings.ToLower(strings.TrimSpace(s))); m {
	case Grid, List, Masonry:
		return m, true
	}
	return "", false
}

// Project is one catalog entry.
type Project struct {
	ID    string
	Title string
	Group string
	Stage string
}

//go:embed projects.json
var catalogJSON []byte

// Catalog returns the projects for lang ("vi" or "en"), in display order.
func Catalog(lang string) []Project {
	res := gjson.GetBytes(catalogJSON, lang+".projects")
	if !res.Exists() {
		res = gjson.GetBytes(catalogJSON, "vi.projects")
	}
	var out []Project
	res.ForEach(func(_, p gjson.Result) bool {
		out = append(out, Project{
			ID:    p.Get("id").String(),
			Title: p.Get("title").String(),
			Group: p.Get("group").String(),
			Stage: p.Get("stage").String(),
		})
		return true
	})
	return out
}

// Categories are the project filter keys, "all" first. Each other key
// selects the projects whose id starts with its section number.
var Categories = []string{"all", "strategy", "operations", "tech", "learning", "selfService"}

// ByCategory keeps the projects of a category key. Unknown keys keep all.
func ByCategory(list []Project, key string) []Project {
	idx := -1
	for i, c := range Categories {
		if c == key {
			idx = i
		}
	}
	if idx <= 0 {
		return list
	}
	prefix := strconv.Itoa(idx) + "."
	var out []Project
	for _, p := range list {
		if strings.HasPrefix(p.ID, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// Groups lists the distinct groups in catalog order.
func Groups(list []Project) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range list {
		if !seen[p.Group] {
			seen[p.Group] = true
			out = append(out, p.Group)
		}
	}
	return out
}

// Stages lists the distinct stages in numeric order.
func Stages(list []Project) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range list {
		if !seen[p.Stage] {
			seen[p.Stage] = true
			out = append(out, p.Stage)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i])
		b, _ := strconv.Atoi(out[j])
		return a < b
	})
	return out
}

// State is the persisted view state.
type State struct {
	store  kv.Store
	logger *log.Logger

	mu     sync.RWMutex
	view   ViewMode
	groups []string
	stages []string
}

type Option func(*State)

func WithLogger(l *log.Logger) Option {
	return func(s *State) { s.logger = l }
}

// Load reads the view state; absent or malformed values fall back to grid
// view with no filters.
func Load(store kv.Store, opts ...Option) *State {
	s := &State{store: store, logger: log.Default(), view: Grid}
	for _, opt := range opts {
		opt(s)
	}
	if v, ok := s.read(KeyViewMode); ok {
		if mode, valid := ParseViewMode(v); valid {
			s.view = mode
		}
	}
	if v, ok := s.read(KeyGroups); ok {
		s.groups = parseList(v)
	}
	if v, ok := s.read(KeyStages); ok {
		s.stages = parseList(v)
	}
	return s
}

// parseList decodes a JSON array of strings. Anything else is empty.
func parseList(raw string) []string {
	if !gjson.Valid(raw) {
		return nil
	}
	res := gjson.Parse(raw)
	if !res.IsArray() {
		return nil
	}
	var out []string
	for _, item := range res.Array() {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
	}
	return out
}

func (s *State) read(key string) (string, bool) {
	v, ok, err := s.store.Get(key)
	if err != nil {
		s.logger.Warn("reading view state failed, using default", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *State) write(key, value string) {
	if err := s.store.Set(key, value); err != nil {
		s.logger.Warn("persisting view state failed", "key", key, "error", err)
	}
}

func (s *State) writeList(key string, list []string) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		s.logger.Warn("encoding view state failed", "key", key, "error", err)
		return
	}
	s.write(key, string(data))
}

func (s *State) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// SetViewMode switches and persists the layout.
func (s *State) SetViewMode(mode ViewMode) error {
	parsed, ok := ParseViewMode(string(mode))
	if !ok {
		return fmt.Errorf("unknown view mode %q (want grid, list or masonry)", mode)
	}
	s.mu.Lock()
	s.view = parsed
	s.mu.Unlock()
	s.write(KeyViewMode, string(parsed))
	return nil
}

// SelectedGroups returns the group filter; empty means all groups.
func (s *State) SelectedGroups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.groups...)
}

// SelectedStages returns the stage filter; empty means all stages.
func (s *State) SelectedStages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.stages...)
}

func toggle(list []string, v string) []string {
	for i, x := range list {
		if x == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}

// ToggleGroup adds or removes a group from the filter.
func (s *State) ToggleGroup(group string) {
	s.mu.Lock()
	s.groups = toggle(s.groups, group)
	groups := append([]string(nil), s.groups...)
	s.mu.Unlock()
	s.writeList(KeyGroups, groups)
}

// ToggleStage adds or removes a stage from the filter.
func (s *State) ToggleStage(stage string) {
	s.mu.Lock()
	s.stages = toggle(s.stages, stage)
	stages := append([]string(nil), s.stages...)
	s.mu.Unlock()
	s.writeList(KeyStages, stages)
}

// SetGroups replaces the group filter. Duplicates are dropped.
func (s *State) SetGroups(groups []string) {
	groups = dedupe(groups)
	s.mu.Lock()
	s.groups = groups
	s.mu.Unlock()
	s.writeList(KeyGroups, groups)
}

// SetStages replaces the stage filter. Duplicates are dropped.
func (s *State) SetStages(stages []string) {
	stages = dedupe(stages)
	s.mu.Lock()
	s.stages = stages
	s.mu.Unlock()
	s.writeList(KeyStages, stages)
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, v := range list {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ClearFilters drops both selections.
func (s *State) ClearFilters() {
	s.mu.Lock()
	s.groups, s.stages = nil, nil
	s.mu.Unlock()
	s.writeList(KeyGroups, nil)
	s.writeList(KeyStages, nil)
}

// Filter keeps the projects matching the selected groups and stages.
func (s *State) Filter(list []Project) []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Project
	for _, p := range list {
		if matches(s.groups, p.Group) && matches(s.stages, p.Stage) {
			out = append(out, p)
		}
	}
	return out
}

func matches(selected []string, v string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == v {
			return true
		}
	}
	return false
}
