package projects

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iiroan/folio/internal/kv"
)

func load(store kv.Store) *State {
	return Load(store, WithLogger(log.New(io.Discard)))
}

func TestCatalog(t *testing.T) {
	en := Catalog("en")
	vi := Catalog("vi")
	require.Len(t, en, 15)
	require.Len(t, vi, len(en))
	assert.Equal(t, "Building the Customer Service Department", en[0].Title)
	assert.Equal(t, vi, Catalog("fr"), "unknown languages use the Vietnamese catalog")

	assert.Equal(t, []string{"1", "2", "3"}, Stages(en))
	assert.Len(t, Groups(en), 5)
	assert.Len(t, ByCategory(en, "tech"), 4)
	assert.Len(t, ByCategory(en, "all"), 15)
	assert.Len(t, ByCategory(en, "bogus"), 15)
}

func TestDefaults(t *testing.T) {
	s := load(kv.NewMemory())
	assert.Equal(t, Grid, s.ViewMode())
	assert.Empty(t, s.SelectedGroups())
	assert.Empty(t, s.SelectedStages())
}

func TestViewModeRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	s := load(store)
	require.NoError(t, s.SetViewMode(Masonry))
	assert.Equal(t, Masonry, load(store).ViewMode())

	assert.Error(t, s.SetViewMode("carousel"))
	assert.Equal(t, Masonry, s.ViewMode())
}

func TestSelectionsRoundTrip(t *testing.T) {
	store := kv.NewMemory()
	s := load(store)
	s.ToggleGroup("Technology & Data")
	s.ToggleStage("2")
	s.ToggleStage("3")
	s.ToggleStage("2")

	raw, _, _ := store.Get(KeyStages)
	assert.JSONEq(t, `["3"]`, raw)

	again := load(store)
	assert.Equal(t, []string{"Technology & Data"}, again.SelectedGroups())
	assert.Equal(t, []string{"3"}, again.SelectedStages())

	got := again.Filter(Catalog("en"))
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "Technology & Data", p.Group)
		assert.Equal(t, "3", p.Stage)
	}

	again.ClearFilters()
	assert.Len(t, load(store).Filter(Catalog("en")), 15)
}

func TestMalformedSelectionsAreIgnored(t *testing.T) {
	tests := map[string][]string{
		`not json`:      nil,
		`{"a": 1}`:      nil,
		`"strategy"`:    nil,
		`["1", 2, "3"]`: {"1", "3"},
		`[]`:            nil,
	}
	for raw, want := range tests {
		assert.Equal(t, want, parseList(raw), raw)
	}

	store := kv.NewMemory()
	require.NoError(t, store.Set(KeyGroups, "{broken"))
	require.NoError(t, store.Set(KeyViewMode, "carousel"))
	s := load(store)
	assert.Empty(t, s.SelectedGroups())
	assert.Equal(t, Grid, s.ViewMode())
}

func TestSetSelectionsReplaceAndDedupe(t *testing.T) {
	store := kv.NewMemory()
	s := load(store)

	s.ToggleGroup("Strategy")
	s.SetGroups([]string{"Tech", "Tech", "", "Operations"})
	s.SetStages([]string{"2"})

	assert.Equal(t, []string{"Tech", "Operations"}, s.SelectedGroups())
	raw, _, _ := store.Get(KeyGroups)
	assert.JSONEq(t, `["Tech","Operations"]`, raw)

	reloaded := load(store)
	assert.Equal(t, []string{"Tech", "Operations"}, reloaded.SelectedGroups())
	assert.Equal(t, []string{"2"}, reloaded.SelectedStages())

	s.SetStages(nil)
	raw, _, _ = store.Get(KeyStages)
	assert.Equal(t, "[]", raw)
}
