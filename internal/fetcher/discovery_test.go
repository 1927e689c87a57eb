package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/clintrovert/nudgebot/internal/config"
	"github.com/clintrovert/nudgebot/pkg/types"
)

func newDiscoveryServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/team/team-1/space":
			fmt.Fprint(w, `{"spaces":[
				{"id":"s1","name":"Engineering"},
				{"id":"s2","name":"Archived Projects"}
			]}`)
		case "/space/s1/folder":
			fmt.Fprint(w, `{"folders":[
				{"id":"f1","name":"Sprint 42"},
				{"id":"f2","name":"Random Stuff"},
				{"id":"f3","name":"Sprint Templates"}
			]}`)
		case "/folder/f1/list":
			fmt.Fprint(w, `{"lists":[
				{"id":"l1","name":"Week 1"},
				{"id":"l2","name":"Week 2"}
			]}`)
		default:
			t.Errorf("unexpected discovery call: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestDiscoverSprints(t *testing.T) {
	server := newDiscoveryServer(t)
	defer server.Close()

	f := newTestFetcher(t, server.URL, config.Config{ClickUpTeamID: "team-1"})

	found, err := f.DiscoverSprints(context.Background(), config.DiscoverySettings{})
	if err != nil {
		t.Fatalf("DiscoverSprints() error: %v", err)
	}

	// The archived space and the template folder are filtered out;
	// only the two lists under "Sprint 42" survive.
	if len(found) != 2 {
		t.Fatalf("expected 2 discovered lists, got %d: %+v", len(found), found)
	}
	for _, l := range found {
		if l.Type != types.ListTypeSprint {
			t.Errorf("discovered list %s has type %q, want sprint", l.ID, l.Type)
		}
		if !l.Enabled || !l.Discovered {
			t.Errorf("discovered list %s should be enabled and flagged discovered", l.ID)
		}
	}
	if found[0].Name != "Engineering - Sprint 42 - Week 1" {
		t.Errorf("unexpected discovered name: %q", found[0].Name)
	}
}

func TestDiscoverSprintsCustomFilters(t *testing.T) {
	server := newDiscoveryServer(t)
	defer server.Close()

	f := newTestFetcher(t, server.URL, config.Config{ClickUpTeamID: "team-1"})

	found, err := f.DiscoverSprints(context.Background(), config.DiscoverySettings{
		ExcludeListNames: []string{"week 2", "template", "archived"},
	})
	if err != nil {
		t.Fatalf("DiscoverSprints() error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "l1" {
		t.Fatalf("expected only l1 after excluding week 2, got %+v", found)
	}
}

func TestMergeDiscoveredIdempotent(t *testing.T) {
	base := config.ListConfig{Lists: []types.TrackedList{
		{ID: "100", Name: "Bugs", Type: types.ListTypeBug, Enabled: false},
	}}
	discovered := []types.TrackedList{
		{ID: "100", Name: "Bugs Rediscovered", Type: types.ListTypeSprint, Enabled: true, Discovered: true},
		{ID: "l1", Name: "Engineering - Sprint 42 - Week 1", Type: types.ListTypeSprint, Enabled: true, Discovered: true},
	}

	merged, added := MergeDiscovered(base, discovered)
	if added != 1 {
		t.Fatalf("first merge added = %d, want 1", added)
	}
	if len(merged.Lists) != 2 {
		t.Fatalf("expected 2 lists after merge, got %d", len(merged.Lists))
	}
	// The existing entry keeps its name, type and disabled state.
	if merged.Lists[0].Name != "Bugs" || merged.Lists[0].Enabled || merged.Lists[0].Type != types.ListTypeBug {
		t.Errorf("existing entry was modified: %+v", merged.Lists[0])
	}
	if merged.Lists[1].ID != "l1" || merged.Lists[1].Type != types.ListTypeSprint || !merged.Lists[1].Enabled {
		t.Errorf("new entry wrong: %+v", merged.Lists[1])
	}

	// Running the same merge again changes nothing.
	again, added := MergeDiscovered(merged, discovered)
	if added != 0 {
		t.Errorf("second merge added = %d, want 0", added)
	}
	if !reflect.DeepEqual(again.Lists, merged.Lists) {
		t.Errorf("second merge changed the config:\n got %+v\nwant %+v", again.Lists, merged.Lists)
	}
}
