package blueprint

import (
	"testing"

	"beacon-api/domain"
)

func TestCatalogTemplateIDsAreUnique(t *testing.T) {
	seen := map[string]string{}
	for _, phase := range Catalog().Phases {
		for _, tpl := range phase.Tasks {
			if prev, dup := seen[tpl.ID]; dup {
				t.Fatalf("template id %q appears in %q and %q", tpl.ID, prev, phase.ID)
			}
			seen[tpl.ID] = phase.ID
		}
	}
	if len(seen) == 0 {
		t.Fatal("catalog has no templates")
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(Catalog())

	tpl, ok := reg.Task("fundamentos-regime-tributario")
	if !ok {
		t.Fatal("expected template to be indexed")
	}
	if tpl.DueInDays == nil || *tpl.DueInDays != 5 {
		t.Fatalf("unexpected dueInDays: %v", tpl.DueInDays)
	}
	if tpl.Pillar != domain.PillarFiscal {
		t.Fatalf("unexpected pillar: %s", tpl.Pillar)
	}

	if _, ok := reg.Task("nao-existe"); ok {
		t.Fatal("unknown id must not resolve")
	}
}

func TestRegistryReindexIsIdempotent(t *testing.T) {
	reg := NewRegistry(Catalog())
	before, _ := reg.Task("planejamento-fluxo-caixa")

	reg.Reindex()
	reg.Reindex()

	after, ok := reg.Task("planejamento-fluxo-caixa")
	if !ok {
		t.Fatal("template lost after reindex")
	}
	if before.Title != after.Title || before.Phase != after.Phase {
		t.Fatalf("template changed across reindex: %+v vs %+v", before, after)
	}
}

func TestRegistriesForDistinctVersionsDoNotCollide(t *testing.T) {
	v1 := Blueprint{Version: "v1", Phases: []PhaseGroup{{
		ID: "p", Phase: domain.PhaseFundamentals,
		Tasks: []Template{{ID: "shared-id", Title: "from v1"}},
	}}}
	v2 := Blueprint{Version: "v2", Phases: []PhaseGroup{{
		ID: "p", Phase: domain.PhaseFundamentals,
		Tasks: []Template{{ID: "shared-id", Title: "from v2"}},
	}}}

	r1 := NewRegistry(v1)
	r2 := NewRegistry(v2)

	t1, _ := r1.Task("shared-id")
	t2, _ := r2.Task("shared-id")
	if t1.Title != "from v1" || t2.Title != "from v2" {
		t.Fatalf("registries leaked across versions: %q / %q", t1.Title, t2.Title)
	}
}
