package roster

import "testing"

func TestPickReturnsDistinctEntrants(t *testing.T) {
	picked := Pick(20)
	if len(picked) != 20 {
		t.Fatalf("picked %d entrants, want 20", len(picked))
	}

	seen := make(map[string]bool, len(picked))
	for _, e := range picked {
		if e.Code == "" || e.Name == "" || e.Color == "" {
			t.Fatalf("incomplete entrant: %+v", e)
		}
		if seen[e.Code] {
			t.Fatalf("entrant %s picked twice", e.Code)
		}
		seen[e.Code] = true
	}
}

func TestPickClampsToCatalog(t *testing.T) {
	if got := Pick(Size() + 100); len(got) != Size() {
		t.Fatalf("picked %d, want catalog size %d", len(got), Size())
	}
	if got := Pick(-1); len(got) != 0 {
		t.Fatalf("picked %d for negative n, want 0", len(got))
	}
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("BR")
	if !ok || e.Name != "Brazil" {
		t.Fatalf("Lookup(BR) = %+v, %v", e, ok)
	}
	if _, ok := Lookup("XX"); ok {
		t.Fatal("Lookup(XX) found a nonexistent entrant")
	}
}

func TestThemeByNameFallsBackToDefault(t *testing.T) {
	if got := ThemeByName("lava"); got.Name != "lava" {
		t.Fatalf("ThemeByName(lava) = %q", got.Name)
	}
	if got := ThemeByName("nope"); got.Name != DefaultTheme().Name {
		t.Fatalf("unknown theme resolved to %q, want default", got.Name)
	}
}

func TestNextThemeCyclesThroughAll(t *testing.T) {
	seen := map[string]bool{}
	name := DefaultTheme().Name
	for i := 0; i < len(themes); i++ {
		seen[name] = true
		name = NextTheme(name).Name
	}
	if len(seen) != len(themes) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(themes))
	}
	if name != DefaultTheme().Name {
		t.Fatalf("cycle did not wrap: ended on %q", name)
	}
}
