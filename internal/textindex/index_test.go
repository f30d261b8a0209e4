package textindex

import "testing"

func testDocs() []Document {
	return []Document{
		{Name: "Acme Widgets Inc", Website: "https://acme-widgets.com", Address: "1 Main St, Springfield"},
		{Name: "Contoso LLC", Website: "https://contoso.com"},
		{Name: "Acorn Law PC", Website: "https://acornlawpc.com", Address: "2 Oak Ave"},
		{Website: "https://nameless.example"},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(testDocs())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func positions(hits []Hit) map[int]bool {
	m := make(map[int]bool, len(hits))
	for _, h := range hits {
		m[h.Position] = true
	}
	return m
}

func TestFuzzy_ExactTokens(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Fuzzy("acme widgets", FuzzinessStrict, 10)
	if err != nil {
		t.Fatalf("Fuzzy: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("no hits")
	}
	if hits[0].Position != 0 {
		t.Errorf("best hit = %d, want 0", hits[0].Position)
	}
}

func TestFuzzy_TypoTolerance(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Fuzzy("contosso", FuzzinessStrict, 10)
	if err != nil {
		t.Fatalf("Fuzzy: %v", err)
	}
	if !positions(hits)[1] {
		t.Errorf("strict fuzzy missed Contoso: %v", hits)
	}
}

func TestFuzzy_LooseTierRecallsMore(t *testing.T) {
	idx := newTestIndex(t)

	// "kontosso" is two edits from "contoso": outside the strict tier,
	// inside loose.
	strict, err := idx.Fuzzy("kontosso", FuzzinessStrict, 10)
	if err != nil {
		t.Fatalf("strict: %v", err)
	}
	if positions(strict)[1] {
		t.Errorf("strict fuzzy unexpectedly matched Contoso: %v", strict)
	}
	loose, err := idx.Fuzzy("kontosso", FuzzinessLoose, 10)
	if err != nil {
		t.Fatalf("loose: %v", err)
	}
	if !positions(loose)[1] {
		t.Errorf("loose fuzzy missed Contoso: %v", loose)
	}
}

func TestPrefix(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Prefix("aco", 10)
	if err != nil {
		t.Fatalf("Prefix: %v", err)
	}
	if !positions(hits)[2] {
		t.Errorf("prefix 'aco' missed Acorn Law: %v", hits)
	}

	// Prefix terms are lowercased before matching.
	upper, err := idx.Prefix("ACO", 10)
	if err != nil {
		t.Fatalf("Prefix upper: %v", err)
	}
	if len(upper) != len(hits) {
		t.Errorf("case-sensitive prefix: %d vs %d hits", len(upper), len(hits))
	}
}

func TestSearch_EmptyInputs(t *testing.T) {
	idx := newTestIndex(t)

	if hits, err := idx.Fuzzy("", FuzzinessStrict, 10); err != nil || hits != nil {
		t.Errorf("Fuzzy(\"\") = %v, %v", hits, err)
	}
	if hits, err := idx.Prefix("  ", 10); err != nil || hits != nil {
		t.Errorf("Prefix(blank) = %v, %v", hits, err)
	}
	if hits, err := idx.Fuzzy("acme", FuzzinessStrict, 0); err != nil || hits != nil {
		t.Errorf("limit 0 = %v, %v", hits, err)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	idx := newTestIndex(t)

	first, err := idx.Fuzzy("acme", FuzzinessStrict, 10)
	if err != nil {
		t.Fatalf("Fuzzy: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := idx.Fuzzy("acme", FuzzinessStrict, 10)
		if err != nil {
			t.Fatalf("Fuzzy: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("hit count changed: %d vs %d", len(again), len(first))
		}
		for j := range again {
			if again[j].Position != first[j].Position {
				t.Fatalf("hit order changed at %d: %v vs %v", j, again, first)
			}
		}
	}
}
