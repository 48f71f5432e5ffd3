package ledger

import "testing"

func filterFixture() []Entry {
	return []Entry{
		Income{Meta: Meta{ID: "i1", Timestamp: 1, Description: "Pago quincena"}, Amount: 50000, Account: BucketNu, Source: "Salario"},
		Income{Meta: Meta{ID: "i2", Timestamp: 2}, Amount: 20000, Account: BucketNequi, Source: "novaklar", NuAllocated: 5000},
		Expense{Meta: Meta{ID: "e1", Timestamp: 3, Description: "Almuerzo"}, Amount: 8000, Account: BucketCash, Category: "Comida"},
		Transfer{Meta: Meta{ID: "t1", Timestamp: 4, Description: "Transferencia: Caja Nu → Nequi 1"}, Amount: 10000, From: BucketNu, To: BucketNequi},
		CashConversion{Meta: Meta{ID: "c1", Timestamp: 5, Description: "Conversión: Nequi 1 → Efectivo"}, Amount: 3000, Direction: ToCash, From: BucketNequi, To: BucketCash},
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = MetaOf(e).ID
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Run("no criteria returns everything in order", func(t *testing.T) {
		got := Filter(filterFixture(), "", "", "")
		if len(got) != 5 {
			t.Fatalf("expected 5 entries, got %d", len(got))
		}
	})

	t.Run("kind filter is exact", func(t *testing.T) {
		got := ids(Filter(filterFixture(), KindIncome, "", ""))
		if len(got) != 2 || got[0] != "i1" || got[1] != "i2" {
			t.Errorf("unexpected matches %v", got)
		}
	})

	t.Run("bucket filter on income uses the nominal account", func(t *testing.T) {
		// i2 routes part of its amount to nu via the split, but its nominal
		// account is nequi, so it must not match a nu filter.
		got := ids(Filter(filterFixture(), "", BucketNu, ""))
		for _, id := range got {
			if id == "i2" {
				t.Error("split income matched the allocation bucket")
			}
		}
		if len(got) != 2 || got[0] != "i1" || got[1] != "t1" {
			t.Errorf("unexpected matches %v", got)
		}
	})

	t.Run("bucket filter matches either side of transfers and conversions", func(t *testing.T) {
		got := ids(Filter(filterFixture(), "", BucketNequi, ""))
		if len(got) != 3 || got[0] != "i2" || got[1] != "t1" || got[2] != "c1" {
			t.Errorf("unexpected matches %v", got)
		}
	})

	t.Run("search is case-insensitive over description source and category", func(t *testing.T) {
		if got := ids(Filter(filterFixture(), "", "", "SALARIO")); len(got) != 1 || got[0] != "i1" {
			t.Errorf("expected source match, got %v", got)
		}
		if got := ids(Filter(filterFixture(), "", "", "comida")); len(got) != 1 || got[0] != "e1" {
			t.Errorf("expected category match, got %v", got)
		}
		if got := ids(Filter(filterFixture(), "", "", "conversión")); len(got) != 1 || got[0] != "c1" {
			t.Errorf("expected description match, got %v", got)
		}
	})

	t.Run("criteria combine with and", func(t *testing.T) {
		got := ids(Filter(filterFixture(), KindIncome, BucketNequi, "nova"))
		if len(got) != 1 || got[0] != "i2" {
			t.Errorf("unexpected matches %v", got)
		}
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		if got := Filter(filterFixture(), KindExpense, BucketNu, ""); len(got) != 0 {
			t.Errorf("expected no matches, got %v", got)
		}
	})
}
