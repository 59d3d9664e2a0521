package tips

import "testing"

func ids(ts []Tip) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestFilter_ByCategory(t *testing.T) {
	t.Parallel()

	got := Default().Filter(CategoryCooling, "", English)
	if len(got) != 4 {
		t.Fatalf("cooling tips=%v want 4", ids(got))
	}
	if got := Default().Filter(CategoryHeating, "", English); len(got) != 0 {
		t.Fatalf("heating tips=%v want none", ids(got))
	}
	if got := Default().Filter("", "", English); len(got) != 6 {
		t.Fatalf("all tips=%v want 6", ids(got))
	}
}

func TestFilter_SearchIgnoresCase(t *testing.T) {
	t.Parallel()

	got := Default().Filter("", "led", English)
	if len(got) != 1 || got[0].ID != "led-bulbs" {
		t.Fatalf("search led=%v", ids(got))
	}
	got = Default().Filter("", "STANDBY", English)
	if len(got) != 1 || got[0].ID != "unplug-standby" {
		t.Fatalf("search STANDBY=%v", ids(got))
	}
}

func TestFilter_SearchInArabic(t *testing.T) {
	t.Parallel()

	got := Default().Filter("", "الستائر", Arabic)
	if len(got) != 1 || got[0].ID != "insulating-curtains" {
		t.Fatalf("arabic search=%v", ids(got))
	}
	if got := Default().Filter("", "curtains", Arabic); len(got) != 0 {
		t.Fatalf("english query matched arabic text: %v", ids(got))
	}
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tests := map[string]Lang{
		"":                        English,
		"en-US":                   English,
		"ar":                      Arabic,
		"ar-SA,ar;q=0.9,en;q=0.5": Arabic,
		"fr-FR":                   English,
		"not a language !!":       English,
	}
	for in, want := range tests {
		if got := ParseLanguage(in); got != want {
			t.Errorf("ParseLanguage(%q)=%q want %q", in, got, want)
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	t.Parallel()

	all := Default().All()
	all[0].ID = "mutated"
	if Default().All()[0].ID != "ac-24c" {
		t.Fatalf("All exposed the catalog slice")
	}
}
