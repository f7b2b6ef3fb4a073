package scoring

import "testing"

func TestSimilarityIdentity(t *testing.T) {
	for _, text := range []string{
		"The quick brown fox",
		"a",
		"To be, or not to be, that is the question.",
	} {
		if got := Similarity(text, text); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", text, text, got)
		}
		if got := Grade(Similarity(text, text)); got != 100 {
			t.Errorf("Grade of identity = %d, want 100", got)
		}
	}
}

func TestSimilarityNormalization(t *testing.T) {
	reference := "The quick brown fox"
	variants := []string{
		"the quick brown fox",
		"THE  QUICK\tBROWN   FOX",
		"The quick, brown fox.",
	}
	for _, v := range variants {
		if got := Similarity(reference, v); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", reference, v, got)
		}
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"the quick brown fox", "the quick fox"},
		{"hello world", "goodbye world"},
		{"one two three", ""},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestSimilarityPartial(t *testing.T) {
	// 3 aligned tokens out of 4 and 3: 2*3/7.
	got := Similarity("the quick brown fox", "the quick fox")
	want := 6.0 / 7.0
	if got != want {
		t.Errorf("Similarity = %v, want %v", got, want)
	}
	if g := Grade(got); g != 85 {
		t.Errorf("Grade = %d, want 85", g)
	}
}

func TestSimilarityDisjoint(t *testing.T) {
	if got := Similarity("alpha beta", "xylophone quartz"); got != 0.0 {
		t.Errorf("Similarity of disjoint texts = %v, want 0", got)
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("Similarity of two empties = %v, want 1.0", got)
	}
	if got := Similarity("some text", ""); got != 0.0 {
		t.Errorf("Similarity against empty = %v, want 0", got)
	}
}

func TestSimilarityHomophones(t *testing.T) {
	// "there"/"their" share a soundex code; a recognizer picking the wrong
	// spelling should not lower the grade.
	if got := Similarity("their house is big", "there house is big"); got != 1.0 {
		t.Errorf("Similarity with homophone = %v, want 1.0", got)
	}
}

func TestGradeFloors(t *testing.T) {
	tests := []struct {
		similarity float64
		want       int
	}{
		{0, 0},
		{1, 100},
		{0.856, 85},
		{0.999, 99},
	}
	for _, tt := range tests {
		if got := Grade(tt.similarity); got != tt.want {
			t.Errorf("Grade(%v) = %d, want %d", tt.similarity, got, tt.want)
		}
	}
}
