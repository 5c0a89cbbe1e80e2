package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Empty(t *testing.T) {
	s := Score("")
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, "Sehr schwach", s.Rating)
	assert.Equal(t, "red", s.Color)
	assert.Empty(t, s.Feedback)
}

func TestScore_Vectors(t *testing.T) {
	tests := []struct {
		password string
		score    int
		rating   string
		color    string
	}{
		// lowercase only plus the alphabet run penalty clamps to zero
		{"abc", 0, "Sehr schwach", "red"},
		// enough length but one character class and heavy repetition
		{"aaaaaaaa", 5, "Sehr schwach", "red"},
		{"passwort", 20, "Sehr schwach", "red"},
		// all four classes, "mm" repeat
		{"Sommer2024!", 60, "Mittel", "orange"},
		// all four classes but contains "abc"
		{"Abc123!@#xyz", 60, "Mittel", "orange"},
		// long, all classes, no repeats or runs
		{"K9!mR2@pL5#qX8", 75, "Stark", "yellowgreen"},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			s := Score(tt.password)
			assert.Equal(t, tt.score, s.Score)
			assert.Equal(t, tt.rating, s.Rating)
			assert.Equal(t, tt.color, s.Color)
		})
	}
}

func TestScore_Feedback(t *testing.T) {
	s := Score("aaaaaaaa")
	assert.Contains(t, s.Feedback, "Ausreichende Länge")
	assert.Contains(t, s.Feedback, "Mehr Zeichenarten verwenden")
	assert.Contains(t, s.Feedback, "Wiederholte Zeichen vermeiden")

	s = Score("Abc123!@#xyz")
	assert.Contains(t, s.Feedback, "Gute Länge")
	assert.Contains(t, s.Feedback, "Sequenzen vermeiden")
	assert.NotContains(t, s.Feedback, "Mehr Zeichenarten verwenden")

	s = Score("kurz")
	assert.Contains(t, s.Feedback, "Zu kurz")
}

func TestScore_DigitSequence(t *testing.T) {
	with := Score("Xy!a4567bq")
	without := Score("Xy!a4747bq")
	assert.Equal(t, without.Score-15, with.Score)
	assert.Contains(t, with.Feedback, "Sequenzen vermeiden")
}

func TestScore_Bounds(t *testing.T) {
	for _, pw := range []string{"", "a", "abcabcabc", "K9!mR2@pL5#qX8", "aaaaaaaaaaaaaaaaaaaa"} {
		s := Score(pw)
		assert.GreaterOrEqual(t, s.Score, 0, "password %q", pw)
		assert.LessOrEqual(t, s.Score, 100, "password %q", pw)
	}
}

func TestScore_GeneratedPasswordsAreStrong(t *testing.T) {
	for i := 0; i < 10; i++ {
		pw, err := Password(16, true, true)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		s := Score(pw)
		assert.GreaterOrEqual(t, s.Score, 40, "password %q scored %d", pw, s.Score)
	}
}
