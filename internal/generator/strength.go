package generator

import (
	"strings"
	"unicode"
)

// Strength is the result of scoring a password.
type Strength struct {
	Score    int
	Rating   string
	Color    string
	Feedback []string
}

var sequences = []string{"abcdefghijklmnopqrstuvwxyz", "0123456789"}

// Score rates a password from 0 to 100 and returns a German rating label, a
// display color and improvement hints. Length and character variety add
// points, repeated characters and sequences subtract them.
func Score(password string) Strength {
	if password == "" {
		return Strength{Score: 0, Rating: "Sehr schwach", Color: "red"}
	}

	runes := []rune(password)
	score := 0
	var feedback []string

	switch {
	case len(runes) >= 12:
		score += 25
		feedback = append(feedback, "Gute Länge")
	case len(runes) >= 8:
		score += 15
		feedback = append(feedback, "Ausreichende Länge")
	default:
		feedback = append(feedback, "Zu kurz")
	}

	complexity := 0
	if containsFunc(runes, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		complexity += 10
	}
	if containsFunc(runes, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		complexity += 10
	}
	if containsFunc(runes, unicode.IsDigit) {
		complexity += 10
	}
	if containsFunc(runes, isSpecialRune) {
		complexity += 20
	}
	score += complexity
	if complexity < 20 {
		feedback = append(feedback, "Mehr Zeichenarten verwenden")
	}

	repeats := 0
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			repeats++
		}
	}
	if repeats > 0 {
		score -= min(5*repeats, 20)
		feedback = append(feedback, "Wiederholte Zeichen vermeiden")
	}

	if hasSequence(strings.ToLower(password)) {
		score -= 15
		feedback = append(feedback, "Sequenzen vermeiden")
	}

	score = max(0, min(score, 100))
	rating, color := rate(score)

	return Strength{Score: score, Rating: rating, Color: color, Feedback: feedback}
}

func rate(score int) (string, string) {
	switch {
	case score < 30:
		return "Sehr schwach", "red"
	case score < 50:
		return "Schwach", "orangered"
	case score < 70:
		return "Mittel", "orange"
	case score < 90:
		return "Stark", "yellowgreen"
	default:
		return "Sehr stark", "green"
	}
}

func containsFunc(runes []rune, f func(rune) bool) bool {
	for _, r := range runes {
		if f(r) {
			return true
		}
	}
	return false
}

func isSpecialRune(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return false
	}
	return !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

// hasSequence reports whether the lowercased password contains any run of
// three consecutive alphabet or digit characters.
func hasSequence(lower string) bool {
	for _, seq := range sequences {
		for i := 0; i+3 <= len(seq); i++ {
			if strings.Contains(lower, seq[i:i+3]) {
				return true
			}
		}
	}
	return false
}
