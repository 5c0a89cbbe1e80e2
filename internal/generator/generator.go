// Package generator produces PINs, random passwords and memorable passwords,
// and scores password strength. All randomness comes from crypto/rand.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

const (
	lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	uppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits           = "0123456789"
	specialChars     = "!@#$%&*()-_=+[]{}|;:,.<>?"
)

var (
	ErrorInvalidPINLength      = errors.New("pin length must be between 4 and 8")
	ErrorInvalidPasswordLength = errors.New("password length must be 8, 12, 16 or 32")
)

// maxSpecialChars caps the number of special characters per password length.
var maxSpecialChars = map[int]int{8: 2, 12: 3, 16: 4, 32: 8}

// randomInt returns a uniform random int in [0, max).
func randomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// crypto/rand only fails when the platform RNG is broken
		panic(fmt.Sprintf("generator: random source failed: %v", err))
	}
	return int(n.Int64())
}

func pick(set string) byte {
	return set[randomInt(len(set))]
}

func shuffle(b []byte) {
	for i := len(b) - 1; i > 0; i-- {
		j := randomInt(i + 1)
		b[i], b[j] = b[j], b[i]
	}
}

// sampleInts returns k distinct random ints from [0, n) in random order.
func sampleInts(n, k int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + randomInt(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:k]
}

// PIN generates a numeric PIN of 4 to 8 characters. With useLetters the
// character set additionally contains upper- and lowercase letters.
func PIN(length int, useLetters bool) (string, error) {
	if length < 4 || length > 8 {
		return "", ErrorInvalidPINLength
	}

	chars := digits
	if useLetters {
		chars = digits + lowercaseLetters + uppercaseLetters
	}

	out := make([]byte, length)
	for i := range out {
		out[i] = pick(chars)
	}
	return string(out), nil
}

// Password generates a random password of 8, 12, 16 or 32 characters. The
// result always contains at least one lowercase letter and one digit, at
// least one uppercase letter when useUppercase is set, and with useSpecial a
// capped number of special characters with no two of them adjacent.
func Password(length int, useUppercase, useSpecial bool) (string, error) {
	if _, ok := maxSpecialChars[length]; !ok {
		return "", ErrorInvalidPasswordLength
	}

	charTypes := []string{lowercaseLetters, digits}
	if useUppercase {
		charTypes = append(charTypes, uppercaseLetters)
	}

	numSpecial := 0
	if useSpecial {
		numSpecial = min(maxSpecialChars[length], length/4)
	}

	// one guaranteed character per enabled type, the rest is filler
	plain := make([]byte, 0, length-numSpecial)
	for _, set := range charTypes {
		plain = append(plain, pick(set))
	}
	allPlain := strings.Join(charTypes, "")
	for len(plain) < length-numSpecial {
		plain = append(plain, pick(allPlain))
	}
	shuffle(plain)

	if numSpecial == 0 {
		return string(plain), nil
	}

	// place the special characters on non-adjacent positions: k slots from
	// the n-k+1 gap positions, spread by their index
	positions := sampleInts(length-numSpecial+1, numSpecial)
	sort.Ints(positions)
	isSpecialPos := make(map[int]bool, numSpecial)
	for i, p := range positions {
		isSpecialPos[p+i] = true
	}

	out := make([]byte, 0, length)
	next := 0
	for i := 0; i < length; i++ {
		if isSpecialPos[i] {
			out = append(out, pick(specialChars))
			continue
		}
		out = append(out, plain[next])
		next++
	}
	return string(out), nil
}

// memorableWords is the word list for memorable passwords.
var memorableWords = []string{
	"apfel", "baum", "computer", "daten", "elefant", "farbe", "garten", "haus",
	"internet", "jahr", "kaffee", "lampe", "maus", "netz", "orange", "papier",
	"qualität", "raum", "sonne", "tisch", "uhr", "vogel", "wasser", "xylophon",
	"yoga", "zeit", "brief", "buch", "fenster", "gabel", "katze", "löffel",
	"messer", "nadel", "schere", "tasse", "teller", "wolke", "blatt", "blume",
	"berg", "fluss", "meer", "stern", "mond", "himmel", "wind", "feuer",
	"erde", "wasser", "luft", "licht", "schatten", "regen", "schnee", "wüste",
}

// Memorable generates a password from random dictionary words joined by
// separator. A word count outside 2..4 falls back to 3. With capitalize each
// word starts uppercase; with addNumber a number between 10 and 999 is
// appended as the last element.
func Memorable(wordCount int, separator string, capitalize, addNumber bool) string {
	if wordCount < 2 || wordCount > 4 {
		wordCount = 3
	}

	parts := make([]string, 0, wordCount+1)
	for _, i := range sampleInts(len(memorableWords), wordCount) {
		word := memorableWords[i]
		if capitalize {
			r := []rune(word)
			parts = append(parts, strings.ToUpper(string(r[0]))+string(r[1:]))
			continue
		}
		parts = append(parts, word)
	}

	if addNumber {
		parts = append(parts, fmt.Sprintf("%d", 10+randomInt(990)))
	}

	return strings.Join(parts, separator)
}
