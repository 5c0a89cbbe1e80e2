package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("Mail Konto\n"), "Title?", &out)
	if err != nil || got != "Mail Konto" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	if !strings.Contains(out.String(), "Title?") {
		t.Fatalf("prompt missing in output: %q", out.String())
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Title?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEmptyInput(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Title?", &out)
	if err == nil {
		t.Fatal("expected error on EOF without input")
	}
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("erste Zeile\nzweite Zeile\n\n\n"), "Notes", &out)
	if err != nil {
		t.Fatal(err)
	}
	want := "erste Zeile\nzweite Zeile"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out, "Master password: ")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("geheim123"), nil
	}
	var out bytes.Buffer
	pw, err := GetPassword(&out, "Master password: ")
	require.NoError(t, err)
	require.Equal(t, []byte("geheim123"), pw)
	require.Contains(t, out.String(), "Master password: ")
}

func TestGetConfirmation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain y", "y\n", true},
		{"yes", "yes\n", true},
		{"german j", "j\n", true},
		{"german ja", "ja\n", true},
		{"uppercase JA", "JA\n", true},
		{"n", "n\n", false},
		{"empty answer defaults to no", "\n", false},
		{"anything else is no", "maybe\n", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetConfirmation(rdr(tc.input), "Delete entry 3?", &out)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Contains(t, out.String(), "(y/N)")
		})
	}
}
