package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Tech-Artist89/Passwortmanager/internal/generator"
)

const generateUsage = `Usage: gen pin <4-8> [letters]
       gen pw <8|12|16|32> [noupper] [nospecial]
       gen words <2-4> [separator]
       gen check <password>`

// Generate creates PINs, passwords or memorable passwords, or scores a
// password. The result is printed together with its strength rating.
func (a *App) Generate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, generateUsage)
		return nil
	}

	switch args[0] {
	case "pin":
		length := 6
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(a.out, generateUsage)
				return nil
			}
			length = n
		}
		useLetters := len(args) > 2 && args[2] == "letters"

		pin, err := generator.PIN(length, useLetters)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		fmt.Fprintln(a.out, pin)
		return nil

	case "pw", "password":
		length := 16
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(a.out, generateUsage)
				return nil
			}
			length = n
		}
		useUppercase := true
		useSpecial := true
		for _, arg := range args[2:] {
			switch arg {
			case "noupper":
				useUppercase = false
			case "nospecial":
				useSpecial = false
			}
		}

		password, err := generator.Password(length, useUppercase, useSpecial)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return err
		}
		a.printWithStrength(password)
		return nil

	case "words", "memorable":
		wordCount := 3
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(a.out, generateUsage)
				return nil
			}
			wordCount = n
		}
		separator := "-"
		if len(args) > 2 {
			separator = args[2]
		}

		password := generator.Memorable(wordCount, separator, true, true)
		a.printWithStrength(password)
		return nil

	case "check":
		if len(args) < 2 {
			fmt.Fprintln(a.out, generateUsage)
			return nil
		}
		s := generator.Score(strings.Join(args[1:], " "))
		fmt.Fprintf(a.out, "%s (%d/100)\n", s.Rating, s.Score)
		for _, hint := range s.Feedback {
			fmt.Fprintf(a.out, "  - %s\n", hint)
		}
		return nil

	default:
		fmt.Fprintln(a.out, generateUsage)
		return nil
	}
}

func (a *App) printWithStrength(password string) {
	s := generator.Score(password)
	fmt.Fprintln(a.out, password)
	fmt.Fprintf(a.out, "Strength: %s (%d/100)\n", s.Rating, s.Score)
}
