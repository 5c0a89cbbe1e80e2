package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const settingsUsage = "Usage: settings | settings theme <light|dark> | settings language <code> | settings autolock <minutes|off> | settings columns <col,col,...>"

// Settings shows or changes the stored preferences. Auto-lock changes take
// effect immediately.
func (a *App) Settings(ctx context.Context, args []string) error {
	settings, err := a.store.GetSettings(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if len(args) == 0 {
		fmt.Fprintf(a.out, "Theme:     %s\n", settings.Theme)
		fmt.Fprintf(a.out, "Language:  %s\n", settings.Language)
		fmt.Fprintf(a.out, "Columns:   %s\n", strings.Join(settings.VisibleColumns, ", "))
		if settings.AutoLockEnabled {
			fmt.Fprintf(a.out, "Auto-lock: after %d minutes\n", settings.AutoLockMinutes)
		} else {
			fmt.Fprintln(a.out, "Auto-lock: off")
		}
		return nil
	}

	switch args[0] {
	case "theme":
		if len(args) < 2 || (args[1] != "light" && args[1] != "dark") {
			fmt.Fprintln(a.out, "Usage: settings theme <light|dark>")
			return nil
		}
		settings.Theme = args[1]

	case "language":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: settings language <code>")
			return nil
		}
		settings.Language = args[1]

	case "columns":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: settings columns <col,col,...>")
			return nil
		}
		var cols []string
		for _, c := range strings.Split(strings.Join(args[1:], ","), ",") {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
		if len(cols) == 0 {
			fmt.Fprintln(a.out, "Usage: settings columns <col,col,...>")
			return nil
		}
		settings.VisibleColumns = cols

	case "autolock":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: settings autolock <minutes|off>")
			return nil
		}
		if args[1] == "off" {
			settings.AutoLockEnabled = false
		} else {
			minutes, err := strconv.Atoi(args[1])
			if err != nil || minutes < 1 {
				fmt.Fprintln(a.out, "Auto-lock expects a number of minutes or 'off'.")
				return nil
			}
			settings.AutoLockEnabled = true
			settings.AutoLockMinutes = minutes
		}

	default:
		fmt.Fprintln(a.out, settingsUsage)
		return nil
	}

	if err := a.store.SaveSettings(ctx, settings); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	a.session.ConfigureAutoLock(settings.AutoLockEnabled, time.Duration(settings.AutoLockMinutes)*time.Minute)
	fmt.Fprintln(a.out, "Settings saved.")
	return nil
}
