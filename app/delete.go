package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/breathe/internal/config"
)

// confirm requests confirmation before a destructive operation. It returns
// errAborted unless the user presses ENTER or answers yes.
func confirm(msg string) error {
	warning := pterm.Warning.Sprint(msg + ". Press ENTER to proceed")

	fmt.Fprint(config.Stdout, warning)

	reader := bufio.NewReader(config.Stdin)

	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		if errors.Is(err, io.EOF) && answer == "" {
			return errAborted
		}

		return nil
	default:
		return errAborted
	}
}
