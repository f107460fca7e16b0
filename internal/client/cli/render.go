package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

var errInvalidID = errors.New("invalid id")

// writeTable prints header and rows as left-aligned columns. Widths are
// measured in terminal cells so wide characters stay aligned.
func writeTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	measure := func(cells []string) {
		for i, c := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(c))
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}

	line := func(cells []string) {
		var b strings.Builder
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i > 0 {
				b.WriteString(columnGap)
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	line(header)
	for _, r := range rows {
		line(r)
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// parseID accepts positive decimal ids only.
func parseID(raw string) (models.ID, error) {
	id, err := models.ParseID(raw)
	if err != nil || id.IsZero() {
		return 0, fmt.Errorf("%w: %q", errInvalidID, raw)
	}
	return id, nil
}

// askUntilValid prompts until set accepts the answer. Enter keeps current.
func (a *App) askUntilValid(prompt, current string, set func(string) error) error {
	for {
		v, err := GetTextWithDefault(a.reader, prompt, current, a.out)
		if err != nil {
			return err
		}
		if err := set(v); err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return nil
	}
}
