package catalog

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/ganot/labelcap/internal/dataset"
)

// WriteReport renders a markdown summary of the catalog: per-class totals
// and a value breakdown for every observed attribute.
func (c *Catalog) WriteReport(ctx context.Context, w io.Writer, opts dataset.CSVOptions) error {
	counts, err := c.ClassCounts(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "# Статистика датасета")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "*Сгенерировано: %s*\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)

	total := 0
	for _, count := range counts {
		total += count
	}
	fmt.Fprintf(w, "**Всего записей:** %d\n", total)

	for _, classID := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "---")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "## %s\n", classID)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "**Записей:** %d\n", counts[classID])

		names, err := c.attributeNames(ctx, classID)
		if err != nil {
			return err
		}
		for _, name := range names {
			breakdown, err := c.AttributeBreakdown(ctx, classID, name, opts)
			if err != nil {
				return err
			}
			if len(breakdown) == 0 {
				continue
			}
			fmt.Fprintln(w)
			fmt.Fprintf(w, "**%s:**\n", name)
			for _, value := range slices.Sorted(maps.Keys(breakdown)) {
				count := breakdown[value]
				percentage := float64(count) / float64(counts[classID]) * 100
				fmt.Fprintf(w, "  - %s: %d (%.1f%%)\n", value, count, percentage)
			}
		}
	}
	return nil
}

func sortedKeys(values map[string]any) []string {
	return slices.Sorted(maps.Keys(values))
}
