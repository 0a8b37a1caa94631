package publish

import (
	"fmt"
	"strings"
	"time"
)

// DatasetCard renders the README.md published with the dataset: YAML front
// matter wiring each per-class CSV as a data file, the dataset structure and
// the current statistics.
func DatasetCard(stats *DatasetStats, repoID string, classIDs []string) string {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("license: mit\n")
	b.WriteString("task_categories:\n- image-classification\n")
	b.WriteString("language:\n- ru\n")
	b.WriteString("configs:\n- config_name: default\n  data_files:\n")
	for _, classID := range classIDs {
		fmt.Fprintf(&b, "  - split: train\n    path: \"%s.csv\"\n", strings.ToLower(classID))
	}
	b.WriteString("---\n\n")

	b.WriteString("# Container Classification Dataset\n\n")
	b.WriteString("Датасет для классификации контейнеров.\n\n")

	b.WriteString("## Dataset Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Images**: %d\n", stats.Images)
	fmt.Fprintf(&b, "- **Total Annotations**: %d\n\n", stats.Metadata)
	b.WriteString("**Class Distribution**:\n")
	for _, classID := range classIDs {
		fmt.Fprintf(&b, "- %s: %d samples\n", classID, stats.Classes[classID])
	}

	b.WriteString("\n## Dataset Structure\n\n```\n")
	b.WriteString("images/          # image files (YYYYMMDD_HHMMSS_ffffff.jpg)\n")
	b.WriteString("meta/            # JSON metadata files\n")
	for _, classID := range classIDs {
		fmt.Fprintf(&b, "%-16s # %s class annotations\n", strings.ToLower(classID)+".csv", classID)
	}
	b.WriteString("```\n")

	if repoID != "" {
		b.WriteString("\n## Usage\n\n```python\nfrom datasets import load_dataset\n\n")
		fmt.Fprintf(&b, "dataset = load_dataset(%q)\n```\n", repoID)
	}

	fmt.Fprintf(&b, "\nLast updated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	return b.String()
}
