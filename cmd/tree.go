package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/model"
	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/platform"
)

var treeCmd = &cobra.Command{
	Use:   "tree <fixture>...",
	Short: "Print the element tree of fixture files",
	Long:  "Print the element records of one or more fixtures, optionally filtered or flattened with path breadcrumbs. IDs shown here are the ones eval, assert and scan report.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Int("depth", 0, "Max depth to print (0 = unlimited)")
	treeCmd.Flags().String("roles", "", "Comma-separated roles to include (e.g. \"btn,input,lnk\")")
	treeCmd.Flags().String("bbox", "", "Only include elements within bounding box (x,y,w,h)")
	treeCmd.Flags().String("text", "", "Only include elements whose title/value/description contains this text, with their ancestors")
	treeCmd.Flags().Bool("flat", false, "Flatten the tree into a list with path breadcrumbs")
	treeCmd.Flags().Bool("prune", false, "Drop anonymous groups and promote their children")
}

func runTree(cmd *cobra.Command, args []string) error {
	depth, _ := cmd.Flags().GetInt("depth")
	rolesStr, _ := cmd.Flags().GetString("roles")
	bboxStr, _ := cmd.Flags().GetString("bbox")
	text, _ := cmd.Flags().GetString("text")
	flat, _ := cmd.Flags().GetBool("flat")
	prune, _ := cmd.Flags().GetBool("prune")

	records, err := loadRecords(args)
	if err != nil {
		return err
	}

	var bbox *[4]int
	if bboxStr != "" {
		b, err := platform.ParseBBox(bboxStr)
		if err != nil {
			return err
		}
		rect := b.Rect()
		bbox = &rect
	}

	records = filterTree(records, treeFilter{
		depth: depth,
		roles: splitList(rolesStr),
		bbox:  bbox,
		text:  text,
		prune: prune,
	})

	source := platform.NewFixtureSource(args...).Describe()
	if flat {
		flatEls := model.FlattenElements(records)
		return output.Print(output.TreeFlatResult{Source: source, Count: len(flatEls), Elements: flatEls})
	}
	return output.Print(output.TreeResult{Source: source, Count: countRecords(records), Elements: records})
}

type treeFilter struct {
	depth int
	roles []string
	bbox  *[4]int
	text  string
	prune bool
}

// filterTree applies the tree flags in a fixed order: depth, text, then
// role and bbox filtering, then pruning.
func filterTree(records []model.Element, f treeFilter) []model.Element {
	if f.depth > 0 {
		records = truncateDepth(records, f.depth)
	}
	records = model.FilterByText(records, f.text)
	records = model.FilterElements(records, f.roles, f.bbox)
	if f.prune {
		records = model.PruneEmptyGroups(records)
	}
	return records
}

// truncateDepth drops records below depth levels; roots are level 1.
func truncateDepth(records []model.Element, depth int) []model.Element {
	out := make([]model.Element, len(records))
	for i, el := range records {
		if depth <= 1 {
			el.Children = nil
		} else {
			el.Children = truncateDepth(el.Children, depth-1)
		}
		out[i] = el
	}
	return out
}

func countRecords(records []model.Element) int {
	n := 0
	for _, el := range records {
		n += 1 + countRecords(el.Children)
	}
	return n
}
