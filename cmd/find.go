package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/model"
	"github.com/mj1618/a11y-check/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find <fixture>...",
	Short: "Search for elements across fixture trees",
	Long:  "Search for elements by text across one or more fixture trees. The reported IDs and paths can be passed to eval and assert.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("text", "", "Text to search for (case-insensitive substring match on title/value/description)")
	findCmd.Flags().String("roles", "", "Filter by role (e.g. \"btn\", \"btn,lnk,input\")")
	findCmd.Flags().Int("limit", 10, "Max total matching elements to return")
	findCmd.Flags().Bool("exact", false, "Require exact match instead of substring")
}

// findFixtureMatch groups matching elements with the fixture they came from.
type findFixtureMatch struct {
	Fixture  string            `yaml:"fixture"  json:"fixture"`
	Elements []findElementInfo `yaml:"elements" json:"elements"`
}

// findElementInfo is a compact element representation for find results.
type findElementInfo struct {
	ID          int    `yaml:"i"              json:"i"`
	Role        string `yaml:"r"              json:"r"`
	Title       string `yaml:"t,omitempty"    json:"t,omitempty"`
	Value       string `yaml:"v,omitempty"    json:"v,omitempty"`
	Description string `yaml:"d,omitempty"    json:"d,omitempty"`
	Path        string `yaml:"path"           json:"path"`
}

// findResult is the top-level output of the find command.
type findResult struct {
	OK      bool               `yaml:"ok"      json:"ok"`
	Action  string             `yaml:"action"  json:"action"`
	Text    string             `yaml:"text"    json:"text"`
	Matches []findFixtureMatch `yaml:"matches" json:"matches"`
	Total   int                `yaml:"total"   json:"total"`
}

func runFind(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	rolesStr, _ := cmd.Flags().GetString("roles")
	limit, _ := cmd.Flags().GetInt("limit")
	exact, _ := cmd.Flags().GetBool("exact")

	if text == "" {
		return fmt.Errorf("--text is required")
	}

	result := findResult{OK: true, Action: "find", Text: text, Matches: []findFixtureMatch{}}
	for _, path := range args {
		if result.Total >= limit {
			break
		}
		records, err := loadRecords([]string{path})
		if err != nil {
			return err
		}
		m := findInRecords(records, text, rolesStr, exact, limit-result.Total)
		if len(m) == 0 {
			continue
		}
		result.Matches = append(result.Matches, findFixtureMatch{Fixture: path, Elements: m})
		result.Total += len(m)
	}
	return output.Print(result)
}

// findInRecords returns up to limit leaf matches with their role paths.
func findInRecords(records []model.Element, text, roles string, exact bool, limit int) []findElementInfo {
	found := collectLeafMatches(records, strings.ToLower(text), roleFilter(roles), exact)
	if len(found) > limit {
		found = found[:limit]
	}
	var infos []findElementInfo
	for _, el := range found {
		infos = append(infos, findElementInfo{
			ID:          el.ID,
			Role:        el.Role,
			Title:       el.Title,
			Value:       el.Value,
			Description: el.Description,
			Path:        findRolePathToID(records, el.ID),
		})
	}
	return infos
}
