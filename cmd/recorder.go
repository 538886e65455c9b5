package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-check/internal/output"
	"github.com/mj1618/a11y-check/internal/recorder"
)

var recorderCmd = &cobra.Command{
	Use:   "recorder",
	Short: "Inspect and edit the event recording configuration",
	Long: `Inspect and edit the recording configuration: which events and
properties a recorder listens to, whether focus changes are followed, and the
tree scope of the listeners.

The file is created with defaults on first use and new catalog events are
merged in on every load. Edits are written atomically under a file lock.`,
}

var recorderShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the recording configuration",
	Args:  cobra.NoArgs,
	RunE:  runRecorderShow,
}

var recorderInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the recording configuration with defaults",
	Args:  cobra.NoArgs,
	RunE:  runRecorderInit,
}

var recorderToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Check or uncheck an event or property",
	Long: `Check (--on) or uncheck (--off) an event or property. Each check adds one
to the entry's reference count and each uncheck removes one. The focus-changed
event switches listen_focus_changed instead. Unknown property ids are added as
custom entries.`,
	Args: cobra.NoArgs,
	RunE: runRecorderToggle,
}

var recorderScopeCmd = &cobra.Command{
	Use:   "scope <scope>",
	Short: "Set the listener tree scope (Element, Children, Descendants, Subtree, ...)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecorderScope,
}

func init() {
	rootCmd.AddCommand(recorderCmd)
	recorderCmd.AddCommand(recorderShowCmd, recorderInitCmd, recorderToggleCmd, recorderScopeCmd)
	recorderCmd.PersistentFlags().String("path", "", "Recording configuration file (default from config)")

	recorderShowCmd.Flags().Bool("recorded", false, "Only list events that are recorded")
	recorderShowCmd.Flags().Bool("unrecorded", false, "Only list events that are not recorded")

	recorderInitCmd.Flags().Bool("force", false, "Overwrite an existing file with defaults")

	recorderToggleCmd.Flags().String("type", "event", "Entry type: event, property")
	recorderToggleCmd.Flags().Int("id", 0, "Event or property ID")
	recorderToggleCmd.Flags().Bool("on", false, "Check the entry")
	recorderToggleCmd.Flags().Bool("off", false, "Uncheck the entry")
	recorderToggleCmd.Flags().String("name", "", "Name for a new custom property")
}

func recorderPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("path"); p != "" {
		return p
	}
	return cfg.RecorderPath
}

func loadRecorder(cmd *cobra.Command) (string, *recorder.Setting, error) {
	path := recorderPath(cmd)
	s, err := recorder.Load(path, recorder.DefaultCatalog(), logger.Named("recorder"))
	return path, s, err
}

func runRecorderShow(cmd *cobra.Command, args []string) error {
	recorded, _ := cmd.Flags().GetBool("recorded")
	unrecorded, _ := cmd.Flags().GetBool("unrecorded")
	if recorded && unrecorded {
		return fmt.Errorf("--recorded and --unrecorded are mutually exclusive")
	}
	_, s, err := loadRecorder(cmd)
	if err != nil {
		return err
	}
	switch {
	case recorded:
		return output.Print(s.EventsByRecorded(true))
	case unrecorded:
		return output.Print(s.EventsByRecorded(false))
	}
	return output.Print(s)
}

func runRecorderInit(cmd *cobra.Command, args []string) error {
	if force, _ := cmd.Flags().GetBool("force"); force {
		path := recorderPath(cmd)
		s := recorder.Default(recorder.DefaultCatalog())
		if err := recorder.Save(path, s); err != nil {
			return err
		}
		return output.Print(s)
	}
	_, s, err := loadRecorder(cmd)
	if err != nil {
		return err
	}
	return output.Print(s)
}

func runRecorderToggle(cmd *cobra.Command, args []string) error {
	typeStr, _ := cmd.Flags().GetString("type")
	id, _ := cmd.Flags().GetInt("id")
	on, _ := cmd.Flags().GetBool("on")
	off, _ := cmd.Flags().GetBool("off")
	name, _ := cmd.Flags().GetString("name")

	typ, err := recorder.ParseEntityType(typeStr)
	if err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("--id is required")
	}
	if on == off {
		return fmt.Errorf("specify exactly one of --on or --off")
	}

	path, s, err := loadRecorder(cmd)
	if err != nil {
		return err
	}
	if err := s.SetChecked(id, typ, on, name); err != nil {
		return err
	}
	if err := recorder.Save(path, s); err != nil {
		return err
	}
	logger.Debug("recorder entry toggled", "type", typ, "id", id, "on", on)
	return output.Print(s)
}

func runRecorderScope(cmd *cobra.Command, args []string) error {
	scope, err := recorder.ParseTreeScope(args[0])
	if err != nil {
		return err
	}
	path, s, err := loadRecorder(cmd)
	if err != nil {
		return err
	}
	s.ListenScope = scope
	if err := recorder.Save(path, s); err != nil {
		return err
	}
	return output.Print(s)
}
