package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"langcat/pkg/browser"
	"langcat/pkg/model"
	"langcat/pkg/tracker"
	"langcat/pkg/view"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Filter the catalog from the terminal",
	Long:  "Loads the configured catalog once and prints every language whose name or description contains the term. No term lists everything.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the matching records as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctrl, err := newController(cfg, tracker.New())
	if err != nil {
		return err
	}
	if _, err := ctrl.Start(cmd.Context()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), view.LoadFailureMessage)
		return err
	}

	term := strings.Join(args, " ")
	v, _ := ctrl.Handle(browser.Input("cli", term))
	out := cmd.OutOrStdout()

	if searchJSON {
		records, err := ctrl.Search(term)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []model.Language{}
		}
		return enc.Encode(records)
	}

	printView(out, v)
	return nil
}

func printView(w io.Writer, v view.View) {
	switch v.Kind {
	case view.KindCards:
		for i, c := range v.Cards {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if c.Year != "" {
				fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Year)
			} else {
				fmt.Fprintln(w, c.Name)
			}
			if c.Description != "" {
				fmt.Fprintf(w, "  %s\n", c.Description)
			}
			if c.Link != "" {
				fmt.Fprintf(w, "  %s %s\n", c.LinkLabel, c.Link)
			}
		}
	case view.KindFeedback, view.KindError:
		fmt.Fprintln(w, v.Message)
	}
}
