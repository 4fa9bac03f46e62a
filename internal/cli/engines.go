package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"pdftools/pkg/document"
)

func enginesCommand(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "engines",
		Short:   "List the external tools and conversion engines found on this machine",
		Example: "pdftools engines --libreoffice-path /opt/libreoffice/program/soffice",
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, err := global.newProcessor()
			if err != nil {
				return err
			}
			printAvailability(cmd.OutOrStdout(), processor.Availability(cmd.Context(), false))
			return nil
		},
	}
}

func printAvailability(w io.Writer, availability document.Availability) {
	fmt.Fprintln(w, "Tools:")
	for _, status := range availability.Tools {
		if status.Available {
			fmt.Fprintf(w, "  %-12s %s\n", status.Tool, status.Path)
		} else {
			fmt.Fprintf(w, "  %-12s missing, %s\n", status.Tool, status.Hint)
		}
	}

	printEngines(w, "PDF to DOCX engines:", availability.PdfToDocx)
	printEngines(w, "DOCX to PDF engines:", availability.DocxToPdf)
}

func printEngines(w io.Writer, title string, engines map[document.Engine]bool) {
	names := make([]string, 0, len(engines))
	for engine := range engines {
		names = append(names, string(engine))
	}
	sort.Strings(names)

	fmt.Fprintln(w, title)
	for _, name := range names {
		state := "unavailable"
		if engines[document.Engine(name)] {
			state = "available"
		}
		fmt.Fprintf(w, "  %-12s %s\n", name, state)
	}
}
