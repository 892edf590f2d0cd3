package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/datallboy/otmget/internal/catalog"
	"github.com/datallboy/otmget/internal/domain"
)

var (
	numberStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	continentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Italic(true)
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

func newListCmd(s *session) *cobra.Command {
	var continent string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the numbered catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := s.app.Catalog.Fetch(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			printCatalog(cmd.OutOrStdout(), catalog.Filter(records, continent))
			return nil
		},
	}

	cmd.Flags().StringVar(&continent, "continent", "", "only list areas of this continent")

	return cmd
}

func printCatalog(out io.Writer, records []domain.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No maps found.")
		return
	}

	width := 0
	for _, r := range records {
		width = max(width, lipgloss.Width(r.Name))
	}
	nameStyle := lipgloss.NewStyle().Width(width + 2)

	fmt.Fprintln(out, headerStyle.Render("Available Maps:"))
	for _, r := range records {
		fmt.Fprintf(out, "%s %s%s\n",
			numberStyle.Render(fmt.Sprintf("%03d.", r.Number)),
			nameStyle.Render(r.Name),
			continentStyle.Render(r.Continent))
	}
}
