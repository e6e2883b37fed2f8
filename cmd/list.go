package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/billwatch/internal/collection"
	"github.com/matheuskafuri/billwatch/internal/congress"
	"github.com/matheuskafuri/billwatch/internal/filter"
	"github.com/matheuskafuri/billwatch/internal/pager"
)

const listTitleWidth = 70

func newListCmd() *cobra.Command {
	var (
		search            string
		exclude           []string
		noDefaultExcludes bool
		sortExpr          string
		page              int
		pageSize          int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of bill summaries",
		Long: `Load every summary in the date range, apply search and exclusions,
sort, and print the requested page as a table followed by the total count.`,
		Example: `  # Bills about tariffs from the last week, newest action first
  billwatch list --from 2024-05-01 --search tariff --sort actionDate:desc

  # Show everything, including commemorative resolutions
  billwatch list --no-default-excludes --page-size 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := consoleLogger(cmd.ErrOrStderr(), cfg)

			sort, err := pager.ParseSort(sortExpr)
			if err != nil {
				return err
			}
			if pageSize == 0 {
				pageSize = cfg.GetPageSize()
			}
			if !pager.ValidPageSize(pageSize) {
				return fmt.Errorf("--page-size must be one of %v", pager.PageSizes)
			}
			rng, err := resolveRange(flagFrom, flagTo, cfg.LookbackDuration(), time.Now())
			if err != nil {
				return err
			}

			var seed []string
			if !noDefaultExcludes {
				seed = cfg.ExcludeTerms
			}
			terms := filter.NewTerms(seed)
			for _, t := range exclude {
				terms.Add(t)
			}

			loader := collection.NewLoader(newClient(cfg, log), log)
			res := loader.Load(cmd.Context(), rng)
			if res.Err != nil {
				return res.Err
			}

			p := pager.Derive(res.Bills, pager.Inputs{
				Query:    search,
				Terms:    terms.List(),
				Sort:     sort,
				Page:     page,
				PageSize: pageSize,
			})
			renderList(cmd.OutOrStdout(), p, rng, len(res.Bills))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "keep titles containing any of these words")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "hide titles containing this term (repeatable)")
	cmd.Flags().BoolVar(&noDefaultExcludes, "no-default-excludes", false, "ignore exclude_terms from the config")
	cmd.Flags().StringVar(&sortExpr, "sort", "", "sort column[:asc|desc] (number, actionDate, updateDate, originChamber)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page: 10, 25, 50 or 100 (default from config)")

	return cmd
}

func renderList(w io.Writer, p pager.Page, rng congress.DateRange, loaded int) {
	if p.Total == 0 {
		fmt.Fprintf(w, "No bills match (%d loaded for %s).\n", loaded, rng)
		return
	}

	rows := make([][]string, 0, len(p.Rows))
	for _, b := range p.Rows {
		number := ""
		if b.Bill != nil {
			number = b.Bill.Type + " " + b.Bill.Number
		}
		rows = append(rows, []string{
			number,
			congress.DisplayDate(b.ActionDate),
			congress.DisplayDate(b.UpdateDate),
			b.Field(congress.FieldOriginChamber),
			truncate(b.Title(), listTitleWidth),
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BILL", "ACTION DATE", "UPDATE DATE", "CHAMBER", "TITLE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d bills (%d loaded) · %s · %s\n", p.Total, loaded, p.Label(), rng)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
