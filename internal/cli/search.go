package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/liuren/internal/render"
	"github.com/mesh-intelligence/liuren/internal/search"
	"github.com/mesh-intelligence/liuren/pkg/types"
)

// searchResult is the structured output of the search command.
type searchResult struct {
	Target  types.PillarLabels `json:"target" yaml:"target"`
	Years   search.YearRange   `json:"years" yaml:"years"`
	Matches []search.Match     `json:"matches" yaml:"matches"`
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		from, to   int
		noProgress bool
	)
	cmd := &cobra.Command{
		Use:   "search <year> <month> <day> <hour>",
		Short: "Find the dates whose four pillars match",
		Long: "Find every solar date-time in a year range whose year, month, day and hour\n" +
			"pillars equal the given ones. Pillars are labels such as 丙寅 or 1-based\n" +
			"stem/branch codes such as 3/3.",
		Example: "  liuren search 甲子 丙寅 戊辰 戊午 --from 1900 --to 2000\n" +
			"  liuren search 1/1 3/3 5/5 5/7",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := make([]string, len(args))
			for i, arg := range args {
				l, err := types.NormalizePairInput(arg)
				if err != nil {
					return userError(fmt.Errorf("%s pillar: %w", pillarNames[i], err))
				}
				labels[i] = l
			}
			target := types.PillarLabels{Year: labels[0], Month: labels[1], Day: labels[2], Hour: labels[3]}

			years := search.YearRange{Start: 1900, End: a.now().Year()}
			if cmd.Flags().Changed("from") {
				years.Start = from
			}
			if cmd.Flags().Changed("to") {
				years.End = to
			}

			cal, err := a.calendar()
			if err != nil {
				return err
			}
			var progress search.ProgressFunc
			if !noProgress && a.format == render.Text {
				progress = render.NewProgress(cmd.ErrOrStderr(), 40).Report
			}

			s := search.New(cal, search.OptionsFromConfig(a.cfg.Search), a.log)
			matches, err := s.Search(target, years, progress)
			if err != nil {
				return userError(err)
			}

			res := searchResult{Target: target, Years: years, Matches: matches}
			return a.emit(cmd.OutOrStdout(), res, func(w io.Writer) error {
				return a.renderer.Matches(w, target, matches)
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", 1900, "first year to search")
	cmd.Flags().IntVar(&to, "to", 0, "last year to search (default: this year)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not draw the progress bar")
	return cmd
}

var pillarNames = [4]string{"year", "month", "day", "hour"}
