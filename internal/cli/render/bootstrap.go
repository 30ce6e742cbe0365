package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/farm-deploy/internal/domain/models"
	"github.com/trebuchet-org/farm-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BootstrapRenderer renders the outcome of a bootstrap run
type BootstrapRenderer struct {
	out io.Writer
}

// NewBootstrapRenderer creates a new bootstrap renderer
func NewBootstrapRenderer(out io.Writer) *BootstrapRenderer {
	return &BootstrapRenderer{out: out}
}

// Render prints deployed addresses and the verification summary
func (r *BootstrapRenderer) Render(result *usecase.BootstrapResult) error {
	if result.Set == nil {
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployed on %s\n", result.Network)
	fmt.Fprintln(r.out, renderAddressTable(result.Set))
	fmt.Fprintf(r.out, "Farming starts at %s (%d)\n",
		time.Unix(int64(result.Set.StartTime), 0).UTC().Format(time.RFC3339),
		result.Set.StartTime,
	)

	if result.RecordPath != "" {
		fmt.Fprintf(r.out, "Addresses written to %s\n", result.RecordPath)
	}

	if len(result.Outcomes) > 0 {
		fmt.Fprintln(r.out)
		r.renderOutcomes(result.Outcomes)
	}
	return nil
}

func renderAddressTable(set *models.DeploymentSet) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
	})

	for _, r := range set.Resources() {
		t.AppendRow(table.Row{
			color.New(color.FgGreen, color.Bold).Sprint(r.Name),
			r.Template.Name,
			r.Address.Hex(),
		})
	}
	return t.Render()
}

func (r *BootstrapRenderer) renderOutcomes(outcomes []models.VerificationOutcome) {
	title := cases.Title(language.English)

	for _, o := range outcomes {
		status := title.String(string(o.Status))
		switch o.Status {
		case models.VerificationStatusVerified:
			fmt.Fprintf(r.out, "  %s %s: %s\n", color.GreenString("✓"), o.Resource.Name, color.GreenString(status))
		case models.VerificationStatusSkipped:
			fmt.Fprintf(r.out, "  %s %s: %s\n", color.YellowString("⊘"), o.Resource.Name, color.YellowString(status))
		default:
			fmt.Fprintf(r.out, "  %s %s: %s\n", color.RedString("✗"), o.Resource.Name, color.RedString(status))
			if o.Reason != "" {
				fmt.Fprintf(r.out, "      %s\n", o.Reason)
			}
		}
	}

	counts := lo.CountValuesBy(outcomes, func(o models.VerificationOutcome) models.VerificationStatus {
		return o.Status
	})
	fmt.Fprintf(r.out, "\nVerification: %d verified, %d skipped, %d failed\n",
		counts[models.VerificationStatusVerified],
		counts[models.VerificationStatusSkipped],
		counts[models.VerificationStatusFailed],
	)
}
