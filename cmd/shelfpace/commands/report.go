package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shelfpace/internal/analytics"
	"shelfpace/internal/visuals"
)

var reportCharts bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a portfolio analytics report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now().UTC()
		session := analytics.NewSession(provider.Log(), cfg.Tuning, now)

		statuses := session.Statuses()
		heatmap := session.Heatmap()
		streaks := session.Streaks()

		report := map[string]interface{}{
			"generatedAt":  now,
			"deadlines":    statuses,
			"progressRing": session.ProgressRing(),
			"streaks":      streaks,
			"velocities":   session.FormatVelocities(),
			"heatmap":      heatmap,
		}

		if reportCharts {
			charts := map[string]string{
				"deadlines": visuals.DeadlineGantt(statuses, now),
			}
			if heatmap.HasEnoughData {
				charts["heatmap"] = visuals.HeatmapText(heatmap)
			}
			report["charts"] = charts
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportCharts, "charts", false, "include mermaid/text chart blocks")
	rootCmd.AddCommand(reportCmd)
}
