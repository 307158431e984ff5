// Command jmpcat is a thin consumer of pkg/jmpfile: it decodes a JMP 11
// table file and prints a tab-separated preview to stdout. It is not the
// decoder itself (see pkg/jmpfile for that), just a small external
// collaborator.
package main

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/BreakOnExecute/jmpreader/pkg/jmpfile"
	"github.com/BreakOnExecute/jmpreader/pkg/jmptable"
)

var rootCmd = &cobra.Command{
	Use:   "jmpcat <file.jmp>",
	Short: "Decode a JMP 11 table file and print a preview.",
	Args:  cobra.ExactArgs(1),
	Run:   runCat,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Int("max-rows", 10, "maximum number of rows to preview")
}

// GetFlag gets an expected boolean flag, or exits on error.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	return r
}

func runCat(cmd *cobra.Command, args []string) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	path := args[0]
	maxRows, _ := cmd.Flags().GetInt("max-rows")

	log.WithField("path", path).Debug("opening JMP table file")

	res := jmpfile.Read(path)

	switch res.Status {
	case jmpfile.StatusOK:
		log.WithFields(log.Fields{
			"rows":      res.Stats.RowCount,
			"columns":   res.Stats.ColumnCount,
			"listCheck": res.Stats.ListCheckColumns,
			"temporal":  res.Stats.TemporalColumns,
		}).Info("decoded table")
		printPreview(res.Table, maxRows)
	case jmpfile.StatusHeaderError:
		log.WithField("path", path).Error("header decode failed: ", res.Message)
		os.Exit(1)
	default:
		log.WithField("path", path).Error("column decode failed: ", res.Message)
		os.Exit(2)
	}
}

func printPreview(tbl *jmptable.Table, maxRows int) {
	for i, col := range tbl.Columns {
		if i > 0 {
			fmt.Print("\t")
		}

		fmt.Print(col.Name)
	}

	fmt.Println()

	rows := tbl.RowCount()
	if maxRows >= 0 && maxRows < rows {
		rows = maxRows
	}

	for r := 0; r < rows; r++ {
		for i, col := range tbl.Columns {
			if i > 0 {
				fmt.Print("\t")
			}

			fmt.Print(formatCell(col.Cells[r]))
		}

		fmt.Println()
	}
}

func formatCell(c jmptable.Cell) string {
	if c.IsMissing() {
		return ""
	}

	switch c.Kind {
	case jmptable.NumberKind:
		return strconv.FormatFloat(c.Number, 'g', -1, 64)
	case jmptable.StringKind:
		return c.Text
	case jmptable.IntKind:
		return strconv.Itoa(int(c.Int))
	case jmptable.RowStateKind:
		return strconv.Itoa(int(c.RowState))
	case jmptable.DateKind:
		return fmt.Sprintf("%04d-%02d-%02d", c.Date.Year, int(c.Date.Month), c.Date.Day)
	case jmptable.TimeKind:
		return fmt.Sprintf("%02d:%02d:%02d", c.Time.Hour, c.Time.Minute, c.Time.Second)
	case jmptable.DateTimeKind:
		return c.DateTime.Format("2006-01-02 15:04:05")
	case jmptable.DurationKind:
		return c.Duration.String()
	default:
		return ""
	}
}
