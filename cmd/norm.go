package cmd

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/osier-lang/osier/frontend/annot"
	"github.com/osier-lang/osier/frontend/types"
	"github.com/osier-lang/osier/internal/log"
	"github.com/spf13/cobra"
)

var NormCmd = &cobra.Command{
	Use:          "norm 'Union[int, Optional[float]]'",
	Short:        "Print the canonical form of a type annotation",
	RunE:         runNorm,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	normJSON     *bool
	normLogLevel *int
)

func init() {
	normJSON = NormCmd.Flags().Bool("json", false, "render the result as JSON")
	normLogLevel = NormCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
}

type normOutput struct {
	Input      string `json:"input"`
	Display    string `json:"display"`
	Annotation string `json:"annotation"`
}

func runNorm(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*normLogLevel))

	node, err := annot.Parse(args[0])
	if err != nil {
		return err
	}
	t, tErr := types.NewEmptyCtx().FromAnnotation(node)
	if tErr != nil {
		return tErr
	}

	out := normOutput{
		Input:      args[0],
		Display:    t.Display(),
		Annotation: t.Annotation(),
	}
	if *normJSON {
		marshalled, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(marshalled))
		return nil
	}
	cmd.Println(fmt.Sprintf("%s\n  (annotation: %s)", out.Display, out.Annotation))
	return nil
}
