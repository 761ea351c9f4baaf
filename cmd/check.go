package cmd

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/osier-lang/osier/frontend/annot"
	"github.com/osier-lang/osier/frontend/check"
	"github.com/osier-lang/osier/frontend/oserr"
	"github.com/osier-lang/osier/frontend/types"
	"github.com/osier-lang/osier/internal/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var CheckCmd = &cobra.Command{
	Use:          "check --declared 'Union[int, float]' str",
	Short:        "Check whether a concrete type is a member of a declared type",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	checkDeclared *string
	checkJSON     *bool
	checkLogLevel *int
)

func init() {
	checkDeclared = CheckCmd.Flags().StringP("declared", "d", "", "the declared annotation to check against")
	checkJSON = CheckCmd.Flags().Bool("json", false, "render the result as JSON")
	checkLogLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelError), "log level")
	_ = CheckCmd.MarkFlagRequired("declared")
}

type checkOutput struct {
	Declared string `json:"declared"`
	Actual   string `json:"actual"`
	Ok       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	log.SetLevel(slog.Level(*checkLogLevel))

	ctx := types.NewEmptyCtx()
	declared, err := parseToType(ctx, *checkDeclared)
	if err != nil {
		return err
	}
	actual, err := parseToType(ctx, args[0])
	if err != nil {
		return err
	}

	out := checkOutput{
		Declared: declared.Annotation(),
		Actual:   actual.Annotation(),
		Ok:       true,
	}
	checkErr := check.New(ctx).Assignable(declared, actual, nil)
	if checkErr != nil {
		out.Ok = false
		out.Error = oserr.FormatWithCode(checkErr)
	}

	if *checkJSON {
		marshalled, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(marshalled))
		if !out.Ok {
			return errors.New("type check failed")
		}
		return nil
	}
	if !out.Ok {
		return checkErr
	}
	cmd.Println(fmt.Sprintf("ok: %s is a member of %s", out.Actual, out.Declared))
	return nil
}

func parseToType(ctx *types.Ctx, src string) (types.Type, error) {
	node, err := annot.Parse(src)
	if err != nil {
		return nil, err
	}
	t, tErr := ctx.FromAnnotation(node)
	if tErr != nil {
		return nil, tErr
	}
	return t, nil
}
