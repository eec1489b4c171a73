package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/codepalette/palette/internal/config"
	"github.com/codepalette/palette/internal/logging"
	"github.com/codepalette/palette/pkg/rop"
	"github.com/codepalette/palette/pkg/rop/future"
)

var (
	verbose bool
	envFile string
)

// errFailed marks a command that already printed a failure envelope.
var errFailed = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:           "palette",
	Short:         "Code Palette application tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(zapcore.DebugLevel)
		}
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Validate the application environment",
	Long: `Loads the environment from an optional YAML file and the process
environment, validates it and prints the outcome as a result envelope.
Only the client-side values are printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := config.Load(cmd.Context(), envFile)
		var out rop.Result[map[string]string]
		if res.IsSuccess() {
			out = rop.Success(res.Data().Client(), "environment is valid")
		} else {
			out = rop.FailFrom[*config.Env, map[string]string](res)
		}
		return printResult(cmd.OutOrStdout(), out, res.IsSuccess())
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file...]",
	Short: "Normalize JSON payloads into result envelopes",
	Long: `Reads JSON from stdin, or from every given file. A payload that already is
a result envelope is kept as is, anything else is wrapped as a success.
Files are read concurrently; a file that cannot be read or parsed yields a
failure envelope. Several files print an array of envelopes.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			res, err := rop.Decode[any](raw)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, res.IsSuccess())
		}

		ctx := cmd.Context()
		fs := make([]*future.Future[rop.Result[any]], 0, len(args))
		for _, path := range args {
			fs = append(fs, future.Go(ctx, decodeFile(path)))
		}

		results := future.AwaitAllResults(ctx, fs)
		ok := true
		for _, res := range results {
			ok = ok && res.IsSuccess()
		}

		if len(results) == 1 {
			return printResult(cmd.OutOrStdout(), results[0], ok)
		}
		return printResult(cmd.OutOrStdout(), results, ok)
	},
}

func decodeFile(path string) future.Func[rop.Result[any]] {
	return func(ctx context.Context) (rop.Result[any], error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return rop.Result[any]{}, err
		}
		return rop.Decode[any](raw)
	}
}

func printResult(w io.Writer, v any, ok bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	if !ok {
		return errFailed
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	envCmd.Flags().StringVarP(&envFile, "file", "f", "", "YAML file with environment values")

	rootCmd.AddCommand(envCmd, inspectCmd)
}

// run executes the command line and returns the process exit code. The
// logger is synced on every path, failures included.
func run(ctx context.Context, logger *logging.Logger, stderr io.Writer) int {
	defer func() {
		_ = logger.Sync()
	}()

	err := rootCmd.ExecuteContext(logger.GetContext(ctx))
	if err == nil {
		return 0
	}
	if !errors.Is(err, errFailed) {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, logging.New(), os.Stderr)
	stop()
	os.Exit(code)
}
