// Command miniql runs SQL statements against an in-memory database and
// prints the results. It is a thin script runner, not a REPL: give it a
// file with -f or a single statement with -e.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/miniql/miniql/config"
	"github.com/miniql/miniql/executor"
	"github.com/miniql/miniql/internal/elog"
	"github.com/miniql/miniql/parser"
	"github.com/miniql/miniql/storage"
)

type runFlags struct {
	file       string
	exec       string
	configPath string
}

func main() {
	elog.Init()

	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:   "miniql",
		Short: "In-memory SQL engine",
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(flags)
		},
	}
	rootCmd.Flags().StringVarP(&flags.file, "file", "f", "", "Path to a .sql file to run")
	rootCmd.Flags().StringVarP(&flags.exec, "execute", "e", "", "A single SQL statement to run")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a TOML config file")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("miniql: run failed", "error", err)
		os.Exit(1)
	}
}

func run(flags *runFlags) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	source, err := readSource(flags)
	if err != nil {
		return err
	}

	db := storage.NewDatabaseWithIndexOrder(cfg.Engine.BTreeOrder)
	e := executor.New(db)

	for _, stmt := range splitStatements(source) {
		if stmt == "" {
			continue
		}
		if err := runStatement(e, stmt); err != nil {
			return err
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("miniql: %w", err)
	}
	return cfg, nil
}

func readSource(flags *runFlags) (string, error) {
	switch {
	case flags.exec != "":
		return flags.exec, nil
	case flags.file != "":
		data, err := os.ReadFile(flags.file)
		if err != nil {
			return "", fmt.Errorf("miniql: reading %q: %w", flags.file, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("miniql: pass -f <file.sql> or -e <statement>")
	}
}

// splitStatements breaks source on every semicolon. It does not
// understand semicolons inside string literals, so quoted ';' would
// split incorrectly; none of the grammar's statement forms need one.
func splitStatements(source string) []string {
	parts := strings.Split(source, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func runStatement(e *executor.Executor, sql string) error {
	p := parser.New(sql)
	stmt, err := p.Parse()
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	res, err := e.Execute(stmt)
	if err != nil {
		return fmt.Errorf("execution error: %w", err)
	}
	printResult(res)
	return nil
}

func printResult(res *executor.Result) {
	if len(res.Columns) == 0 {
		if res.Message != "" {
			fmt.Println(res.Message)
		} else {
			fmt.Printf("OK, %d row(s) affected\n", res.Affected)
		}
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(res.Columns, "\t"))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}
