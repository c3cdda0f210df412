package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xoui/pkg/oui/xlookup"
	"github.com/omeyang/xoui/pkg/oui/xregistry"
)

// exitError 输出已完成，只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 参数或配置错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func createCommands() []*cli.Command {
	return []*cli.Command{
		createLookupCommand(),
		createUpdateCommand(),
		createFetchRawCommand(),
		createParseCommand(),
		createServeCommand(),
	}
}

func createLookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Aliases:   []string{"l"},
		Usage:     "查询 MAC 地址对应的厂商",
		ArgsUsage: "[mac...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "以 JSON 数组输出"},
			&cli.BoolFlag{Name: "fail-on-miss", Usage: "存在未命中时退出码为 1"},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			inputs := cmd.Args().Slice()
			if len(inputs) == 0 {
				var err error
				if inputs, err = readLines(cmd.Root().Reader); err != nil {
					return err
				}
			}
			if len(inputs) == 0 {
				return &usageError{msg: "lookup: no MAC address given"}
			}

			results := a.service.LookupMany(ctx, inputs)
			w := cmd.Root().Writer
			if cmd.Bool("json") {
				if err := writeJSONResults(w, inputs, results); err != nil {
					return err
				}
			} else {
				writeTextResults(w, inputs, results)
			}

			if cmd.Bool("fail-on-miss") {
				for _, r := range results {
					if r.Kind() == xlookup.KindNoMatch {
						return &exitError{code: 1}
					}
				}
			}
			return nil
		}),
	}
}

type jsonResult struct {
	Input  string         `json:"input"`
	Kind   string         `json:"kind"`
	Result xlookup.Result `json:"result"`
}

func writeJSONResults(w io.Writer, inputs []string, results []xlookup.Result) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{Input: inputs[i], Kind: r.Kind().String(), Result: r}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTextResults(w io.Writer, inputs []string, results []xlookup.Result) {
	for i, r := range results {
		switch r.Kind() {
		case xlookup.KindNoMatch:
			fmt.Fprintf(w, "%s\t-\tno match\n", inputs[i])
		default:
			fmt.Fprintf(w, "%s\t%s\t%s\n", inputs[i], r.MAC(), r.Organization())
		}
	}
}

// readLines 读取非空行，忽略 # 开头的注释。
func readLines(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

func createUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:    "update",
		Aliases: []string{"u"},
		Usage:   "下载注册表并刷新缓存",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "from-raw", Usage: "从原始文本缓存解析，不访问网络"},
		},
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			update := a.service.Update
			if cmd.Bool("from-raw") {
				update = a.service.UpdateFromRaw
			}
			if err := update(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "updated: %d records\n", a.service.Len())
			return nil
		}),
	}
}

func createFetchRawCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch-raw",
		Usage: "只下载并保存注册表原始文本",
		Action: withApp(func(ctx context.Context, cmd *cli.Command, a *app) error {
			if err := a.service.UpdateRaw(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, "raw registry saved")
			return nil
		}),
	}
}

// parse 不需要缓存与网络，直接解析本地文件。
func createParseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "解析本地注册表文件并报告畸形条目",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "将解析出的记录以 JSON 输出到标准输出"},
			&cli.BoolFlag{Name: "strict", Usage: "遇到畸形条目立即失败"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return &usageError{msg: "parse: exactly one file is required"}
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cmd, cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			data, err := os.ReadFile(cmd.Args().First())
			if err != nil {
				return err
			}
			stderr := cmd.Root().ErrWriter
			report, err := xregistry.ParseRegistryReport(ctx, string(data),
				xregistry.WithStrict(cmd.Bool("strict") || cfg.Registry.Strict),
				xregistry.WithLogger(logger),
				xregistry.OnMalformed(func(e *xregistry.EntryError) { fmt.Fprintln(stderr, e) }),
			)
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				enc := json.NewEncoder(cmd.Root().Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(report.Records)
			}
			fmt.Fprintf(cmd.Root().Writer, "entries: %d, records: %d, skipped: %d\n",
				report.Total, len(report.Records), report.Skipped())
			return nil
		},
	}
}
