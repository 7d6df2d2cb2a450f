package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/global"
	"github.com/joshuapare/heapkit/internal/logger"
)

var (
	replayFailFast bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().BoolVar(&replayFailFast, "fail-fast", false, "Stop at the first failed allocation")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace against a fresh heap",
		Long: `The replay command runs a recorded allocation trace against a freshly
booted heap and prints the address (or failure) of every step.

Trace format, one operation per line ("-" reads standard input):
  alloc <id> <size> [align]   # align defaults to 8
  free <id>
  # comments and blank lines are ignored

Example:
  heapctl replay workload.trace
  heapctl replay --strategy bump --heap-size 4096 workload.trace
  heapctl replay --preset small workload.trace
  printf 'alloc a 16\nfree a\n' | heapctl replay -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := readTrace(args[0])
			if err != nil {
				return err
			}
			cfg, err := heapConfig()
			if err != nil {
				return err
			}
			g, cleanup, err := global.Boot(cfg)
			if err != nil {
				return fmt.Errorf("heap initialization failed: %w", err)
			}
			defer cleanup()

			_, err = runReplay(cmd.OutOrStdout(), g, ops, replayFailFast)
			return err
		},
	}
}

// traceOp is one line of an allocation trace.
type traceOp struct {
	line  int
	free  bool
	id    string
	size  uintptr
	align uintptr
}

// replayResult counts outcomes of a replay.
type replayResult struct {
	Allocs   int
	Failures int
	Frees    int
}

func readTrace(path string) ([]traceOp, error) {
	if path == "-" {
		return parseTrace(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()
	return parseTrace(f)
}

// parseTrace reads trace operations from r.
func parseTrace(r io.Reader) ([]traceOp, error) {
	var ops []traceOp
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		op, err := parseTraceFields(fields)
		if err != nil {
			return nil, fmt.Errorf("trace line %d: %w", n, err)
		}
		op.line = n
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	return ops, nil
}

func parseTraceFields(fields []string) (traceOp, error) {
	switch fields[0] {
	case "alloc":
		if len(fields) < 3 || len(fields) > 4 {
			return traceOp{}, errors.New("usage: alloc <id> <size> [align]")
		}
		size, err := strconv.ParseUint(fields[2], 0, 64)
		if err != nil {
			return traceOp{}, fmt.Errorf("bad size %q: %w", fields[2], err)
		}
		align := uint64(8)
		if len(fields) == 4 {
			if align, err = strconv.ParseUint(fields[3], 0, 64); err != nil {
				return traceOp{}, fmt.Errorf("bad align %q: %w", fields[3], err)
			}
		}
		return traceOp{id: fields[1], size: uintptr(size), align: uintptr(align)}, nil
	case "free":
		if len(fields) != 2 {
			return traceOp{}, errors.New("usage: free <id>")
		}
		return traceOp{free: true, id: fields[1]}, nil
	default:
		return traceOp{}, fmt.Errorf("unknown operation %q", fields[0])
	}
}

// runReplay applies ops to g in order.
func runReplay(w io.Writer, g *global.Global, ops []traceOp, failFast bool) (replayResult, error) {
	type live struct {
		ptr, size, align uintptr
	}
	var res replayResult
	owned := make(map[string]live)

	for _, op := range ops {
		if op.free {
			a, ok := owned[op.id]
			if !ok {
				return res, fmt.Errorf("trace line %d: free of unknown id %q", op.line, op.id)
			}
			if err := g.Deallocate(a.ptr, a.size, a.align); err != nil {
				return res, fmt.Errorf("trace line %d: free %s: %w", op.line, op.id, err)
			}
			delete(owned, op.id)
			res.Frees++
			printInfo(w, "free  %-8s %s\n", op.id, formatAddr(a.ptr))
			continue
		}

		if _, dup := owned[op.id]; dup {
			return res, fmt.Errorf("trace line %d: id %q is still allocated", op.line, op.id)
		}
		ptr, err := g.Allocate(op.size, op.align)
		switch {
		case errors.Is(err, alloc.ErrOutOfMemory):
			res.Failures++
			logger.Warn("replay allocation failed", "line", op.line, "id", op.id, "size", op.size, "align", op.align)
			printInfo(w, "alloc %-8s size=%d align=%d -> %s\n", op.id, op.size, op.align, styled(failStyle, "out of memory"))
			if failFast {
				return res, fmt.Errorf("trace line %d: alloc %s: %w", op.line, op.id, err)
			}
		case err != nil:
			return res, fmt.Errorf("trace line %d: alloc %s: %w", op.line, op.id, err)
		default:
			owned[op.id] = live{ptr: ptr, size: op.size, align: op.align}
			res.Allocs++
			printInfo(w, "alloc %-8s size=%d align=%d -> %s\n", op.id, op.size, op.align, formatAddr(ptr))
		}
	}

	summary := fmt.Sprintf("%d allocated, %d failed, %d freed, %d still live",
		res.Allocs, res.Failures, res.Frees, len(owned))
	if res.Failures > 0 {
		printInfo(w, "%s\n", styled(failStyle, summary))
	} else {
		printInfo(w, "%s\n", styled(okStyle, summary))
	}
	return res, nil
}
