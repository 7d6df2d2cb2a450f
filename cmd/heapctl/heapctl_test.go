package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/global"
)

func plainOutput(t *testing.T) {
	t.Helper()
	prevColor, prevQuiet := noColor, quiet
	noColor, quiet = true, false
	t.Cleanup(func() { noColor, quiet = prevColor, prevQuiet })
}

func testConfig(s alloc.Strategy, size uintptr) global.Config {
	cfg := global.DefaultConfig()
	cfg.Strategy = s
	cfg.HeapSize = size
	return cfg
}

func bootHeap(t *testing.T, cfg global.Config) *global.Global {
	t.Helper()
	g, cleanup, err := global.Boot(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return g
}

func TestRunBoot_AllStrategies(t *testing.T) {
	plainOutput(t)

	for _, s := range []alloc.Strategy{alloc.StrategyFixedSizeBlock, alloc.StrategyLinkedList, alloc.StrategyBump} {
		t.Run(s.String(), func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runBoot(&out, testConfig(s, 100*1024)))
			assert.Contains(t, out.String(), `string before: "Test String"`)
			assert.Contains(t, out.String(), `"Test String Sucks! Join me in an adventure when we find out who the murderer is."`)
			assert.Contains(t, out.String(), "sum 124750")
			assert.Contains(t, out.String(), "(reused)")
			assert.Contains(t, out.String(), "boot ok")
		})
	}
}

func TestRunBoot_DummyHalts(t *testing.T) {
	plainOutput(t)

	var out bytes.Buffer
	err := runBoot(&out, testConfig(alloc.StrategyDummy, 4096))
	require.Error(t, err)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	assert.Contains(t, out.String(), "kernel halted")
	assert.NotContains(t, out.String(), "boot ok")
}

func TestRunBoot_BumpTooSmallHalts(t *testing.T) {
	plainOutput(t)

	// The vector alone outgrows a single page under a bump allocator.
	var out bytes.Buffer
	err := runBoot(&out, testConfig(alloc.StrategyBump, 4096))
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
}

func TestParseTrace(t *testing.T) {
	trace := `# warmup
alloc a 16
alloc b 64 32   # aligned

free a
alloc c 0x100 8
`
	ops, err := parseTrace(strings.NewReader(trace))
	require.NoError(t, err)
	require.Len(t, ops, 4)

	assert.Equal(t, traceOp{line: 2, id: "a", size: 16, align: 8}, ops[0])
	assert.Equal(t, traceOp{line: 3, id: "b", size: 64, align: 32}, ops[1])
	assert.Equal(t, traceOp{line: 5, free: true, id: "a"}, ops[2])
	assert.Equal(t, traceOp{line: 6, id: "c", size: 256, align: 8}, ops[3])
}

func TestParseTrace_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown op":   "grow a 16",
		"missing size": "alloc a",
		"bad size":     "alloc a lots",
		"bad align":    "alloc a 16 x",
		"free arity":   "free a b",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseTrace(strings.NewReader(line))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "trace line 1")
		})
	}
}

func TestRunReplay_LinkedListRoundTrip(t *testing.T) {
	plainOutput(t)
	g := bootHeap(t, testConfig(alloc.StrategyLinkedList, 4096))

	ops, err := parseTrace(strings.NewReader("alloc a 64\nfree a\nalloc b 64\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := runReplay(&out, g, ops, false)
	require.NoError(t, err)
	assert.Equal(t, replayResult{Allocs: 2, Frees: 1}, res)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	// The freed block is at the front of the list and is handed out again.
	addrA := lines[0][strings.LastIndex(lines[0], " ")+1:]
	addrB := lines[2][strings.LastIndex(lines[2], " ")+1:]
	assert.Equal(t, addrA, addrB)
	assert.Equal(t, "2 allocated, 0 failed, 1 freed, 1 still live", lines[3])
}

func TestRunReplay_OutOfMemory(t *testing.T) {
	plainOutput(t)
	g := bootHeap(t, testConfig(alloc.StrategyBump, 4096))

	ops, err := parseTrace(strings.NewReader("alloc a 4096\nalloc b 1\nalloc c 1\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := runReplay(&out, g, ops, false)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Allocs)
	assert.Equal(t, 2, res.Failures)
	assert.Contains(t, out.String(), "out of memory")
}

func TestRunReplay_FailFast(t *testing.T) {
	plainOutput(t)
	g := bootHeap(t, testConfig(alloc.StrategyBump, 4096))

	ops, err := parseTrace(strings.NewReader("alloc a 8192\nalloc b 1\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := runReplay(&out, g, ops, true)
	require.ErrorIs(t, err, alloc.ErrOutOfMemory)
	assert.Equal(t, replayResult{Failures: 1}, res)
}

func TestRunReplay_UnknownFree(t *testing.T) {
	plainOutput(t)
	g := bootHeap(t, testConfig(alloc.StrategyFixedSizeBlock, 4096))

	ops, err := parseTrace(strings.NewReader("free ghost\n"))
	require.NoError(t, err)

	_, err = runReplay(&bytes.Buffer{}, g, ops, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown id "ghost"`)
}

func TestRunReplay_DuplicateID(t *testing.T) {
	plainOutput(t)
	g := bootHeap(t, testConfig(alloc.StrategyFixedSizeBlock, 4096))

	ops, err := parseTrace(strings.NewReader("alloc a 8\nalloc a 8\n"))
	require.NoError(t, err)

	_, err = runReplay(&bytes.Buffer{}, g, ops, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still allocated")
}

func TestRunClasses(t *testing.T) {
	plainOutput(t)

	var out bytes.Buffer
	require.NoError(t, runClasses(&out, alloc.ConfigKernel))
	s := out.String()
	assert.Contains(t, s, "Kernel size classes")
	assert.Contains(t, s, "class  0: 8 bytes")
	assert.Contains(t, s, "class  8: 2,048 bytes")
	assert.Contains(t, s, "fallback: > 2,048 bytes")
}

func TestRunClasses_RejectsBadTable(t *testing.T) {
	plainOutput(t)

	bad := alloc.BlockSizeConfig{Name: "bad", Sizes: []uintptr{8, 24}}
	require.ErrorIs(t, runClasses(&bytes.Buffer{}, bad), alloc.ErrBadSizeClasses)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Contains(t, out.String(), "heapctl "+version)
	assert.Contains(t, out.String(), "default strategy: "+global.DefaultStrategy)
}

func TestHeapConfig(t *testing.T) {
	prevStrategy, prevSize := strategy, heapSize
	t.Cleanup(func() { strategy, heapSize = prevStrategy, prevSize })

	strategy, heapSize = "Linked_List", 8192
	cfg, err := heapConfig()
	require.NoError(t, err)
	assert.Equal(t, alloc.StrategyLinkedList, cfg.Strategy)
	assert.Equal(t, uintptr(8192), cfg.HeapSize)

	strategy = "slab"
	_, err = heapConfig()
	require.ErrorIs(t, err, alloc.ErrUnknownStrategy)
}

func TestHeapConfig_Preset(t *testing.T) {
	prevStrategy, prevPreset := strategy, preset
	t.Cleanup(func() { strategy, preset = prevStrategy, prevPreset })

	strategy, preset = "fixed-size-block", "Small"
	cfg, err := heapConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.BlockSizes)
	assert.Equal(t, alloc.ConfigSmall.Sizes, cfg.BlockSizes.Sizes)

	preset = "huge"
	_, err = heapConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "huge"`)
}

// replayAddrs replays trace and returns the address of every allocation.
func replayAddrs(t *testing.T, cfg global.Config, trace string) []string {
	t.Helper()
	ops, err := parseTrace(strings.NewReader(trace))
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = runReplay(&out, bootHeap(t, cfg), ops, true)
	require.NoError(t, err)

	var addrs []string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "alloc ") {
			addrs = append(addrs, line[strings.LastIndex(line, " ")+1:])
		}
	}
	return addrs
}

func TestRunReplay_PresetChangesClasses(t *testing.T) {
	plainOutput(t)
	trace := "alloc a 512\nfree a\nalloc b 16\n"

	// 512 bytes is a class of its own in the kernel table, so the freed
	// block waits on that class and b is carved from fresh memory.
	kernel := testConfig(alloc.StrategyFixedSizeBlock, 4096)
	kernel.BlockSizes = &alloc.ConfigKernel
	addrs := replayAddrs(t, kernel, trace)
	require.Len(t, addrs, 2)
	assert.NotEqual(t, addrs[0], addrs[1])

	// The small table tops out at 256, so a goes back to the fallback list
	// and b is carved from it.
	small := testConfig(alloc.StrategyFixedSizeBlock, 4096)
	small.BlockSizes = &alloc.ConfigSmall
	addrs = replayAddrs(t, small, trace)
	require.Len(t, addrs, 2)
	assert.Equal(t, addrs[0], addrs[1])
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "fixed-size-block, linked-list, bump, dummy", strategyNames())
}
