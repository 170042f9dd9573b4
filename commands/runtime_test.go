package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vernacular-lang/vernacular/interp"
)

// execAll runs a sequence of leaf commands, failing the test on any error.
func execAll(t *testing.T, rt *Runtime, sc *interp.Scopes, lines ...string) {
	t.Helper()
	for _, line := range lines {
		_, err := rt.ExecuteLeaf(line, sc)
		require.NoError(t, err, "command %q", line)
	}
}

func TestSetAndPrintVariables(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		`set name to "ada"`,
		"set count to 3",
		"print name",
		"print count",
	)

	v, _ := sc.Resolve("name")
	assert.Equal(t, "ada", v)
	v, _ = sc.Resolve("count")
	assert.Equal(t, 3, v)
	assert.Contains(t, out.String(), "ada")
}

func TestPrintQuotedTextWithInterpolation(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		`set place to "home"`,
		`print "welcome {place}"`,
		`print "unknown {thing} stays"`,
	)

	assert.Contains(t, out.String(), "welcome home")
	assert.Contains(t, out.String(), "unknown {thing} stays")
}

func TestPrintUnknownVariable(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	_, err := rt.ExecuteLeaf("print ghost", sc)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, interp.NameError, rerr.Kind)
}

func TestMathCommands(t *testing.T) {
	tests := []struct {
		command string
		want    any
	}{
		{"add 3 and 4", 7},
		{"subtract 3 from 10", 7},
		{"multiply 6 by 7", 42},
		{"divide 10 by 4", 2.5},
		{"the square root of 16", 4},
		{"raise 2 to the power of 10", 1024},
		{"round 3.456 to 2 decimal places", 3.46},
		{"the absolute value of -5", 5},
		{"calculate the factorial of 5", 120},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			rt, sc, _ := newTestRuntime(t)
			execAll(t, rt, sc, tt.command)
			v, ok := sc.Resolve("result")
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestMathWithVariables(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	execAll(t, rt, sc,
		"set total to 10",
		"add 5 to total",
	)

	v, _ := sc.Resolve("total")
	assert.Equal(t, 15, v)
}

func TestDivideByZero(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	_, err := rt.ExecuteLeaf("divide 5 by 0", sc)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, interp.EvaluationError, rerr.Kind)
}

func TestAggregates(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	execAll(t, rt, sc, "find the minimum of 9, 3, 7")
	v, _ := sc.Resolve("result")
	assert.Equal(t, 3, v)

	execAll(t, rt, sc, "find the maximum of 9, 3, 7")
	v, _ = sc.Resolve("result")
	assert.Equal(t, 9, v)

	execAll(t, rt, sc, "find the average of 2, 4, 6")
	v, _ = sc.Resolve("result")
	assert.Equal(t, 4, v)
}

func TestRandomNumberIsDeterministicWithSeed(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	execAll(t, rt, sc, "pick a random number between 1 and 100")
	v, ok := sc.Resolve("result")
	require.True(t, ok)
	n, ok := v.(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 100)
}

func TestStringCommands(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	execAll(t, rt, sc, `set word to "hello"`, "make word uppercase")
	v, _ := sc.Resolve("result")
	assert.Equal(t, "HELLO", v)

	execAll(t, rt, sc, `make "LOUD" lowercase`)
	v, _ = sc.Resolve("result")
	assert.Equal(t, "loud", v)

	execAll(t, rt, sc, `count the letters in "hello"`)
	v, _ = sc.Resolve("result")
	assert.Equal(t, 5, v)

	execAll(t, rt, sc, `reverse the text "abc"`)
	v, _ = sc.Resolve("result")
	assert.Equal(t, "cba", v)

	execAll(t, rt, sc, `replace "a" with "o" in "cat"`)
	v, _ = sc.Resolve("result")
	assert.Equal(t, "cot", v)

	execAll(t, rt, sc, `split "a,b,c" by ","`)
	v, _ = sc.Resolve("result")
	assert.Equal(t, []any{"a", "b", "c"}, v)
}

func TestListCommands(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		"create a list called pets with cat, dog",
		"add fish to list pets",
		"show list pets",
	)

	v, _ := sc.Resolve("pets")
	assert.Equal(t, []any{"cat", "dog", "fish"}, v)
	assert.Contains(t, out.String(), "[cat, dog, fish]")

	execAll(t, rt, sc, "remove dog from list pets")
	v, _ = sc.Resolve("pets")
	assert.Equal(t, []any{"cat", "fish"}, v)

	execAll(t, rt, sc, "create a list called nums with 3, 1, 2", "sort list nums")
	v, _ = sc.Resolve("nums")
	assert.Equal(t, []any{1, 2, 3}, v)

	execAll(t, rt, sc, "reverse list nums")
	v, _ = sc.Resolve("nums")
	assert.Equal(t, []any{3, 2, 1}, v)
}

func TestAnonymousCurrentList(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		"create a list",
		"add 1 to the list",
		"add 2 to the list",
		"show the list",
	)
	assert.Contains(t, out.String(), "[1, 2]")

	items, err := rt.ResolveList("list", sc)
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, items)
}

func TestTypeChecksAndConversion(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		`set amount to "42"`,
		"what type is amount",
		"convert amount to a number",
		"what type is amount",
	)

	v, _ := sc.Resolve("amount")
	assert.Equal(t, 42, v)
	assert.Contains(t, out.String(), "text")
	assert.Contains(t, out.String(), "a number")
}

func TestSingleLineRepeat(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc, `repeat 3 times: print "hi"`)
	assert.Equal(t, 3, strings.Count(out.String(), "hi"))
}

func TestSingleLineCountLoop(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc, "count from 1 to 3 and print count")
	assert.Contains(t, out.String(), "1\n")
	assert.Contains(t, out.String(), "3\n")

	v, _ := sc.Resolve("count")
	assert.Equal(t, 3, v)
}

func TestSingleLineForEach(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		"create a list called pets with cat, dog",
		"for each in list pets do print item",
	)
	assert.Contains(t, out.String(), "cat")
	assert.Contains(t, out.String(), "dog")
}

func TestSingleLineConditional(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		"set score to 80",
		`if score is greater than 50 then print "pass"`,
		`if score is greater than 90 then print "ace" otherwise print "keep going"`,
	)
	assert.Contains(t, out.String(), "pass")
	assert.Contains(t, out.String(), "keep going")
	assert.NotContains(t, out.String(), "ace")
}

func TestFlatFunctions(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc,
		`define function cheer as print "hip" and then print "hooray"`,
		"call function cheer",
	)
	assert.Contains(t, out.String(), "hip")
	assert.Contains(t, out.String(), "hooray")

	_, err := rt.ExecuteLeaf("call function missing", sc)
	var rerr *interp.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, interp.NameError, rerr.Kind)
}

func TestReturnLeafProducesSignal(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	out, err := rt.ExecuteLeaf("return 42", sc)
	require.NoError(t, err)
	assert.Equal(t, interp.SignalReturn, out.Signal)
	assert.Equal(t, 42, out.Value)

	out, err = rt.ExecuteLeaf("break from loop", sc)
	require.NoError(t, err)
	assert.Equal(t, interp.SignalBreak, out.Signal)

	out, err = rt.ExecuteLeaf("continue with loop", sc)
	require.NoError(t, err)
	assert.Equal(t, interp.SignalContinue, out.Signal)
}

func TestUnknownCommandSuggestions(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	_, err := rt.ExecuteLeaf(`prin "hello"`, sc)
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "Did you mean")
	assert.Contains(t, msg, "print")
	assert.LessOrEqual(t, strings.Count(msg, "\n"), maxSuggestions)
}

func TestBlockHeaderAsLeafIsRejected(t *testing.T) {
	rt, sc, _ := newTestRuntime(t)

	_, err := rt.ExecuteLeaf("repeat 3 times:", sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent")
}

func TestEmptyInputIsNoop(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	res, err := rt.ExecuteLeaf("   ", sc)
	require.NoError(t, err)
	assert.Equal(t, interp.Normal, res)
	assert.Empty(t, out.String())
}

func TestAskForInputBindsUserInput(t *testing.T) {
	out := &bytes.Buffer{}
	rt := New(Options{Out: out, In: strings.NewReader("blue\n"), Seed: 1})
	defer rt.Close()
	sc := interp.NewScopes()

	execAll(t, rt, sc, `ask for input with "favorite color?"`)

	v, _ := sc.Resolve("user_input")
	assert.Equal(t, "blue", v)
	assert.Contains(t, out.String(), "favorite color?")
}

func TestHelpListsCommandFamilies(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc, "help")
	assert.Contains(t, out.String(), "Variables")
	assert.Contains(t, out.String(), "Lists")
}

func TestClearScreen(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc, "clear the screen")
	assert.Contains(t, out.String(), "\x1b[2J")
	assert.Contains(t, out.String(), "Screen cleared.")
}

func TestBenchmarkReportsDispatchTiming(t *testing.T) {
	rt, sc, out := newTestRuntime(t)

	execAll(t, rt, sc, "benchmark performance")
	assert.Contains(t, out.String(), "Benchmarking")
	assert.Contains(t, out.String(), "per command")
}

func TestInlineWhileHonorsConfiguredBound(t *testing.T) {
	out := &bytes.Buffer{}
	rt := New(Options{Out: out, In: bytes.NewReader(nil), MaxLoopIterations: 4})
	t.Cleanup(func() { rt.Close() })
	sc := interp.NewScopes()

	execAll(t, rt, sc,
		"set x to 0",
		`while x is less than 10 do print "tick"`,
	)
	assert.Equal(t, 4, strings.Count(out.String(), "tick"))
	assert.Contains(t, out.String(), "stopped after 4 iterations")
}
