package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ginjaninja78/sales-reporter/internal/types"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = `Shop,City,Street,Item,DateTime,Price
Kwiki Mart,Springfield,742 Evergreen Terrace,Duff,2020-01-06T20:15:00+02:00,$1.50
Aibe,Vilnius,Gedimino pr. 9,Bread,2020-01-06T21:00:00+02:00,$10.00
Kwiki Mart,Springfield,742 Evergreen Terrace,Squishee,2020-01-07T23:59:59+02:00,$0.10
Maxima,Kaunas,Laisves al. 5,Milk,2020-01-08T08:30:00+02:00,$3.33
`

// execute runs the root command with fresh flag state.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	for _, flags := range []*pflag.FlagSet{rootCmd.Flags(), rootCmd.PersistentFlags()} {
		flags.VisitAll(func(f *pflag.Flag) {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		})
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: ExitOK},
		{err: errors.New("disk full"), want: ExitFailure},
		{err: fmt.Errorf("wrapped: %w", types.ErrInvalidCommand), want: ExitInvalidCommand},
		{err: fmt.Errorf("%w: empty", types.ErrNoTransactionsFound), want: ExitNoTransactionsFound},
		{err: &types.ParseError{Line: 2, Err: errors.New("bad")}, want: ExitParseFailure},
		{err: fmt.Errorf("json: %w", types.ErrNotImplemented), want: ExitNotImplemented},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestTimeReport(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)
	out := t.TempDir()

	stdout, _, err := execute(t, "--output-dir", out, input, "time", "20:00-00:00")
	require.NoError(t, err)

	path := filepath.Join(out, "time-2000-0000.xml")
	assert.Equal(t, path+"\n", stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>
<hourlyRevenue range="20:00-00:00" total="11.60">
  <hour value="20">1.50</hour>
  <hour value="21">10.00</hour>
  <hour value="22">0.00</hour>
  <hour value="23">0.10</hour>
</hourlyRevenue>
`, string(data))
}

func TestCommandAsSingleArgument(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)
	out := t.TempDir()

	_, _, err := execute(t, "--output-dir", out, input, "time 20:00-00:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"time-2000-0000.xml"}, readDir(t, out))
}

func TestCityParametersAreNotFlags(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)
	output := filepath.Join(t.TempDir(), "answer.json")

	_, _, err := execute(t, "--format", "json", "-o", output, input, "city", "-money", "-max")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cities": [`)
	assert.Contains(t, string(data), `"Vilnius"`)
	assert.Contains(t, string(data), `"value": "10.00"`)
}

func TestFullReportWritesOneFilePerShop(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)
	out := t.TempDir()

	stdout, _, err := execute(t, "--output-dir", out, "--format", "yaml", input, "full")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Kwiki Mart.yaml", "Aibe.yaml", "Maxima.yaml"}, readDir(t, out))
	assert.Equal(t, 3, strings.Count(stdout, "\n"))

	data, err := os.ReadFile(filepath.Join(out, "Kwiki Mart.yaml"))
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(data), "Duff"), strings.Index(string(data), "Squishee"))
}

func TestOutputIsIdempotent(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)

	var outputs [][]byte
	for range 2 {
		out := t.TempDir()
		_, _, err := execute(t, "--output-dir", out, input, "Daily", "Kwiki", "Mart")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(out, "daily-kwiki-mart.xml"))
		require.NoError(t, err)
		outputs = append(outputs, data)
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestEnvironmentAndFlagOverrides(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)
	envDir := t.TempDir()
	flagDir := t.TempDir()

	t.Setenv("SALESREPORT_OUTPUT_DIR", envDir)
	t.Setenv("SALESREPORT_FORMAT", "json")

	_, _, err := execute(t, input, "city", "-items", "-max")
	require.NoError(t, err)
	assert.Equal(t, []string{"city-items-max.json"}, readDir(t, envDir))

	_, _, err = execute(t, "--output-dir", flagDir, "--format", "xml", input, "city", "-items", "-max")
	require.NoError(t, err)
	assert.Equal(t, []string{"city-items-max.xml"}, readDir(t, flagDir))
}

func TestConfigFile(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)
	out := t.TempDir()
	cfg := writeInput(t, "salesreport.yaml", fmt.Sprintf("output_dir: %q\noutput_format: json\nfile_name_format: \"{input}-{command}\"\n", out))

	_, _, err := execute(t, "--config", cfg, input, "time")
	require.NoError(t, err)
	assert.Equal(t, []string{"sales-time.json"}, readDir(t, out))

	_, _, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), input, "time")
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestErrorsMapToExitCodes(t *testing.T) {
	dir := t.TempDir()
	valid := writeInput(t, "sales.csv", salesCSV)
	empty := writeInput(t, "empty.csv", "")
	unknown := writeInput(t, "sales.txt", salesCSV)
	headerOnly := writeInput(t, "header.csv", "Shop,City,Street,Item,DateTime,Price\n")
	broken := writeInput(t, "broken.csv", "Shop,City,Street,Item,DateTime,Price\nA,B,C,D,yesterday,$1.00\n")
	jsonInput := writeInput(t, "sales.json", `[{"shopName":"Aibe"}]`)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no arguments", args: nil, want: ExitInvalidCommand},
		{name: "file only", args: []string{valid}, want: ExitInvalidCommand},
		{name: "unknown command", args: []string{valid, "blablabla"}, want: ExitInvalidCommand},
		{name: "bad range", args: []string{valid, "time", "20:30-21:00"}, want: ExitInvalidCommand},
		{name: "missing file", args: []string{filepath.Join(dir, "missing.csv"), "time"}, want: ExitNoTransactionsFound},
		{name: "missing file before bad command", args: []string{filepath.Join(dir, "missing.csv"), "blablabla"}, want: ExitNoTransactionsFound},
		{name: "empty file", args: []string{empty, "time"}, want: ExitNoTransactionsFound},
		{name: "unknown suffix", args: []string{unknown, "time"}, want: ExitNoTransactionsFound},
		{name: "header only", args: []string{headerOnly, "full"}, want: ExitNoTransactionsFound},
		{name: "parse failure", args: []string{broken, "time"}, want: ExitParseFailure},
		{name: "json input", args: []string{jsonInput, "time"}, want: ExitNotImplemented},
		{name: "bad output format", args: []string{"--format", "csv", valid, "time"}, want: ExitFailure},
		{name: "output with full", args: []string{"-o", filepath.Join(dir, "x.xml"), valid, "full"}, want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := t.TempDir()
			_, _, err := execute(t, append([]string{"--output-dir", out}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.want, ExitCode(err), "%v", err)
			assert.Empty(t, readDir(t, out))
		})
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	input := writeInput(t, "sales.csv", salesCSV)

	_, stderr, err := execute(t, "-v", "--output-dir", t.TempDir(), input, "full")
	require.NoError(t, err)
	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "wrote report file")
}

func TestFormatsCommand(t *testing.T) {
	stdout, _, err := execute(t, "formats")
	require.NoError(t, err)

	assert.Contains(t, stdout, ".csv")
	assert.Contains(t, stdout, ".xlsx")
	assert.Regexp(t, `\.json\s+json\s+not implemented`, stdout)
	assert.Contains(t, stdout, ".yaml")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "salesreport "+Version+" (commit "), stdout)
	assert.Contains(t, stdout, runtime.Version())
}
