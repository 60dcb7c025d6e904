package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/config"
	"github.com/etnz/stockgrid/source"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

const historyCSV = `Date,Open,High,Low,Close,Dividends
2023-01-15,9,12,8,10,0
2023-02-10,19,22,18,20,
2022-12-01,5,6,4,5,0.05
`

const listingCSV = `Company_Name,Security_Code,Sector,Market_Type
MAYBANK,1155,FINANCIAL SERVICES,Main
GREATECH,0208,TECHNOLOGY,ACE
`

const snapshotJSON = `{"1155.KL":{"symbol":"1155.KL","longName":"Malayan Banking Berhad","currentPrice":9.86,"previousClose":9.80}}`

// run executes c with args, and returns its status, stdout and stderr.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string, string) {
	t.Helper()
	for _, k := range []string{config.EnvConfigFile, config.EnvDecimals, config.EnvCurrency, config.EnvCurrencySymbol, config.EnvListingFile, config.EnvExchangeSuffix, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = os.Stdout, os.Stderr })

	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	status := c.Execute(context.Background(), fs)
	return status, out.String(), errOut.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAggregateCSV(t *testing.T) {
	in := writeFile(t, t.TempDir(), "history.csv", historyCSV)
	status, out, errOut := run(t, &aggregateCmd{}, "-in", in, "-field", "Close", "-reducer", "mean", "-format", "csv")
	if status != subcommands.ExitSuccess {
		t.Fatalf("aggregate status = %v, stderr:\n%s", status, errOut)
	}
	want := "Year,Jan,Feb,Mar,Apr,May,Jun,Jul,Aug,Sep,Oct,Nov,Dec\n" +
		"2023,10.0000,20.0000" + strings.Repeat(",", 10) + "\n" +
		"2022" + strings.Repeat(",", 11) + ",5.0000\n"
	if out != want {
		t.Errorf("aggregate output =\n%s\nwant\n%s", out, want)
	}
}

func TestAggregateExitCodes(t *testing.T) {
	dir := t.TempDir()
	malformed := writeFile(t, dir, "bad.csv", "Date,Close\nnot a date,1\n")
	empty := writeFile(t, dir, "empty.csv", "Date,Close\n")

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"malformed", []string{"-in", malformed, "-format", "csv"}, subcommands.ExitUsageError},
		{"empty", []string{"-in", empty, "-format", "csv"}, subcommands.ExitSuccess},
		{"empty strict", []string{"-in", empty, "-format", "csv", "-strict"}, subcommands.ExitFailure},
		{"missing file", []string{"-in", filepath.Join(dir, "absent.csv")}, subcommands.ExitFailure},
		{"no input", nil, subcommands.ExitUsageError},
		{"bad reducer", []string{"-in", empty, "-reducer", "median"}, subcommands.ExitUsageError},
		{"bad format", []string{"-in", empty, "-format", "xml"}, subcommands.ExitUsageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, errOut := run(t, &aggregateCmd{}, tt.args...)
			if status != tt.want {
				t.Errorf("aggregate %v status = %v, want %v, stderr:\n%s", tt.args, status, tt.want, errOut)
			}
		})
	}
}

func TestAggregateBadFormatKeepsOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "history.csv", historyCSV)
	out := writeFile(t, dir, "table.txt", "previous table\n")
	if status, _, _ := run(t, &aggregateCmd{}, "-in", in, "-format", "xml", "-o", out); status != subcommands.ExitUsageError {
		t.Errorf("aggregate -format xml status = %v, want usage error", status)
	}
	if got, err := os.ReadFile(out); err != nil || string(got) != "previous table\n" {
		t.Errorf("output file = %q, %v, want it untouched", got, err)
	}
}

func TestDividendsJSON(t *testing.T) {
	in := writeFile(t, t.TempDir(), "history.csv", historyCSV)
	status, out, errOut := run(t, &dividendsCmd{}, "-in", in, "-format", "json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("dividends status = %v, stderr:\n%s", status, errOut)
	}
	var got struct {
		Reducer string
		Columns []string
		Rows    []struct {
			Year  int
			Cells []*string
		}
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("dividends output is not json: %v\n%s", err, out)
	}
	if got.Reducer != "sum" || len(got.Columns) != 13 || got.Columns[12] != "Total" || len(got.Rows) != 2 {
		t.Fatalf("dividends output = %s", out)
	}
	jan, feb := got.Rows[0].Cells[0], got.Rows[0].Cells[1]
	if jan == nil || *jan != "0.0000" || feb != nil {
		t.Errorf("2023 Jan, Feb = %v, %v, want 0.0000 and null", jan, feb)
	}
	if total := got.Rows[1].Cells[12]; total == nil || *total != "0.0500" {
		t.Errorf("2022 Total = %v, want 0.0500", total)
	}
	if !strings.Contains(errOut, "skipped=1") {
		t.Errorf("missing skipped warning in log:\n%s", errOut)
	}
}

func TestPricesMarkdown(t *testing.T) {
	in := writeFile(t, t.TempDir(), "history.csv", historyCSV)
	status, out, errOut := run(t, &pricesCmd{}, "-in", in, "-year-min", "2023", "-format", "md")
	if status != subcommands.ExitSuccess {
		t.Fatalf("prices status = %v, stderr:\n%s", status, errOut)
	}
	if !strings.Contains(out, "| 2023 | _10.0000_ | **20.0000** |") || strings.Contains(out, "2022") {
		t.Errorf("prices output:\n%s", out)
	}
}

func TestGridParquet(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "history.csv", historyCSV)
	out := filepath.Join(dir, "grid.parquet")
	if status, _, errOut := run(t, &pricesCmd{}, "-in", in, "-format", "parquet", "-o", out); status != subcommands.ExitSuccess {
		t.Fatalf("prices status = %v, stderr:\n%s", status, errOut)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("parquet output missing: %v", err)
	}
	if status, _, _ := run(t, &pricesCmd{}, "-in", in, "-format", "parquet"); status != subcommands.ExitFailure {
		t.Errorf("parquet to stdout status = %v, want failure", status)
	}
}

func TestYearFlagsRange(t *testing.T) {
	in := writeFile(t, t.TempDir(), "history.csv", historyCSV)
	status, out, _ := run(t, &aggregateCmd{}, "-in", in, "-year-max", "2022", "-format", "csv")
	if status != subcommands.ExitSuccess || strings.Contains(out, "2023") || !strings.Contains(out, "2022") {
		t.Errorf("aggregate -year-max 2022 = %v:\n%s", status, out)
	}

	// A single bound outside of the data selects no year.
	header := "Year,Jan,Feb,Mar,Apr,May,Jun,Jul,Aug,Sep,Oct,Nov,Dec\n"
	for _, args := range [][]string{{"-year-max", "2021"}, {"-year-min", "2030"}} {
		status, out, errOut := run(t, &aggregateCmd{}, append([]string{"-in", in, "-format", "csv"}, args...)...)
		if status != subcommands.ExitSuccess || out != header {
			t.Errorf("aggregate %v = %v, %q, want the header only, stderr:\n%s", args, status, out, errOut)
		}
	}
}

func TestYearFlagsRangeBounds(t *testing.T) {
	dir := t.TempDir()
	observations, err := source.Open(writeFile(t, dir, "history.csv", historyCSV))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		flags yearFlags
		want  *stockgrid.YearRange
	}{
		{yearFlags{}, nil},
		{yearFlags{min: 2023}, &stockgrid.YearRange{Min: 2023, Max: 2023}},
		{yearFlags{min: 2030}, &stockgrid.YearRange{Min: 2030, Max: 2030}},
		{yearFlags{min: 2020}, &stockgrid.YearRange{Min: 2020, Max: 2023}},
		{yearFlags{max: 2021}, &stockgrid.YearRange{Min: 2021, Max: 2021}},
		{yearFlags{max: 2025}, &stockgrid.YearRange{Min: 2022, Max: 2025}},
		{yearFlags{min: 2024, max: 2021}, &stockgrid.YearRange{Min: 2021, Max: 2024}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.flags.Range(observations)); diff != "" {
			t.Errorf("Range(%+v) mismatch (-want +got):\n%s", tt.flags, diff)
		}
	}
	if got := (&yearFlags{max: 2021}).Range(nil); got == nil || *got != (stockgrid.YearRange{Min: 2021, Max: 2021}) {
		t.Errorf("Range() without data = %v, want 2021 - 2021", got)
	}
}

func TestListing(t *testing.T) {
	file := writeFile(t, t.TempDir(), "listing.csv", listingCSV)

	status, out, _ := run(t, &listingCmd{}, "-listing", file, "-company", "MAYBANK")
	if status != subcommands.ExitSuccess || out != "MAYBANK\t1155.KL\tFINANCIAL SERVICES\tMain\n" {
		t.Errorf("listing -company = %v, %q", status, out)
	}
	status, out, _ = run(t, &listingCmd{}, "-listing", file, "-list", "markets")
	if status != subcommands.ExitSuccess || out != "Main\nACE\n" {
		t.Errorf("listing -list markets = %v, %q", status, out)
	}
	status, out, _ = run(t, &listingCmd{}, "-listing", file, "-market", "ACE")
	if status != subcommands.ExitSuccess || !strings.Contains(out, "| GREATECH | 0208 |") || strings.Contains(out, "MAYBANK") {
		t.Errorf("listing -market ACE = %v:\n%s", status, out)
	}
	if status, _, _ := run(t, &listingCmd{}, "-listing", file, "-code", "9999"); status != subcommands.ExitFailure {
		t.Errorf("listing -code 9999 status = %v, want failure", status)
	}
}

func TestQuote(t *testing.T) {
	dir := t.TempDir()
	snapshot := writeFile(t, dir, "snapshot.json", snapshotJSON)
	file := writeFile(t, dir, "listing.csv", listingCSV)

	status, out, errOut := run(t, &quoteCmd{}, "-snapshot", snapshot, "-listing", file, "-company", "MAYBANK")
	if status != subcommands.ExitSuccess {
		t.Fatalf("quote status = %v, stderr:\n%s", status, errOut)
	}
	want := "Malayan Banking Berhad (1155.KL)\nLast Price: RM 9.86\nChange: RM 0.06 (0.61%)\n"
	if out != want {
		t.Errorf("quote output = %q, want %q", out, want)
	}

	if status, _, errOut := run(t, &quoteCmd{}, "-snapshot", snapshot, "-symbol", "0208.KL"); status != subcommands.ExitFailure || !strings.Contains(errOut, "no quote") {
		t.Errorf("quote unknown symbol = %v, %q", status, errOut)
	}
	if status, _, errOut := run(t, &quoteCmd{}, "-snapshot", filepath.Join(dir, "absent.json"), "-symbol", "1155.KL"); status != subcommands.ExitFailure || !strings.Contains(errOut, "retry later") {
		t.Errorf("quote missing snapshot = %v, %q", status, errOut)
	}
}

func TestChart(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "history.csv", historyCSV)
	png := filepath.Join(dir, "out", "chart.png")
	if status, _, errOut := run(t, &chartCmd{}, "-in", in, "-o", png); status != subcommands.ExitSuccess {
		t.Fatalf("chart status = %v, stderr:\n%s", status, errOut)
	}
	if info, err := os.Stat(png); err != nil || info.Size() == 0 {
		t.Errorf("chart output missing: %v", err)
	}

	if status, _, _ := run(t, &chartCmd{}, "-in", in, "-period", "weekly"); status != subcommands.ExitUsageError {
		t.Errorf("chart -period weekly status = %v, want usage error", status)
	}
	if status, _, errOut := run(t, &chartCmd{}, "-in", in, "-period", "monthly", "-o", filepath.Join(dir, "monthly.png")); status != subcommands.ExitSuccess {
		t.Errorf("chart -period monthly status = %v, stderr:\n%s", status, errOut)
	}

	empty := writeFile(t, dir, "empty.csv", "Date,Close\n")
	if status, _, _ := run(t, &chartCmd{}, "-in", empty, "-o", filepath.Join(dir, "empty.png")); status != subcommands.ExitFailure {
		t.Errorf("chart of empty history status = %v, want failure", status)
	}
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	prices := writeFile(t, dir, "history.csv", historyCSV)
	file := writeFile(t, dir, "listing.csv", listingCSV)
	snapshot := writeFile(t, dir, "snapshot.json", snapshotJSON)
	csvDir := filepath.Join(dir, "export")

	status, out, errOut := run(t, &reportCmd{}, "-prices", prices, "-listing", file, "-code", "1155", "-snapshot", snapshot, "-format", "md", "-csv-dir", csvDir)
	if status != subcommands.ExitSuccess {
		t.Fatalf("report status = %v, stderr:\n%s", status, errOut)
	}
	for _, want := range []string{
		"# Malayan Banking Berhad",
		"Sector: **FINANCIAL SERVICES**",
		"**Last Price:** RM 9.86 (▲ RM 0.06 (0.61%))",
		"Year Range: 2022 - 2023",
		"| 2023 | _10.0000_ | **20.0000** |",
		"## Dividend Table",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q:\n%s", want, out)
		}
	}

	dividends, err := os.ReadFile(filepath.Join(csvDir, "MAYBANK_dividend_table.csv"))
	if err != nil {
		t.Fatalf("dividend csv export: %v", err)
	}
	if !strings.HasPrefix(string(dividends), "Year,Jan,Feb,Mar,Apr,May,Jun,Jul,Aug,Sep,Oct,Nov,Dec,Total\n2023,0.0000,") {
		t.Errorf("dividend csv export =\n%s", dividends)
	}
	if _, err := os.Stat(filepath.Join(csvDir, "MAYBANK.csv")); err != nil {
		t.Errorf("price csv export: %v", err)
	}
}

func TestReportHTML(t *testing.T) {
	dir := t.TempDir()
	prices := writeFile(t, dir, "history.csv", historyCSV)
	file := writeFile(t, dir, "listing.csv", listingCSV)
	out := filepath.Join(dir, "report.html")

	status, _, errOut := run(t, &reportCmd{}, "-prices", prices, "-listing", file, "-company", "MAYBANK", "-format", "html", "-o", out)
	if status != subcommands.ExitSuccess {
		t.Fatalf("report status = %v, stderr:\n%s", status, errOut)
	}
	page, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<title>MAYBANK</title>") || !strings.Contains(string(page), "<table>") {
		t.Errorf("report html =\n%s", page)
	}
}

func TestExportCSVCompanyName(t *testing.T) {
	dir := t.TempDir()
	csvDir := filepath.Join(dir, "export")
	g := stockgrid.ToGrid(stockgrid.Aggregated{}, stockgrid.Sum)
	if err := exportCSV(csvDir, "A/B BERHAD", g, g, 4); err != nil {
		t.Fatalf("exportCSV() unexpected error: %v", err)
	}
	for _, name := range []string{"A_B BERHAD.csv", "A_B BERHAD_dividend_table.csv"} {
		if _, err := os.Stat(filepath.Join(csvDir, name)); err != nil {
			t.Errorf("exportCSV() did not write %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(csvDir, "A")); err == nil {
		t.Error("exportCSV() created a sub directory from the company name")
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, cmds := range Commands() {
		for _, cmd := range cmds {
			if _, ok := c.Sub[cmd.Name()]; !ok {
				t.Errorf("Completion() has no %q subcommand", cmd.Name())
			}
		}
	}
	reducer, ok := c.Sub["aggregate"].Flags["reducer"]
	if !ok {
		t.Fatal("Completion() has no aggregate -reducer flag")
	}
	if got := reducer.Predict(""); len(got) != 2 {
		t.Errorf("-reducer predictions = %v, want mean and sum", got)
	}
	if topic := c.Sub["topic"]; topic.Args == nil || len(topic.Args.Predict("")) < 2 {
		t.Error("Completion() does not predict topics")
	}
}

func TestRunExtension(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script extension")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"verbose=$" + EnvVerbose + " args=$*\"\nexit 3\n"
	if err := os.WriteFile(filepath.Join(dir, "sgrid-hello"), []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	found, code := RunExtension("hello", []string{"a", "b"})
	if !found || code != 3 {
		t.Errorf("RunExtension(hello) = %v, %d, want true, 3", found, code)
	}
	if got := out.String(); got != "verbose=false args=a b\n" {
		t.Errorf("extension output = %q", got)
	}
	if found, _ := RunExtension("absent-extension", nil); found {
		t.Error("RunExtension(absent-extension) found a command")
	}
}

func TestTopic(t *testing.T) {
	status, out, _ := run(t, &topicCmd{})
	if status != subcommands.ExitSuccess || !strings.Contains(out, "sgrid topic <name>") {
		t.Errorf("topic = %v:\n%s", status, out)
	}
	status, _, errOut := run(t, &topicCmd{}, "absent")
	if status != subcommands.ExitFailure || !strings.Contains(errOut, `topic "absent" not found`) {
		t.Errorf("topic absent = %v, %q", status, errOut)
	}
}
