package cmd

import (
	"flag"

	"github.com/etnz/stockgrid"
	"github.com/etnz/stockgrid/date"
	"github.com/etnz/stockgrid/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of sgrid: global flags, subcommands
// and their flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	flag.CommandLine.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictFlag(f) })
	for _, cmds := range Commands() {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: map[string]complete.Predictor{}}
			fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictFlag(f) })
			root.Sub[c.Name()] = sub
		}
	}
	if topics, err := docs.All(); err == nil {
		root.Sub["topic"].Args = predict.Set(append(topics, "*"))
	}
	return root
}

// predictFlag predicts the values of a flag from its name.
func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "in", "prices", "dividends":
		return predict.Or(predict.Files("*.csv"), predict.Files("*.json"), predict.Files("*.parquet"))
	case "listing":
		return predict.Files("*.csv")
	case "snapshot":
		return predict.Files("*.json")
	case "config":
		return predict.Or(predict.Files("*.yaml"), predict.Files("*.yml"))
	case "o":
		return predict.Files("*")
	case "csv-dir":
		return predict.Dirs("*")
	case "format":
		return predict.Set(gridFormats)
	case "reducer":
		return predict.Set{stockgrid.Mean.String(), stockgrid.Sum.String()}
	case "field":
		return predict.Set{
			stockgrid.FieldOpen, stockgrid.FieldHigh, stockgrid.FieldLow, stockgrid.FieldClose,
			stockgrid.FieldAdjustedClose, stockgrid.FieldVolume, stockgrid.FieldDividends, stockgrid.FieldAverage,
		}
	case "period":
		return predict.Set{date.Daily.String(), date.Monthly.String(), date.Yearly.String()}
	case "list":
		return predict.Set{"markets", "sectors"}
	default:
		return predict.Something
	}
}
