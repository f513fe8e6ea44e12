package cmd

import (
	"flag"

	"github.com/etnz/nummi/config"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of the flags whose values can be completed.
var predictors = map[string]complete.Predictor{
	"d":         predict.Dirs("*"),
	"cache-dir": predict.Dirs("*"),
	"config":    predict.Files("*"),
	"source":    predict.Set(config.Sources),
	"o":         predict.Files("*.png"),
}

// flagPredictors returns the predictor of every flag in fs.
func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	m := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch p, ok := predictors[f.Name]; {
		case ok:
			m[f.Name] = p
		case isBool(f):
			m[f.Name] = predict.Nothing
		default:
			m[f.Name] = predict.Something
		}
	})
	return m
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// Completion describes the command line for shell completion.
func Completion(global *flag.FlagSet) *complete.Command {
	c := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	for _, x := range commands {
		fs := flag.NewFlagSet(x.cmd.Name(), flag.ContinueOnError)
		x.cmd.SetFlags(fs)
		c.Sub[x.cmd.Name()] = &complete.Command{Flags: flagPredictors(fs)}
	}
	return c
}
