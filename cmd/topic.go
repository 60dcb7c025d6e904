package cmd

import (
	"context"
	"flag"

	"github.com/etnz/stockgrid/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `sgrid topic [<topic>...]

  Shows the documentation topics, "*" shows all of them.
  Without topic, lists the available topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}
	doc, err := docs.Topics(topics...)
	if err != nil {
		return fail("reading documentation", err)
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}
