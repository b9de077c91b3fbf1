package cmd

import (
	"slices"
	"strings"

	"github.com/hephbuild/lockbench/internal/runner"
	"github.com/spf13/pflag"
)

func NewProtocolsFlag(ps *protocols, name, shorthand, usage string) *pflag.Flag {
	return &pflag.Flag{
		Name:      name,
		Shorthand: shorthand,
		Usage:     usage,
		Value:     ps,
		DefValue:  "",
	}
}

// protocols is a repeatable, comma separated protocol list.
type protocols []runner.Protocol

func (ps *protocols) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		p, err := runner.ParseProtocol(part)
		if err != nil {
			return err
		}

		if !slices.Contains(*ps, p) {
			*ps = append(*ps, p)
		}
	}

	return nil
}

func (ps *protocols) Type() string {
	return "protocol"
}

func (ps *protocols) String() string {
	parts := make([]string, 0, len(*ps))
	for _, p := range *ps {
		parts = append(parts, p.String())
	}

	return strings.Join(parts, ",")
}
