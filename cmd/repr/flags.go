package main

import (
	"github.com/spf13/pflag"

	"github.com/tipee-sa/repr/internal/loader"
)

// formatFlag is the --input-format value.
type formatFlag struct {
	format loader.Format
}

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return f.format.String() }

func (f *formatFlag) Set(s string) error {
	format, err := loader.ParseFormat(s)
	if err != nil {
		return err
	}
	f.format = format
	return nil
}

func (f *formatFlag) Type() string { return "format" }
