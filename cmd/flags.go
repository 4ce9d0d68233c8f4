package cmd

import (
	"github.com/PolarWolf314/jaylock/internal/envelope"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*cipherValue)(nil)

// cipherValue is the --cipher flag. The zero value means "not given", so
// the config file decides.
type cipherValue struct {
	mode envelope.Mode
	set  bool
}

func (c *cipherValue) String() string {
	if !c.set {
		return ""
	}
	return c.mode.String()
}

func (c *cipherValue) Set(s string) error {
	mode, err := envelope.ParseMode(s)
	if err != nil {
		return err
	}
	c.mode = mode
	c.set = true
	return nil
}

func (c *cipherValue) Type() string {
	return "cipher"
}
