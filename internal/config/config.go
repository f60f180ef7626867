// Package config loads the run configuration of the command line tools.
//
// A configuration file is TOML:
//
//	fill = 0xff        # memory fill byte at reset
//	verbose = false    # log every instruction
//	max_ticks = 100000 # stop runaway programs, 0 is unlimited
//	input = "-"        # console input, "-" is stdin
//	output = "-"       # console output, "-" is stdout
//	registers = true   # print the register table on exit
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ezrec/minivm/translate"
)

var f = translate.From

var (
	ErrUnknownKey = errors.New(f("unknown configuration key"))
)

// Config is the run configuration.
type Config struct {
	Fill      uint8  `toml:"fill"`
	Verbose   bool   `toml:"verbose"`
	MaxTicks  int    `toml:"max_ticks"`
	Input     string `toml:"input"`
	Output    string `toml:"output"`
	Registers bool   `toml:"registers"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Input:  "-",
		Output: "-",
	}
}

// Load reads a configuration file over the defaults.
func Load(path string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		err = errors.Wrapf(err, "config %v", path)
		cfg = nil
		return
	}

	err = checkUndecoded(md)
	if err != nil {
		err = errors.Wrapf(err, "config %v", path)
		cfg = nil
		return
	}

	return
}

// Parse reads configuration text over the defaults.
func Parse(text string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, cfg)
	if err == nil {
		err = checkUndecoded(md)
	}
	if err != nil {
		err = errors.Wrap(err, "config")
		cfg = nil
	}

	return
}

func checkUndecoded(md toml.MetaData) (err error) {
	undecoded := md.Undecoded()
	if len(undecoded) != 0 {
		err = errors.Wrap(ErrUnknownKey, undecoded[0].String())
	}
	return
}
