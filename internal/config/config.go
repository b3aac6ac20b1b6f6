package config

import (
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	huffman "github.com/chronos-tachyon/huffzap"
)

const (
	EnvVarPrefix = "ZAP"

	DefaultConfigFile = "zap.toml"
	DefaultLogLevel   = "info"
	DefaultFileMode   = "0644"
	DefaultAlphabet   = "ascii"
)

var (
	// VERSION gets set during build
	VERSION = "0.0.0"

	// usageOutput receives help text and the usage shown on parse errors
	usageOutput io.Writer = os.Stderr
)

// Mode selects which command a Config is for.
type Mode int

const (
	Compress Mode = iota
	Decompress
)

func (m Mode) String() string {
	if m == Decompress {
		return "unzap"
	}
	return "zap"
}

type Config struct {
	Mode Mode
	CLI  *CLI
	TOML *TOML
}

type TOML struct {
	Config   *TOMLConfig   `toml:"config"`
	Compress *TOMLCompress `toml:"compress"`
}

type TOMLConfig struct {
	LogLevel  string `toml:"log_level"`
	FileMode  string `toml:"file_mode"`
	Overwrite bool   `toml:"overwrite"`
}

type TOMLCompress struct {
	Alphabet string `toml:"alphabet"`
}

type CLI struct {
	Input      string `kong:"arg,help='File to read',type='existingfile'"`
	Output     string `kong:"arg,help='File to create'"`
	ConfigFile string `kong:"help='Path to the TOML config file',default='zap.toml',short='c'"`
	Force      bool   `kong:"help='Overwrite the output file if it already exists',short='f'"`

	Debug   bool             `kong:"help='Enable debug output',short='d'"`
	Quiet   bool             `kong:"help='Only log warnings and errors',short='q'"`
	Version kong.VersionFlag `help:"Show version and exit" short:"v" env:"-"`

	// Internal bits
	Ctx *kong.Context `kong:"-"`
}

// ZapCLI adds the flags that only make sense when compressing.
type ZapCLI struct {
	CLI `embed:""`

	Binary bool `kong:"help='Accept every byte value instead of 7-bit ASCII only',short='b'"`
}

// NewConfig parses args (without the program name) for the given mode, then
// layers the optional TOML config file underneath.
func NewConfig(mode Mode, args []string) (*Config, error) {
	// Attempt to load .env
	_ = godotenv.Load(".env")

	cli, binary, err := readCLIArgs(mode, args)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing CLI args")
	}

	tomlConfig, err := readTOML(cli.ConfigFile, cli.ConfigFile != DefaultConfigFile)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}

	if binary {
		tomlConfig.Compress.Alphabet = huffman.Octet.String()
	}

	cfg := &Config{
		Mode: mode,
		CLI:  cli,
		TOML: tomlConfig,
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "error validating config")
	}

	return cfg, nil
}

// Alphabet returns the symbol alphabet to compress with.
func (c *Config) Alphabet() huffman.Alphabet {
	a, _ := huffman.ParseAlphabet(c.TOML.Compress.Alphabet)
	return a
}

// Overwrite reports whether an existing output file may be replaced.
func (c *Config) Overwrite() bool {
	return c.CLI.Force || c.TOML.Config.Overwrite
}

// FileMode returns the permission bits for the output file.
func (c *Config) FileMode() os.FileMode {
	mode, _ := parseFileMode(c.TOML.Config.FileMode)
	return mode
}

// LogLevel returns the effective log level; --debug and --quiet take
// precedence over config.log_level.
func (c *Config) LogLevel() logrus.Level {
	switch {
	case c.CLI.Debug:
		return logrus.DebugLevel
	case c.CLI.Quiet:
		return logrus.WarnLevel
	}
	level, _ := logrus.ParseLevel(c.TOML.Config.LogLevel)
	return level
}

func setTOMLDefaults(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	if t.Config == nil {
		t.Config = &TOMLConfig{}
	}

	if t.Compress == nil {
		t.Compress = &TOMLCompress{}
	}

	// Set defaults for [config]
	if t.Config.LogLevel == "" {
		t.Config.LogLevel = DefaultLogLevel
	}

	if t.Config.FileMode == "" {
		t.Config.FileMode = DefaultFileMode
	}

	// Set defaults for [compress]
	if t.Compress.Alphabet == "" {
		t.Compress.Alphabet = DefaultAlphabet
	}

	return nil
}

func Validate(c *Config) error {
	if c == nil {
		return errors.New("config cannot be nil")
	}

	if err := validateCLIArgs(c.CLI); err != nil {
		return errors.Wrap(err, "error validating CLI args")
	}

	if err := validateTOML(c.TOML); err != nil {
		return errors.Wrap(err, "error validating toml config")
	}

	return nil
}

func validateTOML(t *TOML) error {
	if t == nil {
		return errors.New("toml config cannot be nil")
	}

	if err := validateTOMLConfig(t.Config); err != nil {
		return errors.Wrap(err, "config error(s)")
	}

	if err := validateTOMLCompress(t.Compress); err != nil {
		return errors.Wrap(err, "compress error(s)")
	}

	return nil
}

func validateTOMLConfig(c *TOMLConfig) error {
	if c == nil {
		return errors.New("config cannot be empty")
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("config.log_level %s is invalid", c.LogLevel)
	}

	mode, err := parseFileMode(c.FileMode)
	if err != nil {
		return errors.Wrapf(err, "config.file_mode %s is invalid", c.FileMode)
	}

	if mode&0o600 != 0o600 {
		return errors.Errorf("config.file_mode %s must allow the owner to read and write", c.FileMode)
	}

	return nil
}

func validateTOMLCompress(c *TOMLCompress) error {
	if c == nil {
		return errors.New("compress cannot be empty")
	}

	if _, ok := huffman.ParseAlphabet(c.Alphabet); !ok {
		return errors.Errorf("compress.alphabet %s is invalid", c.Alphabet)
	}

	return nil
}

func validateCLIArgs(cli *CLI) error {
	if cli == nil {
		return errors.New("cli cannot be nil")
	}

	if cli.Input == "" {
		return errors.New("input file cannot be empty")
	}

	if cli.Output == "" {
		return errors.New("output file cannot be empty")
	}

	if cli.Debug && cli.Quiet {
		return errors.New("--debug and --quiet are mutually exclusive")
	}

	return nil
}

func readCLIArgs(mode Mode, args []string) (*CLI, bool, error) {
	var (
		grammar     interface{}
		cli         *CLI
		binary      *bool
		description string
	)

	switch mode {
	case Compress:
		zc := &ZapCLI{}
		grammar, cli, binary = zc, &zc.CLI, &zc.Binary
		description = "Compress a file with Huffman coding"
	case Decompress:
		cli = &CLI{}
		grammar, binary = cli, new(bool)
		description = "Decompress a file created by zap"
	default:
		return nil, false, errors.Errorf("unknown mode %d", mode)
	}

	parser, err := kong.New(grammar,
		kong.Name(mode.String()),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Writers(usageOutput, usageOutput),
		kong.DefaultEnvars(EnvVarPrefix),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version": VERSION,
		})
	if err != nil {
		return nil, false, errors.Wrap(err, "unable to build CLI parser")
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return nil, false, err
	}
	cli.Ctx = ctx

	if err := validateCLIArgs(cli); err != nil {
		return nil, false, errors.Wrap(err, "error validating args")
	}

	return cli, *binary, nil
}

// readTOML loads file if it exists.  A missing file is only an error when the
// user asked for it explicitly.
func readTOML(file string, required bool) (*TOML, error) {
	tomlConfig := &TOML{}

	// Attempt to load file
	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, tomlConfig); err != nil {
			return nil, errors.Wrap(err, "error parsing TOML config")
		}
	case os.IsNotExist(err) && !required:
		logrus.Debugf("config file '%s' not found, using defaults", file)
	default:
		return nil, errors.Wrap(err, "error reading file")
	}

	// Set defaults
	if err := setTOMLDefaults(tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error setting TOML defaults")
	}

	// Validate loaded config
	if err := validateTOML(tomlConfig); err != nil {
		return nil, errors.Wrap(err, "error validating TOML config")
	}

	return tomlConfig, nil
}

func parseFileMode(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if v&^0o777 != 0 {
		return 0, errors.Errorf("%s has bits outside 0777", s)
	}
	return os.FileMode(v), nil
}
