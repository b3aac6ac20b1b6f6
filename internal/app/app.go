package app

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	huffman "github.com/chronos-tachyon/huffzap"
	"github.com/chronos-tachyon/huffzap/internal/config"
	"github.com/chronos-tachyon/huffzap/internal/zapfile"
)

// Run performs the compression or decompression described by cfg.
func Run(cfg *config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return errors.Wrap(err, "error validating config")
	}

	llog := logrus.WithFields(logrus.Fields{
		"pkg":  "app",
		"mode": cfg.Mode.String(),
	})

	src, err := zapfile.OpenSource(cfg.CLI.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	sink, err := zapfile.CreateSink(cfg.CLI.Output, cfg.FileMode(), cfg.Overwrite(), src)
	if err != nil {
		return err
	}
	defer sink.Abort()

	var dump io.WriteCloser
	if llog.Logger.IsLevelEnabled(logrus.DebugLevel) {
		dump = llog.WriterLevel(logrus.DebugLevel)
		defer dump.Close()
	}

	var stats huffman.Stats
	switch cfg.Mode {
	case config.Compress:
		c := huffman.Compressor{Alphabet: cfg.Alphabet()}
		if dump != nil {
			c.Dump = dump
		}
		stats, err = c.Compress(sink, src)
	case config.Decompress:
		var d huffman.Decompressor
		if dump != nil {
			d.Dump = dump
		}
		stats, err = d.Decompress(sink, src)
	default:
		return errors.Errorf("unknown mode %d", cfg.Mode)
	}
	if err != nil {
		return errors.Wrapf(err, "unable to %s %s", verb(cfg.Mode), cfg.CLI.Input)
	}

	if err := sink.Commit(); err != nil {
		return err
	}

	llog.WithFields(logrus.Fields{
		"symbols":      stats.Symbols,
		"distinct":     stats.Distinct,
		"input_bytes":  stats.InputBytes,
		"output_bytes": stats.OutputBytes,
	}).Debugf("ratio %.3f", stats.Ratio())

	switch cfg.Mode {
	case config.Compress:
		logrus.Infof("Compressed input file %s into zap file %s", cfg.CLI.Input, cfg.CLI.Output)
	case config.Decompress:
		logrus.Infof("Decompressed zap file %s into output file %s", cfg.CLI.Input, cfg.CLI.Output)
	}

	return nil
}

func verb(m config.Mode) string {
	if m == config.Decompress {
		return "decompress"
	}
	return "compress"
}

// DisplayConfig logs the effective settings at debug level.
func DisplayConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	logrus.Debugf("%s settings:", cfg.Mode)
	logrus.Debug("  [CLI]")
	logrus.Debugf("  version: %s", config.VERSION)
	logrus.Debugf("  input: %s", cfg.CLI.Input)
	logrus.Debugf("  output: %s", cfg.CLI.Output)
	logrus.Debugf("  config file: %s", cfg.CLI.ConfigFile)
	logrus.Debugf("  force: %v", cfg.CLI.Force)
	logrus.Debugf("  debug: %v", cfg.CLI.Debug)
	logrus.Debugf("  quiet: %v", cfg.CLI.Quiet)
	logrus.Debug("")
	logrus.Debug("  [CONFIG]")
	logrus.Debugf("  config.log_level: %s", cfg.TOML.Config.LogLevel)
	logrus.Debugf("  config.file_mode: %s", cfg.TOML.Config.FileMode)
	logrus.Debugf("  config.overwrite: %v", cfg.TOML.Config.Overwrite)

	if cfg.Mode == config.Compress {
		logrus.Debug("")
		logrus.Debug("  [COMPRESS]")
		logrus.Debugf("  compress.alphabet: %s", cfg.Alphabet())
	}
}
