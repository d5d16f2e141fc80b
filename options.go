package vls

import (
	"github.com/mwantia/vls/data"
	"github.com/mwantia/vls/log"
)

type Options struct {
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool
}

type Option func(*Options) error

func newDefaultOptions() *Options {
	return &Options{
		LogLevel: log.Info,
	}
}

func WithLogLevel(logLevel log.LogLevel) Option {
	return func(opts *Options) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithLogFile(logFile string) Option {
	return func(opts *Options) error {
		opts.LogFile = logFile
		return nil
	}
}

func WithoutTerminalLog() Option {
	return func(opts *Options) error {
		opts.NoTerminalLog = true
		return nil
	}
}

// MountOption configures a single mount entry.
type MountOption func(*data.MountInfo)

// WithAddress records the source address a mount was created from.
func WithAddress(address string) MountOption {
	return func(info *data.MountInfo) {
		info.Address = address
	}
}
