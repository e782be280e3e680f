package main

import (
	"io"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cbehopkins/bimap/internal/script"
)

// options are read from an optional INI file first and from the command
// line second, so flags override the file.
type options struct {
	Config     flags.Filename `long:"config" description:"INI file with option values" no-ini:"true"`
	Seed       uint64         `long:"seed" ini-name:"seed" description:"seed for node priorities; 0 draws from runtime entropy"`
	LogLevel   string         `long:"log-level" ini-name:"log-level" description:"log level (default: warning)"`
	LogFormat  string         `long:"log-format" ini-name:"log-format" choice:"text" choice:"json" description:"log output format (default: text)"`
	LeftOrder  string         `long:"left-order" ini-name:"left-order" choice:"lexical" choice:"numeric" choice:"fold" description:"ordering of left keys"`
	RightOrder string         `long:"right-order" ini-name:"right-order" choice:"lexical" choice:"numeric" choice:"fold" description:"ordering of right keys"`
	Strict     bool           `long:"strict" ini-name:"strict" description:"stop at the first unknown command or wrong argument count"`

	Args struct {
		Scripts []string `positional-arg-name:"SCRIPT" description:"script files; standard input when none are given"`
	} `positional-args:"yes"`
}

func parseOptions(args []string) (*options, error) {
	var pre struct {
		Config flags.Filename `long:"config"`
	}
	if _, err := flags.NewParser(&pre, flags.IgnoreUnknown).ParseArgs(args); err != nil {
		return nil, err
	}

	opts := &options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "bimapctl"
	if pre.Config != "" {
		if err := flags.NewIniParser(parser).ParseFile(string(pre.Config)); err != nil {
			return nil, errors.Wrapf(err, "read config %s", pre.Config)
		}
	}
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func newLogger(opts *options, out io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(out)
	level := logrus.WarnLevel
	if opts.LogLevel != "" {
		var err error
		if level, err = logrus.ParseLevel(opts.LogLevel); err != nil {
			return nil, errors.Wrap(err, "log level")
		}
	}
	logger.SetLevel(level)
	if opts.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return logger, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	logger, err := newLogger(opts, stderr)
	if err != nil {
		return err
	}
	left, err := script.ParseOrder(opts.LeftOrder)
	if err != nil {
		return errors.Wrap(err, "left order")
	}
	right, err := script.ParseOrder(opts.RightOrder)
	if err != nil {
		return errors.Wrap(err, "right order")
	}

	in := script.New(script.Config{
		LeftOrder:  left,
		RightOrder: right,
		Seed:       opts.Seed,
		Strict:     opts.Strict,
		Logger:     logger,
	}, stdout)

	logger.WithFields(logrus.Fields{
		"left_order":  left,
		"right_order": right,
		"seed":        opts.Seed,
		"scripts":     len(opts.Args.Scripts),
	}).Debug("starting")

	if len(opts.Args.Scripts) == 0 {
		return in.Run(stdin, "<stdin>")
	}
	for _, path := range opts.Args.Scripts {
		if err := runFile(in, path); err != nil {
			return err
		}
	}
	return nil
}

func runFile(in *script.Interpreter, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open script")
	}
	defer f.Close()
	return in.Run(f, path)
}
