// Package script runs line-oriented command scripts against a bimap of
// strings. It backs the bimapctl tool.
//
// Each line holds one command whose words are split with shell quoting
// rules, so '' names the empty key and "a b" a key with a space. Blank
// lines and lines starting with # are skipped. Keys in the output are quoted
// the same way. Every command writes one line of output,
// except the dump commands which write a table.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cbehopkins/bimap"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArity          = errors.New("wrong number of arguments")
	ErrSyntax         = errors.New("malformed command line")
)

// Config controls how an Interpreter builds its bimap and treats bad input.
type Config struct {
	LeftOrder  Order
	RightOrder Order
	// Seed fixes node priorities. Zero draws them from runtime entropy.
	Seed uint64
	// Strict makes unknown commands and arity mistakes end the run.
	Strict bool
	Logger logrus.FieldLogger
}

// Interpreter executes commands against one bimap.
type Interpreter struct {
	m      *bimap.Bimap[string, string]
	out    io.Writer
	logger logrus.FieldLogger
	strict bool
}

// New creates an interpreter over an empty bimap that writes to out.
func New(cfg Config, out io.Writer) *Interpreter {
	logger := cfg.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	opts := []bimap.Option{bimap.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, bimap.WithSeed(cfg.Seed))
	}
	return &Interpreter{
		m:      bimap.New(cfg.LeftOrder.Less(), cfg.RightOrder.Less(), opts...),
		out:    out,
		logger: logger,
		strict: cfg.Strict,
	}
}

// Map returns the bimap the interpreter works on.
func (in *Interpreter) Map() *bimap.Bimap[string, string] {
	return in.m
}

// Run executes every line of r. name identifies r in messages. Command
// mistakes are reported as "error: ..." output lines; in strict mode the
// first one also ends the run with an error.
func (in *Interpreter) Run(r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text, err := in.eval(sc.Text())
		if err != nil {
			in.logger.WithFields(logrus.Fields{
				"script": name,
				"line":   lineNo,
			}).WithError(err).Warn("bad command")
			text = fmt.Sprintf("error: %v", err)
		}
		if werr := in.write(text); werr != nil {
			return werr
		}
		if err != nil && in.strict {
			return errors.Wrapf(err, "%s:%d", name, lineNo)
		}
	}
	return errors.Wrapf(sc.Err(), "read %s", name)
}

// Exec executes a single line. It returns an error only for lines that are
// not a valid command; failures of a valid command are part of its output.
func (in *Interpreter) Exec(line string) error {
	text, err := in.eval(line)
	if err != nil {
		return err
	}
	return in.write(text)
}

func (in *Interpreter) eval(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", errors.Wrapf(ErrSyntax, "%v", err)
	}
	if len(fields) == 0 {
		return "", nil
	}
	name, args := fields[0], fields[1:]
	cmd, ok := commands[name]
	if !ok {
		return "", errors.Wrapf(ErrUnknownCommand, "%q", name)
	}
	if len(args) != cmd.arity {
		return "", errors.Wrapf(ErrArity, "%s takes %d, got %d", name, cmd.arity, len(args))
	}
	return cmd.run(in.m, args), nil
}

func (in *Interpreter) write(text string) error {
	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := io.WriteString(in.out, text)
	return errors.Wrap(err, "write output")
}
