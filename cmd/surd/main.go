package main

import (
	"fmt"
	"github.com/bokysan/surd/internal/args"
	"github.com/bokysan/surd/internal/commands/decode"
	"github.com/bokysan/surd/internal/commands/demo"
	"github.com/bokysan/surd/internal/commands/encode"
	"github.com/bokysan/surd/internal/commands/version"
	surdFlags "github.com/bokysan/surd/internal/flags"
	"github.com/bokysan/surd/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"os"
	"path"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// Surd is the main executable
type Surd struct {
	parser *flags.Parser
}

// NewSurd will create a new instance of Surd and initialize the parser
func NewSurd() *Surd {
	executableFilename := os.Args[0]
	executablePath := path.Base(executableFilename)

	sc := &Surd{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	sc.setupGeneral()
	sc.setupVersion()
	sc.setupEncode()
	sc.setupDecode()
	sc.setupDemo()

	return sc
}

// setupGeneral will configure general options
func (sc *Surd) setupGeneral() {
	if _, err := sc.parser.AddGroup("General", "General options", &args.General); err != nil {
		err = errors.WithStack(err)
		util.MustErrorNilOrExit(err)
	}
}

// setupVersion adds the `version` command
func (sc *Surd) setupVersion() {
	cmd := &version.Command{}
	_, err := sc.parser.AddCommand(
		"version",
		"Print the version",
		"Print the application version and exit",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupEncode adds the `encode` command
func (sc *Surd) setupEncode() {
	cmd := encode.NewCommand()
	_, err := sc.parser.AddCommand(
		"encode",
		"Encode a message",
		"Turn a message into the factor and key pair",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupDecode adds the `decode` command
func (sc *Surd) setupDecode() {
	cmd := decode.NewCommand()
	_, err := sc.parser.AddCommand(
		"decode",
		"Decode a message",
		"Turn a factor and key pair back into the message",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// setupDemo adds the `demo` command
func (sc *Surd) setupDemo() {
	cmd := demo.NewCommand()
	_, err := sc.parser.AddCommand(
		"demo",
		"Run the demo",
		"Encode and decode a sample message, step by step",
		cmd,
	)
	util.MustErrorNilOrExit(err)
}

// main starts surd and reads the configuration file
func main() {

	surd := NewSurd()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			message := fmt.Sprintf("Configuration file %s does not exist.", file)
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: message,
			})
		}

		yamlParser := surdFlags.NewYamlParser(surd.parser)

		args.General.ConfigurationFilePath = file
		return yamlParser.ParseFile(file)
	}

	_, err := surd.parser.Parse()
	util.MustErrorNilOrExit(err)

}
