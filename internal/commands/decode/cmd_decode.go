package decode

import (
	"fmt"
	"github.com/bokysan/surd/internal/codec"
	"github.com/bokysan/surd/internal/logging"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command decodes a factor and key pair back into the message. The factor
// travels as an exact decimal string; pass the full-precision one if you want
// the original message back rather than an approximation of it.
type Command struct {
	Alphabet  string `json:"alphabet"  short:"a" long:"alphabet"  env:"ALPHABET"  description:"Symbol table the message was encoded with." choice:"classic" choice:"extended" default:"classic"`
	Precision uint32 `json:"precision" short:"p" long:"precision" env:"PRECISION" description:"Significant decimal digits carried through the root arithmetic. Must match the encoding side." default:"200"`
}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) String() string {
	return "Decode a factor and key pair"
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	if len(args) != 2 {
		return errors.New("expected exactly two arguments, the factor and the key")
	}

	alphabet, err := codec.AlphabetByName(c.Alphabet)
	if err != nil {
		return errors.WithStack(err)
	}
	cd, err := codec.New(codec.Settings{
		Alphabet:  alphabet,
		Precision: c.Precision,
	})
	if err != nil {
		return err
	}

	message, err := cd.DecodeStrings(args[0], args[1])
	if err != nil {
		return err
	}

	log.Debugf("Decoded %d symbols with the %s alphabet", len(message), cd.Alphabet().Name())
	fmt.Println(message)

	return nil
}
