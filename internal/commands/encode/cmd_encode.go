package encode

import (
	"fmt"
	"github.com/bokysan/surd/internal/codec"
	"github.com/bokysan/surd/internal/logging"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
)

// Command encodes a message given on the command line. Multiple arguments
// are joined with single spaces first, so quoting the message is optional.
type Command struct {
	Alphabet  string `json:"alphabet"  short:"a" long:"alphabet"  env:"ALPHABET"  description:"Symbol table to encode with." choice:"classic" choice:"extended" default:"classic"`
	Precision uint32 `json:"precision" short:"p" long:"precision" env:"PRECISION" description:"Significant decimal digits carried through the root arithmetic. Decoding needs the same value." default:"200"`
	Threshold string `json:"threshold" short:"t" long:"threshold" env:"THRESHOLD" description:"Value the root reduction folds under." default:"10"`
	Full      bool   `json:"full"      short:"F" long:"full"      env:"FULL"      description:"Also print the full-precision factor, the only one that decodes back exactly."`
}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) String() string {
	return "Encode a message"
}

func (c *Command) newCodec() (*codec.Codec, error) {
	alphabet, err := codec.AlphabetByName(c.Alphabet)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return codec.New(codec.Settings{
		Alphabet:  alphabet,
		Precision: c.Precision,
		Threshold: c.Threshold,
	})
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	if len(args) == 0 {
		return errors.New("nothing to encode, give the message as arguments")
	}
	message := strings.Join(args, " ")

	cd, err := c.newCodec()
	if err != nil {
		return err
	}

	encoded, err := cd.Encode(message)
	if err != nil {
		return err
	}

	log.Debugf("Encoded %d symbols with the %s alphabet, root exponent %d", len(message), cd.Alphabet().Name(), encoded.F2/100)
	fmt.Printf("f1=%s f2=%d\n", encoded.F1.Text('f'), encoded.F2)
	if c.Full {
		fmt.Printf("f_full=%s\n", encoded.FFull.Text('f'))
	}

	return nil
}
