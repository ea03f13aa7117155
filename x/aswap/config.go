package aswap

import (
	"encoding/binary"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/gconf"
)

const (
	packageName = "aswap"

	// DefaultMaxSecretSize is the longest secret accepted when no
	// configuration was stored.
	DefaultMaxSecretSize = 32
)

// Configuration holds the tunables of the swap program.
type Configuration struct {
	// MaxSecretSize is the longest secret a Redeem may reveal.
	MaxSecretSize uint16 `json:"max_secret_size"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when the genesis does not configure the
// package.
func DefaultConfiguration() Configuration {
	return Configuration{MaxSecretSize: DefaultMaxSecretSize}
}

// Validate implements gconf.Configuration.
func (c *Configuration) Validate() error {
	if c.MaxSecretSize == 0 {
		return errors.Wrap(errors.ErrEmpty, "max secret size")
	}
	return nil
}

// Marshal implements gconf.Configuration.
func (c *Configuration) Marshal() ([]byte, error) {
	raw := make([]byte, 2)
	binary.LittleEndian.PutUint16(raw, c.MaxSecretSize)
	return raw, nil
}

// Unmarshal implements gconf.Configuration.
func (c *Configuration) Unmarshal(raw []byte) error {
	if len(raw) != 2 {
		return errors.Wrapf(errors.ErrInvalidModel, "configuration must be 2 bytes, got %d", len(raw))
	}
	c.MaxSecretSize = binary.LittleEndian.Uint16(raw)
	return nil
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, err
	}
}

// Initializer stores the package configuration from genesis.
type Initializer struct{}

var _ htlc.Initializer = Initializer{}

// FromGenesis stores conf.aswap, or the defaults when it is absent.
func (Initializer) FromGenesis(opts htlc.Options, db htlc.KVStore) error {
	err := gconf.InitConfig(db, opts, packageName, &Configuration{})
	if errors.ErrNotFound.Is(err) {
		conf := DefaultConfiguration()
		return gconf.Save(db, packageName, &conf)
	}
	return err
}
