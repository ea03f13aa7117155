package gconf

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// Configuration is a package configuration with its own binary form.
type Configuration interface {
	Validate() error
	Marshal() ([]byte, error)
	Unmarshal([]byte) error
}

// ReadStore is the part of a KVStore that Load needs.
type ReadStore interface {
	Get(key []byte) ([]byte, error)
}

// Store is the part of a KVStore that Save needs.
type Store interface {
	ReadStore
	Set(key, value []byte) error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and writes it as the configuration of pkg,
// replacing any previous one.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned
// when pkg was never configured.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	return nil
}

// InitConfig decodes opts["conf"][pkg] into conf and saves it.
func InitConfig(db Store, opts htlc.Options, pkg string, conf Configuration) error {
	var all htlc.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return err
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %s configuration", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return err
	}
	return Save(db, pkg, conf)
}
