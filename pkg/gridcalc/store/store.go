// Package store keeps named grids in a bbolt database.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var sheetsBucket = []byte("sheets")

// ErrSheetNotFound indicates no sheet is stored under the given name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrEmptyName indicates a sheet name that is empty after trimming.
var ErrEmptyName = errors.New("empty sheet name")

type record struct {
	Width   int              `msgpack:"w"`
	Height  int              `msgpack:"h"`
	Entries []gridcalc.Entry `msgpack:"e"`
	Saved   time.Time        `msgpack:"t"`
}

// Info describes a stored sheet.
type Info struct {
	Name   string
	Width  int
	Height int
	Cells  int
	Saved  time.Time
}

// Store is a bbolt-backed collection of sheets keyed by lower-cased name.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sheetsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrEmptyName
	}
	return []byte(name), nil
}

// Put stores the raw content of g under name, replacing any previous sheet.
func (s *Store) Put(name string, g *gridcalc.Grid) error {
	k, err := key(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	err = msgpack.NewEncoder(&buf).Encode(record{
		Width:   g.Width(),
		Height:  g.Height(),
		Entries: g.Entries(),
		Saved:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode sheet %s: %w", name, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sheetsBucket).Put(k, buf.Bytes())
	})
}

// Get loads the sheet stored under name into a new, evaluated grid.
func (s *Store) Get(name string, opts gridcalc.Options) (*gridcalc.Grid, error) {
	rec, err := s.read(name)
	if err != nil {
		return nil, err
	}
	opts.Width, opts.Height = rec.Width, rec.Height
	g, err := gridcalc.New(opts)
	if err != nil {
		return nil, err
	}
	g.Replace(rec.Entries)
	return g, nil
}

func (s *Store) read(name string) (*record, error) {
	k, err := key(name)
	if err != nil {
		return nil, err
	}
	var rec record
	err = s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(sheetsBucket).Get(k)
		if v == nil {
			return fmt.Errorf("%s: %w", name, ErrSheetNotFound)
		}
		return msgpack.NewDecoder(bytes.NewReader(v)).Decode(&rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List describes every stored sheet in name order.
func (s *Store) List() ([]Info, error) {
	var infos []Info
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(sheetsBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var rec record
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decode sheet %s: %w", k, err)
			}
			infos = append(infos, Info{
				Name:   string(k),
				Width:  rec.Width,
				Height: rec.Height,
				Cells:  len(rec.Entries),
				Saved:  rec.Saved,
			})
		}
		return nil
	})
	return infos, err
}

// Delete removes the sheet stored under name.
func (s *Store) Delete(name string) error {
	k, err := key(name)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sheetsBucket)
		if b.Get(k) == nil {
			return fmt.Errorf("%s: %w", name, ErrSheetNotFound)
		}
		return b.Delete(k)
	})
}
