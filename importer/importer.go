// Package importer loads users, orders and vendor menus from the flat files
// handed over by operators, straight into the store.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yeremiapane/resteasy/config"
	"github.com/yeremiapane/resteasy/database"
	"github.com/yeremiapane/resteasy/services"
)

type Importer struct {
	Accounts *services.AccountService
	Catalog  *services.CatalogService
	Orders   *services.OrderService

	MaxQuantity int
	Now         func() time.Time
}

func New(store *database.Store, maxQty int) *Importer {
	return &Importer{
		Accounts:    services.NewAccountService(store),
		Catalog:     services.NewCatalogService(store),
		Orders:      services.NewOrderService(store),
		MaxQuantity: maxQty,
		Now:         time.Now,
	}
}

// LineError points at the input line a failure came from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// record is one non-blank input line split into trimmed fields.
type record struct {
	line   int
	fields []string
}

func (r record) expect(n int) error {
	if len(r.fields) != n {
		return &LineError{Line: r.line, Err: fmt.Errorf("expected %d fields, got %d", n, len(r.fields))}
	}
	return nil
}

// readRecords splits every non-blank line of r on sep.
func readRecords(r io.Reader, sep rune) ([]record, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var out []record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		out = append(out, record{line: line, fields: fields})
	}
}

// OpenStore connects to the configured database and brings its schema up to
// date.
func OpenStore(cfg *config.Config) (*database.Store, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return database.NewStore(db), nil
}
