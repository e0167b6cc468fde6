package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// ORM is the gorm subset the journal repository chains on. Every method
// returns a new chain; errors surface through Error.
type ORM interface {
	AutoMigrate(dst ...any) error
	Count(count *int64) ORM
	Create(value any) ORM
	Delete(value any, conds ...any) ORM
	Find(dest any, conds ...any) ORM
	First(dest any, conds ...any) ORM
	Limit(limit int) ORM
	Model(value any) ORM
	Offset(offset int) ORM
	Order(value any) ORM
	Where(query any, args ...any) ORM
	WithContext(ctx context.Context) ORM

	Error() error
	RowsAffected() int64
}

type DB struct {
	*gorm.DB
	autoMigrationEnabled bool
	timeout              time.Duration
	system               string
}

var (
	ErrRecordNotFound = errors.New("record not found")
)

func (d DB) Error() error {
	switch {
	case errors.Is(d.DB.Error, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case d.DB.Error != nil:
		return fmt.Errorf("database error: %w", d.DB.Error)
	default:
		return nil
	}
}

func (d DB) RowsAffected() int64 {
	return d.DB.RowsAffected
}

var _ ORM = (*DB)(nil)

func (d DB) AutoMigrate(dst ...any) error {
	if d.autoMigrationEnabled {
		return d.DB.AutoMigrate(dst...)
	}

	return nil
}

func (d DB) Count(value *int64) ORM {
	return d.chain("count", func(db *gorm.DB) *gorm.DB { return db.Count(value) })
}

func (d DB) Create(value any) ORM {
	return d.chain("create", func(db *gorm.DB) *gorm.DB { return db.Create(value) })
}

func (d DB) Delete(value any, conds ...any) ORM {
	return d.chain("delete", func(db *gorm.DB) *gorm.DB { return db.Delete(value, conds...) })
}

func (d DB) Find(value any, conds ...any) ORM {
	return d.chain("find", func(db *gorm.DB) *gorm.DB { return db.Find(value, conds...) })
}

func (d DB) First(value any, conds ...any) ORM {
	return d.chain("first", func(db *gorm.DB) *gorm.DB { return db.First(value, conds...) })
}

func (d DB) Limit(value int) ORM {
	return d.chain("", func(db *gorm.DB) *gorm.DB { return db.Limit(value) })
}

func (d DB) Model(value any) ORM {
	return d.chain("", func(db *gorm.DB) *gorm.DB { return db.Model(value) })
}

func (d DB) Offset(value int) ORM {
	return d.chain("", func(db *gorm.DB) *gorm.DB { return db.Offset(value) })
}

func (d DB) Order(value any) ORM {
	return d.chain("", func(db *gorm.DB) *gorm.DB { return db.Order(value) })
}

func (d DB) Where(value any, conds ...any) ORM {
	return d.chain("", func(db *gorm.DB) *gorm.DB { return db.Where(value, conds...) })
}

// chain applies one builder step on a copy. Steps that hit the database pass
// their operation name so it lands on the caller's span.
func (d DB) chain(operation string, step func(*gorm.DB) *gorm.DB) ORM {
	if operation != "" {
		d.annotateSpan(operation)
	}
	d.DB = step(d.DB)
	return &d
}

// WithContext bounds every statement of the chain by the configured timeout.
// The timer is released once the context is done.
func (d DB) WithContext(value context.Context) ORM {
	if d.timeout > 0 {
		timeoutCtx, cancel := context.WithTimeout(value, d.timeout)
		context.AfterFunc(timeoutCtx, cancel)
		d.DB = d.DB.WithContext(timeoutCtx)
		return &d
	}

	d.DB = d.DB.WithContext(value)
	return &d
}

func (d DB) annotateSpan(operation string) {
	ctx := d.DB.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("component", "journal_db"),
		attribute.String("db.system", d.system),
		attribute.String("db.operation", operation),
	}
	if table := d.DB.Statement.Table; table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", table))
	}
	span.SetAttributes(attrs...)
}
