package avro

import (
	"fmt"

	"github.com/riferrei/srclient"
)

//go:generate mockgen -source=schema_registry.go -destination=../../../test/unit/doubles/infra/avro/schema_registry_mock.go -package=avro -mock_names=SchemaRegistry=MockSchemaRegistry

// SchemaRegistry is the subset of the Confluent registry the codec needs.
type SchemaRegistry interface {
	LatestSchemaID(subject string) (int, error)
	RegisterSchema(subject string, schema string) (int, error)
	SchemaByID(id int) (string, error)
}

func NewSchemaRegistry(url string) *ConfluentSchemaRegistry {
	return &ConfluentSchemaRegistry{client: srclient.CreateSchemaRegistryClient(url)}
}

var _ SchemaRegistry = (*ConfluentSchemaRegistry)(nil)

type ConfluentSchemaRegistry struct {
	client *srclient.SchemaRegistryClient
}

func (r *ConfluentSchemaRegistry) LatestSchemaID(subject string) (int, error) {
	schema, err := r.client.GetLatestSchema(subject)
	if err != nil {
		return 0, fmt.Errorf("fetching latest schema for %s: %w", subject, err)
	}
	return schema.ID(), nil
}

func (r *ConfluentSchemaRegistry) RegisterSchema(subject string, schema string) (int, error) {
	registered, err := r.client.CreateSchema(subject, schema, srclient.Avro)
	if err != nil {
		return 0, fmt.Errorf("registering schema for %s: %w", subject, err)
	}
	return registered.ID(), nil
}

func (r *ConfluentSchemaRegistry) SchemaByID(id int) (string, error) {
	schema, err := r.client.GetSchema(id)
	if err != nil {
		return "", fmt.Errorf("fetching schema %d: %w", id, err)
	}
	return schema.Schema(), nil
}
