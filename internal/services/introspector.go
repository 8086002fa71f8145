package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/dvgen/internal/db"
	"github.com/vvka-141/dvgen/internal/model"
	"github.com/vvka-141/dvgen/pkg/dvgen"
)

type sourceConnFunc func(ctx context.Context, connConfig *dvgen.ConnectionConfig) (dvgen.DBQuerier, func(), error)

// IntrospectionService seeds (or refreshes) an annotated model file from a
// live source database by reading the column catalog.
// Thread-Safety: NOT safe for concurrent Introspect() calls on the same instance.
// Create separate instances for concurrent runs.
type IntrospectionService struct {
	connectorFactory func(*dvgen.ConnectionConfig) (dvgen.Connector, error)
	logger           dvgen.Logger
	sourceConnector  sourceConnFunc
	loadModel        func(string) (*model.Model, error)
	saveModel        func(string, *model.Model) error
}

// NewIntrospectionService creates a new IntrospectionService with all dependencies injected.
//
// Panic vs. Error Boundary Rationale:
//   - Panics on nil dependencies: These are programmer errors that should fail loudly
//     at application startup, not during request handling. Fail-fast at construction
//     time prevents cryptic nil pointer dereferences deep in call stacks.
//   - Returns errors for runtime conditions: Configuration validation, connection failures,
//     and file system errors are recoverable runtime conditions that should be handled
//     by the caller, not panics.
func NewIntrospectionService(
	connectorFactory func(*dvgen.ConnectionConfig) (dvgen.Connector, error),
	logger dvgen.Logger,
) *IntrospectionService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &IntrospectionService{
		connectorFactory: connectorFactory,
		logger:           logger,
		loadModel:        model.Load,
		saveModel:        model.Save,
	}
	svc.sourceConnector = svc.defaultSourceConnector
	return svc
}

func (s *IntrospectionService) defaultSourceConnector(ctx context.Context, connConfig *dvgen.ConnectionConfig) (dvgen.DBQuerier, func(), error) {
	connector, err := s.connectorFactory(connConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to source database: %w", err)
	}

	cleanup := func() { pool.Close() }
	return db.NewPoolAdapter(pool), cleanup, nil
}

// Introspect reads the source column catalog and writes the model file.
// With config.Merge, annotations from an existing model file are carried
// onto the freshly read table set before writing.
func (s *IntrospectionService) Introspect(ctx context.Context, config dvgen.IntrospectConfig) (*model.Model, error) {
	connConfig, err := s.validateAndParseConfig(config)
	if err != nil {
		return nil, err
	}

	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	querier, cleanup, err := s.sourceConnector(ctx, connConfig)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	fresh, err := s.readColumns(ctx, querier, config.Schemas)
	if err != nil {
		return nil, err
	}

	if len(fresh.Tables) == 0 {
		s.logger.Info("No tables found; check schema filters and grants")
	}

	result := fresh
	if config.Merge {
		existing, loadErr := s.loadModel(config.ModelPath)
		switch {
		case loadErr == nil:
			s.logger.Verbose("Merging annotations from existing model %s", config.ModelPath)
			result = mergeModels(existing, fresh, s.logger)
		case errors.Is(loadErr, dvgen.ErrModelNotFound):
			s.logger.Verbose("No existing model at %s; writing a fresh one", config.ModelPath)
		default:
			return nil, loadErr
		}
	}

	if err := s.saveModel(config.ModelPath, result); err != nil {
		return nil, fmt.Errorf("failed to write model file: %w", err)
	}

	s.logger.Info("✓ Introspected %d table(s) into %s", len(result.Tables), config.ModelPath)
	return result, nil
}

// validateAndParseConfig validates the configuration and parses the connection string.
func (s *IntrospectionService) validateAndParseConfig(config dvgen.IntrospectConfig) (*dvgen.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	connConfig, err := db.ParseConnectionString(config.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if connConfig.AppName == "" {
		connConfig.AppName = "dvgen"
	}

	connConfig.AuthMethod = config.AuthMethod
	connConfig.AzureTenantID = config.AzureTenantID
	connConfig.AzureClientID = config.AzureClientID
	connConfig.AzureClientSecret = config.AzureClientSecret

	s.logger.Verbose("Introspecting source database '%s' on %s:%d", connConfig.Database, connConfig.Host, connConfig.Port)
	if len(config.Schemas) > 0 {
		s.logger.Verbose("Restricting to schemas: %s", strings.Join(config.Schemas, ", "))
	}

	return connConfig, nil
}

// readColumns builds a bare, unannotated model from the column catalog.
// Tables appear in catalog order, columns in ordinal order.
func (s *IntrospectionService) readColumns(ctx context.Context, querier dvgen.DBQuerier, schemas []string) (*model.Model, error) {
	query := queryAllColumns
	var args []any
	if len(schemas) > 0 {
		query = querySchemaColumns
		args = append(args, schemas)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query column catalog: %w", err)
	}
	defer rows.Close()

	m := &model.Model{}
	var current *model.Table
	for rows.Next() {
		var schema, table, column, dataType, nullable string
		var ordinal int
		if err := rows.Scan(&schema, &table, &column, &ordinal, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column catalog row: %w", err)
		}

		if current == nil || current.Schema != schema || current.Name != table {
			m.Tables = append(m.Tables, model.Table{Schema: schema, Name: table})
			current = &m.Tables[len(m.Tables)-1]
		}

		current.Columns = append(current.Columns, model.Column{
			Name:            column,
			OrdinalPosition: ordinal,
			DataType:        dataType,
			Nullable:        strings.EqualFold(nullable, "YES"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read column catalog: %w", err)
	}

	return m, nil
}

// mergeModels carries the user's annotations from the existing model onto
// the freshly introspected table set. Tables are matched by their stable
// identity, columns by name. Tables and columns that vanished from the
// source are dropped with their annotations; new ones arrive unannotated.
func mergeModels(existing, fresh *model.Model, logger dvgen.Logger) *model.Model {
	byID := make(map[string]*model.Table, len(existing.Tables))
	for i := range existing.Tables {
		t := &existing.Tables[i]
		byID[model.TableID(t.Schema, t.Name).String()] = t
	}

	seen := make(map[string]bool, len(fresh.Tables))
	for i := range fresh.Tables {
		ft := &fresh.Tables[i]
		id := model.TableID(ft.Schema, ft.Name).String()
		seen[id] = true

		et, ok := byID[id]
		if !ok {
			logger.Verbose("New table %s.%s", ft.Schema, ft.Name)
			continue
		}

		ft.BusinessConcept = et.BusinessConcept
		ft.Groups = et.Groups
		ft.Hashdiffs = et.Hashdiffs

		for j := range ft.Columns {
			fc := &ft.Columns[j]
			ec := et.Column(fc.Name)
			if ec == nil {
				continue
			}
			fc.BusinessKey = ec.BusinessKey
			fc.RecordSource = ec.RecordSource
			fc.LoadDate = ec.LoadDate
			fc.CreateSatellite = ec.CreateSatellite
			fc.SortOrder = ec.SortOrder
		}
	}

	for i := range existing.Tables {
		t := &existing.Tables[i]
		if !seen[model.TableID(t.Schema, t.Name).String()] {
			logger.Info("Table %s.%s no longer exists in the source; dropping it and its annotations", t.Schema, t.Name)
		}
	}

	return fresh
}
