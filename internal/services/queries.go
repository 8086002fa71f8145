package services

// SQL query constants for source database introspection.
// Centralizing queries here improves maintainability and follows the project
// philosophy of keeping SQL separate from Go code.

const (
	// queryAllColumns retrieves every column of every base table outside the
	// system schemas, in the order the model records them.
	queryAllColumns = `
		SELECT c.table_schema, c.table_name, c.column_name,
		       c.ordinal_position, c.data_type, c.is_nullable
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema
		 AND t.table_name = c.table_name
		WHERE t.table_type = 'BASE TABLE'
		  AND c.table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY c.table_schema, c.table_name, c.ordinal_position
	`

	// querySchemaColumns is queryAllColumns restricted to a schema list.
	// Parameter $1: text array of schema names
	querySchemaColumns = `
		SELECT c.table_schema, c.table_name, c.column_name,
		       c.ordinal_position, c.data_type, c.is_nullable
		FROM information_schema.columns c
		JOIN information_schema.tables t
		  ON t.table_schema = c.table_schema
		 AND t.table_name = c.table_name
		WHERE t.table_type = 'BASE TABLE'
		  AND c.table_schema = ANY($1)
		ORDER BY c.table_schema, c.table_name, c.ordinal_position
	`
)
