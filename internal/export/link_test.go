package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dvgen/internal/model"
)

func buildRegistry(t *testing.T, m *model.Model) *HashkeyRegistry {
	t.Helper()
	reg, diags := BuildHashkeyRegistry(m)
	require.Empty(t, diags)
	return reg
}

func TestLinks_ResolvedReference(t *testing.T) {
	m := customerOrdersModel()
	rel, diags := Links(m, buildRegistry(t, m))
	require.Empty(t, diags)
	require.Equal(t, 1, rel.Len())

	row := rel.Rows[0]
	assert.Equal(t, "L_lk_order_customer", row[0])
	assert.Equal(t, "lk_order_customer", row[1])
	// The source identifier is the link table's, not the referenced hub's.
	assert.Equal(t, "SALES_STG_stg_order_line", row[2])
	assert.Equal(t, "customer_id", row[3])
	assert.Equal(t, "customer_id", row[4])
	assert.Equal(t, "H_customer_h", row[5])
	assert.Equal(t, "hk_customer_h", row[6])
	assert.Equal(t, "lk_order_customer", row[7])
}

func TestLinks_MultiColumnHub(t *testing.T) {
	m := &model.Model{Tables: []model.Table{
		{
			Schema: "fin",
			Name:   "stg_account",
			Columns: []model.Column{
				{Name: "bank_code", OrdinalPosition: 1},
				{Name: "account_no", OrdinalPosition: 2},
			},
			Groups: []model.BusinessKeyGroup{
				{HashkeyName: "hk_account_h", Columns: []string{"bank_code", "account_no"}},
			},
		},
		{
			Schema:  "fin",
			Name:    "stg_transfer",
			Columns: []model.Column{{Name: "transfer_id", OrdinalPosition: 1}},
			Groups: []model.BusinessKeyGroup{
				{Link: true, ReferencedHashkeys: []string{"hk_account_h"}},
			},
		},
	}}

	rel, diags := Links(m, buildRegistry(t, m))
	require.Empty(t, diags)
	require.Equal(t, 2, rel.Len())

	// One row per referenced-hub column, in the hub group's order.
	assert.Equal(t, "bank_code", rel.Rows[0][3])
	assert.Equal(t, "account_no", rel.Rows[1][3])

	// Unnamed link groups get a generated name with the 1-based index.
	assert.Equal(t, "lk_stg_transfer_1", rel.Rows[0][1])
	assert.Equal(t, "L_lk_stg_transfer_1", rel.Rows[0][0])
}

func TestLinks_UnresolvedReferenceEmitsPlaceholder(t *testing.T) {
	m := &model.Model{Tables: []model.Table{{
		Schema:  "fin",
		Name:    "stg_transfer",
		Columns: []model.Column{{Name: "transfer_id", OrdinalPosition: 1}},
		Groups: []model.BusinessKeyGroup{
			{HashkeyName: "lk_transfer", Link: true, ReferencedHashkeys: []string{"hk_missing_h"}},
		},
	}}}

	rel, diags := Links(m, buildRegistry(t, m))
	require.Equal(t, 1, rel.Len())

	row := rel.Rows[0]
	assert.Equal(t, "L_lk_transfer", row[0])
	assert.Empty(t, row[3])
	assert.Empty(t, row[4])
	assert.Empty(t, row[5])
	assert.Equal(t, "hk_missing_h", row[6])

	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, "lk_transfer", diags[0].Subject)
}

func TestLinks_EmptyModel(t *testing.T) {
	m := &model.Model{}
	rel, diags := Links(m, buildRegistry(t, m))
	assert.Empty(t, diags)
	assert.Equal(t, 0, rel.Len())
	assert.Equal(t, linkHeader, rel.Header)
}
