package export

import (
	"github.com/vvka-141/dvgen/internal/model"
)

// customerOrdersModel builds the fixture shared across compiler tests:
// a customer staging table with an explicit business-key group and a
// hashdiff group, plus an orders table with its own hub group and a link
// group referencing the customer hashkey.
func customerOrdersModel() *model.Model {
	return &model.Model{
		Tables: []model.Table{
			{
				Schema:          "sales",
				Name:            "stg_customer_master",
				BusinessConcept: "Customer",
				Columns: []model.Column{
					{Name: "customer_id", OrdinalPosition: 1, DataType: "integer"},
					{Name: "customer_name", OrdinalPosition: 2, DataType: "text"},
					{Name: "customer_segment", OrdinalPosition: 3, DataType: "text"},
					{Name: "rec_src", OrdinalPosition: 4, DataType: "text", RecordSource: true},
					{Name: "load_dts", OrdinalPosition: 5, DataType: "timestamp", LoadDate: true},
				},
				Groups: []model.BusinessKeyGroup{
					{
						HashkeyName: "hk_customer_h",
						Columns:     []string{"customer_id"},
					},
				},
				Hashdiffs: []model.HashdiffGroup{
					{
						Name:            "hd_customer_details_sat",
						BusinessConcept: "Customer",
						Selection:       model.SelectAllExcept(),
					},
				},
			},
			{
				Schema:          "sales",
				Name:            "stg_order_line",
				BusinessConcept: "Order",
				Columns: []model.Column{
					{Name: "order_id", OrdinalPosition: 1, DataType: "integer"},
					{Name: "customer_id", OrdinalPosition: 2, DataType: "integer"},
					{Name: "quantity", OrdinalPosition: 3, DataType: "integer"},
				},
				Groups: []model.BusinessKeyGroup{
					{
						HashkeyName: "hk_order_h",
						Columns:     []string{"order_id"},
					},
					{
						HashkeyName:        "lk_order_customer",
						Link:               true,
						ReferencedHashkeys: []string{"hk_customer_h"},
					},
				},
			},
		},
	}
}

// rowsFor filters relation rows by the value of the given header column.
func rowsFor(rel Relation, column, value string) [][]string {
	idx := -1
	for i, h := range rel.Header {
		if h == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	var out [][]string
	for _, row := range rel.Rows {
		if row[idx] == value {
			out = append(out, row)
		}
	}
	return out
}
