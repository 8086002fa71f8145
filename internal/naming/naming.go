// Package naming derives the canonical Data Vault identifiers (hub names,
// source systems, source identifiers) used by every export relation.
//
// All functions are pure string transforms. They are deliberately free of
// model dependencies so both the compilers and the TUI preview can share them.
package naming

import "strings"

// DefaultIdentifier is substituted when a schema or table component is empty.
// It serializes as a real value, never as an empty field, because the source
// identifier it participates in is a foreign key in every relation.
const DefaultIdentifier = "DEFAULT"

// hubPrefixes are table-name prefixes stripped before deriving a hub name.
// Matching is case-insensitive. These cover the common staging and raw-vault
// layer conventions.
var hubPrefixes = []string{"stg_", "rv_", "hub_"}

// HubName derives the hub base name for a table.
//
// If a business concept is assigned, the hub is named after it:
// HubName("anything", "Customer") == "customer_h".
//
// Otherwise the table name is used: a known layer prefix (stg_, rv_, hub_)
// is stripped case-insensitively, the first underscore-delimited token is
// taken, and "_h" is appended: HubName("stg_product_master", "") == "product_h".
func HubName(tableName, businessConcept string) string {
	if businessConcept != "" {
		return strings.ToLower(businessConcept) + "_h"
	}

	name := strings.ToLower(tableName)
	for _, prefix := range hubPrefixes {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	if idx := strings.Index(name, "_"); idx >= 0 {
		name = name[:idx]
	}

	return name + "_h"
}

// SourceSystem returns the uppercased schema name, or DefaultIdentifier if
// the schema is empty.
func SourceSystem(schema string) string {
	if schema == "" {
		return DefaultIdentifier
	}
	return strings.ToUpper(schema)
}

// SourceObject returns the uppercased first underscore-delimited token of the
// table name, or DefaultIdentifier if the table name is empty.
func SourceObject(tableName string) string {
	if tableName == "" {
		return DefaultIdentifier
	}
	token := tableName
	if idx := strings.Index(token, "_"); idx >= 0 {
		token = token[:idx]
	}
	return strings.ToUpper(token)
}

// GroupName returns the uppercased schema name, or DefaultIdentifier if the
// schema is empty. Group names partition source registrations by origin
// schema for downstream loader scheduling.
func GroupName(schema string) string {
	if schema == "" {
		return DefaultIdentifier
	}
	return strings.ToUpper(schema)
}

// SourceIdentifier builds the identifier tying every emitted row back to its
// originating table: "{SourceSystem}_{SourceObject}_{table}".
func SourceIdentifier(schema, table string) string {
	return SourceSystem(schema) + "_" + SourceObject(table) + "_" + table
}

// HubBase strips the "hk_" prefix and "_h" suffix from a hashkey name,
// yielding the base used in satellite parent identifiers:
// HubBase("hk_customer_h") == "customer".
func HubBase(hashkeyName string) string {
	base := strings.TrimPrefix(hashkeyName, "hk_")
	base = strings.TrimSuffix(base, "_h")
	return base
}

// SatelliteBase strips the "hd_" prefix and "_sat" suffix from a hashdiff
// group name, yielding the base used in satellite identifiers:
// SatelliteBase("hd_customer_details_sat") == "customer_details".
func SatelliteBase(groupName string) string {
	base := strings.TrimPrefix(groupName, "hd_")
	base = strings.TrimSuffix(base, "_sat")
	return base
}

// DefaultHashkeyName derives the fallback hashkey name for a hub whose
// business-key group does not declare one: "hk_{hubName}".
func DefaultHashkeyName(hubName string) string {
	return "hk_" + hubName
}

// DefaultHashdiffName derives the conventional hashdiff group name for a
// table: "hd_{tableName}_sat".
func DefaultHashdiffName(tableName string) string {
	return "hd_" + tableName + "_sat"
}

// HubIdentifier builds the hub relation identifier: "H_{hubName}".
func HubIdentifier(hubName string) string {
	return "H_" + hubName
}

// LinkIdentifier builds the link relation identifier: "L_{linkName}".
func LinkIdentifier(linkName string) string {
	return "L_" + linkName
}

// SatelliteIdentifier builds the satellite relation identifier: "S_{base}".
func SatelliteIdentifier(satelliteBase string) string {
	return "S_" + satelliteBase
}
