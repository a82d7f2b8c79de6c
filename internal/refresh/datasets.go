package refresh

import (
	"github.com/NWFWMD-IT/Wells/internal/decode"
	"github.com/NWFWMD-IT/Wells/internal/spatial"
)

// ColumnMap maps one target column to the select expression that produces
// it from a source row.
type ColumnMap struct {
	Target string
	Expr   string
}

// Subset is a feature class derived from an already-refreshed master by an
// attribute filter. It never contacts the upstream source; rows (geometry
// included) are copied verbatim from the master.
type Subset struct {
	Table        string
	Sequence     string
	Columns      []string
	FilterColumn string
	FilterValues []string
}

// DatasetGroup describes one refresh operation: an upstream source, a
// master feature class with its column mapping, and any derived subsets.
// One transaction covers the whole group.
type DatasetGroup struct {
	Name     string
	Source   string
	Coords   SourceCoords
	NullTag  spatial.NullTagPolicy
	Table    string
	Sequence string
	Columns  []ColumnMap
	Subsets  []Subset
}

// compositeComponent renders one component extraction of a composite
// project number. The indexes below are constants, so a renderer error is a
// defect and panics.
func compositeComponent(column string, n int) string {
	expr, err := decode.CompositeComponentSQL(column, n)
	if err != nil {
		panic(err)
	}
	return expr
}

// erpSiteSubsetColumns is the shared layout of the four ERP site subsets:
// the master's columns minus the party fields.
var erpSiteSubsetColumns = []string{
	"site_id",
	"permit_number",
	"project_number",
	"permit_type",
	"county_fips",
	"official_permit_number",
	"sequence_number",
	"application_status",
	"rule_code",
	"rule_description",
	"project_name",
	"project_county",
	"site_location",
	"expiration_date",
	"issue_date",
	"review_date",
	"legacy_permit_number",
	"item_number",
	"item_type",
	"item_stage",
}

// Groups returns the four dataset groups in their refresh order. The
// definitions are fixed; envelope bounds and reference ids flow in through
// the registry at run time, not here.
func Groups() []DatasetGroup {
	return []DatasetGroup{
		sitesGroup(),
		stationsGroup(),
		wellInventoryGroup(),
		wellPermitsGroup(),
	}
}

// GroupByName resolves a dataset group by its operation name.
func GroupByName(name string) (DatasetGroup, bool) {
	for _, g := range Groups() {
		if g.Name == name {
			return g, true
		}
	}
	return DatasetGroup{}, false
}

// sitesGroup refreshes the ERP site master and derives the four rule-based
// subsets from it. The ERP extract historically reports no format tag for
// legacy rows whose coordinates are DMS, so an absent tag defaults to DMS
// here and nowhere else.
func sitesGroup() DatasetGroup {
	return DatasetGroup{
		Name:   "sites",
		Source: "regdata.erp_site",
		Coords: SourceCoords{
			LonColumn: "longitude",
			LatColumn: "latitude",
			TagColumn: "coord_format",
		},
		NullTag:  spatial.NullTagDMS,
		Table:    "gis.databases_erp_site",
		Sequence: "gis.databases_erp_site_oid_seq",
		Columns: []ColumnMap{
			{"site_id", "site_id"},
			{"permit_number", "permit_number"},
			{"project_number", "project_number"},
			{"permit_type", compositeComponent("project_number", 1)},
			{"county_fips", compositeComponent("project_number", 2)},
			{"official_permit_number", compositeComponent("project_number", 3)},
			{"sequence_number", compositeComponent("project_number", 4)},
			{"application_status", "application_status"},
			{"rule_code", "rule_code"},
			{"rule_description", "rule_description"},
			{"project_name", "project_name"},
			{"project_county", "initcap(lower(trim(county_name)))"},
			{"site_location", "site_location"},
			{"party_role", "party_role"},
			{"party_company_name", "party_company_name"},
			{"party_first_name", "party_first_name"},
			{"party_last_name", "party_last_name"},
			{"expiration_date", "expiration_date"},
			{"issue_date", "issue_date"},
			{"review_date", "review_date"},
			{"legacy_permit_number", "legacy_permit_number"},
			{"item_number", "item_number"},
			{"item_type", "item_type"},
			{"item_stage", "item_stage"},
		},
		Subsets: []Subset{
			{
				Table:        "gis.databases_erp_site_40a_4",
				Sequence:     "gis.databases_erp_site_40a_4_oid_seq",
				Columns:      erpSiteSubsetColumns,
				FilterColumn: "rule_code",
				FilterValues: []string{"40A-4"},
			},
			{
				Table:        "gis.databases_erp_site_40a_44",
				Sequence:     "gis.databases_erp_site_40a_44_oid_seq",
				Columns:      erpSiteSubsetColumns,
				FilterColumn: "rule_code",
				FilterValues: []string{"40A-44"},
			},
			{
				Table:        "gis.databases_erp_site_62_330",
				Sequence:     "gis.databases_erp_site_62_330_oid_seq",
				Columns:      erpSiteSubsetColumns,
				FilterColumn: "rule_code",
				FilterValues: []string{"62-330"},
			},
			{
				Table:        "gis.databases_erp_site_forestry",
				Sequence:     "gis.databases_erp_site_forestry_oid_seq",
				Columns:      erpSiteSubsetColumns,
				FilterColumn: "item_type",
				FilterValues: []string{"Forestry Authorization", "Silviculture"},
			},
		},
	}
}

// stationsGroup refreshes the regulatory station feature class.
func stationsGroup() DatasetGroup {
	return DatasetGroup{
		Name:   "stations",
		Source: "regdata.reg_station",
		Coords: SourceCoords{
			LonColumn: "longitude",
			LatColumn: "latitude",
			TagColumn: "coord_format",
		},
		NullTag:  spatial.NullTagInvalid,
		Table:    "gis.databases_reg_station",
		Sequence: "gis.databases_reg_station_oid_seq",
		Columns: []ColumnMap{
			{"station_id", "station_id"},
			{"project_number", "project_number"},
			{"permit_type", compositeComponent("project_number", 1)},
			{"county_fips", compositeComponent("project_number", 2)},
			{"official_permit_number", compositeComponent("project_number", 3)},
			{"sequence_number", compositeComponent("project_number", 4)},
			{"fluwid", "fluwid"},
			{"station_type", "station_type"},
			{"monitoring_well_type", "monitoring_well_type"},
			{"station_name", "station_name"},
			{"station_status", "station_status"},
			{"water_source_type", "water_source_type"},
			{"water_source_name", "water_source_name"},
			{"meter_type", "meter_type"},
			{"diameter", "diameter"},
			{"casing_depth", "casing_depth"},
			{"well_depth", "well_depth"},
			{"pump_rate", "pump_rate"},
			{"pumping_report", "pumping_report"},
			{"wq_mi", "wq_mi"},
			{"wq_lp", "wq_lp"},
			{"wl_gw", "wl_gw"},
			{"station_county", "initcap(lower(trim(county_name)))"},
			{"station_location", "station_location"},
			{"location_method", decode.LocationMethodSQL("loc_method")},
			{"project_primary_use", "project_primary_use"},
			{"project_secondary_use", "project_secondary_use"},
			{"water_use_level_1", "water_use_level_1"},
			{"water_use_level_2", "water_use_level_2"},
			{"water_use_level_3", "water_use_level_3"},
			{"water_use_level_4", "water_use_level_4"},
			{"station_allocation_gpd", "station_allocation_gpd"},
			{"project_allocation_gpd", "project_allocation_gpd"},
			{"project_allocation_monthly", "project_allocation_monthly"},
			{"application_status", "application_status"},
			{"expiration_date", "expiration_date"},
			{"owner_company_name", "owner_company_name"},
			{"owner_first_name", "owner_first_name"},
			{"owner_last_name", "owner_last_name"},
			{"legacy_apnum", "legacy_apnum"},
			{"legacy_permit_number", "legacy_permit_number"},
			{"nwf_id", "nwf_id"},
			{"wps_permit", "wps_permit"},
		},
	}
}

// wellInventoryGroup refreshes the well inventory feature class. The
// inventory's location method arrives as a numeric collection code rather
// than text, so it decodes through the collection-method table.
func wellInventoryGroup() DatasetGroup {
	return DatasetGroup{
		Name:   "well-inventory",
		Source: "regdata.well_inventory",
		Coords: SourceCoords{
			LonColumn: "longitude",
			LatColumn: "latitude",
			TagColumn: "coord_format",
		},
		NullTag:  spatial.NullTagInvalid,
		Table:    "gis.databases_well_inventory",
		Sequence: "gis.databases_well_inventory_oid_seq",
		Columns: []ColumnMap{
			{"nwf_id", "nwf_id"},
			{"site_id", "site_id"},
			{"site_type", "site_type"},
			{"well_name", "well_name"},
			{"first_name", "first_name"},
			{"last_name", "last_name"},
			{"well_depth", "well_depth"},
			{"casing_depth", "casing_depth"},
			{"use_permit", "use_permit"},
			{"cps_permit", "cps_permit"},
			{"state_id", "state_id"},
			{"spcap", "spcap"},
			{"calc_trans", "calc_trans"},
			{"loc_method", decode.CollectionMethodSQL("data_collection_cd")},
		},
	}
}

// wellPermitsGroup refreshes the well permits feature class.
func wellPermitsGroup() DatasetGroup {
	return DatasetGroup{
		Name:   "well-permits",
		Source: "regdata.well_permit",
		Coords: SourceCoords{
			LonColumn: "longitude",
			LatColumn: "latitude",
			TagColumn: "coord_format",
		},
		NullTag:  spatial.NullTagInvalid,
		Table:    "gis.databases_well_permits",
		Sequence: "gis.databases_well_permits_oid_seq",
		Columns: []ColumnMap{
			{"permit_number", "permit_number"},
			{"legacy_permit_number", "legacy_permit_number"},
			{"related_permit_1", "related_permit_1"},
			{"related_permit_2", "related_permit_2"},
			{"job_type", "job_type"},
			{"status", "status"},
			{"official_id", "official_id"},
			{"issue_date", "issue_date"},
			{"expiration_date", "expiration_date"},
			{"completion_date", "completion_date"},
			{"exemption", "exemption"},
			{"owner_first", "owner_first"},
			{"owner_last", "owner_last"},
			{"well_use", "well_use"},
			{"diameter", "diameter"},
			{"appl_well_depth", "appl_well_depth"},
			{"appl_casing_depth", "appl_casing_depth"},
			{"wcr_well_depth", "wcr_well_depth"},
			{"wcr_casing_depth", "wcr_casing_depth"},
			{"open_hole_from", "open_hole_from"},
			{"open_hole_to", "open_hole_to"},
			{"screen_from", "screen_from"},
			{"screen_to", "screen_to"},
			{"well_street", "well_street"},
			{"well_street_2", "well_street_2"},
			{"well_city", "well_city"},
			{"well_county", "initcap(lower(trim(well_county)))"},
			{"parcel_id", "parcel_id"},
			// Raw ordinates are carried as attributes alongside the geometry
			// so consumers can see what the source reported.
			{"latitude", "latitude"},
			{"longitude", "longitude"},
			{"township", "township"},
			{`"range"`, "range_code"},
			{"section", "section"},
			{"cu_permit", "cu_permit"},
			{"fluwid", "fluwid"},
			{"location_method", decode.LocationMethodSQL("loc_method")},
			{"contractor_license", "contractor_license"},
			{"contractor_name", "contractor_name"},
			{"wrca", "wrca"},
			{"arc", "arc"},
			{"grout_line", "grout_line"},
			{"construction_method", "construction_method"},
			{"w62_524", "w62_524"},
			{"stn_id", "stn_id"},
		},
	}
}
