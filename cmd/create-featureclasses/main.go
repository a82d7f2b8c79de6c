// Command create-featureclasses creates the GIS point feature classes the
// refresh service populates: tables, objectid sequences and attribute
// indexes. Run once against an empty schema; every statement is idempotent
// so reruns are safe.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// featureClass describes one target table: attribute columns in order, plus
// the column names to index. objectid and shape are added to every table.
type featureClass struct {
	Table   string
	Columns []string
	Indexes []string
}

var erpSiteSubsetColumns = []string{
	"site_id double precision",
	"permit_number double precision",
	"project_number varchar(50)",
	"permit_type varchar(8)",
	"county_fips varchar(8)",
	"official_permit_number varchar(8)",
	"sequence_number varchar(8)",
	"application_status varchar(100)",
	"rule_code varchar(100)",
	"rule_description varchar(200)",
	"project_name varchar(200)",
	"project_county varchar(20)",
	"site_location varchar(1000)",
	"expiration_date timestamp",
	"issue_date timestamp",
	"review_date timestamp",
	"legacy_permit_number varchar(35)",
	"item_number double precision",
	"item_type varchar(100)",
	"item_stage varchar(100)",
}

func erpSiteColumns() []string {
	cols := make([]string, 0, len(erpSiteSubsetColumns)+4)
	for _, c := range erpSiteSubsetColumns {
		cols = append(cols, c)
		if strings.HasPrefix(c, "site_location ") {
			cols = append(cols,
				"party_role varchar(100)",
				"party_company_name varchar(150)",
				"party_first_name varchar(30)",
				"party_last_name varchar(30)",
			)
		}
	}
	return cols
}

func featureClasses() []featureClass {
	return []featureClass{
		{Table: "gis.databases_erp_site", Columns: erpSiteColumns()},
		{Table: "gis.databases_erp_site_40a_4", Columns: erpSiteSubsetColumns},
		{Table: "gis.databases_erp_site_40a_44", Columns: erpSiteSubsetColumns},
		{Table: "gis.databases_erp_site_62_330", Columns: erpSiteSubsetColumns},
		{Table: "gis.databases_erp_site_forestry", Columns: erpSiteSubsetColumns},
		{
			Table: "gis.databases_reg_station",
			Columns: []string{
				"station_id varchar(50)",
				"project_number varchar(50)",
				"permit_type varchar(8)",
				"county_fips varchar(8)",
				"official_permit_number varchar(8)",
				"sequence_number varchar(8)",
				"fluwid varchar(50)",
				"station_type varchar(100)",
				"monitoring_well_type varchar(100)",
				"station_name varchar(50)",
				"station_status varchar(100)",
				"water_source_type varchar(100)",
				"water_source_name varchar(100)",
				"meter_type varchar(100)",
				"diameter double precision",
				"casing_depth double precision",
				"well_depth double precision",
				"pump_rate double precision",
				"pumping_report varchar(7)",
				"wq_mi varchar(7)",
				"wq_lp varchar(7)",
				"wl_gw varchar(7)",
				"station_county varchar(20)",
				"station_location varchar(1000)",
				"location_method varchar(16)",
				"project_primary_use varchar(100)",
				"project_secondary_use varchar(100)",
				"water_use_level_1 varchar(100)",
				"water_use_level_2 varchar(100)",
				"water_use_level_3 varchar(100)",
				"water_use_level_4 varchar(100)",
				"station_allocation_gpd varchar(100)",
				"project_allocation_gpd double precision",
				"project_allocation_monthly double precision",
				"application_status varchar(100)",
				"expiration_date timestamp",
				"owner_company_name varchar(150)",
				"owner_first_name varchar(30)",
				"owner_last_name varchar(30)",
				"legacy_apnum double precision",
				"legacy_permit_number varchar(35)",
				"nwf_id double precision",
				"wps_permit varchar(50)",
			},
			Indexes: []string{"fluwid", "legacy_permit_number"},
		},
		{
			Table: "gis.databases_well_inventory",
			Columns: []string{
				"nwf_id integer",
				"site_id varchar(15)",
				"site_type varchar(1)",
				"well_name varchar(50)",
				"first_name varchar(30)",
				"last_name varchar(50)",
				"well_depth integer",
				"casing_depth integer",
				"use_permit integer",
				"cps_permit varchar(10)",
				"state_id varchar(7)",
				"spcap double precision",
				"calc_trans integer",
				"loc_method varchar(30)",
			},
			Indexes: []string{"nwf_id", "state_id"},
		},
		{
			Table: "gis.databases_well_permits",
			Columns: []string{
				"permit_number varchar(50)",
				"legacy_permit_number varchar(35)",
				"related_permit_1 varchar(50)",
				"related_permit_2 varchar(50)",
				"job_type varchar(100)",
				"status varchar(200)",
				"official_id integer",
				"issue_date timestamp",
				"expiration_date timestamp",
				"completion_date timestamp",
				"exemption varchar(7)",
				"owner_first varchar(30)",
				"owner_last varchar(30)",
				"well_use varchar(100)",
				"diameter double precision",
				"appl_well_depth double precision",
				"appl_casing_depth double precision",
				"wcr_well_depth double precision",
				"wcr_casing_depth double precision",
				"open_hole_from double precision",
				"open_hole_to double precision",
				"screen_from double precision",
				"screen_to double precision",
				"well_street varchar(60)",
				"well_street_2 varchar(50)",
				"well_city varchar(30)",
				"well_county varchar(20)",
				"parcel_id varchar(50)",
				"latitude double precision",
				"longitude double precision",
				"township varchar(3)",
				`"range" varchar(3)`,
				"section smallint",
				"cu_permit varchar(50)",
				"fluwid varchar(50)",
				"location_method varchar(16)",
				"contractor_license integer",
				"contractor_name varchar(70)",
				"wrca varchar(7)",
				"arc varchar(7)",
				"grout_line varchar(100)",
				"construction_method varchar(100)",
				"w62_524 varchar(7)",
				"stn_id integer",
			},
			Indexes: []string{"fluwid", "permit_number"},
		},
	}
}

// unqualified strips the schema from a table name for use in object names.
func unqualified(table string) string {
	if i := strings.LastIndex(table, "."); i >= 0 {
		return table[i+1:]
	}
	return table
}

func createFeatureClass(db *sql.DB, fc featureClass) error {
	seq := fc.Table + "_oid_seq"
	if _, err := db.Exec(fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s", seq)); err != nil {
		return fmt.Errorf("create sequence %s: %w", seq, err)
	}

	cols := make([]string, 0, len(fc.Columns)+2)
	cols = append(cols, "objectid integer PRIMARY KEY")
	cols = append(cols, fc.Columns...)
	cols = append(cols, "shape geometry(Point, 26916)")

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		fc.Table, strings.Join(cols, ",\n\t"))
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create table %s: %w", fc.Table, err)
	}

	for i, col := range fc.Indexes {
		name := fmt.Sprintf("%s__i%d", unqualified(fc.Table), i+1)
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, fc.Table, col)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create index %s: %w", name, err)
		}
	}

	return nil
}

func main() {
	dbURL := flag.String("db", "", "Postgres DSN (defaults to DATABASE_URL)")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	dsn := *dbURL
	if dsn == "" {
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS gis"); err != nil {
		log.Fatal(err)
	}

	for _, fc := range featureClasses() {
		log.Printf("creating %s", fc.Table)
		if err := createFeatureClass(db, fc); err != nil {
			log.Fatal(err)
		}
	}

	log.Printf("created %d feature classes", len(featureClasses()))
}
