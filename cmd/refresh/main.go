package main

import (
	"flag"
	"log"
	"os"

	"github.com/NWFWMD-IT/Wells/internal/config"
	"github.com/NWFWMD-IT/Wells/internal/db"
	"github.com/NWFWMD-IT/Wells/internal/refresh"
	"github.com/NWFWMD-IT/Wells/internal/spatial"
	"github.com/joho/godotenv"
)

func main() {
	var (
		groupName = flag.String("group", "", "dataset group to refresh (sites, stations, well-inventory, well-permits)")
		all       = flag.Bool("all", false, "refresh every dataset group")
		dbURL     = flag.String("db", "", "Postgres DSN (defaults to DATABASE_URL)")
	)
	flag.Parse()

	if (*groupName == "" && !*all) || (*groupName != "" && *all) {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env.local")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db.Connect(cfg.DatabaseURL)
	reg := spatial.NewRegistry(cfg.Spatial)

	var groups []refresh.DatasetGroup
	if *all {
		groups = refresh.Groups()
	} else {
		g, ok := refresh.GroupByName(*groupName)
		if !ok {
			log.Fatalf("unknown dataset group %q", *groupName)
		}
		groups = []refresh.DatasetGroup{g}
	}

	for _, g := range groups {
		res, err := refresh.RunGroup(db.DB, reg, g)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%s: %d rows in %s", g.Name, res.TotalInserted(), res.Duration)
	}
}
