package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chirper/crud"
	"chirper/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're
	// running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	// Load configuration from a .config.json file if present, otherwise use
	// the default dev setup. In production the file is required and the app
	// will panic if no file is found.
	config := LoadConfig(*productionBool)

	// Human-readable console logs in dev, structured json in production.
	if !config.IsProd() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	// Open a database connection and execute migrations.
	dbConfig := config.Database
	db := NewDB(dbConfig.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.Pepper, config.HMACKey),
		crud.WithTweet(),
		crud.WithFollow(),
		crud.WithLike(),
		crud.WithFeed(),
	)
	must(err)

	// Set up a webserver.
	server := http.NewServer(
		config.IsProd(),
		config.CSRFKey,
		services.User,
		services.Tweet,
		services.Follow,
		services.Like,
		services.Feed,
	)

	// Serve the app.
	server.Run(config.Port)
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
