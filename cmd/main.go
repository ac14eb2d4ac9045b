package main

import (
	"log"
	"time"

	"github.com/Aym0707/aymstore/cmd/server"
	"github.com/Aym0707/aymstore/internal/config"
	"github.com/Aym0707/aymstore/internal/features/catalog"
	"github.com/Aym0707/aymstore/internal/storage"
)

var (
	srvAddr           = config.Env.ServerAddr
	airtableAPIKey    = config.Env.AirtableAPIKey
	airtableBaseID    = config.Env.AirtableBaseID
	airtableTableName = config.Env.AirtableTableName
	airtableBaseURL   = config.Env.AirtableBaseURL
	cachePath         = config.Env.CachePath
	whatsAppNumber    = config.Env.WhatsAppNumber
	fetchTimeoutSecs  = config.Env.FetchTimeoutSecs
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	cache, err := storage.Open(cachePath)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr:  srvAddr,
		Cache: cache,
		Fetcher: &catalog.FetcherConfig{
			BaseURL:   airtableBaseURL,
			APIKey:    airtableAPIKey,
			BaseID:    airtableBaseID,
			TableName: airtableTableName,
			Timeout:   time.Duration(fetchTimeoutSecs) * time.Second,
		},
		WhatsAppNumber: whatsAppNumber,
	},
	)
	srv.Run()
}
