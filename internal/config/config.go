package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

type environment struct {
	ServerAddr string `env:"SERVER_ADDR" envDefault:"8080"`

	// Upstream Airtable table holding the raw catalog. The API key is
	// deliberately not required at boot: a missing key surfaces as a
	// configuration failure on fetch so the server can still serve the
	// cached catalog.
	AirtableAPIKey    string `env:"AIRTABLE_API_KEY"`
	AirtableBaseID    string `env:"AIRTABLE_BASE_ID" envDefault:"appoYDvbHFsSyU3K7"`
	AirtableTableName string `env:"AIRTABLE_TABLE_NAME" envDefault:"aym7"`
	AirtableBaseURL   string `env:"AIRTABLE_BASE_URL" envDefault:"https://api.airtable.com/v0"`

	CachePath string `env:"CACHE_PATH" envDefault:"aymstore.db"`

	WhatsAppNumber   string `env:"WHATSAPP_NUMBER" envDefault:"93789281770"`
	FetchTimeoutSecs int    `env:"FETCH_TIMEOUT_SECS" envDefault:"30"`
}

var Env environment

func init() {
	if err := env.Parse(&Env); err != nil {
		log.Fatalf("failed to parse environment config: %v", err)
	}
}
