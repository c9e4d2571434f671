/*
Package fuelrep is a conversational fuel-tracking bot: it records refills
through a guided chat dialog and reports consumption trends over them.

Each chat is a session with a small state machine behind it. The bot walks
the user through odometer and volume prompts, confirms, and appends the
refill to the entry log. On top of the log it computes liters-per-100km
consumption with moving averages, rendered either as a chart image or a CSV
backup, and supports importing a CSV history in bulk.

# Architecture

The core is transport-agnostic. Inbound messages arrive as domain.Update
values, replies leave as domain.Reply values, and everything external
(storage, file downloads, chart rendering, message delivery) sits behind
interfaces in pkg/ports. Adapters for Telegram, SQLite, Redis, and in-memory
stores live under pkg/adapters. Updates for the same session are serialized
by the session manager, optionally across processes via a distributed lock.

# Usage

	package main

	import (
		"log"
		"net/http"

		"github.com/mohammaddehghani/fuelrep"
		"github.com/mohammaddehghani/fuelrep/pkg/adapters/sqlite"
		"github.com/mohammaddehghani/fuelrep/pkg/adapters/telegram"
	)

	func main() {
		entries, err := sqlite.New("fuel.db")
		if err != nil {
			log.Fatal(err)
		}
		defer entries.Close()

		client := telegram.NewClient("123:abc")
		bot := fuelrep.New(client, fuelrep.WithEntryStore(entries))

		handler := telegram.NewWebhookHandler("/webhook", bot, nil)
		log.Fatal(http.ListenAndServe(":8080", handler))
	}
*/
package fuelrep
