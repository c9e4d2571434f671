/*
Package domain contains the core entities of the fuel tracking bot.

It defines the FuelEntry observation, the per-chat conversation Session with
its closed set of Steps, the inbound Update / outbound Reply shapes exchanged
with the chat transport, and the sentinel errors shared across layers. The
package has no dependencies; every other layer points inward at it.
*/
package domain
