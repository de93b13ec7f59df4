// Command matchscore scores match telemetry files locally and keeps the
// results in a SQLite store.
package main

func main() {
	Execute()
}
