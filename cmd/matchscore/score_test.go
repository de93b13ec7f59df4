package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testReference = `
agents:
  jett: {name: Jett, role: Duelist}
  sova: {name: Sova, role: Initiator}
weapons:
  vandal: {name: Vandal, cost: 2900}
`

const testTelemetry = `[
  {"configuration": {
    "players": [
      {"playerId": {"value": "p1"}, "displayName": "Ace", "selectedAgent": {"fallback": {"guid": "jett"}}},
      {"playerId": {"value": "p2"}, "displayName": "Bee", "selectedAgent": {"fallback": {"guid": "sova"}}}
    ],
    "teams": [
      {"teamId": {"value": "Red"}, "playersInTeam": [{"value": "p1"}]},
      {"teamId": {"value": "Blue"}, "playersInTeam": [{"value": "p2"}]}
    ]
  }},
  {"roundStarted": {"roundNumber": 0, "spikeMode": {"attackingTeam": {"value": "Red"}, "defendingTeam": {"value": "Blue"}}}},
  {"playerDied": {"killerId": {"value": "p1"}, "deceasedId": {"value": "p2"}, "weapon": {"fallback": {"guid": "vandal"}}}},
  {"roundDecided": {"result": {"winningTeam": {"value": "Red"}}}}
]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("matchscore %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestScoreThenList(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.yaml", testReference)
	tele := writeFile(t, dir, "match.json", testTelemetry)
	db := filepath.Join(dir, "scores.db")

	out := execute(t, "score", tele, "--reference", ref, "--db", db, "--no-save=false", "--json=false")
	if !strings.Contains(out, "Ace") || !strings.Contains(out, "match.json") {
		t.Fatalf("unexpected score output:\n%s", out)
	}
	if strings.Index(out, "Ace") > strings.Index(out, "Bee") {
		t.Errorf("expected the round winner ranked first:\n%s", out)
	}

	out = execute(t, "list", "--db", db)
	if !strings.Contains(out, "match.json") {
		t.Errorf("expected stored match in list:\n%s", out)
	}
}

func TestScoreJSON(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "reference.yaml", testReference)
	tele := writeFile(t, dir, "match.json", testTelemetry)

	out := execute(t, "score", tele, "--reference", ref, "--db", filepath.Join(dir, "scores.db"), "--no-save", "--json")
	for _, want := range []string{`"player_id": "p1"`, `"first_bloods": 1`, `"normalized_score"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output:\n%s", want, out)
		}
	}
}
