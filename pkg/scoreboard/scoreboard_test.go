package scoreboard_test

import (
	"errors"
	"testing"

	"github.com/swift502/MagChess/scoreboard/pkg/scoreboard"
	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
	"github.com/swift502/MagChess/scoreboard/pkg/types"
)

const gamesFile = `
schemaVersion: 1.2.0
games:
  - timestamp: 2024-03-05T08:30:00
    white: Alice
    black: Bob
    result: 1-0
    moves: 31
    termination: checkmate
  - timestamp: 2024-03-06T19:05:00
    white: Bob
    black: Carol
    result: 1/2-1/2
    moves: 64
  - timestamp: 2024-03-04T12:00:00
    white: Carol
    black: Alice
    result: 0-1
    moves: 22
    termination: resignation
`

func TestParse(t *testing.T) {
	t.Parallel()

	board, err := scoreboard.Parse([]byte(gamesFile), timestamp.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if board.SchemaVersion.String() != "1.2.0" {
		t.Errorf("%q (actual) did not match %q (expected)", board.SchemaVersion, "1.2.0")
	}

	expectedOrder := []string{"2024-03-06T19:05:00", "2024-03-05T08:30:00", "2024-03-04T12:00:00"}
	if len(board.Games) != len(expectedOrder) {
		t.Fatalf("expected %d games, got %d", len(expectedOrder), len(board.Games))
	}

	for i, ts := range expectedOrder {
		if board.Games[i].Timestamp != ts {
			t.Errorf("game %d: %q (actual) did not match %q (expected)", i, board.Games[i].Timestamp, ts)
		}
	}

	latest, ok := board.Latest()
	if !ok || latest.Timestamp != expectedOrder[0] {
		t.Errorf("unexpected latest game %+v", latest)
	}

	if winner := latest.Winner(); winner != "" {
		t.Errorf("expected the latest game to be a draw, got winner %q", winner)
	}

	if winner := board.Games[2].Winner(); winner != "Alice" {
		t.Errorf("%q (actual) did not match %q (expected)", winner, "Alice")
	}
}

func TestStandings(t *testing.T) {
	t.Parallel()

	board, err := scoreboard.Parse([]byte(gamesFile), timestamp.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []types.Standing{
		{Player: "Alice", Played: 2, Wins: 2},
		{Player: "Bob", Played: 2, Draws: 1, Losses: 1},
		{Player: "Carol", Played: 2, Draws: 1, Losses: 1},
	}

	actual := board.Standings()
	if len(actual) != len(expected) {
		t.Fatalf("expected %d standings, got %d", len(expected), len(actual))
	}

	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("standing %d: %+v (actual) did not match %+v (expected)", i, actual[i], expected[i])
		}
	}

	if points := actual[0].Points(); points != 2 {
		t.Errorf("expected 2 points for the leader, got %v", points)
	}

	if points := actual[1].Points(); points != 0.5 {
		t.Errorf("expected half a point for a draw, got %v", points)
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		label    string
		contents string
		expected error
	}{
		{"future schema", "schemaVersion: 2.0.0\ngames: []", scoreboard.ErrUnsupportedSchema},
		{"schema not a version", "schemaVersion: latest\ngames: []", scoreboard.ErrUnsupportedSchema},
		{"bad result", "games:\n  - {timestamp: 2024-03-05T08:30:00, white: A, black: B, result: win}", scoreboard.ErrInvalidGame},
		{"same player twice", "games:\n  - {timestamp: 2024-03-05T08:30:00, white: A, black: A, result: 1-0}", scoreboard.ErrInvalidGame},
		{"missing player", "games:\n  - {timestamp: 2024-03-05T08:30:00, white: A, result: 1-0}", scoreboard.ErrInvalidGame},
		{"bad timestamp", "games:\n  - {timestamp: yesterday, white: A, black: B, result: 1-0}", timestamp.ErrInvalidTimestamp},
		{"negative moves", "games:\n  - {timestamp: 2024-03-05T08:30:00, white: A, black: B, result: 1-0, moves: -1}", scoreboard.ErrInvalidGame},
	}

	for _, c := range testCases {
		testCase := c
		t.Run(testCase.label, func(t *testing.T) {
			t.Parallel()

			_, err := scoreboard.Parse([]byte(testCase.contents), timestamp.Default())
			if !errors.Is(err, testCase.expected) {
				t.Errorf("expected %v, got %v", testCase.expected, err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	t.Parallel()

	board, err := scoreboard.Parse(nil, timestamp.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(board.Games) != 0 || len(board.Standings()) != 0 {
		t.Errorf("expected an empty scoreboard, got %+v", board)
	}

	if _, ok := board.Latest(); ok {
		t.Error("expected no latest game on an empty scoreboard")
	}
}
