// Package scoreboard reads the games file and derives what the scoreboard page shows from it.
package scoreboard

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/swift502/MagChess/scoreboard/pkg/timestamp"
	"github.com/swift502/MagChess/scoreboard/pkg/types"
)

// SchemaVersion is written by the board into new games files.
const SchemaVersion = "1.0.0"

var (
	ErrUnsupportedSchema = errors.New("unsupported games file schema")
	ErrInvalidGame       = errors.New("invalid game")
)

var supportedSchema = mustConstraint("~1")

func mustConstraint(c string) *semver.Constraints {
	ret, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}

	return ret
}

type gamesFile struct {
	SchemaVersion string       `yaml:"schemaVersion"`
	Games         []types.Game `yaml:"games"`
}

// Entry is a game together with the point in time its timestamp was parsed to.
type Entry struct {
	types.Game

	PlayedAt time.Time
}

type Scoreboard struct {
	// Games holds every game, newest first.
	Games []Entry

	SchemaVersion *semver.Version

	// Revision describes where the games were read from.
	Revision string
}

// Load reads the games file at path from reader and parses it.
func Load(reader types.DataReader, path string, formatter *timestamp.Formatter) (*Scoreboard, error) {
	contents, err := reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading games file %q: %w", path, err)
	}

	ret, err := Parse(contents, formatter)
	if err != nil {
		return nil, fmt.Errorf("error parsing games file %q from %v: %w", path, reader.Revision(), err)
	}

	ret.Revision = reader.Revision()

	return ret, nil
}

// Parse decodes and validates a games file. Every invalid game is reported, not only the first one.
func Parse(contents []byte, formatter *timestamp.Formatter) (*Scoreboard, error) {
	file := gamesFile{}
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("error decoding games file: %w", err)
	}

	if file.SchemaVersion == "" {
		file.SchemaVersion = SchemaVersion
	}

	version, err := semver.NewVersion(file.SchemaVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a version: %v", ErrUnsupportedSchema, file.SchemaVersion, err)
	}

	if !supportedSchema.Check(version) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSchema, version)
	}

	validate := validator.New()
	entries := make([]Entry, 0, len(file.Games))
	errs := make([]error, 0)

	for idx, game := range file.Games {
		if err := validate.Struct(game); err != nil {
			errs = append(errs, fmt.Errorf("%w #%d: %v", ErrInvalidGame, idx, err))
			continue
		}

		playedAt, err := formatter.Parse(game.Timestamp)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w #%d: %w", ErrInvalidGame, idx, err))
			continue
		}

		entries = append(entries, Entry{
			Game:     game,
			PlayedAt: playedAt,
		})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].PlayedAt.After(entries[b].PlayedAt)
	})

	return &Scoreboard{
		Games:         entries,
		SchemaVersion: version,
	}, nil
}

// Standings tallies the results per player, ordered by points, then wins, then name.
func (s *Scoreboard) Standings() []types.Standing {
	byPlayer := make(map[string]*types.Standing)

	standing := func(player string) *types.Standing {
		if _, ok := byPlayer[player]; !ok {
			byPlayer[player] = &types.Standing{Player: player}
		}

		return byPlayer[player]
	}

	for _, entry := range s.Games {
		white := standing(entry.White)
		black := standing(entry.Black)

		white.Played++
		black.Played++

		switch entry.Result {
		case types.WhiteWins:
			white.Wins++
			black.Losses++
		case types.BlackWins:
			black.Wins++
			white.Losses++
		case types.Draw:
			white.Draws++
			black.Draws++
		}
	}

	ret := make([]types.Standing, 0, len(byPlayer))
	for _, st := range byPlayer {
		ret = append(ret, *st)
	}

	sort.Slice(ret, func(a, b int) bool {
		switch {
		case ret[a].Points() != ret[b].Points():
			return ret[a].Points() > ret[b].Points()
		case ret[a].Wins != ret[b].Wins:
			return ret[a].Wins > ret[b].Wins
		default:
			return ret[a].Player < ret[b].Player
		}
	})

	return ret
}

// Latest returns the newest game, false if there are none.
func (s *Scoreboard) Latest() (Entry, bool) {
	if len(s.Games) == 0 {
		return Entry{}, false
	}

	return s.Games[0], true
}
