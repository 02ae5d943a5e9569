// Package stattype holds the closed set of stat kinds tracked per player.
package stattype

import (
	"strings"

	apperrors "github.com/vytor/statsboard/internal/errors"
)

// Kind identifies one tracked statistic. The zero value is not a valid kind.
type Kind int

const (
	invalid Kind = iota
	Kills
	Deaths
	Assists
	Wins
	Losses
	GamesPlayed
	Points
	PlaytimeSeconds
	kindCount
)

type definition struct {
	id          string
	displayKey  string
	description string
}

// Identifiers are stored upper-case; lookups normalize to that case.
var definitions = [kindCount]definition{
	invalid:         {},
	Kills:           {"KILLS", "stats.kills", "Players eliminated"},
	Deaths:          {"DEATHS", "stats.deaths", "Times eliminated"},
	Assists:         {"ASSISTS", "stats.assists", "Eliminations assisted"},
	Wins:            {"WINS", "stats.wins", "Rounds won"},
	Losses:          {"LOSSES", "stats.losses", "Rounds lost"},
	GamesPlayed:     {"GAMES_PLAYED", "stats.games_played", "Rounds finished"},
	Points:          {"POINTS", "stats.points", "Score points earned"},
	PlaytimeSeconds: {"PLAYTIME_SECONDS", "stats.playtime", "Seconds spent in rounds"},
}

var byID = func() map[string]Kind {
	m := make(map[string]Kind, kindCount)
	for k := Kills; k < kindCount; k++ {
		m[definitions[k].id] = k
	}
	return m
}()

// Resolve maps a stat identifier to its Kind, ignoring case and surrounding space.
func Resolve(id string) (Kind, error) {
	if k, ok := byID[strings.ToUpper(strings.TrimSpace(id))]; ok {
		return k, nil
	}
	return invalid, apperrors.NewUnknownStatKindError(id)
}

// All returns every kind in declaration order.
func All() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := Kills; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > invalid && k < kindCount
}

// ID returns the stable identifier stored in the database.
func (k Kind) ID() string {
	if !k.Valid() {
		return ""
	}
	return definitions[k].id
}

// DisplayKey returns the default label key for the kind.
func (k Kind) DisplayKey() string {
	if !k.Valid() {
		return ""
	}
	return definitions[k].displayKey
}

func (k Kind) Description() string {
	if !k.Valid() {
		return ""
	}
	return definitions[k].description
}

func (k Kind) String() string {
	if !k.Valid() {
		return "INVALID"
	}
	return definitions[k].id
}

// MarshalText encodes the kind as its identifier.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, apperrors.NewUnknownStatKindError(k.String())
	}
	return []byte(k.ID()), nil
}

// UnmarshalText resolves an identifier, so JSON payloads reject unknown kinds.
func (k *Kind) UnmarshalText(text []byte) error {
	resolved, err := Resolve(string(text))
	if err != nil {
		return err
	}
	*k = resolved
	return nil
}
