package roster

// Team is the side a roster entry is assigned to. Every claim starts on subs;
// the organiser moves players onto darks or whites before kickoff.
type Team string

const (
	TeamDarks  Team = "darks"
	TeamWhites Team = "whites"
	TeamSubs   Team = "subs"
)

const (
	// MinPosition and MaxPosition bound the numbered slots of a gameweek.
	// Slots 1-14 are conventionally main, 15-18 subs.
	MinPosition = 1
	MaxPosition = 18
)

// TeamLimits caps organiser assignment per side.
var TeamLimits = map[Team]int{
	TeamDarks:  7,
	TeamWhites: 7,
	TeamSubs:   4,
}

func ValidTeam(team Team) bool {
	_, ok := TeamLimits[team]
	return ok
}

func ValidPosition(position int) bool {
	return position >= MinPosition && position <= MaxPosition
}

// Entry is one claimed slot in a gameweek roster. Unique per
// (gameweek, player) and per (gameweek, position); both constraints are
// owned by the store.
type Entry struct {
	ID              string
	GameweekID      string
	PlayerID        string
	PlayerFirstName string
	PlayerLastName  string
	Team            Team
	Position        int
	RemoveRequested bool
}
