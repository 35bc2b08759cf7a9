package types

// DataReader gives access to the files of the scoreboard data source.
type DataReader interface {
	ReadFile(path string) ([]byte, error)

	// Revision names what is being read, e.g. a directory or a git ref with its commit hash.
	Revision() string
}

type Result string

const (
	WhiteWins Result = "1-0"
	BlackWins Result = "0-1"
	Draw      Result = "1/2-1/2"
)

// Game is a single finished game as recorded in the games file.
type Game struct {
	Timestamp   string `yaml:"timestamp"   validate:"required"`
	White       string `yaml:"white"       validate:"required"`
	Black       string `yaml:"black"       validate:"required,nefield=White"`
	Result      Result `yaml:"result"      validate:"required,oneof=1-0 0-1 1/2-1/2"`
	Moves       int    `yaml:"moves"       validate:"gte=0"`
	Termination string `yaml:"termination"`

	// Notes are rendered as markdown.
	Notes string `yaml:"notes"`
}

// Winner returns the name of the winning player, or "" for a draw.
func (g Game) Winner() string {
	switch g.Result {
	case WhiteWins:
		return g.White
	case BlackWins:
		return g.Black
	default:
		return ""
	}
}

type Standing struct {
	Player string
	Played int
	Wins   int
	Draws  int
	Losses int
}

// Points counts a win as one point and a draw as half a point.
func (s Standing) Points() float64 {
	return float64(s.Wins) + float64(s.Draws)/2
}
