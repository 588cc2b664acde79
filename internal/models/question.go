package models

// OptionCount is fixed for every generated question; the option index is the
// option's identity, there are no separate option IDs.
const OptionCount = 4

type Question struct {
	ID                 string     `bson:"_id,omitempty" json:"id"`
	Text               string     `bson:"text" json:"text"`
	Options            []string   `bson:"options" json:"options"`
	CorrectOptionIndex int        `bson:"correct_option_index" json:"correctOptionIndex"`
	Explanation        string     `bson:"explanation" json:"explanation,omitempty"`
	Subject            Subject    `bson:"subject" json:"subject"`
	Chapter            string     `bson:"chapter" json:"chapter"`
	Difficulty         Difficulty `bson:"difficulty" json:"difficulty"`
	Year               string     `bson:"year,omitempty" json:"year,omitempty"`
	VideoQuery         string     `bson:"video_query,omitempty" json:"videoQuery,omitempty"`
	Fallback           bool       `bson:"fallback,omitempty" json:"fallback,omitempty"`
}

// Valid reports whether the question satisfies the structural invariants
// every issued question must hold: exactly four options and a correct index
// inside them.
func (q *Question) Valid() bool {
	if len(q.Options) != OptionCount {
		return false
	}
	return q.CorrectOptionIndex >= 0 && q.CorrectOptionIndex < OptionCount
}
