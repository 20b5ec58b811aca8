package domain

// Level is a JLPT difficulty level
type Level string

const (
	LevelN5 Level = "N5"
	LevelN4 Level = "N4"
	LevelN3 Level = "N3"
)

// Levels returns all playable levels in menu order
func Levels() []Level {
	return []Level{LevelN5, LevelN4, LevelN3}
}

// ParseLevel returns the level for s, or false if s is not a known level
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels() {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// DisplayString returns the menu label, starred once the level has been won
func (l Level) DisplayString(wins int) string {
	if wins > 0 {
		return string(l) + " ⭐"
	}
	return string(l)
}

// Conjugation is a Japanese verb form used to filter generated words
type Conjugation string

const (
	ConjDictionary       Conjugation = "Dictionary"
	ConjMasu             Conjugation = "Masu"
	ConjTe               Conjugation = "Te"
	ConjTa               Conjugation = "Ta"
	ConjNai              Conjugation = "Nai"
	ConjPotential        Conjugation = "Potential"
	ConjVolitional       Conjugation = "Volitional"
	ConjPassive          Conjugation = "Passive"
	ConjCausative        Conjugation = "Causative"
	ConjImperative       Conjugation = "Imperative"
	ConjProhibitive      Conjugation = "Prohibitive"
	ConjBa               Conjugation = "Ba"
	ConjCausativePassive Conjugation = "CausativePassive"
)

var conjugationLabels = map[Conjugation]string{
	ConjDictionary:       "辞书形 (原形)",
	ConjMasu:             "ます形 (敬语)",
	ConjTe:               "て形 (连接/进行)",
	ConjTa:               "た形 (过去)",
	ConjNai:              "ない形 (否定)",
	ConjPotential:        "可能形 (能)",
	ConjVolitional:       "意向形 (想)",
	ConjImperative:       "命令形 (命令)",
	ConjProhibitive:      "禁止形 (禁止)",
	ConjBa:               "ば形 (假设)",
	ConjPassive:          "受身形 (被动)",
	ConjCausative:        "使役形 (让)",
	ConjCausativePassive: "使役被动 (被迫)",
}

// Conjugations returns all conjugation forms in menu order
func Conjugations() []Conjugation {
	return []Conjugation{
		ConjDictionary, ConjMasu, ConjTe, ConjTa, ConjNai,
		ConjPotential, ConjVolitional, ConjImperative, ConjProhibitive,
		ConjBa, ConjPassive, ConjCausative, ConjCausativePassive,
	}
}

// ParseConjugation returns the conjugation for s, or false if unknown
func ParseConjugation(s string) (Conjugation, bool) {
	if _, ok := conjugationLabels[Conjugation(s)]; ok {
		return Conjugation(s), true
	}
	return "", false
}

// Label returns the Chinese menu label
func (c Conjugation) Label() string {
	if label, ok := conjugationLabels[c]; ok {
		return label
	}
	return string(c)
}

// GameConfig selects the words for one session
type GameConfig struct {
	Level        Level
	Conjugations []Conjugation
	ReviewMode   bool
	ReviewData   []WordPair
}
