package domain

import "strings"

// FuriganaSegment is a run of base text with an optional reading
type FuriganaSegment struct {
	Text     string `json:"text"`
	Furigana string `json:"furigana,omitempty"`
}

// Japanese holds the plain text used for speech and the segments used for rendering
type Japanese struct {
	Text     string            `json:"text"`
	Segments []FuriganaSegment `json:"segments"`
}

// WordPair is one Japanese term and its Chinese translation
type WordPair struct {
	ID string   `json:"id"`
	JP Japanese `json:"jp"`
	CN string   `json:"cn"`
}

// NewJapanese builds a Japanese term whose plain text is the concatenation of segment texts
func NewJapanese(segments []FuriganaSegment) Japanese {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return Japanese{Text: b.String(), Segments: segments}
}

// Ruby renders the segments inline, readings in parentheses: 食(た)べない
func (j Japanese) Ruby() string {
	if len(j.Segments) == 0 {
		return j.Text
	}

	var b strings.Builder
	for _, s := range j.Segments {
		b.WriteString(s.Text)
		if s.Furigana != "" {
			b.WriteString("(")
			b.WriteString(s.Furigana)
			b.WriteString(")")
		}
	}
	return b.String()
}
